// Package model defines shared data structures.
package model

import "time"

// Mode identifies a game mode.
type Mode string

// Game modes. The string values double as leaderboard keys.
const (
	ModeAssembly Mode = "assembly"
	ModePos      Mode = "pos"
	ModeObjects  Mode = "objects"
)

// Modes lists every mode in menu order.
var Modes = []Mode{ModeAssembly, ModePos, ModeObjects}

// Title returns a human-readable mode name.
func (m Mode) Title() string {
	switch m {
	case ModeAssembly:
		return "Sentence assembly"
	case ModePos:
		return "Parts of speech"
	case ModeObjects:
		return "Object selection"
	default:
		return string(m)
	}
}

// AssemblyDifficulty configures the word-assembly mode.
type AssemblyDifficulty struct {
	Label              string
	MinWords           int
	MaxWords           int
	TimeLimit          int
	PrefillProbability float64
	ScoreMultiplier    float64
}

// PosDifficulty configures the part-of-speech mode.
type PosDifficulty struct {
	Label      string
	TimeLimit  int
	WordsCount int
}

// ObjectsDifficulty configures the object-selection mode.
type ObjectsDifficulty struct {
	Label     string
	TimeLimit int
	Count     int
	Rounds    int
}

// PartOfSpeech is a sorting group.
type PartOfSpeech string

// Supported sorting groups.
const (
	Noun      PartOfSpeech = "noun"
	Verb      PartOfSpeech = "verb"
	Adjective PartOfSpeech = "adj"
)

// PosWord is a corpus entry for the sorting mode.
type PosWord struct {
	Text         string
	PartOfSpeech PartOfSpeech
}

// PosItem is a PosWord tagged with a session-unique identity.
type PosItem struct {
	Text         string
	PartOfSpeech PartOfSpeech
	UID          string
}

// CatalogObject is an object that can be offered in the selection mode.
type CatalogObject struct {
	Name string
	Tags []string
}

// HasTag reports whether the object carries tag.
func (o CatalogObject) HasTag(tag string) bool {
	for _, t := range o.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Question asks the player to pick every object with Tag.
type Question struct {
	Text string
	Tag  string
}

// RoundWord is one slot of a sentence being assembled.
// Order is the word's position in the phrase and its identity within a round.
type RoundWord struct {
	Text        string
	Order       int
	IsPrefilled bool
	IsFilled    bool
}

// HistoryEntry records one finished word-assembly session for a player.
type HistoryEntry struct {
	Player     string
	Score      int
	Difficulty string
	Date       time.Time
}

// LeaderboardEntry is a player's best score in a mode.
type LeaderboardEntry struct {
	Player string
	Score  int
	Date   time.Time
}

// BestRecord is the global best word-assembly result.
type BestRecord struct {
	Player string
	Score  int
	Date   time.Time
}
