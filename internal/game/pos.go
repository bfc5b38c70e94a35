package game

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/verte-zerg/funtext/internal/model"
)

const (
	posCorrectPoints = 2
	posWrongPenalty  = 1
)

// PosGroups lists the sorting groups in display order.
var PosGroups = []model.PartOfSpeech{model.Noun, model.Verb, model.Adjective}

// GroupLabel returns the display label of a sorting group.
func GroupLabel(group model.PartOfSpeech) string {
	switch group {
	case model.Noun:
		return "Nouns"
	case model.Verb:
		return "Verbs"
	case model.Adjective:
		return "Adjectives"
	default:
		return string(group)
	}
}

// PosSession runs the "sort words by part of speech" mode.
type PosSession struct {
	base

	difficulty model.PosDifficulty
	rounds     [][]model.PosItem
	current    int
	sorted     map[model.PartOfSpeech][]model.PosItem
}

// PosSnapshot is a read-only view of a PosSession.
type PosSnapshot struct {
	State      State
	Player     string
	Difficulty string
	Score      int
	TimeLeft   int
	TimeLimit  int
	Round      int
	Rounds     int
	Remaining  []model.PosItem
	Sorted     map[model.PartOfSpeech][]model.PosItem
	EndReason  EndReason
}

// NewPosSession returns an idle session.
func NewPosSession(deps Deps, opts ...Option) *PosSession {
	return &PosSession{base: newBase(deps, opts)}
}

// Initialize shuffles the word pool, splits it into rounds and starts the timer.
func (s *PosSession) Initialize(player, difficultyKey string) error {
	cfg, ok := s.deps.Tables.Pos[difficultyKey]
	if !ok {
		return fmt.Errorf("unknown difficulty %q", difficultyKey)
	}
	s.reset(player)
	s.difficulty = cfg

	words := slices.Clone(s.deps.Corpus.PosWords)
	shuffle(s.deps.Random, words)
	items := lo.Map(words, func(w model.PosWord, _ int) model.PosItem {
		return model.PosItem{Text: w.Text, PartOfSpeech: w.PartOfSpeech, UID: s.deps.IDs.NewID()}
	})
	s.rounds = lo.Chunk(items, cfg.WordsCount)
	s.current = 0
	s.sorted = map[model.PartOfSpeech][]model.PosItem{}
	if len(s.rounds) == 0 {
		s.endSession(ReasonCompleted)
		return nil
	}
	s.timeLeft = cfg.TimeLimit
	s.state = StateRoundActive
	return nil
}

// ClassifyWord drops the word with uid into group. Unknown uids are ignored;
// a wrong group costs a point and leaves the word in place.
func (s *PosSession) ClassifyWord(uid string, group model.PartOfSpeech) Outcome {
	if s.state != StateRoundActive {
		return OutcomeIgnored
	}
	pool := s.rounds[s.current]
	idx := slices.IndexFunc(pool, func(item model.PosItem) bool { return item.UID == uid })
	if idx < 0 {
		return OutcomeIgnored
	}
	item := pool[idx]
	if item.PartOfSpeech != group {
		s.penalize(posWrongPenalty)
		return OutcomeWrong
	}
	s.rounds[s.current] = slices.Delete(pool, idx, idx+1)
	s.sorted[group] = append(s.sorted[group], item)
	s.score += posCorrectPoints
	if len(s.rounds[s.current]) == 0 {
		s.nextRound()
		return OutcomeRoundWon
	}
	return OutcomeCorrect
}

func (s *PosSession) nextRound() {
	s.current++
	if s.current >= len(s.rounds) {
		s.endSession(ReasonCompleted)
		return
	}
	s.timeLeft = s.difficulty.TimeLimit
	s.sorted = map[model.PartOfSpeech][]model.PosItem{}
}

// Tick advances the timer by one second.
func (s *PosSession) Tick() {
	if s.state != StateRoundActive {
		return
	}
	if s.countdown() {
		s.endSession(ReasonTimeExpired)
	}
}

func (s *PosSession) endSession(reason EndReason) {
	s.state = StateSessionComplete
	s.endReason = reason
	s.saveLeaderboard(model.ModePos)
}

// ForceFinishToMenu halts a running session and records its current score.
// It reports whether a score was recorded.
func (s *PosSession) ForceFinishToMenu() bool {
	if s.state != StateRoundActive {
		return false
	}
	s.state = StateStopped
	s.endReason = ReasonExitedToMenu
	s.saveLeaderboard(model.ModePos)
	return true
}

// Remaining returns the unsorted words of the current round.
func (s *PosSession) Remaining() []model.PosItem {
	if s.current >= len(s.rounds) {
		return nil
	}
	return slices.Clone(s.rounds[s.current])
}

// Snapshot returns a copy of the display state.
func (s *PosSession) Snapshot() PosSnapshot {
	sorted := make(map[model.PartOfSpeech][]model.PosItem, len(s.sorted))
	for group, items := range s.sorted {
		sorted[group] = slices.Clone(items)
	}
	round := s.current + 1
	if round > len(s.rounds) {
		round = len(s.rounds)
	}
	return PosSnapshot{
		State:      s.state,
		Player:     s.player,
		Difficulty: s.difficulty.Label,
		Score:      s.score,
		TimeLeft:   s.timeLeft,
		TimeLimit:  s.difficulty.TimeLimit,
		Round:      round,
		Rounds:     len(s.rounds),
		Remaining:  s.Remaining(),
		Sorted:     sorted,
		EndReason:  s.endReason,
	}
}
