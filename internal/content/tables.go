// Package content holds the built-in corpora and difficulty tables.
package content

import (
	"fmt"
	"sort"

	"github.com/verte-zerg/funtext/internal/model"
)

// Difficulty keys in menu order.
const (
	Easy   = "easy"
	Medium = "medium"
	Hard   = "hard"
)

// MaxObjectsCount is the largest object set a round may show; the host has one
// selection key per object.
const MaxObjectsCount = 13

// DifficultyKeys lists the built-in difficulty keys in menu order.
var DifficultyKeys = []string{Easy, Medium, Hard}

// Tables groups the difficulty tables of every mode, keyed by difficulty.
type Tables struct {
	Assembly map[string]model.AssemblyDifficulty
	Pos      map[string]model.PosDifficulty
	Objects  map[string]model.ObjectsDifficulty
}

// DefaultTables returns a fresh copy of the built-in difficulty tables.
func DefaultTables() Tables {
	return Tables{
		Assembly: map[string]model.AssemblyDifficulty{
			Easy:   {Label: "Easy", MinWords: 3, MaxWords: 5, TimeLimit: 45, PrefillProbability: 0.5, ScoreMultiplier: 1},
			Medium: {Label: "Medium", MinWords: 5, MaxWords: 7, TimeLimit: 40, PrefillProbability: 0.3, ScoreMultiplier: 1.5},
			Hard:   {Label: "Hard", MinWords: 7, MaxWords: 12, TimeLimit: 35, PrefillProbability: 0.1, ScoreMultiplier: 2},
		},
		Pos: map[string]model.PosDifficulty{
			Easy:   {Label: "Easy", TimeLimit: 30, WordsCount: 8},
			Medium: {Label: "Medium", TimeLimit: 25, WordsCount: 12},
			Hard:   {Label: "Hard", TimeLimit: 25, WordsCount: 15},
		},
		Objects: map[string]model.ObjectsDifficulty{
			Easy:   {Label: "Easy", TimeLimit: 30, Count: 6, Rounds: 5},
			Medium: {Label: "Medium", TimeLimit: 25, Count: 9, Rounds: 7},
			Hard:   {Label: "Hard", TimeLimit: 20, Count: 12, Rounds: 10},
		},
	}
}

// Keys returns the difficulty keys of a mode: built-in keys first, then any extra keys sorted.
func (t Tables) Keys(mode model.Mode) []string {
	var present map[string]struct{}
	switch mode {
	case model.ModeAssembly:
		present = keySet(t.Assembly)
	case model.ModePos:
		present = keySet(t.Pos)
	case model.ModeObjects:
		present = keySet(t.Objects)
	}
	keys := make([]string, 0, len(present))
	for _, k := range DifficultyKeys {
		if _, ok := present[k]; ok {
			keys = append(keys, k)
			delete(present, k)
		}
	}
	extra := make([]string, 0, len(present))
	for k := range present {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Label returns the display label of a difficulty, or the key itself when unknown.
func (t Tables) Label(mode model.Mode, key string) string {
	switch mode {
	case model.ModeAssembly:
		if d, ok := t.Assembly[key]; ok {
			return d.Label
		}
	case model.ModePos:
		if d, ok := t.Pos[key]; ok {
			return d.Label
		}
	case model.ModeObjects:
		if d, ok := t.Objects[key]; ok {
			return d.Label
		}
	}
	return key
}

// Validate checks every table entry for usable values.
func (t Tables) Validate() error {
	for key, d := range t.Assembly {
		if d.TimeLimit <= 0 {
			return fmt.Errorf("assembly.%s: time-limit must be > 0", key)
		}
		if d.MinWords < 1 || d.MaxWords < d.MinWords {
			return fmt.Errorf("assembly.%s: need 1 <= min-words <= max-words", key)
		}
		if d.PrefillProbability < 0 || d.PrefillProbability > 1 {
			return fmt.Errorf("assembly.%s: prefill must be between 0 and 1", key)
		}
		if d.ScoreMultiplier <= 0 {
			return fmt.Errorf("assembly.%s: multiplier must be > 0", key)
		}
	}
	for key, d := range t.Pos {
		if d.TimeLimit <= 0 {
			return fmt.Errorf("pos.%s: time-limit must be > 0", key)
		}
		if d.WordsCount <= 0 {
			return fmt.Errorf("pos.%s: words must be > 0", key)
		}
	}
	for key, d := range t.Objects {
		if d.TimeLimit <= 0 {
			return fmt.Errorf("objects.%s: time-limit must be > 0", key)
		}
		if d.Count <= 0 || d.Count > MaxObjectsCount {
			return fmt.Errorf("objects.%s: count must be between 1 and %d", key, MaxObjectsCount)
		}
		if d.Rounds <= 0 {
			return fmt.Errorf("objects.%s: rounds must be > 0", key)
		}
	}
	return nil
}

func keySet[V any](m map[string]V) map[string]struct{} {
	out := make(map[string]struct{}, len(m))
	for k := range m {
		out[k] = struct{}{}
	}
	return out
}
