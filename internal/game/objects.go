package game

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/verte-zerg/funtext/internal/model"
)

const (
	objectsCompleteBonus = 5
	objectsWrongPenalty  = 3

	// MaxGenerateAttempts bounds the search for an object set containing a match.
	// When it is exhausted the last sample is used even if nothing matches.
	MaxGenerateAttempts = 20
)

// ObjectsSession runs the "pick every object with the tag" mode.
type ObjectsSession struct {
	base

	difficulty  model.ObjectsDifficulty
	round       int
	roundsTotal int
	question    model.Question
	objects     []model.CatalogObject
	selected    map[int]struct{}
	attempts    int
	lastDelta   int
	lastOutcome Outcome
}

// ObjectsSnapshot is a read-only view of an ObjectsSession.
type ObjectsSnapshot struct {
	State       State
	Player      string
	Difficulty  string
	Question    model.Question
	Objects     []model.CatalogObject
	Selected    []int
	Score       int
	TimeLeft    int
	TimeLimit   int
	Round       int
	RoundsTotal int
	Attempts    int
	LastDelta   int
	LastOutcome Outcome
	EndReason   EndReason
}

// NewObjectsSession returns an idle session.
func NewObjectsSession(deps Deps, opts ...Option) *ObjectsSession {
	return &ObjectsSession{base: newBase(deps, opts), selected: map[int]struct{}{}}
}

// Initialize resets the session and starts round one.
func (s *ObjectsSession) Initialize(player, difficultyKey string) error {
	cfg, ok := s.deps.Tables.Objects[difficultyKey]
	if !ok {
		return fmt.Errorf("unknown difficulty %q", difficultyKey)
	}
	s.reset(player)
	s.difficulty = cfg
	s.round = 0
	s.roundsTotal = cfg.Rounds
	s.lastDelta = 0
	s.startRound()
	return nil
}

func (s *ObjectsSession) startRound() {
	s.round++
	if s.round > s.roundsTotal {
		s.round = s.roundsTotal
		s.endSession(ReasonCompleted)
		return
	}
	corpus := s.deps.Corpus
	if len(corpus.Questions) == 0 || len(corpus.Objects) == 0 {
		s.endSession(ReasonCompleted)
		return
	}
	s.question = corpus.Questions[s.deps.Random.Intn(len(corpus.Questions))]
	s.objects, s.attempts = GenerateObjects(s.deps.Random, corpus.Objects, s.difficulty.Count, s.question.Tag)
	s.selected = map[int]struct{}{}
	s.lastOutcome = OutcomeIgnored
	s.timeLeft = s.difficulty.TimeLimit
	s.state = StateRoundActive
}

// GenerateObjects samples count distinct objects from catalog until at least one carries tag,
// giving up after MaxGenerateAttempts. It returns the sample and the attempts used.
func GenerateObjects(rnd Random, catalog []model.CatalogObject, count int, tag string) ([]model.CatalogObject, int) {
	if count > len(catalog) {
		count = len(catalog)
	}
	var sample []model.CatalogObject
	attempts := 0
	for attempts < MaxGenerateAttempts {
		attempts++
		sample = sampleObjects(rnd, catalog, count)
		if lo.SomeBy(sample, func(o model.CatalogObject) bool { return o.HasTag(tag) }) {
			break
		}
	}
	return sample, attempts
}

func sampleObjects(rnd Random, catalog []model.CatalogObject, count int) []model.CatalogObject {
	idx := make([]int, len(catalog))
	for i := range idx {
		idx[i] = i
	}
	// Partial Fisher-Yates: the first count slots end up uniformly chosen.
	for i := 0; i < count; i++ {
		j := i + rnd.Intn(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	out := make([]model.CatalogObject, count)
	for i := 0; i < count; i++ {
		out[i] = catalog[idx[i]]
	}
	return out
}

// MatchingIndexes returns the indexes of objects carrying tag, ascending.
func MatchingIndexes(objects []model.CatalogObject, tag string) []int {
	var out []int
	for i, o := range objects {
		if o.HasTag(tag) {
			out = append(out, i)
		}
	}
	return out
}

// ToggleSelect flips the selection of object i.
func (s *ObjectsSession) ToggleSelect(i int) {
	if s.state != StateRoundActive || !s.validIndex(i) {
		return
	}
	if _, ok := s.selected[i]; ok {
		delete(s.selected, i)
		return
	}
	s.selected[i] = struct{}{}
}

// Select adds object i to the selection.
func (s *ObjectsSession) Select(i int) {
	if s.state != StateRoundActive || !s.validIndex(i) {
		return
	}
	s.selected[i] = struct{}{}
}

// Deselect removes object i from the selection.
func (s *ObjectsSession) Deselect(i int) {
	if s.state != StateRoundActive || !s.validIndex(i) {
		return
	}
	delete(s.selected, i)
}

func (s *ObjectsSession) validIndex(i int) bool {
	return i >= 0 && i < len(s.objects)
}

// ValidateSelection checks that exactly the matching objects are selected.
// A wrong answer costs points and keeps the selection.
func (s *ObjectsSession) ValidateSelection() Outcome {
	if s.state != StateRoundActive {
		return OutcomeIgnored
	}
	want := MatchingIndexes(s.objects, s.question.Tag)
	if !slices.Equal(want, s.selectedIndexes()) {
		s.penalize(objectsWrongPenalty)
		s.lastOutcome = OutcomeWrong
		return OutcomeWrong
	}
	s.lastDelta = objectsCompleteBonus + s.timeLeft
	s.score += s.lastDelta
	s.state = StateRoundResolving
	s.lastOutcome = OutcomeRoundWon
	return OutcomeRoundWon
}

// Advance starts the next round after a won one.
func (s *ObjectsSession) Advance() bool {
	if s.state != StateRoundResolving {
		return false
	}
	s.startRound()
	return true
}

// Tick advances the round timer by one second.
func (s *ObjectsSession) Tick() {
	if s.state != StateRoundActive {
		return
	}
	if s.countdown() {
		s.endSession(ReasonTimeExpired)
	}
}

func (s *ObjectsSession) endSession(reason EndReason) {
	s.state = StateSessionComplete
	s.endReason = reason
	s.saveLeaderboard(model.ModeObjects)
}

// ForceFinishToMenu halts the session. The current score is recorded only while a
// round is active; during the pause after a won round the session stops silently.
// It reports whether a score was recorded.
func (s *ObjectsSession) ForceFinishToMenu() bool {
	if s.state == StateRoundResolving {
		s.ForceStop()
		return false
	}
	if s.state != StateRoundActive {
		return false
	}
	s.state = StateStopped
	s.endReason = ReasonExitedToMenu
	s.saveLeaderboard(model.ModeObjects)
	return true
}

func (s *ObjectsSession) selectedIndexes() []int {
	out := make([]int, 0, len(s.selected))
	for i := range s.selected {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

// Snapshot returns a copy of the display state.
func (s *ObjectsSession) Snapshot() ObjectsSnapshot {
	return ObjectsSnapshot{
		State:       s.state,
		Player:      s.player,
		Difficulty:  s.difficulty.Label,
		Question:    s.question,
		Objects:     slices.Clone(s.objects),
		Selected:    s.selectedIndexes(),
		Score:       s.score,
		TimeLeft:    s.timeLeft,
		TimeLimit:   s.difficulty.TimeLimit,
		Round:       s.round,
		RoundsTotal: s.roundsTotal,
		Attempts:    s.attempts,
		LastDelta:   s.lastDelta,
		LastOutcome: s.lastOutcome,
		EndReason:   s.endReason,
	}
}
