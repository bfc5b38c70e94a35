package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/verte-zerg/funtext/internal/model"
	"github.com/verte-zerg/funtext/internal/wordlist"
)

const (
	assemblyCorrectPoints = 2
	assemblyWrongPenalty  = 3
	assemblyCompleteBonus = 5
	minPrefillWords       = 3
)

// AssemblySession runs the "put the sentence back in order" mode.
type AssemblySession struct {
	base

	difficulty model.AssemblyDifficulty
	remaining  []string

	phrase      string
	words       []model.RoundWord
	tray        []int
	nextIndex   int
	roundPoints int
	round       int
	lastDelta   int
	newBest     bool
}

// AssemblySnapshot is a read-only view of an AssemblySession.
type AssemblySnapshot struct {
	State       State
	Player      string
	Difficulty  string
	Multiplier  float64
	Phrase      string
	Words       []model.RoundWord
	Tray        []model.RoundWord
	NextIndex   int
	TimeLeft    int
	TimeLimit   int
	RoundPoints int
	Score       int
	LiveScore   int
	Round       int
	RoundsLeft  int
	LastDelta   int
	EndReason   EndReason
	NewBest     bool
}

// NewAssemblySession returns an idle session.
func NewAssemblySession(deps Deps, opts ...Option) *AssemblySession {
	return &AssemblySession{base: newBase(deps, opts)}
}

// Initialize starts a new session for player at the given difficulty.
func (s *AssemblySession) Initialize(player, difficultyKey string) error {
	cfg, ok := s.deps.Tables.Assembly[difficultyKey]
	if !ok {
		return fmt.Errorf("unknown difficulty %q", difficultyKey)
	}
	s.reset(player)
	s.difficulty = cfg
	s.remaining = wordlist.FilterByWordCount(s.deps.Corpus.Phrases, cfg.MinWords, cfg.MaxWords)
	shuffle(s.deps.Random, s.remaining)
	s.round = 0
	s.lastDelta = 0
	s.newBest = false
	s.startRound()
	return nil
}

func (s *AssemblySession) startRound() {
	if len(s.remaining) == 0 {
		s.endSession(ReasonCompleted)
		return
	}
	idx := s.deps.Random.Intn(len(s.remaining))
	s.phrase = s.remaining[idx]
	s.remaining = append(s.remaining[:idx], s.remaining[idx+1:]...)

	s.words = s.buildWords(s.phrase)
	s.nextIndex = 0
	s.skipFilled()
	s.tray = s.tray[:0]
	for _, w := range s.words {
		if !w.IsFilled {
			s.tray = append(s.tray, w.Order)
		}
	}
	shuffle(s.deps.Random, s.tray)

	s.roundPoints = 0
	s.timeLeft = s.difficulty.TimeLimit
	s.round++
	s.state = StateRoundActive
}

func (s *AssemblySession) buildWords(phrase string) []model.RoundWord {
	tokens := strings.Fields(phrase)
	willPrefill := s.deps.Random.Float64() < s.difficulty.PrefillProbability && len(tokens) >= minPrefillWords
	prefillIndex := -1
	if willPrefill {
		prefillIndex = s.deps.Random.Intn(len(tokens))
	}
	words := make([]model.RoundWord, len(tokens))
	for i, token := range tokens {
		words[i] = model.RoundWord{
			Text:        token,
			Order:       i,
			IsPrefilled: i == prefillIndex,
			IsFilled:    i == prefillIndex,
		}
	}
	return words
}

func (s *AssemblySession) skipFilled() {
	for s.nextIndex < len(s.words) && s.words[s.nextIndex].IsFilled {
		s.nextIndex++
	}
}

// SubmitWord places the word with the given order. Only the next expected order is accepted;
// unknown or already placed orders are ignored.
func (s *AssemblySession) SubmitWord(order int) Outcome {
	if s.state != StateRoundActive {
		return OutcomeIgnored
	}
	if order < 0 || order >= len(s.words) || s.words[order].IsFilled {
		return OutcomeIgnored
	}
	if order != s.nextIndex {
		s.roundPoints -= assemblyWrongPenalty
		if s.roundPoints < 0 {
			s.roundPoints = 0
		}
		return OutcomeWrong
	}
	s.words[order].IsFilled = true
	s.nextIndex++
	s.skipFilled()
	s.roundPoints += assemblyCorrectPoints
	if s.nextIndex >= len(s.words) {
		s.resolveSuccess()
		return OutcomeRoundWon
	}
	return OutcomeCorrect
}

// SubmitTrayIndex places the i-th word of the tray, in display order.
func (s *AssemblySession) SubmitTrayIndex(i int) Outcome {
	if s.state != StateRoundActive {
		return OutcomeIgnored
	}
	tray := s.trayWords()
	if i < 0 || i >= len(tray) {
		return OutcomeIgnored
	}
	return s.SubmitWord(tray[i].Order)
}

// Tick advances the round timer by one second.
func (s *AssemblySession) Tick() {
	if s.state != StateRoundActive {
		return
	}
	if s.countdown() {
		s.endSession(ReasonTimeExpired)
	}
}

// RoundScore computes the score of a won round. Halves round to the nearest even
// integer, so 19 × 1.5 scores 28.
func RoundScore(roundPoints, timeLeft int, multiplier float64) int {
	raw := float64(roundPoints + timeLeft + assemblyCompleteBonus)
	if raw < 0 {
		raw = 0
	}
	return int(math.RoundToEven(raw * multiplier))
}

func (s *AssemblySession) resolveSuccess() {
	s.lastDelta = RoundScore(s.roundPoints, s.timeLeft, s.difficulty.ScoreMultiplier)
	s.score += s.lastDelta
	s.state = StateRoundResolving
}

// HasNextRound reports whether phrases remain for another round.
func (s *AssemblySession) HasNextRound() bool {
	return len(s.remaining) > 0
}

// Advance starts the next round after a won one, or ends the session when no phrases remain.
// It reports whether anything happened.
func (s *AssemblySession) Advance() bool {
	if s.state != StateRoundResolving {
		return false
	}
	s.startRound()
	return true
}

func (s *AssemblySession) endSession(reason EndReason) {
	s.state = StateSessionComplete
	s.endReason = reason
	rec := s.deps.Recorder
	if rec == nil {
		return
	}
	entry := model.HistoryEntry{
		Player:     s.player,
		Score:      s.score,
		Difficulty: s.difficulty.Label,
	}
	if err := rec.SaveHistory(s.ctx, entry); err != nil {
		s.onError(fmt.Errorf("failed to save history: %w", err))
	}
	replaced, err := rec.SaveBestGlobal(s.ctx, s.player, s.score)
	if err != nil {
		s.onError(fmt.Errorf("failed to save best score: %w", err))
		return
	}
	s.newBest = replaced
}

// NextIndex returns the order of the next expected word.
func (s *AssemblySession) NextIndex() int {
	return s.nextIndex
}

// RoundPoints returns the points collected in the current round.
func (s *AssemblySession) RoundPoints() int {
	return s.roundPoints
}

func (s *AssemblySession) trayWords() []model.RoundWord {
	out := make([]model.RoundWord, 0, len(s.tray))
	for _, order := range s.tray {
		if !s.words[order].IsFilled {
			out = append(out, s.words[order])
		}
	}
	return out
}

// Snapshot returns a copy of the display state.
func (s *AssemblySession) Snapshot() AssemblySnapshot {
	words := make([]model.RoundWord, len(s.words))
	copy(words, s.words)
	live := s.score
	if s.state == StateRoundActive {
		live += s.roundPoints
	}
	return AssemblySnapshot{
		State:       s.state,
		Player:      s.player,
		Difficulty:  s.difficulty.Label,
		Multiplier:  s.difficulty.ScoreMultiplier,
		Phrase:      s.phrase,
		Words:       words,
		Tray:        s.trayWords(),
		NextIndex:   s.nextIndex,
		TimeLeft:    s.timeLeft,
		TimeLimit:   s.difficulty.TimeLimit,
		RoundPoints: s.roundPoints,
		Score:       s.score,
		LiveScore:   live,
		Round:       s.round,
		RoundsLeft:  len(s.remaining),
		LastDelta:   s.lastDelta,
		EndReason:   s.endReason,
		NewBest:     s.newBest,
	}
}
