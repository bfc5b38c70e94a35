package game

import (
	"context"
	"fmt"

	"github.com/verte-zerg/funtext/internal/content"
	"github.com/verte-zerg/funtext/internal/model"
)

// fixedRandom always returns the same float and the lowest valid int.
type fixedRandom struct {
	float float64
	calls int
}

func (r *fixedRandom) Float64() float64 {
	return r.float
}

func (r *fixedRandom) Intn(n int) int {
	r.calls++
	return 0
}

// scriptedRandom returns the queued ints in order, then 0.
type scriptedRandom struct {
	float float64
	ints  []int
}

func (r *scriptedRandom) Float64() float64 {
	return r.float
}

func (r *scriptedRandom) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

type seqIDs struct {
	next int
}

func (s *seqIDs) NewID() string {
	s.next++
	return fmt.Sprintf("id-%d", s.next)
}

type leaderboardCall struct {
	mode   model.Mode
	player string
	score  int
}

type fakeRecorder struct {
	history     []model.HistoryEntry
	best        []int
	leaderboard []leaderboardCall
	replace     bool
	err         error
}

func (r *fakeRecorder) SaveHistory(_ context.Context, entry model.HistoryEntry) error {
	r.history = append(r.history, entry)
	return r.err
}

func (r *fakeRecorder) SaveBestGlobal(_ context.Context, _ string, score int) (bool, error) {
	r.best = append(r.best, score)
	if r.err != nil {
		return false, r.err
	}
	return r.replace, nil
}

func (r *fakeRecorder) SaveLeaderboard(_ context.Context, mode model.Mode, player string, score int) error {
	r.leaderboard = append(r.leaderboard, leaderboardCall{mode: mode, player: player, score: score})
	return r.err
}

func testDeps(corpus content.Corpus, rec *fakeRecorder, float float64) Deps {
	tables := content.DefaultTables()
	tables.Assembly["t"] = model.AssemblyDifficulty{
		Label: "Test", MinWords: 3, MaxWords: 5, TimeLimit: 10, PrefillProbability: 0, ScoreMultiplier: 1.5,
	}
	tables.Pos["t"] = model.PosDifficulty{Label: "Test", TimeLimit: 5, WordsCount: 2}
	tables.Objects["t"] = model.ObjectsDifficulty{Label: "Test", TimeLimit: 10, Count: 3, Rounds: 2}
	deps := Deps{
		Tables: tables,
		Corpus: corpus,
		Random: &fixedRandom{float: float},
		IDs:    &seqIDs{},
	}
	if rec != nil {
		deps.Recorder = rec
	}
	return deps
}
