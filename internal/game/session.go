// Package game implements the round and session state machines of the three game modes.
//
// Sessions are plain values owned by a host. They never start goroutines or timers:
// the host calls Tick once per second while a round is running and Advance after
// PacingDelay once a round has been won. Every input against a session that is not
// running is a no-op.
package game

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/verte-zerg/funtext/internal/content"
	"github.com/verte-zerg/funtext/internal/generator"
	"github.com/verte-zerg/funtext/internal/model"
)

// PacingDelay is the pause between a won round and the next one.
const PacingDelay = 800 * time.Millisecond

// State is the lifecycle state of a session.
type State int

// Session states.
const (
	StateIdle State = iota
	StateRoundActive
	StateRoundResolving
	StateSessionComplete
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRoundActive:
		return "round-active"
	case StateRoundResolving:
		return "round-resolving"
	case StateSessionComplete:
		return "session-complete"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Running reports whether the session still accepts ticks, input or Advance.
func (s State) Running() bool {
	return s == StateRoundActive || s == StateRoundResolving
}

// Outcome describes the effect of one player input.
type Outcome int

// Input outcomes.
const (
	OutcomeIgnored Outcome = iota
	OutcomeCorrect
	OutcomeWrong
	OutcomeRoundWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeRoundWon:
		return "round-won"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// EndReason explains why a session stopped.
type EndReason string

// End reasons.
const (
	ReasonNone         EndReason = ""
	ReasonCompleted    EndReason = "all rounds done"
	ReasonTimeExpired  EndReason = "time expired"
	ReasonStopped      EndReason = "stopped"
	ReasonExitedToMenu EndReason = "exited to menu"
)

// Random is a uniform random source.
type Random interface {
	// Float64 returns a number in [0,1).
	Float64() float64
	// Intn returns a number in [0,n).
	Intn(n int) int
}

// IDSource issues fresh unique identities.
type IDSource interface {
	NewID() string
}

// Recorder persists session results.
type Recorder interface {
	SaveHistory(ctx context.Context, entry model.HistoryEntry) error
	SaveBestGlobal(ctx context.Context, player string, score int) (bool, error)
	SaveLeaderboard(ctx context.Context, mode model.Mode, player string, score int) error
}

// Deps are the collaborators shared by all sessions.
// Nil Random and IDs default to a time-seeded generator; a nil Recorder disables persistence.
type Deps struct {
	Tables   content.Tables
	Corpus   content.Corpus
	Random   Random
	IDs      IDSource
	Recorder Recorder
}

// Option customizes a session.
type Option func(*base)

// WithErrorHandler routes persistence failures to fn instead of stderr.
func WithErrorHandler(fn func(error)) Option {
	return func(b *base) {
		b.onError = fn
	}
}

// WithContext sets the context passed to the Recorder.
func WithContext(ctx context.Context) Option {
	return func(b *base) {
		b.ctx = ctx
	}
}

// base holds the state shared by every mode.
type base struct {
	deps    Deps
	ctx     context.Context
	onError func(error)

	state     State
	player    string
	score     int
	timeLeft  int
	endReason EndReason
}

func newBase(deps Deps, opts []Option) base {
	if deps.Random == nil || deps.IDs == nil {
		gen := generator.New()
		if deps.Random == nil {
			deps.Random = gen
		}
		if deps.IDs == nil {
			deps.IDs = gen
		}
	}
	b := base{
		deps: deps,
		ctx:  context.Background(),
		onError: func(err error) {
			logErrf("%v\n", err)
		},
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) reset(player string) {
	b.player = player
	b.score = 0
	b.timeLeft = 0
	b.endReason = ReasonNone
}

// State returns the lifecycle state.
func (b *base) State() State {
	return b.state
}

// Score returns the cumulative session score.
func (b *base) Score() int {
	return b.score
}

// TimeLeft returns the seconds left in the current round.
func (b *base) TimeLeft() int {
	return b.timeLeft
}

// EndReason returns why the session stopped, if it did.
func (b *base) EndReason() EndReason {
	return b.endReason
}

// ForceStop halts the session without recording anything. It is safe in any state.
func (b *base) ForceStop() {
	if !b.state.Running() {
		return
	}
	b.state = StateStopped
	b.endReason = ReasonStopped
}

// countdown decrements the timer and reports whether it ran out.
func (b *base) countdown() bool {
	b.timeLeft--
	if b.timeLeft <= 0 {
		b.timeLeft = 0
		return true
	}
	return false
}

func (b *base) penalize(points int) {
	b.score -= points
	if b.score < 0 {
		b.score = 0
	}
}

func (b *base) saveLeaderboard(mode model.Mode) {
	if b.deps.Recorder == nil {
		return
	}
	if err := b.deps.Recorder.SaveLeaderboard(b.ctx, mode, b.player, b.score); err != nil {
		b.onError(fmt.Errorf("failed to save %s leaderboard: %w", mode, err))
	}
}

func shuffle[T any](rnd Random, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
