// Package generator provides the random source and identity generator used by game sessions.
package generator

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Generator produces uniform random numbers and fresh identities.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform number in [0,1).
func (g *Generator) Float64() float64 {
	return g.rnd.Float64()
}

// Intn returns a uniform number in [0,n). It panics if n <= 0.
func (g *Generator) Intn(n int) int {
	return g.rnd.Intn(n)
}

// NewID returns a fresh random UUID string.
func (g *Generator) NewID() string {
	return uuid.NewString()
}
