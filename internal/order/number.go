package order

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

const maxSuffix = 999

// NumberGenerator issues human-facing order numbers of the form
// ORD-<unix millis><suffix>, where suffix is 0..999. Numbers issued by one
// generator never repeat: the first number in a millisecond gets a random
// suffix, later ones in the same millisecond take the next suffix, and the
// millisecond component moves forward once the suffixes run out.
type NumberGenerator struct {
	mu     sync.Mutex
	now    func() time.Time
	suffix func() int
	lastMs int64
	lastSf int
}

// NewNumberGenerator returns a generator reading the wall clock.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{
		now:    time.Now,
		suffix: func() int { return rand.IntN(maxSuffix + 1) },
		lastMs: -1,
	}
}

// Next returns a new order number.
func (g *NumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UnixMilli()
	switch {
	case ms > g.lastMs:
		g.lastMs = ms
		g.lastSf = g.suffix()
	case g.lastSf < maxSuffix:
		g.lastSf++
	default:
		g.lastMs++
		g.lastSf = 0
	}

	return fmt.Sprintf("ORD-%d%d", g.lastMs, g.lastSf)
}
