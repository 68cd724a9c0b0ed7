// Package suggestions picks a study suggestion for a classified entry from
// a fixed pool per emotion category.
package suggestions

import (
	"fmt"
	"math/rand/v2"

	"github.com/dmitrijs2005/moodjournal/internal/server/models"
)

// Pools maps each canonical emotion to its non-empty suggestion pool.
type Pools map[models.Emotion][]string

// DefaultPools returns the reference pools, three suggestions per category.
func DefaultPools() Pools {
	return Pools{
		models.EmotionPositive: {
			"You're full of energy today! Start learning a new topic.",
			"Try solving a hard exercise.",
			"Challenge yourself: take a 10-question mini quiz.",
		},
		models.EmotionNeutral: {
			"Keep it simple today. Review earlier topics.",
			"A short 5-minute recap is enough.",
			"Write a summary today, it will clear your head.",
		},
		models.EmotionNegative: {
			"Watch a short video, then solve one question from a topic you like.",
			"Start with a breathing exercise, then do some light reading.",
			"Don't push yourself today, a 3-minute review is enough.",
		},
	}
}

// Picker selects uniformly at random from a category's pool. The random
// source is injected so tests can substitute a deterministic one;
// selection is otherwise intentionally non-deterministic.
type Picker struct {
	pools Pools
	rnd   *rand.Rand
}

// NewPicker builds a Picker over the given pools. A nil rnd falls back to
// the shared global source.
func NewPicker(pools Pools, rnd *rand.Rand) *Picker {
	return &Picker{pools: pools, rnd: rnd}
}

// Pick returns one member of the category's pool. Works for any pool
// size >= 1; errors when the category has no configured pool.
func (p *Picker) Pick(e models.Emotion) (string, error) {
	pool, ok := p.pools[e]
	if !ok || len(pool) == 0 {
		return "", fmt.Errorf("no suggestion pool for category %q", e)
	}
	return pool[p.intN(len(pool))], nil
}

func (p *Picker) intN(n int) int {
	if p.rnd != nil {
		return p.rnd.IntN(n)
	}
	return rand.IntN(n)
}
