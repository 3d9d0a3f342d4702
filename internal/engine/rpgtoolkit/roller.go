// Package rpgtoolkit binds the battle engine to rpg-toolkit: the dice roller it
// draws randomness from, the entity wrapper for combatants and the events it
// publishes.
package rpgtoolkit

import (
	"math/rand"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

//go:generate mockgen -destination=mock/dice.go -package=dicemock github.com/KirkDiggler/rpg-toolkit/dice Roller

// SeededRoller implements dice.Roller with a deterministic source.
// The same seed always yields the same sequence of rolls.
type SeededRoller struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRoller creates a roller seeded with seed
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a value in [1, size]
func (r *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, errors.InvalidArgumentf("die size must be positive, got %d", size)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	if count <= 0 {
		return nil, errors.InvalidArgumentf("dice count must be positive, got %d", count)
	}

	results := make([]int, count)
	for i := range results {
		value, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		results[i] = value
	}
	return results, nil
}

// NewRoller returns a seeded roller for a non-zero seed and the rpg-toolkit
// default roller otherwise
func NewRoller(seed int64) dice.Roller {
	if seed == 0 {
		return dice.DefaultRoller
	}
	return NewSeededRoller(seed)
}

// Pick returns a uniform index in [0, n) drawn from roller
func Pick(roller dice.Roller, n int) (int, error) {
	if n <= 0 {
		return 0, errors.InvalidArgumentf("cannot pick from %d options", n)
	}
	if n == 1 {
		return 0, nil
	}

	roll, err := roller.Roll(n)
	if err != nil {
		return 0, errors.Wrap(err, "failed to roll pick")
	}
	return roll - 1, nil
}

// Compile-time check that SeededRoller implements dice.Roller
var _ dice.Roller = (*SeededRoller)(nil)
