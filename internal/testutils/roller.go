package testutils

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// ScriptedRoller is a dice.Roller that returns a fixed sequence of values.
// It fails once the script runs out so tests notice unexpected rolls.
type ScriptedRoller struct {
	mu    sync.Mutex
	rolls []int
	next  int
	sizes []int
}

// NewScriptedRoller returns a roller that yields rolls in order
func NewScriptedRoller(rolls ...int) *ScriptedRoller {
	return &ScriptedRoller{rolls: rolls}
}

// Roll returns the next scripted value
func (r *ScriptedRoller) Roll(size int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sizes = append(r.sizes, size)
	if r.next >= len(r.rolls) {
		return 0, fmt.Errorf("scripted roller exhausted after %d rolls (d%d)", len(r.rolls), size)
	}

	value := r.rolls[r.next]
	r.next++
	return value, nil
}

// RollN returns the next count scripted values
func (r *ScriptedRoller) RollN(count, size int) ([]int, error) {
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

// Sizes returns the die size requested by each Roll call so far
func (r *ScriptedRoller) Sizes() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.sizes...)
}

// Remaining returns how many scripted values are unused
func (r *ScriptedRoller) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rolls) - r.next
}

// ConstantRoller always returns the same value, clamped to the die size
type ConstantRoller int

// Roll returns the constant, clamped to [1, size]
func (c ConstantRoller) Roll(size int) (int, error) {
	value := int(c)
	if value > size {
		value = size
	}
	if value < 1 {
		value = 1
	}
	return value, nil
}

// RollN returns count copies of the constant
func (c ConstantRoller) RollN(count, size int) ([]int, error) {
	results := make([]int, count)
	for i := range results {
		results[i], _ = c.Roll(size)
	}
	return results, nil
}

var (
	_ dice.Roller = (*ScriptedRoller)(nil)
	_ dice.Roller = ConstantRoller(0)
)
