// Package loot opens loot boxes. A box is one draw over the table: entries
// occupy consecutive bands of a d10000 roll sized by their drop rate, and a
// roll past the last band drops nothing.
package loot

import (
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

// Config holds the dependencies for a Sampler
type Config struct {
	Roller dice.Roller
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Sampler draws items from loot tables
type Sampler struct {
	roller dice.Roller
}

// NewSampler creates a loot sampler
func NewSampler(cfg *Config) (*Sampler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Sampler{roller: cfg.Roller}, nil
}

// Thresholds returns the cumulative upper bound of each entry's band
func Thresholds(table *entities.LootTable) []int {
	thresholds := make([]int, len(table.Entries))
	cumulative := 0
	for i, entry := range table.Entries {
		cumulative += entry.Weight()
		thresholds[i] = cumulative
	}
	return thresholds
}

// Open draws once from table. A nil item with a nil error means no drop.
func (s *Sampler) Open(table *entities.LootTable) (*entities.Equipment, error) {
	if table == nil {
		return nil, errors.InvalidArgument("loot table is required")
	}

	roll, err := s.roller.Roll(entities.DropRateResolution)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll loot for %s", table.Name)
	}

	for i, threshold := range Thresholds(table) {
		if roll <= threshold {
			return table.Entries[i].Item, nil
		}
	}

	return nil, nil
}

// Summary counts the results of opening a box several times
type Summary struct {
	Table  string         `json:"table"`
	Opened int            `json:"opened"`
	Empty  int            `json:"empty"`
	Drops  map[string]int `json:"drops"`
}

// ItemNames returns the dropped item names, sorted
func (s *Summary) ItemNames() []string {
	names := make([]string, 0, len(s.Drops))
	for name := range s.Drops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenN opens table n times and tallies the drops
func (s *Sampler) OpenN(table *entities.LootTable, n int) (*Summary, error) {
	if n < 0 {
		return nil, errors.InvalidArgumentf("open count must not be negative, got %d", n)
	}
	if table == nil {
		return nil, errors.InvalidArgument("loot table is required")
	}

	summary := &Summary{Table: table.Name, Drops: make(map[string]int)}
	for i := 0; i < n; i++ {
		item, err := s.Open(table)
		if err != nil {
			return nil, err
		}

		summary.Opened++
		if item == nil {
			summary.Empty++
			continue
		}
		summary.Drops[item.Name]++
	}

	return summary, nil
}
