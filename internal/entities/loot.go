package entities

import (
	"math"

	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

// DropRateResolution is the number of equally likely outcomes a loot draw
// distinguishes. Rates are rounded to this resolution.
const DropRateResolution = 10000

// LootEntry is one possible drop and its probability in [0,1]
type LootEntry struct {
	Item     *Equipment `json:"item"`
	DropRate float64    `json:"drop_rate"`
}

// Weight returns the drop rate scaled to DropRateResolution
func (e LootEntry) Weight() int {
	return int(math.Round(e.DropRate * DropRateResolution))
}

// LootTable is a named, ordered set of possible drops. Rates may sum to less
// than 1; the remainder is the chance of no drop.
type LootTable struct {
	Name    string      `json:"name"`
	Entries []LootEntry `json:"entries"`
}

// TotalRate returns the sum of all drop rates
func (t *LootTable) TotalRate() float64 {
	var total float64
	for _, entry := range t.Entries {
		total += entry.DropRate
	}
	return total
}

// Validate checks every entry has an item and a rate in [0,1] and that the
// rates together do not exceed 1
func (t *LootTable) Validate() error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", t.Name, vb)

	total := 0
	for i, entry := range t.Entries {
		if entry.Item == nil {
			vb.Fieldf("entries", "entry %d has no item", i)
		}
		if math.IsNaN(entry.DropRate) || entry.DropRate < 0 || entry.DropRate > 1 {
			vb.Fieldf("entries", "entry %d drop rate %v outside [0,1]", i, entry.DropRate)
			continue
		}
		total += entry.Weight()
	}
	if total > DropRateResolution {
		vb.Fieldf("entries", "drop rates sum to %.4f, more than 1", float64(total)/DropRateResolution)
	}

	return vb.Build()
}
