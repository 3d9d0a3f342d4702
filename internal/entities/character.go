package entities

const (
	// MinCriticalChance is the lowest effective critical chance
	MinCriticalChance int32 = 0
	// MaxCriticalChance is the highest effective critical chance
	MaxCriticalChance int32 = 100
)

// Character is a combatant: the player or one enemy instance.
// Names are display labels and may repeat; IDs identify instances.
type Character struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Attributes      Attributes `json:"attributes"`
	Health          int32      `json:"health"`
	Level           int32      `json:"level"`
	Experience      int32      `json:"experience"`
	Rank            int32      `json:"rank"`
	AttributePoints int32      `json:"attribute_points"`
}

// NewCharacter creates a level 1, rank 1 character
func NewCharacter(id, name string, attrs Attributes, health int32) *Character {
	return &Character{
		ID:         id,
		Name:       name,
		Attributes: attrs,
		Health:     health,
		Level:      1,
		Rank:       1,
	}
}

// IsDefeated reports whether health has dropped to zero or below
func (c *Character) IsDefeated() bool {
	return c.Health <= 0
}

// CritChance returns the critical chance clamped to [0,100]
func (c *Character) CritChance() int32 {
	return clampCritical(c.Attributes.CriticalChance)
}

// Clone returns an independent copy carrying the given ID
func (c *Character) Clone(id string) *Character {
	clone := *c
	clone.ID = id
	return &clone
}

// Snapshot returns a read-only projection of the character
func (c *Character) Snapshot() Snapshot {
	attrs := c.Attributes
	attrs.CriticalChance = c.CritChance()

	return Snapshot{
		ID:              c.ID,
		Name:            c.Name,
		Attributes:      attrs,
		Health:          c.Health,
		Level:           c.Level,
		Experience:      c.Experience,
		Rank:            c.Rank,
		AttributePoints: c.AttributePoints,
		Defeated:        c.IsDefeated(),
	}
}

// Snapshot is the presentation view of a character's current state
type Snapshot struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Attributes      Attributes `json:"attributes"`
	Health          int32      `json:"health"`
	Level           int32      `json:"level"`
	Experience      int32      `json:"experience"`
	Rank            int32      `json:"rank"`
	AttributePoints int32      `json:"attribute_points"`
	Defeated        bool       `json:"defeated"`
}

func clampCritical(v int32) int32 {
	if v < MinCriticalChance {
		return MinCriticalChance
	}
	if v > MaxCriticalChance {
		return MaxCriticalChance
	}
	return v
}
