// Package wave builds enemy rosters from archetype templates. Every enemy is
// an independent clone with its own ID; templates are never handed out.
package wave

import (
	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/pkg/idgen"
)

// Mode selects how a wave is composed
type Mode string

// Wave modes
const (
	// ModeSequential advances the wave counter and spawns counter*EnemiesPerWave fixed enemies
	ModeSequential Mode = "sequential"
	// ModeFixed spawns a requested number of one archetype
	ModeFixed Mode = "fixed"
	// ModeRandom spawns enemies drawn uniformly from every archetype
	ModeRandom Mode = "random"
)

// IsValid checks if the mode is known
func (m Mode) IsValid() bool {
	switch m {
	case ModeSequential, ModeFixed, ModeRandom:
		return true
	default:
		return false
	}
}

// Defaults
const (
	DefaultEnemiesPerWave int32 = 2
	DefaultMaxRandomCount int32 = 10
)

// ArchetypeSource provides enemy templates
type ArchetypeSource interface {
	// Archetype returns a copy of the named template
	Archetype(name string) (*entities.Character, bool)
	// ArchetypeNames returns every template name, sorted
	ArchetypeNames() []string
}

// Config holds the dependencies for a Generator
type Config struct {
	Archetypes     ArchetypeSource
	Roller         dice.Roller
	IDGenerator    idgen.Generator
	FixedArchetype string
	EnemiesPerWave int32
	MaxRandomCount int32
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Archetypes == nil {
		vb.RequiredField("Archetypes")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	errors.ValidateRequired("FixedArchetype", c.FixedArchetype, vb)
	if c.EnemiesPerWave < 0 {
		vb.Field("EnemiesPerWave", "must not be negative")
	}
	if c.MaxRandomCount < 0 {
		vb.Field("MaxRandomCount", "must not be negative")
	}

	return vb.Build()
}

// Wave is a generated roster
type Wave struct {
	Number  int32
	Mode    Mode
	Enemies []*entities.Character
}

// Generator spawns waves. It is not safe for concurrent use.
type Generator struct {
	archetypes     ArchetypeSource
	roller         dice.Roller
	idGen          idgen.Generator
	fixedArchetype string
	enemiesPerWave int32
	maxRandomCount int32

	wave int32
}

// NewGenerator creates a generator starting before wave one
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if _, ok := cfg.Archetypes.Archetype(cfg.FixedArchetype); !ok {
		return nil, errors.NotFoundf("fixed archetype %q not found", cfg.FixedArchetype)
	}

	g := &Generator{
		archetypes:     cfg.Archetypes,
		roller:         cfg.Roller,
		idGen:          cfg.IDGenerator,
		fixedArchetype: cfg.FixedArchetype,
		enemiesPerWave: cfg.EnemiesPerWave,
		maxRandomCount: cfg.MaxRandomCount,
	}
	if g.enemiesPerWave == 0 {
		g.enemiesPerWave = DefaultEnemiesPerWave
	}
	if g.maxRandomCount == 0 {
		g.maxRandomCount = DefaultMaxRandomCount
	}

	return g, nil
}

// Wave returns the number of the last sequential wave, zero before the first
func (g *Generator) Wave() int32 {
	return g.wave
}

// Next advances the wave counter and spawns wave*EnemiesPerWave copies of the
// fixed archetype
func (g *Generator) Next() (*Wave, error) {
	w, err := g.Sequential(g.wave + 1)
	if err != nil {
		return nil, err
	}

	g.wave = w.Number
	return w, nil
}

// Sequential spawns the given wave number without moving the counter
func (g *Generator) Sequential(number int32) (*Wave, error) {
	if number < 1 {
		return nil, errors.InvalidArgumentf("wave number must be positive, got %d", number)
	}

	enemies, err := g.Generate(number*g.enemiesPerWave, g.fixedArchetype)
	if err != nil {
		return nil, err
	}

	return &Wave{Number: number, Mode: ModeSequential, Enemies: enemies}, nil
}

// Generate spawns count enemies of archetype. An empty archetype picks each
// enemy uniformly from all archetypes.
func (g *Generator) Generate(count int32, archetype string) ([]*entities.Character, error) {
	if count < 0 {
		return nil, errors.InvalidArgumentf("enemy count must not be negative, got %d", count)
	}

	if archetype != "" {
		template, ok := g.archetypes.Archetype(archetype)
		if !ok {
			return nil, errors.NotFoundf("archetype %q not found", archetype)
		}

		enemies := make([]*entities.Character, count)
		for i := range enemies {
			enemies[i] = template.Clone(g.idGen.Generate())
		}
		return enemies, nil
	}

	names := g.archetypes.ArchetypeNames()
	if len(names) == 0 {
		return nil, errors.FailedPrecondition("no archetypes available")
	}

	enemies := make([]*entities.Character, 0, count)
	for i := int32(0); i < count; i++ {
		idx, err := rpgtoolkit.Pick(g.roller, len(names))
		if err != nil {
			return nil, errors.Wrap(err, "failed to pick archetype")
		}

		template, ok := g.archetypes.Archetype(names[idx])
		if !ok {
			return nil, errors.NotFoundf("archetype %q not found", names[idx])
		}
		enemies = append(enemies, template.Clone(g.idGen.Generate()))
	}

	return enemies, nil
}

// Random spawns between one and MaxRandomCount enemies of random archetypes
func (g *Generator) Random() (*Wave, error) {
	roll, err := g.roller.Roll(int(g.maxRandomCount))
	if err != nil {
		return nil, errors.Wrap(err, "failed to roll wave size")
	}

	enemies, err := g.Generate(int32(roll), "")
	if err != nil {
		return nil, err
	}

	return &Wave{Number: g.wave, Mode: ModeRandom, Enemies: enemies}, nil
}

// Fixed spawns count enemies of archetype without advancing the wave counter
func (g *Generator) Fixed(count int32, archetype string) (*Wave, error) {
	if archetype == "" {
		archetype = g.fixedArchetype
	}

	enemies, err := g.Generate(count, archetype)
	if err != nil {
		return nil, err
	}

	return &Wave{Number: g.wave, Mode: ModeFixed, Enemies: enemies}, nil
}
