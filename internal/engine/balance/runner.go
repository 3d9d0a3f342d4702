// Package balance runs Monte Carlo battle simulations to measure how a player
// build fares against a wave setup.
package balance

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/KirkDiggler/rpg-balance/internal/engine/battle"
	"github.com/KirkDiggler/rpg-balance/internal/engine/wave"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/pkg/idgen"
)

// Config holds the dependencies for a Runner
type Config struct {
	Roller         dice.Roller
	Archetypes     wave.ArchetypeSource
	IDGenerator    idgen.Generator
	FixedArchetype string
	EnemiesPerWave int32
	MaxRandomCount int32
	MaxRounds      int32
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.Archetypes == nil {
		vb.RequiredField("Archetypes")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Runner repeats battles between copies of a player and fresh waves
type Runner struct {
	engine    *battle.Engine
	waves     *wave.Generator
	idGen     idgen.Generator
	maxRounds int32
}

// NewRunner creates a balance runner
func NewRunner(cfg *Config) (*Runner, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	engine, err := battle.NewEngine(&battle.Config{Roller: cfg.Roller})
	if err != nil {
		return nil, err
	}

	waves, err := wave.NewGenerator(&wave.Config{
		Archetypes:     cfg.Archetypes,
		Roller:         cfg.Roller,
		IDGenerator:    cfg.IDGenerator,
		FixedArchetype: cfg.FixedArchetype,
		EnemiesPerWave: cfg.EnemiesPerWave,
		MaxRandomCount: cfg.MaxRandomCount,
	})
	if err != nil {
		return nil, err
	}

	return &Runner{
		engine:    engine,
		waves:     waves,
		idGen:     cfg.IDGenerator,
		maxRounds: cfg.MaxRounds,
	}, nil
}

// RunInput describes a simulation
type RunInput struct {
	// Player is copied for every trial and never mutated
	Player *entities.Character
	Trials int
	Mode   wave.Mode
	// Wave is the wave number for ModeSequential
	Wave int32
	// Count and Archetype configure ModeFixed; Archetype is ignored otherwise
	Count     int32
	Archetype string
}

// Validate checks the simulation parameters
func (i *RunInput) Validate() error {
	vb := errors.NewValidationBuilder()

	if i.Player == nil {
		vb.RequiredField("Player")
	}
	if i.Trials < 1 {
		vb.Field("Trials", "must be at least 1")
	}
	if !i.Mode.IsValid() {
		vb.Fieldf("Mode", "unknown mode %q", i.Mode)
	}
	if i.Mode == wave.ModeSequential && i.Wave < 1 {
		vb.Field("Wave", "must be at least 1")
	}
	if i.Mode == wave.ModeFixed && i.Count < 1 {
		vb.Field("Count", "must be at least 1")
	}

	return vb.Build()
}

// Result aggregates every trial
type Result struct {
	Trials          int                  `json:"trials"`
	Victories       int                  `json:"victories"`
	Defeats         int                  `json:"defeats"`
	Stalemates      int                  `json:"stalemates"`
	Unfinished      int                  `json:"unfinished"`
	WinRate         float64              `json:"win_rate"`
	AvgPlayerHealth float64              `json:"avg_player_health"`
	AvgRounds       float64              `json:"avg_rounds"`
	AvgEnemies      float64              `json:"avg_enemies"`
	Stats           entities.BattleStats `json:"stats"`
	HitRate         float64              `json:"hit_rate"`
	CriticalRate    float64              `json:"critical_rate"`
	AvgDamage       float64              `json:"avg_damage"`
}

// Run simulates input.Trials battles
func (r *Runner) Run(ctx context.Context, input *RunInput) (*Result, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.Player.IsDefeated() {
		return nil, errors.FailedPreconditionf("player %s is defeated", input.Player.ID)
	}

	result := &Result{Trials: input.Trials}
	var healthLeft, rounds, enemies int64

	for trial := 0; trial < input.Trials; trial++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "simulation cancelled")
		}

		w, err := r.spawn(input)
		if err != nil {
			return nil, err
		}

		player := input.Player.Clone(r.idGen.Generate())
		output, err := r.engine.Fight(ctx, &battle.FightInput{
			Player:    player,
			Enemies:   w.Enemies,
			MaxRounds: r.maxRounds,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "trial %d failed", trial+1)
		}

		switch output.Outcome {
		case entities.BattleOutcomeVictory:
			result.Victories++
		case entities.BattleOutcomeDefeat:
			result.Defeats++
		case entities.BattleOutcomeStalemate:
			result.Stalemates++
		default:
			result.Unfinished++
		}

		if player.Health > 0 {
			healthLeft += int64(player.Health)
		}
		rounds += int64(len(output.Rounds))
		enemies += int64(len(w.Enemies))
		result.Stats.Merge(output.Stats)
	}

	trials := float64(input.Trials)
	result.WinRate = float64(result.Victories) / trials
	result.AvgPlayerHealth = float64(healthLeft) / trials
	result.AvgRounds = float64(rounds) / trials
	result.AvgEnemies = float64(enemies) / trials
	result.HitRate = result.Stats.HitRate()
	result.CriticalRate = result.Stats.CriticalRate()
	result.AvgDamage = result.Stats.AverageDamage()

	return result, nil
}

func (r *Runner) spawn(input *RunInput) (*wave.Wave, error) {
	switch input.Mode {
	case wave.ModeSequential:
		return r.waves.Sequential(input.Wave)
	case wave.ModeFixed:
		return r.waves.Fixed(input.Count, input.Archetype)
	default:
		return r.waves.Random()
	}
}
