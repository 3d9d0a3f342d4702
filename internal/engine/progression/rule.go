// Package progression awards experience after a battle and ranks characters up
package progression

import (
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

// DefaultExperiencePerRank is the experience needed per rank to rank up
const DefaultExperiencePerRank int32 = 10

// Config configures a Rule
type Config struct {
	// ExperiencePerRank scales the rank-up threshold: rank * ExperiencePerRank.
	// Zero means DefaultExperiencePerRank.
	ExperiencePerRank int32
}

// Validate checks the configuration
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ExperiencePerRank < 0 {
		vb.Field("ExperiencePerRank", "must not be negative")
	}

	return vb.Build()
}

// Rule applies experience and rank progression
type Rule struct {
	experiencePerRank int32
}

// NewRule creates a progression rule
func NewRule(cfg *Config) (*Rule, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	perRank := cfg.ExperiencePerRank
	if perRank == 0 {
		perRank = DefaultExperiencePerRank
	}

	return &Rule{experiencePerRank: perRank}, nil
}

// Threshold returns the experience needed to leave rank
func (r *Rule) Threshold(rank int32) int32 {
	return rank * r.experiencePerRank
}

// Apply awards one experience per enemy in the wave. Reaching the threshold
// ranks up once, grants an attribute point and resets experience to zero.
// A defeated character gains nothing.
func (r *Rule) Apply(character *entities.Character, enemiesInWave int) entities.ProgressionOutcome {
	if character.IsDefeated() {
		return entities.ProgressionOutcome{
			Defeated:        true,
			Experience:      character.Experience,
			Rank:            character.Rank,
			AttributePoints: character.AttributePoints,
		}
	}

	gained := int32(enemiesInWave)
	if gained < 0 {
		gained = 0
	}
	character.Experience += gained

	rankedUp := false
	if character.Experience >= r.Threshold(character.Rank) {
		character.Rank++
		character.AttributePoints++
		character.Experience = 0
		rankedUp = true
	}

	return entities.ProgressionOutcome{
		ExperienceGained: gained,
		RankedUp:         rankedUp,
		Experience:       character.Experience,
		Rank:             character.Rank,
		AttributePoints:  character.AttributePoints,
	}
}

// Allocate spends one attribute point on attr
func Allocate(character *entities.Character, attr entities.Attribute) error {
	if !attr.IsValid() {
		return errors.NotFoundf("unknown attribute %q", attr)
	}
	if character.AttributePoints <= 0 {
		return errors.FailedPreconditionf("character %s has no attribute points", character.ID)
	}

	character.Attributes.Add(attr, 1)
	character.AttributePoints--
	return nil
}
