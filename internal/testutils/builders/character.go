// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/rpg-balance/internal/entities"
)

// CharacterBuilder provides a fluent interface for building test Character instances
type CharacterBuilder struct {
	character entities.Character
}

// NewCharacterBuilder creates a new builder with the default player stats
func NewCharacterBuilder() *CharacterBuilder {
	return &CharacterBuilder{
		character: entities.Character{
			ID:   "char-test-1",
			Name: "Player",
			Attributes: entities.Attributes{
				Attack:         20,
				Defense:        15,
				Strength:       15,
				Agility:        10,
				Intellect:      10,
				Luck:           8,
				CriticalChance: 10,
			},
			Health: 100,
			Level:  1,
			Rank:   1,
		},
	}
}

// WithID sets the character ID
func (b *CharacterBuilder) WithID(id string) *CharacterBuilder {
	b.character.ID = id
	return b
}

// WithName sets the display name
func (b *CharacterBuilder) WithName(name string) *CharacterBuilder {
	b.character.Name = name
	return b
}

// WithAttributes replaces all attributes
func (b *CharacterBuilder) WithAttributes(attrs entities.Attributes) *CharacterBuilder {
	b.character.Attributes = attrs
	return b
}

// WithAttack sets attack
func (b *CharacterBuilder) WithAttack(attack int32) *CharacterBuilder {
	b.character.Attributes.Attack = attack
	return b
}

// WithDefense sets defense
func (b *CharacterBuilder) WithDefense(defense int32) *CharacterBuilder {
	b.character.Attributes.Defense = defense
	return b
}

// WithAgility sets agility, which drives turn order
func (b *CharacterBuilder) WithAgility(agility int32) *CharacterBuilder {
	b.character.Attributes.Agility = agility
	return b
}

// WithCriticalChance sets the raw critical chance
func (b *CharacterBuilder) WithCriticalChance(chance int32) *CharacterBuilder {
	b.character.Attributes.CriticalChance = chance
	return b
}

// WithHealth sets health
func (b *CharacterBuilder) WithHealth(health int32) *CharacterBuilder {
	b.character.Health = health
	return b
}

// WithRank sets rank
func (b *CharacterBuilder) WithRank(rank int32) *CharacterBuilder {
	b.character.Rank = rank
	return b
}

// WithExperience sets experience
func (b *CharacterBuilder) WithExperience(experience int32) *CharacterBuilder {
	b.character.Experience = experience
	return b
}

// WithAttributePoints sets unspent attribute points
func (b *CharacterBuilder) WithAttributePoints(points int32) *CharacterBuilder {
	b.character.AttributePoints = points
	return b
}

// Build returns a new Character each call
func (b *CharacterBuilder) Build() *entities.Character {
	character := b.character
	return &character
}
