package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
)

// EntityTypeCombatant is the rpg-toolkit entity type for battle participants
const EntityTypeCombatant = "combatant"

// CharacterEntity wraps entities.Character to implement core.Entity interface
type CharacterEntity struct {
	*entities.Character
}

// GetID returns the character's ID
func (c *CharacterEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CharacterEntity) GetType() string {
	return EntityTypeCombatant
}

// WrapCharacter converts an entities.Character to a CharacterEntity
func WrapCharacter(character *entities.Character) *CharacterEntity {
	return &CharacterEntity{Character: character}
}

// Compile-time check that our entity wrapper implements core.Entity
var _ core.Entity = (*CharacterEntity)(nil)
