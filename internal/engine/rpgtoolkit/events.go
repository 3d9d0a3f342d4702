package rpgtoolkit

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
)

// Battle event types
const (
	EventTypeAttack   = "battle.attack"
	EventTypeCritical = "battle.critical"
	EventTypeDefeated = "battle.defeated"
)

// Event context keys
const (
	ContextKeyDamage   = "damage"
	ContextKeyCritical = "critical"
	ContextKeyRound    = "round"
)

// NewAttackEvent builds the event published after an attack resolves
func NewAttackEvent(eventType string, round int32, attacker, target *entities.Character,
	damage int32, critical bool) events.Event {
	evt := events.NewGameEvent(eventType, WrapCharacter(attacker), WrapCharacter(target))
	evt.Context().Set(ContextKeyDamage, damage)
	evt.Context().Set(ContextKeyCritical, critical)
	evt.Context().Set(ContextKeyRound, round)
	return evt
}

// NewDefeatedEvent builds the event published when a combatant drops to zero health.
// The source is the character that landed the blow.
func NewDefeatedEvent(round int32, attacker, defeated *entities.Character) events.Event {
	evt := events.NewGameEvent(EventTypeDefeated, WrapCharacter(attacker), WrapCharacter(defeated))
	evt.Context().Set(ContextKeyRound, round)
	return evt
}

// Damage reads the damage stored on an attack event
func Damage(evt events.Event) int32 {
	value, ok := evt.Context().Get(ContextKeyDamage)
	if !ok {
		return 0
	}
	damage, _ := value.(int32)
	return damage
}

// Critical reads the critical flag stored on an attack event
func Critical(evt events.Event) bool {
	value, ok := evt.Context().Get(ContextKeyCritical)
	if !ok {
		return false
	}
	critical, _ := value.(bool)
	return critical
}

// Combatant unwraps an event source or target into the character it wraps
func Combatant(entity core.Entity) (*entities.Character, bool) {
	wrapped, ok := entity.(*CharacterEntity)
	if !ok || wrapped == nil {
		return nil, false
	}
	return wrapped.Character, true
}
