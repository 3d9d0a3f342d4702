package rpgtoolkit_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
)

func TestCharacterEntity(t *testing.T) {
	character := &entities.Character{ID: "char-123", Name: "Mitochondria"}

	entity := rpgtoolkit.WrapCharacter(character)

	assert.Equal(t, "char-123", entity.GetID())
	assert.Equal(t, rpgtoolkit.EntityTypeCombatant, entity.GetType())
	assert.Same(t, character, entity.Character)
}

func TestNewAttackEvent(t *testing.T) {
	attacker := &entities.Character{ID: "a", Name: "Player"}
	target := &entities.Character{ID: "b", Name: "Ribosome"}

	evt := rpgtoolkit.NewAttackEvent(rpgtoolkit.EventTypeCritical, 2, attacker, target, 24, true)

	assert.Equal(t, rpgtoolkit.EventTypeCritical, evt.Type())
	assert.Equal(t, int32(24), rpgtoolkit.Damage(evt))
	assert.True(t, rpgtoolkit.Critical(evt))

	source, ok := rpgtoolkit.Combatant(evt.Source())
	require.True(t, ok)
	assert.Same(t, attacker, source)

	dest, ok := rpgtoolkit.Combatant(evt.Target())
	require.True(t, ok)
	assert.Same(t, target, dest)
}

func TestEventsThroughBus(t *testing.T) {
	bus := events.NewBus()
	attacker := &entities.Character{ID: "a"}
	defeated := &entities.Character{ID: "b"}

	var received []string
	bus.SubscribeFunc(rpgtoolkit.EventTypeDefeated, 0, func(_ context.Context, e events.Event) error {
		received = append(received, e.Target().GetID())
		return nil
	})

	err := bus.Publish(context.Background(), rpgtoolkit.NewDefeatedEvent(1, attacker, defeated))
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, received)
}
