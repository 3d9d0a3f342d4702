package battle

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

// Tally listens to battle events on a bus and keeps a damage ledger per combatant
type Tally struct {
	bus  events.EventBus
	subs []string

	mu    sync.Mutex
	order []string
	stats map[string]*entities.ParticipantStats
}

// NewTally subscribes a new tally to bus
func NewTally(bus events.EventBus) *Tally {
	t := &Tally{
		bus:   bus,
		stats: make(map[string]*entities.ParticipantStats),
	}

	t.subs = append(t.subs,
		bus.SubscribeFunc(rpgtoolkit.EventTypeAttack, 0, t.onAttack),
		bus.SubscribeFunc(rpgtoolkit.EventTypeDefeated, 0, t.onDefeated),
	)

	return t
}

// Track registers combatants up front so they appear in roster order even if
// they never act
func (t *Tally) Track(roster ...*entities.Character) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, c := range roster {
		t.participant(c)
	}
}

// Participants returns the ledger in first-seen order
func (t *Tally) Participants() []entities.ParticipantStats {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]entities.ParticipantStats, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.stats[id])
	}
	return out
}

// Close unsubscribes from the bus
func (t *Tally) Close() error {
	for _, id := range t.subs {
		if err := t.bus.Unsubscribe(id); err != nil {
			return errors.Wrapf(err, "failed to unsubscribe %s", id)
		}
	}
	t.subs = nil
	return nil
}

func (t *Tally) onAttack(_ context.Context, evt events.Event) error {
	attacker, ok := rpgtoolkit.Combatant(evt.Source())
	if !ok {
		return nil
	}
	target, ok := rpgtoolkit.Combatant(evt.Target())
	if !ok {
		return nil
	}

	damage := rpgtoolkit.Damage(evt)

	t.mu.Lock()
	defer t.mu.Unlock()

	a := t.participant(attacker)
	a.DamageDealt += damage
	a.DamageTaken += damage
	if rpgtoolkit.Critical(evt) {
		a.Criticals++
	}
	t.participant(target).DamageTaken += damage

	return nil
}

func (t *Tally) onDefeated(_ context.Context, evt events.Event) error {
	defeated, ok := rpgtoolkit.Combatant(evt.Target())
	if !ok {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.participant(defeated).Defeated = true
	return nil
}

// participant must be called with mu held
func (t *Tally) participant(c *entities.Character) *entities.ParticipantStats {
	if p, ok := t.stats[c.ID]; ok {
		return p
	}

	p := &entities.ParticipantStats{ID: c.ID, Name: c.Name, Defeated: c.IsDefeated()}
	t.stats[c.ID] = p
	t.order = append(t.order, c.ID)
	return p
}
