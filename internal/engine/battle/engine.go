// Package battle resolves combat rounds between any number of characters.
//
// Within a round every living character acts once, fastest first. An action
// picks a living opponent at random, rolls d100 against the attacker's
// critical chance and deals max(0, attack - defense) damage, doubled on a
// critical. The same damage is also taken by the attacker.
package battle

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

const (
	// CriticalDie is the die rolled against critical chance
	CriticalDie = 100
	// CriticalMultiplier scales raw damage on a critical hit
	CriticalMultiplier = 2
)

// Config holds the dependencies for an Engine
type Config struct {
	Roller dice.Roller
	// EventBus is optional; when set every action is published to it
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Engine resolves rounds. It is not safe for concurrent use.
type Engine struct {
	roller dice.Roller
	bus    events.EventBus
}

// NewEngine creates a battle engine
func NewEngine(cfg *Config) (*Engine, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Engine{
		roller: cfg.Roller,
		bus:    cfg.EventBus,
	}, nil
}

// Damage applies the critical multiplier to raw damage and floors at zero
func Damage(raw int32, critical bool) int32 {
	if critical {
		raw *= CriticalMultiplier
	}
	if raw < 0 {
		return 0
	}
	return raw
}

// CalculateDamage rolls for a critical and returns the damage attacker deals to defender
func (e *Engine) CalculateDamage(attacker, defender *entities.Character) (int32, bool, error) {
	roll, err := e.roller.Roll(CriticalDie)
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to roll critical")
	}

	critical := int32(roll) <= attacker.CritChance()
	raw := attacker.Attributes.Attack - defender.Attributes.Defense

	return Damage(raw, critical), critical, nil
}

// TurnOrder returns the living characters sorted by agility, highest first.
// Equal agility keeps roster order.
func TurnOrder(roster []*entities.Character) []*entities.Character {
	order := make([]*entities.Character, 0, len(roster))
	for _, c := range roster {
		if c != nil && !c.IsDefeated() {
			order = append(order, c)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].Attributes.Agility > order[j].Attributes.Agility
	})

	return order
}

// ResolveRound runs a single round over roster, mutating health in place,
// and returns the actions in the order they happened
func (e *Engine) ResolveRound(ctx context.Context, roster []*entities.Character) ([]entities.ActionRecord, error) {
	return e.resolveRound(ctx, 1, roster)
}

func (e *Engine) resolveRound(
	ctx context.Context, round int32, roster []*entities.Character,
) ([]entities.ActionRecord, error) {
	var records []entities.ActionRecord

	for _, attacker := range TurnOrder(roster) {
		if attacker.IsDefeated() {
			continue
		}

		targets := livingOpponents(roster, attacker)
		if len(targets) == 0 {
			break
		}

		idx, err := rpgtoolkit.Pick(e.roller, len(targets))
		if err != nil {
			return records, errors.Wrapf(err, "failed to pick target for %s", attacker.ID)
		}
		target := targets[idx]

		damage, critical, err := e.CalculateDamage(attacker, target)
		if err != nil {
			return records, err
		}

		target.Health -= damage
		attacker.Health -= damage

		records = append(records, entities.ActionRecord{
			AttackerID:              attacker.ID,
			AttackerName:            attacker.Name,
			TargetID:                target.ID,
			TargetName:              target.Name,
			Damage:                  damage,
			Critical:                critical,
			TargetRemainingHealth:   target.Health,
			AttackerRemainingHealth: attacker.Health,
		})

		e.publishAction(ctx, round, attacker, target, damage, critical)

		if attacker.IsDefeated() {
			break
		}
	}

	return records, nil
}

func livingOpponents(roster []*entities.Character, attacker *entities.Character) []*entities.Character {
	targets := make([]*entities.Character, 0, len(roster))
	for _, c := range roster {
		if c == nil || c == attacker || c.IsDefeated() {
			continue
		}
		targets = append(targets, c)
	}
	return targets
}

func (e *Engine) publishAction(ctx context.Context, round int32, attacker, target *entities.Character,
	damage int32, critical bool) {
	if e.bus == nil {
		return
	}

	published := []events.Event{
		rpgtoolkit.NewAttackEvent(rpgtoolkit.EventTypeAttack, round, attacker, target, damage, critical),
	}
	if critical {
		published = append(published,
			rpgtoolkit.NewAttackEvent(rpgtoolkit.EventTypeCritical, round, attacker, target, damage, critical))
	}
	// Health was above zero before this action for both sides
	if damage > 0 && target.IsDefeated() {
		published = append(published, rpgtoolkit.NewDefeatedEvent(round, attacker, target))
	}
	if damage > 0 && attacker.IsDefeated() {
		published = append(published, rpgtoolkit.NewDefeatedEvent(round, attacker, attacker))
	}

	for _, evt := range published {
		if err := e.bus.Publish(ctx, evt); err != nil {
			slog.Warn("Failed to publish battle event",
				"event_type", evt.Type(),
				"attacker_id", attacker.ID,
				"error", err,
			)
		}
	}
}
