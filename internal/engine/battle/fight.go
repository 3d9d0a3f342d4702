package battle

import (
	"context"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

// FightInput describes a battle between the player and a wave
type FightInput struct {
	Player  *entities.Character
	Enemies []*entities.Character
	// MaxRounds caps the number of rounds; values below 1 mean one round
	MaxRounds int32
}

// FightOutput is the result of a battle
type FightOutput struct {
	Rounds  [][]entities.ActionRecord
	Outcome entities.BattleOutcome
	Stats   entities.BattleStats
}

// Actions flattens every round's records in order
func (o *FightOutput) Actions() []entities.ActionRecord {
	var all []entities.ActionRecord
	for _, round := range o.Rounds {
		all = append(all, round...)
	}
	return all
}

// Fight resolves rounds until one side is defeated, a round has no actions or
// MaxRounds is reached. The player acts in roster position zero.
func (e *Engine) Fight(ctx context.Context, input *FightInput) (*FightOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Player == nil {
		return nil, errors.InvalidArgument("player is required")
	}
	if input.Player.IsDefeated() {
		return nil, errors.FailedPreconditionf("player %s is defeated", input.Player.ID)
	}

	maxRounds := input.MaxRounds
	if maxRounds < 1 {
		maxRounds = 1
	}

	roster := make([]*entities.Character, 0, len(input.Enemies)+1)
	roster = append(roster, input.Player)
	roster = append(roster, input.Enemies...)

	output := &FightOutput{Outcome: entities.BattleOutcomeUnfinished}
	for round := int32(1); round <= maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "battle cancelled")
		}

		records, err := e.resolveRound(ctx, round, roster)
		if err != nil {
			return nil, err
		}
		output.Rounds = append(output.Rounds, records)

		if outcome, done := Outcome(input.Player, input.Enemies, len(records)); done {
			output.Outcome = outcome
			break
		}
	}

	output.Stats = Summarize(output.Actions())
	return output, nil
}

// Outcome decides whether a battle is over after a round with actionCount actions
func Outcome(player *entities.Character, enemies []*entities.Character, actionCount int) (entities.BattleOutcome, bool) {
	if player.IsDefeated() {
		return entities.BattleOutcomeDefeat, true
	}

	for _, enemy := range enemies {
		if !enemy.IsDefeated() {
			if actionCount == 0 {
				return entities.BattleOutcomeStalemate, true
			}
			return entities.BattleOutcomeUnfinished, false
		}
	}

	return entities.BattleOutcomeVictory, true
}

// Summarize aggregates action records into battle statistics
func Summarize(records []entities.ActionRecord) entities.BattleStats {
	var stats entities.BattleStats
	for _, r := range records {
		stats.Record(r)
	}
	return stats
}
