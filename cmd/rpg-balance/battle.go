package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-balance/internal/engine/wave"
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/orchestrators/session"
)

type battleOptions struct {
	waves     int
	mode      string
	count     int32
	archetype string
	equip     []string
	loot      string
	allocate  string
}

func newBattleCmd(root *rootOptions) *cobra.Command {
	opts := &battleOptions{}

	cmd := &cobra.Command{
		Use:   "battle",
		Short: "Play a session of waves and print every action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("count") {
				opts.count = int32(root.cfg.Waves.EnemiesPerWave)
			}
			return runBattle(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.waves, "waves", 3, "number of waves to fight")
	flags.StringVar(&opts.mode, "mode", string(wave.ModeSequential), "wave mode: sequential, fixed or random")
	flags.Int32Var(&opts.count, "count", 0, "enemies per wave in fixed mode (defaults to waves.enemies_per_wave)")
	flags.StringVar(&opts.archetype, "archetype", "", "enemy archetype in fixed mode (defaults to waves.fixed_archetype)")
	flags.StringSliceVar(&opts.equip, "equip", nil, "items to acquire and equip before the first wave")
	flags.StringVar(&opts.loot, "loot", "", "loot table to open after every victory")
	flags.StringVar(&opts.allocate, "allocate", "", "attribute to spend points on after every rank up")

	return cmd
}

func runBattle(cmd *cobra.Command, root *rootOptions, opts *battleOptions) error {
	if opts.waves < 1 {
		return errors.InvalidArgumentf("--waves must be at least 1, got %d", opts.waves)
	}
	mode := wave.Mode(opts.mode)
	if !mode.IsValid() {
		return errors.InvalidArgumentf("unknown wave mode %q", opts.mode)
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	a, err := newApp(ctx, root.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	sessionID, err := a.newSession(ctx, opts.equip)
	if err != nil {
		return err
	}

	character, err := a.service.GetCharacter(ctx, &session.GetCharacterInput{SessionID: sessionID})
	if err != nil {
		return err
	}
	printCharacter(out, character.Character)

	for i := 0; i < opts.waves; i++ {
		generated, err := a.service.GenerateWave(ctx, &session.GenerateWaveInput{
			SessionID: sessionID,
			Mode:      mode,
			Count:     opts.count,
			Archetype: opts.archetype,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\nWave %d (%s):", generated.Wave, generated.Mode)
		for _, enemy := range generated.Enemies {
			fmt.Fprintf(out, " %s", enemy.Name)
		}
		fmt.Fprintln(out)

		battle, err := a.service.SimulateBattle(ctx, &session.SimulateBattleInput{SessionID: sessionID})
		if err != nil {
			return err
		}

		report := battle.Report
		for _, action := range report.Actions {
			printAction(out, action)
		}
		printStats(out, report.Stats)
		fmt.Fprintf(out, "  outcome %s after %d rounds, +%d exp\n",
			report.Outcome, report.Rounds, report.Progression.ExperienceGained)
		if report.Progression.RankedUp {
			fmt.Fprintf(out, "  rank up! now rank %d\n", report.Progression.Rank)
		}

		if report.Outcome == entities.BattleOutcomeDefeat {
			fmt.Fprintln(out, "You have been defeated!")
			break
		}

		if report.Outcome == entities.BattleOutcomeVictory && opts.loot != "" {
			opened, err := a.service.OpenLootBox(ctx, &session.OpenLootBoxInput{
				SessionID: sessionID,
				Table:     opts.loot,
			})
			if err != nil {
				return err
			}
			if opened.Item != nil {
				fmt.Fprintf(out, "  loot: %s (%s)\n", opened.Item.Item.Name, opened.Item.Item.Rarity)
			} else {
				fmt.Fprintln(out, "  loot: nothing")
			}
		}

		if opts.allocate != "" {
			if err := spendPoints(cmd, a, sessionID, opts.allocate); err != nil {
				return err
			}
		}
	}

	character, err = a.service.GetCharacter(ctx, &session.GetCharacterInput{SessionID: sessionID})
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	printCharacter(out, character.Character)

	return nil
}

func spendPoints(cmd *cobra.Command, a *app, sessionID, attribute string) error {
	ctx := cmd.Context()

	character, err := a.service.GetCharacter(ctx, &session.GetCharacterInput{SessionID: sessionID})
	if err != nil {
		return err
	}

	for points := character.Character.AttributePoints; points > 0; points-- {
		if _, err := a.service.AllocateAttributePoint(ctx, &session.AllocateAttributePointInput{
			SessionID: sessionID,
			Attribute: attribute,
		}); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  +1 %s\n", attribute)
	}
	return nil
}
