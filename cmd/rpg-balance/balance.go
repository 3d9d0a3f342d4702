package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/rpg-balance/internal/engine/balance"
	"github.com/KirkDiggler/rpg-balance/internal/engine/wave"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/orchestrators/session"
)

type balanceOptions struct {
	trials    int
	mode      string
	wave      int32
	count     int32
	archetype string
	equip     []string
	compare   bool
}

func newBalanceCmd(root *rootOptions) *cobra.Command {
	opts := &balanceOptions{}

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Run a Monte Carlo simulation of the player against enemy waves",
		Long: `balance fights many independent copies of the configured player and
reports win rate, average remaining health and hit statistics.

With --compare every archetype is simulated in fixed mode side by side.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("count") {
				opts.count = int32(root.cfg.Waves.EnemiesPerWave)
			}
			return runBalance(cmd, root, opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.trials, "trials", 1000, "number of simulated battles")
	flags.StringVar(&opts.mode, "mode", string(wave.ModeSequential), "wave mode: sequential, fixed or random")
	flags.Int32Var(&opts.wave, "wave", 1, "wave number in sequential mode")
	flags.Int32Var(&opts.count, "count", 0, "enemies per wave in fixed mode (defaults to waves.enemies_per_wave)")
	flags.StringVar(&opts.archetype, "archetype", "", "enemy archetype in fixed mode (defaults to waves.fixed_archetype)")
	flags.StringSliceVar(&opts.equip, "equip", nil, "items to acquire and equip before simulating")
	flags.BoolVar(&opts.compare, "compare", false, "simulate every archetype in fixed mode")

	return cmd
}

func runBalance(cmd *cobra.Command, root *rootOptions, opts *balanceOptions) error {
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

	if opts.compare {
		return compareArchetypes(ctx, out, a, sessionID, opts)
	}

	mode := wave.Mode(opts.mode)
	if !mode.IsValid() {
		return errors.InvalidArgumentf("unknown wave mode %q", opts.mode)
	}

	run, err := a.service.RunBalance(ctx, &session.RunBalanceInput{
		SessionID: sessionID,
		Trials:    opts.trials,
		Mode:      mode,
		Wave:      opts.wave,
		Count:     opts.count,
		Archetype: opts.archetype,
	})
	if err != nil {
		return err
	}

	printResult(out, run.Result)
	return nil
}

// compareArchetypes simulates each archetype concurrently. Seeded runs give
// every archetype its own roller so the output does not depend on scheduling.
func compareArchetypes(ctx context.Context, out io.Writer, a *app, sessionID string, opts *balanceOptions) error {
	names := a.catalog.ArchetypeNames()
	results := make([]*balance.Result, len(names))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		var seed int64
		if a.cfg.Seed != 0 {
			seed = a.cfg.Seed + int64(i)
		}

		g.Go(func() error {
			run, err := a.service.RunBalance(gctx, &session.RunBalanceInput{
				SessionID: sessionID,
				Trials:    opts.trials,
				Mode:      wave.ModeFixed,
				Count:     opts.count,
				Archetype: name,
				Seed:      seed,
			})
			if err != nil {
				return errors.Wrapf(err, "simulate %s", name)
			}
			results[i] = run.Result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "ARCHETYPE\tTRIALS\tWIN RATE\tAVG HEALTH\tAVG ROUNDS\tHIT RATE\tCRIT RATE")
	for i, name := range names {
		r := results[i]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.1f\t%.1f\t%s\t%s\n", name, r.Trials, percent(r.WinRate),
			r.AvgPlayerHealth, r.AvgRounds, percent(r.HitRate), percent(r.CriticalRate))
	}
	return tw.Flush()
}

func printResult(out io.Writer, r *balance.Result) {
	fmt.Fprintf(out, "Trials:      %d\n", r.Trials)
	fmt.Fprintf(out, "Win rate:    %s (%d victories, %d defeats, %d stalemates, %d unfinished)\n",
		percent(r.WinRate), r.Victories, r.Defeats, r.Stalemates, r.Unfinished)
	fmt.Fprintf(out, "Avg health:  %.1f\n", r.AvgPlayerHealth)
	fmt.Fprintf(out, "Avg rounds:  %.2f\n", r.AvgRounds)
	fmt.Fprintf(out, "Avg enemies: %.2f\n", r.AvgEnemies)
	fmt.Fprintf(out, "Hit rate:    %s\n", percent(r.HitRate))
	fmt.Fprintf(out, "Crit rate:   %s\n", percent(r.CriticalRate))
	fmt.Fprintf(out, "Avg damage:  %.2f\n", r.AvgDamage)
}
