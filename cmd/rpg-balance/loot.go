package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-balance/internal/engine/loot"
	"github.com/KirkDiggler/rpg-balance/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

type lootOptions struct {
	table string
	count int
}

func newLootCmd(root *rootOptions) *cobra.Command {
	opts := &lootOptions{}

	cmd := &cobra.Command{
		Use:   "loot",
		Short: "Open a loot table many times and report the observed drop rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLoot(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.table, "table", "Basic Cell Drop", "loot table to open")
	cmd.Flags().IntVar(&opts.count, "count", 1000, "number of boxes to open")

	return cmd
}

func runLoot(cmd *cobra.Command, root *rootOptions, opts *lootOptions) error {
	cat, err := loadCatalog(root.cfg.CatalogPath)
	if err != nil {
		return err
	}

	table, ok := cat.LootTable(opts.table)
	if !ok {
		return errors.NotFoundf("loot table %q not found", opts.table)
	}

	sampler, err := loot.NewSampler(&loot.Config{Roller: rpgtoolkit.NewRoller(root.cfg.Seed)})
	if err != nil {
		return err
	}

	summary, err := sampler.OpenN(table, opts.count)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Opened %q %d times\n", summary.Table, summary.Opened)

	tw := newTable(out)
	fmt.Fprintln(tw, "ITEM\tDROPS\tOBSERVED\tEXPECTED")
	for _, entry := range table.Entries {
		drops := summary.Drops[entry.Item.Name]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", entry.Item.Name, drops,
			percent(ratio(drops, summary.Opened)), percent(entry.DropRate))
	}
	fmt.Fprintf(tw, "(nothing)\t%d\t%s\t%s\n", summary.Empty,
		percent(ratio(summary.Empty, summary.Opened)), percent(1-table.TotalRate()))

	return tw.Flush()
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
