package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/repositories/catalog"
)

type catalogOptions struct {
	slot      string
	minRarity string
}

func newCatalogCmd(root *rootOptions) *cobra.Command {
	opts := &catalogOptions{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List enemy archetypes, equipment and loot tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalog(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.slot, "slot", "", "only list equipment for this slot")
	cmd.Flags().StringVar(&opts.minRarity, "min-rarity", "", "only list equipment at or above this rarity")

	return cmd
}

func runCatalog(cmd *cobra.Command, root *rootOptions, opts *catalogOptions) error {
	ctx := cmd.Context()

	cat, err := loadCatalog(root.cfg.CatalogPath)
	if err != nil {
		return err
	}
	repo, err := catalog.NewRepository(&catalog.Config{Catalog: cat})
	if err != nil {
		return err
	}

	filter := catalog.ListEquipmentInput{}
	if opts.slot != "" {
		slot, ok := entities.SlotFromString(opts.slot)
		if !ok {
			return errors.InvalidArgumentf("unknown slot %q", opts.slot)
		}
		filter.Slot = slot
	}
	if opts.minRarity != "" {
		rarity, ok := entities.RarityFromString(opts.minRarity)
		if !ok {
			return errors.InvalidArgumentf("unknown rarity %q", opts.minRarity)
		}
		filter.MinRarity = rarity
	}

	archetypes, err := repo.ListArchetypes(ctx, catalog.ListArchetypesInput{})
	if err != nil {
		return err
	}
	items, err := repo.ListEquipment(ctx, filter)
	if err != nil {
		return err
	}
	tables, err := repo.ListLootTables(ctx, catalog.ListLootTablesInput{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Archetypes")
	tw := newTable(out)
	fmt.Fprintln(tw, "NAME\tHEALTH\tATK\tDEF\tAGI\tCRIT")
	for _, a := range archetypes.Archetypes {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\n", a.Name, a.Health,
			a.Attributes.Attack, a.Attributes.Defense, a.Attributes.Agility, a.CritChance())
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nEquipment")
	tw = newTable(out)
	fmt.Fprintln(tw, "NAME\tSLOT\tRARITY\tPRICE\tBONUSES")
	for _, e := range items.Equipment {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", e.Name, e.Slot, e.Rarity, e.Price, bonusesString(e.Bonuses))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nLoot tables")
	tw = newTable(out)
	fmt.Fprintln(tw, "TABLE\tITEM\tRATE")
	for _, t := range tables.LootTables {
		for _, entry := range t.Entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, entry.Item.Name, percent(entry.DropRate))
		}
	}
	return tw.Flush()
}
