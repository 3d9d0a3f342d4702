package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func printCharacter(w io.Writer, c entities.Snapshot) {
	a := c.Attributes
	fmt.Fprintf(w, "%s  health %d  rank %d  exp %d  points %d\n",
		c.Name, c.Health, c.Rank, c.Experience, c.AttributePoints)
	fmt.Fprintf(w, "  atk %d  def %d  str %d  agi %d  int %d  luc %d  crit %d\n",
		a.Attack, a.Defense, a.Strength, a.Agility, a.Intellect, a.Luck, a.CriticalChance)
}

func printAction(w io.Writer, a entities.ActionRecord) {
	marker := ""
	if a.Critical {
		marker = " (critical)"
	}
	fmt.Fprintf(w, "  %s attacks %s for %d damage%s, %s has %d health left\n",
		a.AttackerName, a.TargetName, a.Damage, marker, a.TargetName, a.TargetRemainingHealth)
}

func printStats(w io.Writer, s entities.BattleStats) {
	fmt.Fprintf(w, "  actions %d  hits %d  misses %d  criticals %d  damage %d\n",
		s.Actions, s.Hits, s.Misses, s.Criticals, s.TotalDamage)
}

func bonusesString(b entities.Bonuses) string {
	var out string
	for _, attr := range entities.AllAttributes() {
		v := b.Get(attr)
		if v == 0 {
			continue
		}
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf("%s%+d", attr, v)
	}
	return out
}
