// Package catalog holds the game data the engine draws on: enemy archetypes,
// equipment definitions and loot tables. A catalog is loaded once and is
// read-only afterwards.
package catalog

import (
	_ "embed"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
)

//go:embed default.yaml
var defaultData []byte

// fileFormat is the YAML layout of a catalog file
type fileFormat struct {
	Archetypes []archetypeData `yaml:"archetypes"`
	Equipment  []equipmentData `yaml:"equipment"`
	LootTables []lootTableData `yaml:"loot_tables"`
}

type archetypeData struct {
	Name       string              `yaml:"name"`
	Health     int32               `yaml:"health"`
	Attributes entities.Attributes `yaml:"attributes"`
}

type equipmentData struct {
	Name    string           `yaml:"name"`
	Slot    string           `yaml:"slot"`
	Price   int32            `yaml:"price"`
	Rarity  string           `yaml:"rarity"`
	Bonuses entities.Bonuses `yaml:"bonuses"`
}

type lootTableData struct {
	Name    string          `yaml:"name"`
	Entries []lootEntryData `yaml:"entries"`
}

type lootEntryData struct {
	Item     string  `yaml:"item"`
	DropRate float64 `yaml:"drop_rate"`
}

// Catalog is an immutable registry of game data
type Catalog struct {
	archetypes map[string]*entities.Character
	equipment  map[string]*entities.Equipment
	lootTables map[string]*entities.LootTable
}

// Default returns the catalog built into the binary
func Default() (*Catalog, error) {
	return Load(defaultData)
}

// LoadFile reads a catalog from a YAML file
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("catalog file %s not found", path)
		}
		return nil, errors.Wrapf(err, "failed to read catalog file %s", path)
	}

	c, err := Load(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid catalog file %s", path)
	}
	return c, nil
}

// Load parses and validates a YAML catalog
func Load(data []byte) (*Catalog, error) {
	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse catalog")
	}

	c := &Catalog{
		archetypes: make(map[string]*entities.Character, len(file.Archetypes)),
		equipment:  make(map[string]*entities.Equipment, len(file.Equipment)),
		lootTables: make(map[string]*entities.LootTable, len(file.LootTables)),
	}
	vb := errors.NewValidationBuilder()

	for i, a := range file.Archetypes {
		field := "archetypes"
		switch {
		case a.Name == "":
			vb.Fieldf(field, "entry %d has no name", i)
			continue
		case c.archetypes[a.Name] != nil:
			vb.Fieldf(field, "duplicate archetype %q", a.Name)
			continue
		case a.Health <= 0:
			vb.Fieldf(field, "archetype %q must have positive health", a.Name)
			continue
		}
		c.archetypes[a.Name] = entities.NewCharacter(a.Name, a.Name, a.Attributes, a.Health)
	}

	for i, e := range file.Equipment {
		field := "equipment"
		if e.Name == "" {
			vb.Fieldf(field, "entry %d has no name", i)
			continue
		}
		if c.equipment[e.Name] != nil {
			vb.Fieldf(field, "duplicate item %q", e.Name)
			continue
		}
		slot, ok := entities.SlotFromString(e.Slot)
		if !ok {
			vb.Fieldf(field, "item %q has unknown slot %q", e.Name, e.Slot)
			continue
		}
		rarity, ok := entities.RarityFromString(e.Rarity)
		if !ok {
			vb.Fieldf(field, "item %q has unknown rarity %q", e.Name, e.Rarity)
			continue
		}
		if e.Price < 0 {
			vb.Fieldf(field, "item %q has negative price", e.Name)
			continue
		}
		c.equipment[e.Name] = &entities.Equipment{
			Name:    e.Name,
			Slot:    slot,
			Bonuses: e.Bonuses,
			Price:   e.Price,
			Rarity:  rarity,
		}
	}

	for i, t := range file.LootTables {
		field := "loot_tables"
		if t.Name == "" {
			vb.Fieldf(field, "entry %d has no name", i)
			continue
		}
		if c.lootTables[t.Name] != nil {
			vb.Fieldf(field, "duplicate loot table %q", t.Name)
			continue
		}

		table := &entities.LootTable{Name: t.Name}
		missing := false
		for _, entry := range t.Entries {
			item, ok := c.equipment[entry.Item]
			if !ok {
				vb.Fieldf(field, "loot table %q references unknown item %q", t.Name, entry.Item)
				missing = true
				continue
			}
			table.Entries = append(table.Entries, entities.LootEntry{Item: item, DropRate: entry.DropRate})
		}
		if missing {
			continue
		}
		if err := table.Validate(); err != nil {
			vb.Fieldf(field, "loot table %q: %s", t.Name, errors.GetMessage(err))
			continue
		}
		c.lootTables[t.Name] = table
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}
	return c, nil
}

// Archetype returns a copy of the named template
func (c *Catalog) Archetype(name string) (*entities.Character, bool) {
	template, ok := c.archetypes[name]
	if !ok {
		return nil, false
	}
	return template.Clone(template.ID), true
}

// ArchetypeNames returns every archetype name, sorted
func (c *Catalog) ArchetypeNames() []string {
	return sortedKeys(c.archetypes)
}

// Equipment returns the named item definition
func (c *Catalog) Equipment(name string) (*entities.Equipment, bool) {
	item, ok := c.equipment[name]
	return item, ok
}

// EquipmentNames returns every item name, sorted
func (c *Catalog) EquipmentNames() []string {
	return sortedKeys(c.equipment)
}

// LootTable returns the named loot table
func (c *Catalog) LootTable(name string) (*entities.LootTable, bool) {
	table, ok := c.lootTables[name]
	return table, ok
}

// LootTableNames returns every loot table name, sorted
func (c *Catalog) LootTableNames() []string {
	return sortedKeys(c.lootTables)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
