package testutils

import (
	"sort"

	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/testutils/builders"
)

// Item names used across tests
const (
	ProteinCatalystName = "Protein Catalyst"
	MembraneShieldName  = "Membrane Shield"
	LegendarySwordName  = "Legendary Sword"
)

// ProteinCatalyst is the common starter weapon
func ProteinCatalyst() *entities.Equipment {
	return builders.NewEquipmentBuilder(ProteinCatalystName).
		WithSlot(entities.SlotWeapon).
		WithBonuses(entities.Bonuses{Attack: 5, Strength: 3, Agility: 2, CriticalChance: 5}).
		WithPrice(100).
		WithRarity(entities.RarityCommon).
		Build()
}

// MembraneShield is a shield with a negative agility bonus
func MembraneShield() *entities.Equipment {
	return builders.NewEquipmentBuilder(MembraneShieldName).
		WithSlot(entities.SlotShield).
		WithBonuses(entities.Bonuses{Defense: 8, Strength: 2, Agility: -1}).
		WithPrice(120).
		WithRarity(entities.RarityRare).
		Build()
}

// LegendarySword bonuses every attribute
func LegendarySword() *entities.Equipment {
	return builders.NewEquipmentBuilder(LegendarySwordName).
		WithSlot(entities.SlotWeapon).
		WithBonuses(entities.Bonuses{
			Attack:         10,
			Defense:        5,
			Strength:       5,
			Agility:        3,
			Intellect:      3,
			Luck:           3,
			CriticalChance: 10,
		}).
		WithPrice(500).
		WithRarity(entities.RarityLegendary).
		Build()
}

// ItemTable is an in-memory item lookup for engine tests
type ItemTable map[string]*entities.Equipment

// NewItemTable indexes items by name
func NewItemTable(items ...*entities.Equipment) ItemTable {
	table := make(ItemTable, len(items))
	for _, item := range items {
		table[item.Name] = item
	}
	return table
}

// DefaultItems returns the three stock items
func DefaultItems() ItemTable {
	return NewItemTable(ProteinCatalyst(), MembraneShield(), LegendarySword())
}

// Equipment looks up an item by name
func (t ItemTable) Equipment(name string) (*entities.Equipment, bool) {
	item, ok := t[name]
	return item, ok
}

// Archetype names used across tests
const (
	MitochondriaName = "Mitochondria"
	RibosomeName     = "Ribosome"
	LysosomeName     = "Lysosome"
)

// Mitochondria is the sequential wave enemy
func Mitochondria() *entities.Character {
	return builders.NewCharacterBuilder().
		WithID(MitochondriaName).
		WithName(MitochondriaName).
		WithAttributes(entities.Attributes{
			Attack: 15, Defense: 10, Strength: 12, Agility: 8, Intellect: 5, Luck: 5, CriticalChance: 10,
		}).
		WithHealth(50).
		Build()
}

// Ribosome is the fast enemy
func Ribosome() *entities.Character {
	return builders.NewCharacterBuilder().
		WithID(RibosomeName).
		WithName(RibosomeName).
		WithAttributes(entities.Attributes{
			Attack: 12, Defense: 8, Strength: 10, Agility: 12, Intellect: 8, Luck: 6, CriticalChance: 15,
		}).
		WithHealth(40).
		Build()
}

// Lysosome is the hard hitting enemy
func Lysosome() *entities.Character {
	return builders.NewCharacterBuilder().
		WithID(LysosomeName).
		WithName(LysosomeName).
		WithAttributes(entities.Attributes{
			Attack: 18, Defense: 5, Strength: 15, Agility: 6, Intellect: 4, Luck: 4, CriticalChance: 20,
		}).
		WithHealth(45).
		Build()
}

// ArchetypeTable is an in-memory archetype source for engine tests
type ArchetypeTable map[string]*entities.Character

// DefaultArchetypes returns the three stock enemies
func DefaultArchetypes() ArchetypeTable {
	return ArchetypeTable{
		MitochondriaName: Mitochondria(),
		RibosomeName:     Ribosome(),
		LysosomeName:     Lysosome(),
	}
}

// Archetype returns a copy of the named template
func (t ArchetypeTable) Archetype(name string) (*entities.Character, bool) {
	template, ok := t[name]
	if !ok {
		return nil, false
	}
	return template.Clone(template.ID), true
}

// ArchetypeNames returns the template names, sorted
func (t ArchetypeTable) ArchetypeNames() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
