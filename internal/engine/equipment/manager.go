// Package equipment owns a character's inventory and keeps its attributes in
// step with what is equipped. Each equip applies an item's bonuses once; each
// unequip, replacement or removal of the equipped copy reverses them once.
package equipment

import (
	"github.com/KirkDiggler/rpg-balance/internal/entities"
	"github.com/KirkDiggler/rpg-balance/internal/errors"
	"github.com/KirkDiggler/rpg-balance/internal/pkg/idgen"
)

// ItemLookup resolves item names to catalog definitions
type ItemLookup interface {
	Equipment(name string) (*entities.Equipment, bool)
}

// Config holds the dependencies for a Manager
type Config struct {
	Character   *entities.Character
	Items       ItemLookup
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Character == nil {
		vb.RequiredField("Character")
	}
	if c.Items == nil {
		vb.RequiredField("Items")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

// Manager tracks owned and equipped items for a single character.
// It is not safe for concurrent use.
type Manager struct {
	character *entities.Character
	items     ItemLookup
	idGen     idgen.Generator

	owned    map[entities.Slot][]*entities.InventoryItem
	equipped map[entities.Slot]string
}

// NewManager creates an empty inventory for cfg.Character
func NewManager(cfg *Config) (*Manager, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Manager{
		character: cfg.Character,
		items:     cfg.Items,
		idGen:     cfg.IDGenerator,
		owned:     make(map[entities.Slot][]*entities.InventoryItem),
		equipped:  make(map[entities.Slot]string),
	}, nil
}

// Character returns the character whose attributes this manager maintains
func (m *Manager) Character() *entities.Character {
	return m.character
}

// Acquire adds a copy of the named item to its slot. Attributes do not change.
func (m *Manager) Acquire(itemName string) (*entities.InventoryItem, error) {
	item, ok := m.items.Equipment(itemName)
	if !ok {
		return nil, errors.NotFoundf("item %q not in catalog", itemName)
	}

	entry := &entities.InventoryItem{
		ID:   m.idGen.Generate(),
		Item: item,
	}
	m.owned[item.Slot] = append(m.owned[item.Slot], entry)

	return entry, nil
}

// Equip makes the index-th owned item in slot the equipped one, replacing
// whatever was equipped there. The item stays in the inventory.
func (m *Manager) Equip(slot entities.Slot, index int) (*entities.InventoryItem, error) {
	if !slot.IsValid() {
		return nil, errors.NotFoundf("unknown slot %q", slot)
	}

	owned := m.owned[slot]
	if len(owned) == 0 {
		return nil, errors.FailedPreconditionf("no items owned in slot %s", slot)
	}
	if index < 0 || index >= len(owned) {
		return nil, errors.NotFoundf("no item at index %d in slot %s (have %d)", index, slot, len(owned))
	}

	if current, ok := m.equippedEntry(slot); ok {
		m.character.Attributes.Revert(current.Item.Bonuses)
	}

	entry := owned[index]
	m.character.Attributes.Apply(entry.Item.Bonuses)
	m.equipped[slot] = entry.ID

	return entry, nil
}

// Unequip clears slot and reverses the equipped item's bonuses
func (m *Manager) Unequip(slot entities.Slot) (*entities.InventoryItem, error) {
	if !slot.IsValid() {
		return nil, errors.NotFoundf("unknown slot %q", slot)
	}

	current, ok := m.equippedEntry(slot)
	if !ok {
		return nil, errors.FailedPreconditionf("nothing equipped in slot %s", slot)
	}

	m.character.Attributes.Revert(current.Item.Bonuses)
	delete(m.equipped, slot)

	return current, nil
}

// Remove discards the first owned copy of itemName in slot. If that copy is
// equipped its bonuses are reversed and the slot is cleared.
func (m *Manager) Remove(slot entities.Slot, itemName string) (*entities.InventoryItem, error) {
	if !slot.IsValid() {
		return nil, errors.NotFoundf("unknown slot %q", slot)
	}

	owned := m.owned[slot]
	if len(owned) == 0 {
		return nil, errors.FailedPreconditionf("no items owned in slot %s", slot)
	}

	index := -1
	for i, entry := range owned {
		if entry.Item.Name == itemName {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, errors.NotFoundf("item %q not owned in slot %s", itemName, slot)
	}

	removed := owned[index]
	if m.equipped[slot] == removed.ID {
		m.character.Attributes.Revert(removed.Item.Bonuses)
		delete(m.equipped, slot)
	}

	remaining := make([]*entities.InventoryItem, 0, len(owned)-1)
	remaining = append(remaining, owned[:index]...)
	remaining = append(remaining, owned[index+1:]...)
	if len(remaining) == 0 {
		delete(m.owned, slot)
	} else {
		m.owned[slot] = remaining
	}

	return removed, nil
}

// Equipped returns the item equipped in slot, if any
func (m *Manager) Equipped(slot entities.Slot) (*entities.InventoryItem, bool) {
	return m.equippedEntry(slot)
}

// EquippedBonuses returns the summed bonuses of everything equipped
func (m *Manager) EquippedBonuses() entities.Bonuses {
	var total entities.Attributes
	for _, slot := range entities.AllSlots() {
		if entry, ok := m.equippedEntry(slot); ok {
			total.Apply(entry.Item.Bonuses)
		}
	}

	return entities.Bonuses(total)
}

// Inventory returns a read-only view of every slot in display order
func (m *Manager) Inventory() *Inventory {
	inv := &Inventory{}
	for _, slot := range entities.AllSlots() {
		view := SlotInventory{Slot: slot}
		for _, entry := range m.owned[slot] {
			view.Items = append(view.Items, InventoryEntry{
				ID:       entry.ID,
				Item:     *entry.Item,
				Equipped: m.equipped[slot] == entry.ID,
			})
		}
		inv.Slots = append(inv.Slots, view)
	}
	return inv
}

func (m *Manager) equippedEntry(slot entities.Slot) (*entities.InventoryItem, bool) {
	id, ok := m.equipped[slot]
	if !ok {
		return nil, false
	}
	for _, entry := range m.owned[slot] {
		if entry.ID == id {
			return entry, true
		}
	}
	return nil, false
}
