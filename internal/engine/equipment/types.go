package equipment

import "github.com/KirkDiggler/rpg-balance/internal/entities"

// Inventory is a snapshot of owned items grouped by slot
type Inventory struct {
	Slots []SlotInventory `json:"slots"`
}

// SlotInventory lists the owned items in one slot, in acquisition order
type SlotInventory struct {
	Slot  entities.Slot    `json:"slot"`
	Items []InventoryEntry `json:"items"`
}

// InventoryEntry is one owned copy of an item
type InventoryEntry struct {
	ID       string             `json:"id"`
	Item     entities.Equipment `json:"item"`
	Equipped bool               `json:"equipped"`
}

// Slot returns the view for slot, or nil when the slot is unknown
func (inv *Inventory) Slot(slot entities.Slot) *SlotInventory {
	for i := range inv.Slots {
		if inv.Slots[i].Slot == slot {
			return &inv.Slots[i]
		}
	}
	return nil
}

// Count returns the total number of owned items
func (inv *Inventory) Count() int {
	var n int
	for _, slot := range inv.Slots {
		n += len(slot.Items)
	}
	return n
}
