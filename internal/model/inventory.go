package model

import (
	"fmt"
	"sync"

	"github.com/skillmine/core/internal/data"
)

// InventorySize is the number of carry slots.
const InventorySize = 30

// Equipment slot kinds. Weapons and armor each occupy one slot; the
// item's type decides which.
const (
	EquipSlotWeapon = "weapon"
	EquipSlotArmor  = "armor"
)

// ItemStack is one inventory slot: an item template and how many of it
// share the slot. An empty slot has a nil Template.
type ItemStack struct {
	Template *data.ItemTemplate
	Quantity int
}

// IsEmpty reports whether the slot holds nothing.
func (s ItemStack) IsEmpty() bool {
	return s.Template == nil || s.Quantity <= 0
}

// Inventory is a slot-based item store with stacking, two equipment
// slots and a gold purse.
type Inventory struct {
	mu sync.RWMutex

	slots     [InventorySize]ItemStack
	equipment map[string]*data.ItemTemplate
	gold      int64
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		equipment: make(map[string]*data.ItemTemplate, 2),
	}
}

// Gold returns the current gold amount.
func (inv *Inventory) Gold() int64 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.gold
}

// AddGold adds to the purse. Negative amounts are ignored.
func (inv *Inventory) AddGold(amount int64) {
	if amount <= 0 {
		return
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.gold += amount
}

// SpendGold removes gold if enough is on hand.
func (inv *Inventory) SpendGold(amount int64) bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if amount < 0 || inv.gold < amount {
		return false
	}
	inv.gold -= amount
	return true
}

// Add places qty of the item into the inventory, filling existing
// stacks before opening new slots. Returns the overflow that did not
// fit (0 when everything was stored).
func (inv *Inventory) Add(tpl *data.ItemTemplate, qty int) int {
	if tpl == nil || qty <= 0 {
		return 0
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()

	remaining := qty

	if tpl.IsStackable() {
		for i := range inv.slots {
			s := &inv.slots[i]
			if s.IsEmpty() || s.Template.ID != tpl.ID || s.Quantity >= tpl.MaxStack {
				continue
			}
			space := tpl.MaxStack - s.Quantity
			take := min(space, remaining)
			s.Quantity += take
			remaining -= take
			if remaining == 0 {
				return 0
			}
		}
	}

	for i := range inv.slots {
		if remaining == 0 {
			break
		}
		if !inv.slots[i].IsEmpty() {
			continue
		}
		take := min(tpl.MaxStack, remaining)
		inv.slots[i] = ItemStack{Template: tpl, Quantity: take}
		remaining -= take
	}

	return remaining
}

// Remove takes qty of the item out of the inventory. Nothing is removed
// unless the full quantity is present.
func (inv *Inventory) Remove(itemID string, qty int) bool {
	if qty <= 0 {
		return false
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if inv.countLocked(itemID) < qty {
		return false
	}

	remaining := qty
	for i := range inv.slots {
		s := &inv.slots[i]
		if s.IsEmpty() || s.Template.ID != itemID {
			continue
		}
		take := min(s.Quantity, remaining)
		s.Quantity -= take
		remaining -= take
		if s.Quantity == 0 {
			s.Template = nil
		}
		if remaining == 0 {
			return true
		}
	}
	return true
}

// Count returns the total quantity of the item across all slots.
func (inv *Inventory) Count(itemID string) int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.countLocked(itemID)
}

func (inv *Inventory) countLocked(itemID string) int {
	total := 0
	for i := range inv.slots {
		if !inv.slots[i].IsEmpty() && inv.slots[i].Template.ID == itemID {
			total += inv.slots[i].Quantity
		}
	}
	return total
}

// Has reports whether at least qty of the item is carried.
func (inv *Inventory) Has(itemID string, qty int) bool {
	return inv.Count(itemID) >= qty
}

// Slot returns a copy of the slot at idx.
func (inv *Inventory) Slot(idx int) (ItemStack, error) {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	if idx < 0 || idx >= InventorySize {
		return ItemStack{}, fmt.Errorf("slot %d out of range", idx)
	}
	return inv.slots[idx], nil
}

// Slots returns a copy of all carry slots.
func (inv *Inventory) Slots() []ItemStack {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	out := make([]ItemStack, InventorySize)
	copy(out, inv.slots[:])
	return out
}

// UsedSlots returns the number of occupied carry slots.
func (inv *Inventory) UsedSlots() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	used := 0
	for i := range inv.slots {
		if !inv.slots[i].IsEmpty() {
			used++
		}
	}
	return used
}

// Equip moves the equippable item in carry slot idx into its equipment
// slot, swapping out whatever was there.
func (inv *Inventory) Equip(idx int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if idx < 0 || idx >= InventorySize {
		return fmt.Errorf("slot %d out of range", idx)
	}
	s := &inv.slots[idx]
	if s.IsEmpty() {
		return fmt.Errorf("slot %d is empty", idx)
	}
	tpl := s.Template
	if !tpl.IsEquipment() {
		return fmt.Errorf("%s cannot be equipped", tpl.ID)
	}

	slotKind := EquipSlotArmor
	if tpl.Type == data.ItemTypeWeapon {
		slotKind = EquipSlotWeapon
	}

	old := inv.equipment[slotKind]
	inv.equipment[slotKind] = tpl

	// Equipment never stacks, so removing one frees the slot for the
	// swapped-out piece.
	s.Quantity--
	if s.Quantity == 0 {
		s.Template = nil
	}
	if old != nil {
		*s = ItemStack{Template: old, Quantity: 1}
	}

	return nil
}

// Unequip moves the item in the given equipment slot back into a carry
// slot. Fails when the inventory is full.
func (inv *Inventory) Unequip(slotKind string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	tpl, ok := inv.equipment[slotKind]
	if !ok || tpl == nil {
		return fmt.Errorf("nothing equipped in %s slot", slotKind)
	}

	for i := range inv.slots {
		if inv.slots[i].IsEmpty() {
			inv.slots[i] = ItemStack{Template: tpl, Quantity: 1}
			delete(inv.equipment, slotKind)
			return nil
		}
	}
	return fmt.Errorf("inventory full, cannot unequip %s", tpl.ID)
}

// Equipped returns the template in the given equipment slot, nil if empty.
func (inv *Inventory) Equipped(slotKind string) *data.ItemTemplate {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.equipment[slotKind]
}

// ConsumeAt removes one consumable from the slot at idx and returns its
// template so the caller can apply the effects.
func (inv *Inventory) ConsumeAt(idx int) (*data.ItemTemplate, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	if idx < 0 || idx >= InventorySize {
		return nil, fmt.Errorf("slot %d out of range", idx)
	}
	s := &inv.slots[idx]
	if s.IsEmpty() {
		return nil, fmt.Errorf("slot %d is empty", idx)
	}
	tpl := s.Template
	if !tpl.IsConsumable() {
		return nil, fmt.Errorf("%s is not consumable", tpl.ID)
	}

	s.Quantity--
	if s.Quantity == 0 {
		s.Template = nil
	}
	return tpl, nil
}

// SetGold overwrites the purse. For persistence restore.
func (inv *Inventory) SetGold(amount int64) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.gold = max(amount, 0)
}

// PlaceAt puts a stack directly into the given slot, replacing whatever
// was there. For persistence restore.
func (inv *Inventory) PlaceAt(idx int, tpl *data.ItemTemplate, qty int) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if idx < 0 || idx >= InventorySize {
		return fmt.Errorf("slot %d out of range", idx)
	}
	if tpl == nil || qty <= 0 {
		inv.slots[idx] = ItemStack{}
		return nil
	}
	if qty > tpl.MaxStack {
		return fmt.Errorf("%s: quantity %d exceeds stack size %d", tpl.ID, qty, tpl.MaxStack)
	}
	inv.slots[idx] = ItemStack{Template: tpl, Quantity: qty}
	return nil
}

// RestoreEquipped puts an item straight into its equipment slot without
// touching carry slots. For persistence restore.
func (inv *Inventory) RestoreEquipped(tpl *data.ItemTemplate) error {
	if tpl == nil || !tpl.IsEquipment() {
		return fmt.Errorf("not equippable")
	}
	slotKind := EquipSlotArmor
	if tpl.Type == data.ItemTypeWeapon {
		slotKind = EquipSlotWeapon
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.equipment[slotKind] = tpl
	return nil
}

// EquipmentAttack sums attack across equipped items.
func (inv *Inventory) EquipmentAttack() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	total := 0
	for _, tpl := range inv.equipment {
		if tpl != nil {
			total += tpl.Attack
		}
	}
	return total
}

// EquipmentDefense sums defense across equipped items.
func (inv *Inventory) EquipmentDefense() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	total := 0
	for _, tpl := range inv.equipment {
		if tpl != nil {
			total += tpl.Defense
		}
	}
	return total
}

// EquipmentStatBonuses sums stat bonuses across equipped items.
func (inv *Inventory) EquipmentStatBonuses() data.StatBlock {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	var total data.StatBlock
	for _, tpl := range inv.equipment {
		if tpl != nil {
			total = total.Add(tpl.StatBonuses)
		}
	}
	return total
}
