package timeline

// ReplayInventory rebuilds a working item list from an owner's item
// transactions, applying every transaction at or before t. It always starts
// from an empty list, so the result depends only on its inputs.
//
// Undo transactions are interpreted by shape: before>0/after==0 undoes a
// purchase, before==0/after>0 undoes a sale; anything else is ignored.
func ReplayInventory(transactions []MatchEvent, t float64, capacity int) []int {
	items := make([]int, 0, capacity)
	for _, e := range transactions {
		if e.Minutes() > t {
			continue
		}
		switch e.Kind {
		case EventItemPurchased:
			if len(items) < capacity {
				items = append(items, e.ItemID)
			}
		case EventItemSold, EventItemDestroyed:
			items = removeFirst(items, e.ItemID)
		case EventItemUndone:
			switch {
			case e.BeforeID > 0 && e.AfterID == 0:
				items = removeFirst(items, e.BeforeID)
			case e.BeforeID == 0 && e.AfterID > 0:
				items = append(items, e.AfterID)
			}
		}
	}
	return items
}

func removeFirst(items []int, id int) []int {
	for i, it := range items {
		if it == id {
			return append(items[:i], items[i+1:]...)
		}
	}
	return items
}

// liveInventory is the displayed inventory of one combatant at t. Combatants
// without any transaction fall back to their final items, trinket excluded.
func liveInventory(c *Combatant, owned []Entry, t float64, policy Policy) []int {
	if len(owned) == 0 {
		slots := c.FinalItems
		if len(slots) > policy.InventorySlots {
			slots = slots[:policy.InventorySlots]
		}
		out := make([]int, 0, len(slots))
		for _, id := range slots {
			if id > 0 {
				out = append(out, id)
			}
		}
		return out
	}

	txs := make([]MatchEvent, 0, len(owned))
	for _, en := range owned {
		if en.Event.Kind.IsItem() {
			txs = append(txs, en.Event)
		}
	}
	items := ReplayInventory(txs, t, policy.InventoryCapacity)
	if len(items) > policy.InventorySlots {
		items = items[:policy.InventorySlots]
	}
	return items
}
