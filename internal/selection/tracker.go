package selection

import "github.com/pantrylab/inventory-service/internal/model"

// Tracker keeps the per-item inclusion flags keyed by store id. Ids are
// never pruned: an id whose item has been deleted stays in the map and
// is simply never consulted again.
type Tracker struct {
	selected map[string]bool
}

func NewTracker() *Tracker {
	return &Tracker{selected: make(map[string]bool)}
}

// Reconcile marks every id seen for the first time as selected. Ids
// already in the map keep their value, so explicit user toggles survive
// a refresh.
func (t *Tracker) Reconcile(items []model.InventoryItem) {
	for _, it := range items {
		if _, ok := t.selected[it.ID]; !ok {
			t.selected[it.ID] = true
		}
	}
}

func (t *Tracker) Toggle(id string) {
	t.selected[id] = !t.selected[id]
}

// ToggleAll selects every item in the filtered view, unless all of them
// are already selected, in which case the whole map is cleared. Select
// is scoped to the filter; clear drops entries for ids outside it too.
func (t *Tracker) ToggleAll(filtered []model.InventoryItem) {
	if t.everySelected(filtered) {
		t.selected = make(map[string]bool)
		return
	}
	for _, it := range filtered {
		t.selected[it.ID] = true
	}
}

func (t *Tracker) IsSelected(id string) bool {
	return t.selected[id]
}

// AllSelected reports whether the filtered view is non-empty and fully
// selected.
func (t *Tracker) AllSelected(filtered []model.InventoryItem) bool {
	return len(filtered) > 0 && t.everySelected(filtered)
}

func (t *Tracker) SomeSelected(filtered []model.InventoryItem) bool {
	for _, it := range filtered {
		if t.selected[it.ID] {
			return true
		}
	}
	return false
}

func (t *Tracker) Snapshot() map[string]bool {
	out := make(map[string]bool, len(t.selected))
	for id, v := range t.selected {
		out[id] = v
	}
	return out
}

func (t *Tracker) everySelected(filtered []model.InventoryItem) bool {
	for _, it := range filtered {
		if !t.selected[it.ID] {
			return false
		}
	}
	return true
}
