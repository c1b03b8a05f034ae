// Package reconcile keeps the local entity map in step with the server's
// delta stream and snapshots.
package reconcile

import "github.com/automoto/splashed/shared/messages"

// Delta is the pending buffer that incoming deltas merge into between
// simulation steps.
type Delta struct {
	Timestamp uint64
	Updated   []messages.EntityData

	removed map[messages.EntityID]struct{}
	order   []messages.EntityID
}

func NewDelta() *Delta {
	return &Delta{removed: make(map[messages.EntityID]struct{})}
}

// Merge folds incoming into d. A strictly newer delta appends all of its
// updates; an older or equal one only adds ids not already pending. Removals
// are always unioned in.
func (d *Delta) Merge(incoming *messages.DeltaEventData) {
	if incoming == nil {
		return
	}
	if d.removed == nil {
		d.removed = make(map[messages.EntityID]struct{})
	}

	overwrite := d.Timestamp < incoming.Timestamp
	var pending map[messages.EntityID]struct{}
	if !overwrite {
		pending = make(map[messages.EntityID]struct{}, len(d.Updated))
		for _, u := range d.Updated {
			pending[u.ID] = struct{}{}
		}
	}

	for _, u := range incoming.Updated {
		if !overwrite {
			if _, ok := pending[u.ID]; ok {
				continue
			}
			pending[u.ID] = struct{}{}
		}
		d.Updated = append(d.Updated, u)
	}

	for _, id := range incoming.Removed {
		if _, ok := d.removed[id]; ok {
			continue
		}
		d.removed[id] = struct{}{}
		d.order = append(d.order, id)
	}

	d.Timestamp = max(d.Timestamp, incoming.Timestamp)
}

// Removed returns the pending removals in first-seen order.
func (d *Delta) Removed() []messages.EntityID {
	return d.order
}

func (d *Delta) IsRemoved(id messages.EntityID) bool {
	_, ok := d.removed[id]
	return ok
}

// Empty reports whether there is nothing to apply.
func (d *Delta) Empty() bool {
	return len(d.Updated) == 0 && len(d.order) == 0
}

// Reset clears pending entries. The timestamp is retained so that late
// deltas are still recognized as stale.
func (d *Delta) Reset() {
	d.Updated = d.Updated[:0]
	clear(d.removed)
	d.order = d.order[:0]
}
