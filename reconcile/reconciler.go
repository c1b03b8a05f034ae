package reconcile

import (
	"errors"

	"github.com/automoto/splashed/entities"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
)

// Effects receives the side effects of reconciliation.
type Effects interface {
	// Removed is called once per removal of a visible entity. ok is false
	// when the entity has no removal animation.
	Removed(id messages.EntityID, e entities.Entity, animation string, ok bool)
	Created(id messages.EntityID, e entities.Entity)
	Cued(id messages.EntityID, e entities.Entity, cue entities.Cue)
}

// NopEffects ignores every effect.
type NopEffects struct{}

func (NopEffects) Removed(messages.EntityID, entities.Entity, string, bool) {}
func (NopEffects) Created(messages.EntityID, entities.Entity) {}
func (NopEffects) Cued(messages.EntityID, entities.Entity, entities.Cue) {}

// Reconciler applies pending deltas and snapshots to Entities.
type Reconciler struct {
	// ClientID is the local player. Its entity is never culled and is marked
	// destroyed rather than deleted when removed.
	ClientID messages.EntityID
	Entities entities.Map
	// Culled reports whether a world position is outside the interest area.
	// Nil culls nothing.
	Culled  func(geometry.Vector) bool
	Effects Effects
}

func New(clientID messages.EntityID, m entities.Map) *Reconciler {
	if m == nil {
		m = entities.Map{}
	}
	return &Reconciler{ClientID: clientID, Entities: m, Effects: NopEffects{}}
}

// Apply consumes d: removals first, then updates in sequence order skipping
// ids that are also removed. Construction failures are collected and
// returned together after every other entry has been applied. d is reset
// on return.
func (r *Reconciler) Apply(d *Delta) error {
	defer d.Reset()

	for _, id := range d.Removed() {
		e, ok := r.Entities[id]
		if !ok {
			continue
		}

		if p, isPlayer := e.(*entities.Player); isPlayer && id == r.ClientID {
			if !p.Destroyed() {
				r.removed(id, p)
				p.Destroy()
			}
			continue
		}

		if !r.culled(id, e) {
			r.removed(id, e)
		}
		delete(r.Entities, id)
	}

	var errs []error
	for _, data := range d.Updated {
		if d.IsRemoved(data.ID) {
			continue
		}
		if err := r.upsert(data, true); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Sync creates or updates every entity in snapshot without culling. It may
// be called more than once; known ids take the update path.
func (r *Reconciler) Sync(snapshot *messages.SnapshotEventData) error {
	if snapshot == nil {
		return nil
	}
	var errs []error
	for _, data := range snapshot.Entities {
		if err := r.upsert(data, false); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Reconciler) upsert(data messages.EntityData, cull bool) error {
	if e, ok := r.Entities[data.ID]; ok {
		if cull && r.culled(data.ID, e) {
			return nil
		}
		for _, cue := range e.Update(data) {
			r.effects().Cued(data.ID, e, cue)
		}
		return nil
	}

	e, err := entities.New(data)
	if err != nil {
		return err
	}
	r.Entities[data.ID] = e
	r.effects().Created(data.ID, e)
	return nil
}

func (r *Reconciler) culled(id messages.EntityID, e entities.Entity) bool {
	if r.Culled == nil || id == r.ClientID {
		return false
	}
	return r.Culled(e.Position())
}

func (r *Reconciler) removed(id messages.EntityID, e entities.Entity) {
	name, ok := e.RemovalAnimation()
	r.effects().Removed(id, e, name, ok)
}

func (r *Reconciler) effects() Effects {
	if r.Effects == nil {
		return NopEffects{}
	}
	return r.Effects
}
