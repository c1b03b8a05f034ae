// Package entities models the server-owned game objects mirrored by the
// client. Entities are mutated in place by updates and never import a
// graphics backend.
package entities

import (
	"errors"
	"fmt"
	"sort"

	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
)

var (
	// ErrSchema means a creation payload lacks fields its kind requires.
	ErrSchema = errors.New("entity schema violation")
	// ErrUnknownKind means the type tag has no variant.
	ErrUnknownKind = errors.New("unknown entity kind")
)

// Cue is an observable side effect of an update, such as a sound to play.
type Cue string

const (
	CueScore  Cue = "score"
	CuePickup Cue = "pickup"
)

// Removal animation names. They double as sprite and sound names.
const (
	ExplosionBig   = "explosionBig"
	ExplosionSmall = "explosionSmall"
)

// Entity is implemented by every variant.
type Entity interface {
	Kind() messages.EntityType
	Position() geometry.Vector
	Rotation() float64
	// Update is a no-op when position or rotation is absent.
	Update(data messages.EntityData) []Cue
	// RemovalAnimation names the animation to play when the entity is
	// removed while visible.
	RemovalAnimation() (string, bool)
	Draw(c render.Canvas, debug bool)
	DrawIcon(c render.Canvas)
}

// New constructs the variant named by data.Type.
func New(data messages.EntityData) (Entity, error) {
	var (
		e   Entity
		err error
	)
	switch data.Type {
	case messages.EntityPlayer:
		e, err = newPlayer(data)
	case messages.EntityProjectile:
		e, err = newProjectile(data)
	case messages.EntityPowerup:
		e, err = newPowerup(data)
	case messages.EntityAsteroid:
		e, err = newAsteroid(data)
	default:
		return nil, fmt.Errorf("entity %q type %d: %w", data.ID, data.Type, ErrUnknownKind)
	}
	if err != nil {
		return nil, fmt.Errorf("entity %q (%s): %w", data.ID, data.Type, err)
	}
	return e, nil
}

func missing(field string) error {
	return fmt.Errorf("missing %s: %w", field, ErrSchema)
}

func rotationOf(data messages.EntityData) float64 {
	if data.Rotation == nil {
		return 0
	}
	return *data.Rotation
}

// Map is the id-keyed directory of live entities.
type Map map[messages.EntityID]Entity

// Player returns the player with id, if present.
func (m Map) Player(id messages.EntityID) (*Player, bool) {
	p, ok := m[id].(*Player)
	return p, ok
}

// Entry pairs an id with its entity.
type Entry struct {
	ID     messages.EntityID
	Entity Entity
}

// Sorted returns entries ordered by kind then id, the draw order.
func (m Map) Sorted() []Entry {
	out := make([]Entry, 0, len(m))
	for id, e := range m {
		out = append(out, Entry{ID: id, Entity: e})
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := drawRank(out[i].Entity.Kind()), drawRank(out[j].Entity.Kind())
		if ki != kj {
			return ki < kj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Asteroids sit underneath everything else; players on top.
func drawRank(k messages.EntityType) int {
	switch k {
	case messages.EntityAsteroid:
		return 0
	case messages.EntityPowerup:
		return 1
	case messages.EntityProjectile:
		return 2
	default:
		return 3
	}
}
