package reconcile

import (
	"testing"

	"github.com/automoto/splashed/entities"
	"github.com/automoto/splashed/shared/abilities"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type removal struct {
	id        messages.EntityID
	animation string
	ok        bool
}

type recorder struct {
	removed []removal
	created []messages.EntityID
	cues    []entities.Cue
}

func (r *recorder) Removed(id messages.EntityID, _ entities.Entity, animation string, ok bool) {
	r.removed = append(r.removed, removal{id, animation, ok})
}

func (r *recorder) Created(id messages.EntityID, _ entities.Entity) {
	r.created = append(r.created, id)
}

func (r *recorder) Cued(_ messages.EntityID, _ entities.Entity, cue entities.Cue) {
	r.cues = append(r.cues, cue)
}

func vec(x, y float64) *geometry.Vector {
	v := geometry.NewVector(x, y)
	return &v
}

func rot(r float64) *float64 { return &r }

func player(id messages.EntityID, x, y float64) messages.EntityData {
	return messages.EntityData{
		ID: id, Type: messages.EntityPlayer,
		Position: vec(x, y), Velocity: vec(0, 0), Rotation: rot(0),
		Player: &messages.PlayerData{Username: string(id)},
	}
}

func moved(id messages.EntityID, x, y float64) messages.EntityData {
	return messages.EntityData{ID: id, Position: vec(x, y), Rotation: rot(0)}
}

func powerup(id messages.EntityID, x, y float64) messages.EntityData {
	return messages.EntityData{
		ID: id, Type: messages.EntityPowerup, Position: vec(x, y),
		Powerup: &messages.PowerupData{Ability: uint32(abilities.Multishot)},
	}
}

func projectile(id messages.EntityID, lifetime int) messages.EntityData {
	return messages.EntityData{
		ID: id, Type: messages.EntityProjectile, Position: vec(0, 0), Velocity: vec(1, 0), Rotation: rot(0),
		Projectile: &messages.ProjectileData{Lifetime: lifetime},
	}
}

func newReconciler(clientID messages.EntityID) (*Reconciler, *recorder) {
	rec := &recorder{}
	r := New(clientID, nil)
	r.Effects = rec
	return r, rec
}

func ids(updated []messages.EntityData) []messages.EntityID {
	var out []messages.EntityID
	for _, u := range updated {
		out = append(out, u.ID)
	}
	return out
}

func TestMergeNewerAppendsEverything(t *testing.T) {
	d := NewDelta()
	d.Merge(&messages.DeltaEventData{Timestamp: 1, Updated: []messages.EntityData{moved("a", 1, 0)}})
	d.Merge(&messages.DeltaEventData{Timestamp: 2, Updated: []messages.EntityData{moved("a", 2, 0), moved("b", 2, 0)}})

	assert.Equal(t, uint64(2), d.Timestamp)
	assert.Equal(t, []messages.EntityID{"a", "a", "b"}, ids(d.Updated))
	assert.Equal(t, 2.0, d.Updated[1].Position.X)
}

func TestMergeStaleOnlyAddsUnknownIDs(t *testing.T) {
	d := NewDelta()
	d.Merge(&messages.DeltaEventData{Timestamp: 5, Updated: []messages.EntityData{moved("a", 5, 0)}})
	d.Merge(&messages.DeltaEventData{
		Timestamp: 3,
		Updated:   []messages.EntityData{moved("a", 3, 0), moved("b", 3, 0)},
		Removed:   []messages.EntityID{"c"},
	})
	// equal timestamps are not newer
	d.Merge(&messages.DeltaEventData{Timestamp: 5, Updated: []messages.EntityData{moved("b", 5, 0)}})

	assert.Equal(t, uint64(5), d.Timestamp)
	assert.Equal(t, []messages.EntityID{"a", "b"}, ids(d.Updated))
	assert.Equal(t, 5.0, d.Updated[0].Position.X)
	assert.Equal(t, 3.0, d.Updated[1].Position.X)
	assert.True(t, d.IsRemoved("c"))
}

func TestMergeStaleKeepsFirstDuplicate(t *testing.T) {
	d := NewDelta()
	d.Merge(&messages.DeltaEventData{Timestamp: 5, Updated: []messages.EntityData{moved("a", 5, 0)}})
	d.Merge(&messages.DeltaEventData{
		Timestamp: 3,
		Updated:   []messages.EntityData{moved("x", 1, 0), moved("x", 2, 0)},
	})

	assert.Equal(t, []messages.EntityID{"a", "x"}, ids(d.Updated))
	assert.Equal(t, 1.0, d.Updated[1].Position.X)
}

func TestMergeMonotonicity(t *testing.T) {
	pairs := [][2]uint64{{0, 1}, {1, 2}, {7, 100}, {41, 42}}
	for _, p := range pairs {
		a := NewDelta()
		a.Merge(&messages.DeltaEventData{Timestamp: p[0], Updated: []messages.EntityData{moved("x", 0, 0)}})
		b := &messages.DeltaEventData{Timestamp: p[1], Updated: []messages.EntityData{moved("x", 9, 9), moved("y", 1, 1)}}
		a.Merge(b)

		assert.Equal(t, p[1], a.Timestamp)

		last := map[messages.EntityID]messages.EntityData{}
		for _, u := range a.Updated {
			last[u.ID] = u
		}
		for _, u := range b.Updated {
			require.Contains(t, last, u.ID)
			assert.Equal(t, *u.Position, *last[u.ID].Position)
		}
	}
}

func TestMergeUnionsRemovalsInOrder(t *testing.T) {
	d := NewDelta()
	d.Merge(&messages.DeltaEventData{Timestamp: 2, Removed: []messages.EntityID{"b", "a"}})
	d.Merge(&messages.DeltaEventData{Timestamp: 1, Removed: []messages.EntityID{"a", "c"}})

	assert.Equal(t, []messages.EntityID{"b", "a", "c"}, d.Removed())
	assert.Equal(t, uint64(2), d.Timestamp)

	d.Reset()
	assert.True(t, d.Empty())
	assert.False(t, d.IsRemoved("a"))
	assert.Equal(t, uint64(2), d.Timestamp)

	d.Merge(nil)
	assert.True(t, d.Empty())
}

func TestApplyLastWriteWins(t *testing.T) {
	r, _ := newReconciler("me")
	d := NewDelta()
	d.Merge(&messages.DeltaEventData{Timestamp: 1, Updated: []messages.EntityData{player("a", 0, 0)}})
	d.Merge(&messages.DeltaEventData{Timestamp: 2, Updated: []messages.EntityData{moved("a", 7, 7)}})
	require.NoError(t, r.Apply(d))

	assert.Equal(t, geometry.NewVector(7, 7), r.Entities["a"].Position())
	assert.True(t, d.Empty())
}

func TestApplyRemovalDominance(t *testing.T) {
	orders := [][]string{{"update", "remove"}, {"remove", "update"}}
	for _, order := range orders {
		r, rec := newReconciler("me")
		require.NoError(t, r.Sync(&messages.SnapshotEventData{Entities: []messages.EntityData{player("x", 0, 0)}}))

		d := NewDelta()
		for i, step := range order {
			ts := uint64(i + 1)
			if step == "update" {
				d.Merge(&messages.DeltaEventData{Timestamp: ts, Updated: []messages.EntityData{player("x", 3, 3), player("y", 1, 1)}})
			} else {
				d.Merge(&messages.DeltaEventData{Timestamp: ts, Removed: []messages.EntityID{"x", "y"}})
			}
		}
		require.NoError(t, r.Apply(d))

		assert.NotContains(t, r.Entities, messages.EntityID("x"))
		assert.NotContains(t, r.Entities, messages.EntityID("y"))
		// y was never live, so only x triggers the hook
		assert.Equal(t, []removal{{"x", entities.ExplosionBig, true}}, rec.removed)
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	snap := &messages.SnapshotEventData{Entities: []messages.EntityData{
		player("p1", 0, 0), powerup("pw1", 10, 10),
	}}

	once, _ := newReconciler("p1")
	require.NoError(t, once.Sync(snap))

	twice, rec := newReconciler("p1")
	require.NoError(t, twice.Sync(snap))
	first := twice.Entities["p1"]
	require.NoError(t, twice.Sync(snap))

	assert.Len(t, twice.Entities, len(once.Entities))
	for id := range once.Entities {
		assert.Contains(t, twice.Entities, id)
	}
	assert.Same(t, first, twice.Entities["p1"])
	assert.Equal(t, []messages.EntityID{"p1", "pw1"}, rec.created)
	assert.NoError(t, twice.Sync(nil))
}

func TestSyncIgnoresCulling(t *testing.T) {
	r, _ := newReconciler("me")
	r.Culled = func(geometry.Vector) bool { return true }
	require.NoError(t, r.Sync(&messages.SnapshotEventData{Entities: []messages.EntityData{player("far", 9000, 9000)}}))
	require.NoError(t, r.Sync(&messages.SnapshotEventData{Entities: []messages.EntityData{player("far", 9001, 9001)}}))

	assert.Equal(t, geometry.NewVector(9001, 9001), r.Entities["far"].Position())
}

func TestCullingEventualConsistency(t *testing.T) {
	r, _ := newReconciler("me")
	culled := true
	r.Culled = func(geometry.Vector) bool { return culled }

	require.NoError(t, r.Sync(&messages.SnapshotEventData{Entities: []messages.EntityData{player("far", 0, 0)}}))

	d := NewDelta()
	for i := 1; i <= 3; i++ {
		d.Merge(&messages.DeltaEventData{Timestamp: uint64(i), Updated: []messages.EntityData{moved("far", float64(i), 0)}})
		require.NoError(t, r.Apply(d))
		assert.Equal(t, geometry.NewVector(0, 0), r.Entities["far"].Position())
	}

	culled = false
	d.Merge(&messages.DeltaEventData{Timestamp: 4, Updated: []messages.EntityData{moved("far", 44, 4)}})
	require.NoError(t, r.Apply(d))

	assert.Equal(t, geometry.NewVector(44, 4), r.Entities["far"].Position())
}

func TestCulledRemovalDeletesWithoutHook(t *testing.T) {
	r, rec := newReconciler("me")
	require.NoError(t, r.Sync(&messages.SnapshotEventData{Entities: []messages.EntityData{player("far", 0, 0)}}))
	r.Culled = func(geometry.Vector) bool { return true }

	d := NewDelta()
	d.Merge(&messages.DeltaEventData{Timestamp: 1, Removed: []messages.EntityID{"far", "unknown"}})
	require.NoError(t, r.Apply(d))

	assert.Empty(t, r.Entities)
	assert.Empty(t, rec.removed)
}

func TestSelfRemovalKeepsPlayerDestroyed(t *testing.T) {
	r, rec := newReconciler("me")
	r.Culled = func(geometry.Vector) bool { return true }
	require.NoError(t, r.Sync(&messages.SnapshotEventData{Entities: []messages.EntityData{player("me", 0, 0)}}))

	d := NewDelta()
	d.Merge(&messages.DeltaEventData{Timestamp: 1, Removed: []messages.EntityID{"me"}})
	require.NoError(t, r.Apply(d))

	p, ok := r.Entities.Player("me")
	require.True(t, ok)
	assert.True(t, p.Destroyed())
	assert.Equal(t, []removal{{"me", entities.ExplosionBig, true}}, rec.removed)

	// a repeated removal does not explode twice
	d.Merge(&messages.DeltaEventData{Timestamp: 2, Removed: []messages.EntityID{"me"}})
	require.NoError(t, r.Apply(d))
	assert.Len(t, rec.removed, 1)

	// the local player is never culled, so the respawn update lands
	d.Merge(&messages.DeltaEventData{Timestamp: 3, Updated: []messages.EntityData{moved("me", 500, 500)}})
	require.NoError(t, r.Apply(d))
	assert.False(t, p.Destroyed())
	assert.Equal(t, geometry.NewVector(500, 500), p.Position())
}

func TestApplyCollectsConstructionErrors(t *testing.T) {
	r, _ := newReconciler("me")
	bad := messages.EntityData{ID: "bad", Type: messages.EntityPlayer, Position: vec(1, 1)}
	worse := messages.EntityData{ID: "worse", Type: messages.EntityType(42), Position: vec(1, 1)}

	d := NewDelta()
	d.Merge(&messages.DeltaEventData{Timestamp: 1, Updated: []messages.EntityData{bad, player("good", 0, 0), worse}})
	err := r.Apply(d)

	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrSchema)
	assert.ErrorIs(t, err, entities.ErrUnknownKind)
	assert.Contains(t, r.Entities, messages.EntityID("good"))
	assert.NotContains(t, r.Entities, messages.EntityID("bad"))
	assert.True(t, d.Empty())
}

func TestApplyForwardsCues(t *testing.T) {
	r, rec := newReconciler("me")
	require.NoError(t, r.Sync(&messages.SnapshotEventData{Entities: []messages.EntityData{player("me", 0, 0)}}))

	scored := player("me", 1, 0)
	scored.Player.Score = 3
	d := NewDelta()
	d.Merge(&messages.DeltaEventData{Timestamp: 1, Updated: []messages.EntityData{scored}})
	require.NoError(t, r.Apply(d))

	assert.Equal(t, []entities.Cue{entities.CueScore}, rec.cues)
}

func TestProjectileRemovalPolicy(t *testing.T) {
	tests := []struct {
		lifetime  int
		animation string
		ok        bool
	}{
		{0, "", false},
		{1, "", false},
		{2, entities.ExplosionSmall, true},
		{5, entities.ExplosionSmall, true},
	}

	for _, tt := range tests {
		r, rec := newReconciler("me")
		require.NoError(t, r.Sync(&messages.SnapshotEventData{Entities: []messages.EntityData{projectile("shot", tt.lifetime)}}))

		d := NewDelta()
		d.Merge(&messages.DeltaEventData{Timestamp: 1, Removed: []messages.EntityID{"shot"}})
		require.NoError(t, r.Apply(d))

		require.Len(t, rec.removed, 1)
		assert.Equal(t, removal{"shot", tt.animation, tt.ok}, rec.removed[0], "lifetime %d", tt.lifetime)
	}
}

func TestEndToEndScenario(t *testing.T) {
	r, rec := newReconciler("p1")
	snap := &messages.SnapshotEventData{Entities: []messages.EntityData{
		player("p1", 0, 0),
		{ID: "pw1", Type: messages.EntityPowerup, Position: vec(10, 10), Rotation: rot(0),
			Powerup: &messages.PowerupData{Ability: uint32(abilities.Shield)}},
	}}
	require.NoError(t, r.Sync(snap))

	d := NewDelta()
	d.Merge(&messages.DeltaEventData{
		Timestamp: 1,
		Updated:   []messages.EntityData{moved("p1", 5, 0)},
		Removed:   []messages.EntityID{"pw1"},
	})
	require.NoError(t, r.Apply(d))

	require.Len(t, r.Entities, 1)
	assert.Equal(t, geometry.NewVector(5, 0), r.Entities["p1"].Position())
	assert.NotContains(t, r.Entities, messages.EntityID("pw1"))
	assert.Equal(t, []removal{{"pw1", "", false}}, rec.removed)
}
