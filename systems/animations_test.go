package systems

import (
	"image"
	"testing"

	"github.com/automoto/splashed/components"
	cfg "github.com/automoto/splashed/config"
	"github.com/automoto/splashed/entities"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/render/rendertest"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
	"github.com/automoto/splashed/systems/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func vec(x, y float64) *geometry.Vector {
	v := geometry.NewVector(x, y)
	return &v
}

func rot(r float64) *float64 { return &r }

func newPlayer(t *testing.T, id messages.EntityID, x, y float64) *entities.Player {
	t.Helper()
	e, err := entities.New(messages.EntityData{
		ID: id, Type: messages.EntityPlayer,
		Position: vec(x, y), Velocity: vec(0, 0), Rotation: rot(0),
		Player: &messages.PlayerData{Username: string(id)},
	})
	require.NoError(t, err)
	return e.(*entities.Player)
}

func count(w donburi.World) int {
	return w.Len()
}

func TestExplosionRingFadesAndIsRemoved(t *testing.T) {
	w := donburi.NewWorld()
	entry := factory.SpawnExplosion(w, entities.ExplosionBig, geometry.NewVector(10, 20), nil)
	require.True(t, entry.HasComponent(components.Explosion))

	UpdateAnimations(w, entities.Map{})
	ex := components.Explosion.Get(entry)
	assert.Greater(t, ex.Diameter, cfg.Animation.ExplosionDiameter)
	assert.Less(t, ex.Alpha, 1.0)

	rec := rendertest.New(100, 100)
	DrawForegroundAnimations(w, rec)
	circles := rec.Find("circle")
	require.Len(t, circles, 1)
	assert.Equal(t, 10.0, circles[0].X)
	assert.Equal(t, 20.0, circles[0].Y)

	for i := 0; i < cfg.Animation.ExplosionTicks+2; i++ {
		UpdateAnimations(w, entities.Map{})
	}
	assert.Equal(t, 0, count(w))
}

func TestSpriteExplosionPlaysEachFrameOnce(t *testing.T) {
	w := donburi.NewWorld()
	frames := []render.Image{image.Rect(0, 0, 10, 10), image.Rect(0, 0, 20, 20), image.Rect(0, 0, 30, 30)}
	factory.SpawnExplosion(w, entities.ExplosionSmall, geometry.NewVector(100, 100), frames)

	var drawn []float64
	for i := 0; i < 10; i++ {
		rec := rendertest.New(200, 200)
		DrawForegroundAnimations(w, rec)
		for _, op := range rec.Find("image") {
			drawn = append(drawn, op.X)
		}
		UpdateAnimations(w, entities.Map{})
	}

	// each frame is centered on the position
	assert.Equal(t, []float64{95, 90, 85}, drawn)
	assert.Equal(t, 0, count(w))
}

func TestTrailEndsWhenPlayerGoneOrReplaced(t *testing.T) {
	w := donburi.NewWorld()
	m := entities.Map{}

	p := newPlayer(t, "p1", 0, 0)
	m["p1"] = p
	factory.SpawnTrail(w, "p1", p.Generation)

	UpdateAnimations(w, m)
	assert.Equal(t, 1, count(w))

	// same id, new generation
	m["p1"] = newPlayer(t, "p1", 0, 0)
	UpdateAnimations(w, m)
	assert.Equal(t, 0, count(w))

	factory.SpawnTrail(w, "p1", m["p1"].(*entities.Player).Generation)
	delete(m, "p1")
	UpdateAnimations(w, m)
	assert.Equal(t, 0, count(w))
}

func TestBackgroundSkipsDestroyedPlayers(t *testing.T) {
	w := donburi.NewWorld()
	m := entities.Map{}
	p := newPlayer(t, "p1", 0, 0)
	p.Update(messages.EntityData{Position: vec(10, 0), Rotation: rot(0)})
	m["p1"] = p
	factory.SpawnTrail(w, "p1", p.Generation)

	rec := rendertest.New(100, 100)
	DrawBackgroundAnimations(w, rec, m)
	assert.Equal(t, 1, rec.Count("line"))

	p.Destroy()
	rec.Reset()
	DrawBackgroundAnimations(w, rec, m)
	assert.Equal(t, 0, rec.Count("line"))

	UpdateAnimations(w, m)
	assert.Equal(t, 1, count(w), "destroyed local player keeps its trail handle")
}
