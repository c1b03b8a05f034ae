package components

import (
	"github.com/automoto/splashed/shared/geometry"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// ExplosionData is the procedural ring drawn when no sprite frames exist
// for a removal animation. Diameter grows while Alpha fades.
type ExplosionData struct {
	Name     string
	Position geometry.Vector
	Diameter float64
	Alpha    float64

	diameter *gween.Tween
	alpha    *gween.Tween
}

// NewExplosion returns a ring that grows from diameter to diameter*growth
// over ticks steps.
func NewExplosion(name string, position geometry.Vector, diameter, growth float64, ticks int) *ExplosionData {
	d := float32(ticks)
	return &ExplosionData{
		Name:     name,
		Position: position,
		Diameter: diameter,
		Alpha:    1,
		diameter: gween.New(float32(diameter), float32(diameter*growth), d, ease.OutQuad),
		alpha:    gween.New(1, 0, d, ease.Linear),
	}
}

// Step advances one tick and reports whether the ring has faded out.
func (e *ExplosionData) Step() bool {
	if e.diameter == nil || e.alpha == nil {
		return true
	}
	d, dDone := e.diameter.Update(1)
	a, aDone := e.alpha.Update(1)
	e.Diameter = float64(d)
	e.Alpha = float64(a)
	return dDone && aDone
}

var Explosion = donburi.NewComponentType[ExplosionData]()

// AutoDestroyData removes an animation after a fixed number of ticks even if
// it has not finished on its own.
type AutoDestroyData struct {
	FramesRemaining int // -1 disables the countdown
}

var AutoDestroy = donburi.NewComponentType[AutoDestroyData]()
