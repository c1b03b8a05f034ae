package entities

import (
	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
)

// Asteroid is a drifting polygon obstacle.
type Asteroid struct {
	position geometry.Vector
	rotation float64

	Points []geometry.Vector
}

func newAsteroid(data messages.EntityData) (*Asteroid, error) {
	switch {
	case data.Position == nil:
		return nil, missing("position")
	case data.Asteroid == nil:
		return nil, missing("asteroid payload")
	}
	return &Asteroid{
		position: *data.Position,
		rotation: rotationOf(data),
		Points:   append([]geometry.Vector(nil), data.Asteroid.Points...),
	}, nil
}

func (a *Asteroid) Kind() messages.EntityType { return messages.EntityAsteroid }
func (a *Asteroid) Position() geometry.Vector { return a.position }
func (a *Asteroid) Rotation() float64 { return a.rotation }

func (a *Asteroid) Update(data messages.EntityData) []Cue {
	if data.Position == nil || data.Rotation == nil {
		return nil
	}
	a.position = *data.Position
	a.rotation = *data.Rotation
	return nil
}

func (a *Asteroid) RemovalAnimation() (string, bool) { return ExplosionBig, true }

func (a *Asteroid) Draw(c render.Canvas, debug bool) {
	c.Push()
	c.Translate(a.position.X, a.position.Y)
	c.Rotate(a.rotation)

	c.Polygon(a.Points, render.Style{Fill: config.Translucent, Stroke: config.White, StrokeWidth: 4})

	// inner facets, drawn as a triangle strip over the outline
	thin := render.Stroked(config.White, 1)
	for i := 0; i+2 < len(a.Points); i++ {
		render.Triangle(c, a.Points[i], a.Points[i+1], a.Points[i+2], thin)
	}

	if debug {
		c.Circle(0, 0, 5, render.Style{Fill: config.White, Stroke: config.DebugRed})
	}
	c.Pop()
}

func (a *Asteroid) DrawIcon(c render.Canvas) {
	c.Circle(0, 0, 4, render.Filled(config.AsteroidIcon))
}
