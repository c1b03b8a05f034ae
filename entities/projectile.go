package entities

import (
	"fmt"
	"math"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/abilities"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
)

const projectileWidth = 20

// Projectile is a shot in flight. Its shape follows the shooter's ability.
type Projectile struct {
	position geometry.Vector
	velocity geometry.Vector
	rotation float64

	Flags    abilities.Flag
	Lifetime int
}

func newProjectile(data messages.EntityData) (*Projectile, error) {
	switch {
	case data.Position == nil:
		return nil, missing("position")
	case data.Velocity == nil:
		return nil, missing("velocity")
	case data.Projectile == nil:
		return nil, missing("projectile payload")
	}
	return &Projectile{
		position: *data.Position,
		velocity: *data.Velocity,
		rotation: rotationOf(data),
		Flags:    abilities.Flag(data.Projectile.Flags),
		Lifetime: data.Projectile.Lifetime,
	}, nil
}

func (p *Projectile) Kind() messages.EntityType { return messages.EntityProjectile }
func (p *Projectile) Position() geometry.Vector { return p.position }
func (p *Projectile) Rotation() float64 { return p.rotation }

func (p *Projectile) Update(data messages.EntityData) []Cue {
	if data.Position == nil || data.Rotation == nil {
		return nil
	}
	p.position = *data.Position
	p.rotation = *data.Rotation
	if data.Velocity != nil {
		p.velocity = *data.Velocity
	}
	if data.Projectile != nil {
		p.Lifetime = data.Projectile.Lifetime
		p.Flags = abilities.Flag(data.Projectile.Flags)
	}
	return nil
}

// RemovalAnimation explodes only when the projectile hit something; a
// lifetime of 0 or 1 means it ran out naturally.
func (p *Projectile) RemovalAnimation() (string, bool) {
	if p.Lifetime > 1 {
		return ExplosionSmall, true
	}
	return "", false
}

func (p *Projectile) Draw(c render.Canvas, debug bool) {
	c.Push()
	c.Translate(p.position.X, p.position.Y)

	c.Push()
	c.Rotate(p.rotation)
	if abilities.IsActive(p.Flags, abilities.WideBeam) {
		c.Arc(-40, 0, 35, 1.5*math.Pi+0.5, 0.5*math.Pi-0.5, render.Stroked(config.White, 8))
	} else {
		fill := render.Filled(config.White)
		c.Circle(-20, 0, 5, fill)
		c.Rect(-20, -5, 20, 10, fill)
		c.Circle(0, 0, 5, fill)
	}
	c.Pop()

	if debug {
		debugStroke := render.Stroked(config.DebugRed, 1)
		c.Push()
		c.Rotate(p.rotation)
		c.Rect(-projectileWidth/2, -projectileWidth/2, projectileWidth, projectileWidth, debugStroke)
		c.Pop()
		c.Line(0, 0, math.Cos(p.rotation)*120, math.Sin(p.rotation)*120, debugStroke)
		c.Text(fmt.Sprintf("position: (%.2f, %.2f), rotation: %.2f", p.position.X, p.position.Y, p.rotation),
			0, -85, 12, render.AlignCenter, config.DebugRed)
	}

	c.Pop()
}

// DrawIcon is a no-op; projectiles are too short-lived for the minimap.
func (p *Projectile) DrawIcon(render.Canvas) {}
