package entities

import (
	"fmt"
	"image/color"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/abilities"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
)

const powerupWidth = 20

// Powerup grants a single ability when collected.
type Powerup struct {
	position geometry.Vector
	rotation float64

	Ability abilities.Flag
}

func newPowerup(data messages.EntityData) (*Powerup, error) {
	switch {
	case data.Position == nil:
		return nil, missing("position")
	case data.Powerup == nil:
		return nil, missing("powerup payload")
	}
	ability := abilities.Flag(data.Powerup.Ability)
	if _, ok := abilityColor(ability); !ok {
		return nil, fmt.Errorf("ability %d: %w", ability, ErrSchema)
	}
	return &Powerup{
		position: *data.Position,
		rotation: rotationOf(data),
		Ability:  ability,
	}, nil
}

func (p *Powerup) Kind() messages.EntityType { return messages.EntityPowerup }
func (p *Powerup) Position() geometry.Vector { return p.position }
func (p *Powerup) Rotation() float64 { return p.rotation }

func (p *Powerup) Update(data messages.EntityData) []Cue {
	if data.Position == nil || data.Rotation == nil {
		return nil
	}
	p.position = *data.Position
	p.rotation = *data.Rotation
	return nil
}

func (p *Powerup) RemovalAnimation() (string, bool) { return "", false }

func (p *Powerup) Draw(c render.Canvas, debug bool) {
	fill, _ := abilityColor(p.Ability)

	c.Push()
	c.Translate(p.position.X, p.position.Y)
	c.Circle(0, 0, 5, render.Filled(fill))
	if debug {
		c.Rect(-powerupWidth/2, -powerupWidth/2, powerupWidth, powerupWidth, render.Stroked(config.DebugRed, 1))
	}
	c.Pop()
}

func (p *Powerup) DrawIcon(c render.Canvas) {
	fill, _ := abilityColor(p.Ability)
	c.Circle(0, 0, 4, render.Filled(fill))
}

// abilityColor requires exactly one known bit.
func abilityColor(f abilities.Flag) (color.Color, bool) {
	switch f {
	case abilities.Multishot:
		return config.Multishot, true
	case abilities.WideBeam:
		return config.WideBeam, true
	case abilities.Shield:
		return config.Shield, true
	default:
		return nil, false
	}
}
