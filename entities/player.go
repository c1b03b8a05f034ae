package entities

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/abilities"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
)

var generations atomic.Uint64

// Player is a ship controlled by a client. Trail and Generation are
// client-local.
type Player struct {
	position geometry.Vector
	velocity geometry.Vector
	rotation float64

	Username string
	Score    uint32
	Flags    abilities.Flag

	Trail *Trail
	// Generation distinguishes this instance from any earlier entity that
	// used the same id.
	Generation uint64
	// Sprite is optional; a triangle is drawn without it.
	Sprite render.Image

	destroyed bool
}

func newPlayer(data messages.EntityData) (*Player, error) {
	switch {
	case data.Position == nil:
		return nil, missing("position")
	case data.Velocity == nil:
		return nil, missing("velocity")
	case data.Player == nil:
		return nil, missing("player payload")
	}

	p := &Player{
		position:   *data.Position,
		velocity:   *data.Velocity,
		rotation:   rotationOf(data),
		Username:   data.Player.Username,
		Score:      data.Player.Score,
		Flags:      abilities.Flag(data.Player.Flags),
		Trail:      NewTrail(config.Player.TrailLength),
		Generation: generations.Add(1),
	}
	p.Trail.Push(p.position)
	return p, nil
}

func (p *Player) Kind() messages.EntityType { return messages.EntityPlayer }
func (p *Player) Position() geometry.Vector { return p.position }
func (p *Player) Velocity() geometry.Vector { return p.velocity }
func (p *Player) Rotation() float64 { return p.rotation }
func (p *Player) Speed() float64 { return p.velocity.Len() }
func (p *Player) Destroyed() bool { return p.destroyed }
func (p *Player) RemovalAnimation() (string, bool) { return ExplosionBig, true }

// Destroy marks the player dead without dropping it from the map. The next
// applied update revives it.
func (p *Player) Destroy() {
	p.destroyed = true
}

func (p *Player) Update(data messages.EntityData) []Cue {
	if data.Position == nil || data.Rotation == nil {
		return nil
	}
	if p.destroyed {
		p.destroyed = false
		p.Trail.Reset()
	}

	p.position = *data.Position
	p.rotation = *data.Rotation
	if data.Velocity != nil {
		p.velocity = *data.Velocity
	}

	var cues []Cue
	if pd := data.Player; pd != nil {
		if pd.Score > p.Score {
			cues = append(cues, CueScore)
		}
		if abilities.Flag(pd.Flags) != p.Flags {
			cues = append(cues, CuePickup)
		}
		p.Username = pd.Username
		p.Score = pd.Score
		p.Flags = abilities.Flag(pd.Flags)
	}

	p.Trail.Push(p.position)
	return cues
}

func (p *Player) Draw(c render.Canvas, debug bool) {
	r := config.Player.Radius

	c.Push()
	c.Translate(p.position.X, p.position.Y)

	c.Push()
	c.Rotate(p.rotation)
	if p.Sprite != nil {
		b := p.Sprite.Bounds()
		c.Image(p.Sprite, -float64(b.Dx())/2, -float64(b.Dy())/2, 1)
	} else {
		render.Triangle(c,
			geometry.NewVector(r, 0),
			geometry.NewVector(-r, r),
			geometry.NewVector(-r, -r),
			render.Filled(config.White))
	}
	c.Pop()

	// one ring per active buff
	for i, f := range abilities.Split(p.Flags) {
		if col, ok := abilityColor(f); ok {
			c.Circle(0, 0, r+8+float64(i)*6, render.Stroked(col, 2))
		}
	}

	c.Text(p.Username, 0, -config.Player.NameOffset, config.HUD.TextSize, render.AlignCenter, config.White)

	if debug {
		v := p.velocity.Scale(6)
		c.Line(0, 0, v.X, v.Y, render.Stroked(config.DebugRed, 1))
		c.Line(0, 0, math.Cos(p.rotation)*120, math.Sin(p.rotation)*120, render.Stroked(config.DebugRed, 1))
		c.Text(fmt.Sprintf("position: (%.2f, %.2f), rotation: %.2f", p.position.X, p.position.Y, p.rotation),
			0, -config.Player.NameOffset-20, 12, render.AlignCenter, config.DebugRed)
	}

	c.Pop()
}

// DrawTrail paints the position history, fading in from the oldest sample.
func (p *Player) DrawTrail(c render.Canvas) {
	pts := p.Trail.Points()
	fade := float64(p.Trail.Cap()) * config.Player.TrailFadeIn
	for i := 0; i+1 < len(pts); i++ {
		alpha := 1.0
		if fade > 0 {
			alpha = math.Min(float64(i)/fade, 1)
		}
		c.Line(pts[i].X, pts[i].Y, pts[i+1].X, pts[i+1].Y,
			render.Stroked(render.WithAlpha(config.Trail, alpha), config.Player.TrailWidth))
	}
}

func (p *Player) DrawIcon(c render.Canvas) {
	c.Circle(0, 0, 4, render.Filled(config.PlayerIcon))
}
