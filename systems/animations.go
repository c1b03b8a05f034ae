package systems

import (
	"github.com/automoto/splashed/components"
	cfg "github.com/automoto/splashed/config"
	"github.com/automoto/splashed/entities"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/tags"
	"github.com/yohamta/donburi"
)

// UpdateAnimations advances every running animation and removes the ones
// that finished, timed out or lost their player.
func UpdateAnimations(w donburi.World, m entities.Map) {
	var toRemove []*donburi.Entry

	components.Explosion.Each(w, func(e *donburi.Entry) {
		if components.Explosion.Get(e).Step() {
			toRemove = append(toRemove, e)
		}
	})

	components.SpriteAnimation.Each(w, func(e *donburi.Entry) {
		anim := components.SpriteAnimation.Get(e)
		if anim.Current() == nil {
			toRemove = append(toRemove, e)
			return
		}
		anim.Animation.Update()
	})

	components.Trail.Each(w, func(e *donburi.Entry) {
		trail := components.Trail.Get(e)
		p, ok := m.Player(trail.ID)
		if !ok || p.Generation != trail.Generation {
			toRemove = append(toRemove, e)
		}
	})

	components.AutoDestroy.Each(w, func(e *donburi.Entry) {
		ad := components.AutoDestroy.Get(e)
		if ad.FramesRemaining > 0 {
			ad.FramesRemaining--
			if ad.FramesRemaining == 0 {
				toRemove = append(toRemove, e)
			}
		}
	})

	seen := make(map[donburi.Entity]bool, len(toRemove))
	for _, e := range toRemove {
		if seen[e.Entity()] || !e.Valid() {
			continue
		}
		seen[e.Entity()] = true
		e.Remove()
	}
}

// DrawBackgroundAnimations paints player trails. Destroyed players keep
// their handle but draw nothing.
func DrawBackgroundAnimations(w donburi.World, c render.Canvas, m entities.Map) {
	tags.Background.Each(w, func(e *donburi.Entry) {
		if !e.HasComponent(components.Trail) {
			return
		}
		trail := components.Trail.Get(e)
		p, ok := m.Player(trail.ID)
		if !ok || p.Generation != trail.Generation || p.Destroyed() {
			return
		}
		p.DrawTrail(c)
	})
}

// DrawForegroundAnimations paints explosions over the entities.
func DrawForegroundAnimations(w donburi.World, c render.Canvas) {
	tags.Foreground.Each(w, func(e *donburi.Entry) {
		switch {
		case e.HasComponent(components.SpriteAnimation):
			anim := components.SpriteAnimation.Get(e)
			frame := anim.Current()
			if frame == nil {
				return
			}
			b := frame.Bounds()
			c.Image(frame, anim.Position.X-float64(b.Dx())/2, anim.Position.Y-float64(b.Dy())/2, 1)

		case e.HasComponent(components.Explosion):
			ex := components.Explosion.Get(e)
			c.Circle(ex.Position.X, ex.Position.Y, ex.Diameter/2,
				render.Stroked(render.WithAlpha(cfg.White, ex.Alpha), 2))
		}
	})
}
