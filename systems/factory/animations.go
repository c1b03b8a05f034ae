package factory

import (
	"github.com/automoto/splashed/archetypes"
	"github.com/automoto/splashed/assets/animations"
	"github.com/automoto/splashed/components"
	cfg "github.com/automoto/splashed/config"
	"github.com/automoto/splashed/entities"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
	"github.com/yohamta/donburi"
)

// SpawnExplosion starts a removal animation at position. Sprite frames are
// played once when available; otherwise a procedural ring is used.
func SpawnExplosion(w donburi.World, name string, position geometry.Vector, frames []render.Image) *donburi.Entry {
	if len(frames) > 0 {
		entry := archetypes.SpriteEffect.Spawn(w)
		components.SpriteAnimation.Set(entry, &components.SpriteAnimationData{
			Name:      name,
			Position:  position,
			Frames:    frames,
			Animation: animations.NewAnimation(0, len(frames)-1, 1, cfg.Animation.SpriteFrameTicks),
		})
		// frames plus slack, in case the animation never reports finished
		components.AutoDestroy.Set(entry, &components.AutoDestroyData{
			FramesRemaining: (len(frames)+1)*cfg.Animation.SpriteFrameTicks + 1,
		})
		return entry
	}

	entry := archetypes.Explosion.Spawn(w)
	components.Explosion.Set(entry, components.NewExplosion(
		name,
		position,
		cfg.Animation.ExplosionDiameter,
		explosionGrowth(name),
		cfg.Animation.ExplosionTicks,
	))
	components.AutoDestroy.Set(entry, &components.AutoDestroyData{
		FramesRemaining: cfg.Animation.ExplosionTicks + 1,
	})
	return entry
}

// SpawnTrail attaches a trail animation to the player with id and generation.
func SpawnTrail(w donburi.World, id messages.EntityID, generation uint64) *donburi.Entry {
	entry := archetypes.Trail.Spawn(w)
	components.Trail.Set(entry, &components.TrailData{
		ID:         id,
		Generation: generation,
	})
	return entry
}

func explosionGrowth(name string) float64 {
	if name == entities.ExplosionSmall {
		return cfg.Animation.ExplosionGrowth / 2
	}
	return cfg.Animation.ExplosionGrowth
}
