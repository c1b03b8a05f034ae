package engine

import (
	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/entities"
	"github.com/automoto/splashed/shared/messages"
	"github.com/automoto/splashed/systems/factory"
)

// effects turns reconciliation side effects into animations and sounds.
type effects struct {
	e *Engine
}

func (fx effects) Removed(id messages.EntityID, ent entities.Entity, animation string, ok bool) {
	if !ok {
		return
	}
	factory.SpawnExplosion(fx.e.world, animation, ent.Position(), fx.e.sprites.Frames(animation))
	fx.e.sounds.Play(animation)
	fx.e.log.Debug().Str("id", string(id)).Str("animation", animation).Msg("entity removed")
}

func (fx effects) Created(id messages.EntityID, ent entities.Entity) {
	p, ok := ent.(*entities.Player)
	if !ok {
		return
	}
	p.Sprite = fx.e.sprites.PlayerSprite(p.Username)
	factory.SpawnTrail(fx.e.world, id, p.Generation)
}

// Cued plays score and pickup sounds for the local player only.
func (fx effects) Cued(id messages.EntityID, _ entities.Entity, cue entities.Cue) {
	if id != fx.e.clientID {
		return
	}
	switch cue {
	case entities.CueScore:
		fx.e.sounds.Play(config.SoundScore)
	case entities.CuePickup:
		fx.e.sounds.Play(config.SoundPickup)
	}
}
