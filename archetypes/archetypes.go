package archetypes

import (
	"github.com/automoto/splashed/components"
	"github.com/automoto/splashed/tags"
	"github.com/yohamta/donburi"
)

var (
	Explosion = newArchetype(
		tags.Foreground,
		components.Explosion,
		components.AutoDestroy,
	)
	SpriteEffect = newArchetype(
		tags.Foreground,
		components.SpriteAnimation,
		components.AutoDestroy,
	)
	Trail = newArchetype(
		tags.Background,
		components.Trail,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(w donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := append(append([]donburi.IComponentType(nil), a.components...), cs...)
	return w.Entry(w.Create(all...))
}
