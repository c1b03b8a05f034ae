package components

import (
	"github.com/automoto/splashed/assets/animations"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/yohamta/donburi"
)

// SpriteAnimationData plays a sprite's frames once, centered on Position.
type SpriteAnimationData struct {
	Name      string
	Position  geometry.Vector
	Frames    []render.Image
	Animation *animations.Animation
}

// Current returns the frame to draw, or nil once the frames are exhausted.
func (s *SpriteAnimationData) Current() render.Image {
	if s.Animation == nil || s.Animation.Finished() {
		return nil
	}
	i := s.Animation.Frame()
	if i < 0 || i >= len(s.Frames) {
		return nil
	}
	return s.Frames[i]
}

var SpriteAnimation = donburi.NewComponentType[SpriteAnimationData]()
