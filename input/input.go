// Package input turns pointer state into the per-step outbound event.
package input

import (
	"math"

	"github.com/automoto/splashed/camera"
	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/shared/messages"
)

// State holds normalized steering and the pending press edge.
type State struct {
	MouseX  float64
	MouseY  float64
	Pressed bool
}

// Press records a click. It is consumed by the next Step.
func (s *State) Press() {
	s.Pressed = true
}

// Move sets steering from a pointer position in screen pixels. The offset
// from the viewport center saturates at a radius derived from the smaller
// viewport side.
func (s *State) Move(px, py float64, vp camera.Viewport) {
	radius := config.Input.RadiusFactor * math.Min(vp.Width, vp.Height) / 2
	if radius <= 0 {
		s.MouseX, s.MouseY = 0, 0
		return
	}

	dx := px - vp.Width/2
	dy := py - vp.Height/2
	theta := math.Atan2(dy, dx)
	magnitude := math.Min(math.Hypot(dx, dy), radius) / radius

	s.MouseX = math.Cos(theta) * magnitude
	s.MouseY = math.Sin(theta) * magnitude
}

// Step produces at most one event for this tick. While alive it always
// returns an INPUT event; while dead it returns RESPAWN only if a press is
// pending. The pending press is cleared on every call. shot reports that
// the press was consumed while alive.
func (s *State) Step(clientID messages.EntityID, alive bool) (ev *messages.Event, shot bool) {
	pressed := s.Pressed
	s.Pressed = false

	if alive {
		e := messages.NewInputEvent(messages.InputEventData{
			ID:           clientID,
			MouseX:       s.MouseX,
			MouseY:       s.MouseY,
			MousePressed: pressed,
		})
		return &e, pressed
	}

	s.MouseX, s.MouseY = 0, 0
	if !pressed {
		return nil, false
	}
	e := messages.NewRespawnEvent(clientID)
	return &e, false
}

// Throttle is the steering magnitude in [0, 1].
func (s *State) Throttle() float64 {
	return math.Min(math.Hypot(s.MouseX, s.MouseY), 1)
}
