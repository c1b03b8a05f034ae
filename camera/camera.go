// Package camera tracks the view focus and zoom and decides which world
// positions are far enough away to be culled.
package camera

import (
	"math"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/geometry"
)

// Viewport is the screen size in pixels.
type Viewport struct {
	Width  float64
	Height float64
}

// Config is the camera focus in world space and the current zoom.
type Config struct {
	X    float64
	Y    float64
	Zoom float64
}

func New() Config {
	return Config{Zoom: config.Camera.MaxZoom}
}

func (c Config) Focus() geometry.Vector {
	return geometry.NewVector(c.X, c.Y)
}

// Follow centers the camera on position and zooms out as speed approaches
// the player's maximum.
func Follow(cfg *Config, position, velocity geometry.Vector) {
	cfg.X = position.X
	cfg.Y = position.Y

	ratio := 0.0
	if config.Player.MaxSpeed > 0 {
		ratio = velocity.Len() / config.Player.MaxSpeed
	}
	ratio = math.Max(0, math.Min(1, ratio))
	cfg.Zoom = config.Camera.MaxZoom - ratio*(config.Camera.MaxZoom-config.Camera.MinZoom)
}

// Culled reports whether position is more than one viewport width or height
// away from the camera focus.
func Culled(cfg Config, vp Viewport, position geometry.Vector) bool {
	return math.Abs(position.X-cfg.X) > vp.Width || math.Abs(position.Y-cfg.Y) > vp.Height
}

// Bounds is the world rectangle visible at the current zoom.
type Bounds struct {
	Left, Top, Right, Bottom float64
}

func Visible(cfg Config, vp Viewport) Bounds {
	zoom := cfg.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	hw, hh := vp.Width/2/zoom, vp.Height/2/zoom
	return Bounds{
		Left:   cfg.X - hw,
		Top:    cfg.Y - hh,
		Right:  cfg.X + hw,
		Bottom: cfg.Y + hh,
	}
}

// Center applies the world-to-screen transform so that the focus lands in
// the middle of the viewport. Callers wrap it in Push/Pop.
func Center(c render.Canvas, cfg Config, vp Viewport) {
	zoom := cfg.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	c.Scale(zoom)
	c.Translate(-cfg.X+vp.Width/2/zoom, -cfg.Y+vp.Height/2/zoom)
}
