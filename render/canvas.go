// Package render defines the drawing surface entities and systems paint on.
// Implementations live in subpackages so that headless code never links a
// graphics backend.
package render

import (
	"image"
	"image/color"

	"github.com/automoto/splashed/shared/geometry"
)

// Align controls horizontal text anchoring.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Style describes how a shape is painted. A nil Fill or Stroke skips that
// pass. StrokeWidth 0 is treated as 1.
type Style struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

// Filled returns a fill-only style.
func Filled(c color.Color) Style {
	return Style{Fill: c}
}

// Stroked returns a stroke-only style.
func Stroked(c color.Color, width float64) Style {
	return Style{Stroke: c, StrokeWidth: width}
}

// Width returns the effective stroke width.
func (s Style) Width() float64 {
	if s.StrokeWidth <= 0 {
		return 1
	}
	return s.StrokeWidth
}

// Image is anything with pixel bounds. Backends type-assert to their native
// image type and skip what they cannot draw.
type Image interface {
	Bounds() image.Rectangle
}

// Canvas is an immediate-mode surface with a transform stack. Angles are in
// radians, positive clockwise in screen space.
type Canvas interface {
	Size() (width, height float64)

	Push()
	Pop()
	Translate(x, y float64)
	Rotate(theta float64)
	Scale(s float64)

	Clear(c color.Color)
	Line(x1, y1, x2, y2 float64, s Style)
	Circle(x, y, r float64, s Style)
	Rect(x, y, w, h float64, s Style)
	Polygon(points []geometry.Vector, s Style)
	Arc(x, y, r, start, end float64, s Style)
	// Text draws str with its baseline at y.
	Text(str string, x, y, size float64, align Align, c color.Color)
	// Image draws img with its top-left corner at x, y.
	Image(img Image, x, y, alpha float64)
}

// Triangle draws a filled or stroked triangle through three points.
func Triangle(c Canvas, a, b, p geometry.Vector, s Style) {
	c.Polygon([]geometry.Vector{a, b, p}, s)
}

// WithAlpha returns c with its alpha scaled by a in [0, 1].
func WithAlpha(c color.Color, a float64) color.RGBA {
	r, g, b, al := c.RGBA()
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	// RGBA returns premultiplied 16-bit channels
	return color.RGBA{
		R: uint8(float64(r>>8) * a),
		G: uint8(float64(g>>8) * a),
		B: uint8(float64(b>>8) * a),
		A: uint8(float64(al>>8) * a),
	}
}
