// Package ggcanvas paints render.Canvas calls into an in-memory image with
// fogleman/gg. It needs no GPU and is used for screenshots and tests.
package ggcanvas

import (
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/automoto/splashed/fonts"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/fogleman/gg"
)

type Canvas struct {
	dc *gg.Context
}

var _ render.Canvas = (*Canvas)(nil)

func New(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

func (c *Canvas) Size() (float64, float64) {
	return float64(c.dc.Width()), float64(c.dc.Height())
}

func (c *Canvas) Push()                  { c.dc.Push() }
func (c *Canvas) Pop()                   { c.dc.Pop() }
func (c *Canvas) Translate(x, y float64) { c.dc.Translate(x, y) }
func (c *Canvas) Rotate(theta float64)   { c.dc.Rotate(theta) }
func (c *Canvas) Scale(s float64)        { c.dc.Scale(s, s) }

func (c *Canvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, s render.Style) {
	col := s.Stroke
	if col == nil {
		col = s.Fill
	}
	if col == nil {
		return
	}
	c.dc.SetColor(col)
	c.dc.SetLineWidth(s.Width())
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

func (c *Canvas) Circle(x, y, r float64, s render.Style) {
	c.dc.DrawCircle(x, y, r)
	c.paint(s)
}

func (c *Canvas) Rect(x, y, w, h float64, s render.Style) {
	c.dc.DrawRectangle(x, y, w, h)
	c.paint(s)
}

func (c *Canvas) Polygon(points []geometry.Vector, s render.Style) {
	if len(points) < 2 {
		return
	}
	c.dc.NewSubPath()
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.paint(s)
}

// Arc strokes the arc from start to end. A fill closes it through the
// center.
func (c *Canvas) Arc(x, y, r, start, end float64, s render.Style) {
	if s.Fill != nil {
		c.dc.MoveTo(x, y)
		c.dc.DrawArc(x, y, r, start, end)
		c.dc.ClosePath()
		c.dc.SetColor(s.Fill)
		c.dc.Fill()
	}
	if s.Stroke != nil {
		c.dc.NewSubPath()
		c.dc.DrawArc(x, y, r, start, end)
		c.dc.SetColor(s.Stroke)
		c.dc.SetLineWidth(s.Width())
		c.dc.Stroke()
	}
	c.dc.ClearPath()
}

func (c *Canvas) Text(str string, x, y, size float64, align render.Align, col color.Color) {
	if str == "" || size <= 0 {
		return
	}
	c.dc.SetFontFace(fonts.Regular.Get(size))
	c.dc.SetColor(col)
	c.dc.DrawStringAnchored(str, x, y, anchor(align), 0)
}

// Image draws img when it is an image.Image. Other render.Image values are
// skipped.
func (c *Canvas) Image(img render.Image, x, y, alpha float64) {
	src, ok := img.(image.Image)
	if !ok || alpha <= 0 {
		return
	}
	if alpha < 1 {
		src = fade(src, alpha)
	}
	c.Push()
	c.dc.Translate(x, y)
	c.dc.DrawImage(src, 0, 0)
	c.Pop()
}

// Snapshot returns the painted pixels.
func (c *Canvas) Snapshot() image.Image {
	return c.dc.Image()
}

func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

func (c *Canvas) paint(s render.Style) {
	if s.Fill != nil {
		c.dc.SetColor(s.Fill)
		c.dc.FillPreserve()
	}
	if s.Stroke != nil {
		c.dc.SetColor(s.Stroke)
		c.dc.SetLineWidth(s.Width())
		c.dc.StrokePreserve()
	}
	c.dc.ClearPath()
}

func anchor(a render.Align) float64 {
	switch a {
	case render.AlignCenter:
		return 0.5
	case render.AlignRight:
		return 1
	default:
		return 0
	}
}

func fade(src image.Image, alpha float64) image.Image {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	mask := image.NewUniform(color.Alpha{A: uint8(alpha * 255)})
	draw.DrawMask(dst, dst.Bounds(), src, b.Min, mask, image.Point{}, draw.Over)
	return dst
}
