// Package ebitencanvas implements render.Canvas on an ebiten screen image.
package ebitencanvas

import (
	"bytes"
	"image"
	"image/color"
	"math"

	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Canvas paints onto dst. Create one per frame with New.
type Canvas struct {
	dst   *ebiten.Image
	m     ebiten.GeoM
	stack []ebiten.GeoM

	source *text.GoTextFaceSource
	faces  map[float64]*text.GoTextFace

	vs []ebiten.Vertex
	is []uint16
}

var _ render.Canvas = (*Canvas)(nil)

var defaultSource *text.GoTextFaceSource

// New wraps dst. Faces are cached on the canvas, so hosts should reuse one
// Canvas across frames and call Reset with the new screen.
func New(dst *ebiten.Image) (*Canvas, error) {
	if defaultSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, err
		}
		defaultSource = src
	}
	return &Canvas{
		dst:    dst,
		source: defaultSource,
		faces:  map[float64]*text.GoTextFace{},
	}, nil
}

// Reset points the canvas at dst and clears the transform stack.
func (c *Canvas) Reset(dst *ebiten.Image) {
	c.dst = dst
	c.m.Reset()
	c.stack = c.stack[:0]
}

func (c *Canvas) Size() (float64, float64) {
	b := c.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (c *Canvas) Push() { c.stack = append(c.stack, c.m) }

func (c *Canvas) Pop() {
	if len(c.stack) == 0 {
		return
	}
	c.m = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// local prepends t so it applies before the current transform.
func (c *Canvas) local(t ebiten.GeoM) {
	t.Concat(c.m)
	c.m = t
}

func (c *Canvas) Translate(x, y float64) {
	var t ebiten.GeoM
	t.Translate(x, y)
	c.local(t)
}

func (c *Canvas) Rotate(theta float64) {
	var t ebiten.GeoM
	t.Rotate(theta)
	c.local(t)
}

func (c *Canvas) Scale(s float64) {
	var t ebiten.GeoM
	t.Scale(s, s)
	c.local(t)
}

func (c *Canvas) Clear(col color.Color) {
	c.dst.Fill(col)
}

func (c *Canvas) Line(x1, y1, x2, y2 float64, s render.Style) {
	col := s.Stroke
	if col == nil {
		col = s.Fill
	}
	if col == nil {
		return
	}
	var p vector.Path
	c.moveTo(&p, x1, y1)
	c.lineTo(&p, x2, y2)
	c.stroke(&p, col, s.Width())
}

func (c *Canvas) Circle(x, y, r float64, s render.Style) {
	c.Polygon(arcPoints(x, y, r, 0, 2*math.Pi), s)
}

func (c *Canvas) Rect(x, y, w, h float64, s render.Style) {
	c.Polygon([]geometry.Vector{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, s)
}

func (c *Canvas) Polygon(points []geometry.Vector, s render.Style) {
	if len(points) < 2 {
		return
	}
	var p vector.Path
	c.moveTo(&p, points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		c.lineTo(&p, pt.X, pt.Y)
	}
	p.Close()

	if s.Fill != nil {
		c.fill(&p, s.Fill)
	}
	if s.Stroke != nil {
		c.stroke(&p, s.Stroke, s.Width())
	}
}

func (c *Canvas) Arc(x, y, r, start, end float64, s render.Style) {
	pts := arcPoints(x, y, r, start, end)
	if s.Fill != nil {
		c.Polygon(append([]geometry.Vector{{X: x, Y: y}}, pts...), render.Filled(s.Fill))
	}
	if s.Stroke == nil || len(pts) < 2 {
		return
	}
	var p vector.Path
	c.moveTo(&p, pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		c.lineTo(&p, pt.X, pt.Y)
	}
	c.stroke(&p, s.Stroke, s.Width())
}

func (c *Canvas) Text(str string, x, y, size float64, align render.Align, col color.Color) {
	if str == "" || size <= 0 {
		return
	}
	face := c.face(size)

	op := &text.DrawOptions{}
	op.PrimaryAlign = textAlign(align)
	op.GeoM.Translate(x, y-face.Metrics().HAscent)
	op.GeoM.Concat(c.m)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.dst, str, face, op)
}

// Image draws img when it is an *ebiten.Image.
func (c *Canvas) Image(img render.Image, x, y, alpha float64) {
	src, ok := img.(*ebiten.Image)
	if !ok || src == nil || alpha <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(c.m)
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.Filter = ebiten.FilterLinear
	c.dst.DrawImage(src, op)
}

func (c *Canvas) face(size float64) *text.GoTextFace {
	if f, ok := c.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: c.source, Size: size}
	c.faces[size] = f
	return f
}

func (c *Canvas) moveTo(p *vector.Path, x, y float64) {
	tx, ty := c.m.Apply(x, y)
	p.MoveTo(float32(tx), float32(ty))
}

func (c *Canvas) lineTo(p *vector.Path, x, y float64) {
	tx, ty := c.m.Apply(x, y)
	p.LineTo(float32(tx), float32(ty))
}

// scale is the uniform scale factor of the current transform.
func (c *Canvas) scale() float64 {
	a, b := c.m.Element(0, 0), c.m.Element(0, 1)
	cc, d := c.m.Element(1, 0), c.m.Element(1, 1)
	return math.Sqrt(math.Abs(a*d - b*cc))
}

func (c *Canvas) fill(p *vector.Path, col color.Color) {
	c.vs, c.is = p.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	c.draw(col, ebiten.NonZero)
}

func (c *Canvas) stroke(p *vector.Path, col color.Color, width float64) {
	op := &vector.StrokeOptions{
		Width:    float32(width * c.scale()),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	c.vs, c.is = p.AppendVerticesAndIndicesForStroke(c.vs[:0], c.is[:0], op)
	c.draw(col, ebiten.FillAll)
}

func (c *Canvas) draw(col color.Color, rule ebiten.FillRule) {
	r, g, b, a := col.RGBA()
	for i := range c.vs {
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = float32(r) / 0xffff
		c.vs[i].ColorG = float32(g) / 0xffff
		c.vs[i].ColorB = float32(b) / 0xffff
		c.vs[i].ColorA = float32(a) / 0xffff
	}
	c.dst.DrawTriangles(c.vs, c.is, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  rule,
	})
}

func textAlign(a render.Align) text.Align {
	switch a {
	case render.AlignCenter:
		return text.AlignCenter
	case render.AlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

// arcPoints approximates the arc with segments no longer than ~4px.
func arcPoints(x, y, r, start, end float64) []geometry.Vector {
	if r <= 0 {
		return nil
	}
	span := end - start
	n := int(math.Ceil(math.Abs(span) * r / 4))
	n = max(8, min(n, 128))
	pts := make([]geometry.Vector, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := start + span*float64(i)/float64(n)
		pts = append(pts, geometry.Vector{X: x + r*math.Cos(theta), Y: y + r*math.Sin(theta)})
	}
	return pts
}
