// Package rendertest provides a Canvas that records draw calls instead of
// painting them.
package rendertest

import (
	"image/color"
	"math"

	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/geometry"
)

// Op is one recorded draw call. X and Y are the call's origin mapped through
// the transform active at the time of the call.
type Op struct {
	Name   string
	X, Y   float64
	Args   []float64
	Points []geometry.Vector
	Text   string
	Style  render.Style
	Color  color.Color
	Image  render.Image
	Depth  int
}

type matrix struct {
	a, b, c, d, e, f float64
}

var identity = matrix{a: 1, d: 1}

func (m matrix) apply(x, y float64) (float64, float64) {
	return m.a*x + m.c*y + m.e, m.b*x + m.d*y + m.f
}

// Recorder implements render.Canvas.
type Recorder struct {
	Width, Height float64
	Ops           []Op

	m     matrix
	stack []matrix
}

var _ render.Canvas = (*Recorder)(nil)

func New(width, height float64) *Recorder {
	return &Recorder{Width: width, Height: height, m: identity}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) Push() { r.stack = append(r.stack, r.m) }

func (r *Recorder) Pop() {
	if len(r.stack) == 0 {
		return
	}
	r.m = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(x, y float64) {
	r.m.e += r.m.a*x + r.m.c*y
	r.m.f += r.m.b*x + r.m.d*y
}

func (r *Recorder) Rotate(theta float64) {
	sin, cos := math.Sincos(theta)
	m := r.m
	r.m.a = m.a*cos + m.c*sin
	r.m.b = m.b*cos + m.d*sin
	r.m.c = -m.a*sin + m.c*cos
	r.m.d = -m.b*sin + m.d*cos
}

func (r *Recorder) Scale(s float64) {
	r.m.a *= s
	r.m.b *= s
	r.m.c *= s
	r.m.d *= s
}

func (r *Recorder) record(op Op, x, y float64) {
	op.X, op.Y = r.m.apply(x, y)
	op.Depth = len(r.stack)
	r.Ops = append(r.Ops, op)
}

func (r *Recorder) Clear(c color.Color) {
	r.record(Op{Name: "clear", Color: c}, 0, 0)
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, s render.Style) {
	r.record(Op{Name: "line", Args: []float64{x1, y1, x2, y2}, Style: s}, x1, y1)
}

func (r *Recorder) Circle(x, y, radius float64, s render.Style) {
	r.record(Op{Name: "circle", Args: []float64{radius}, Style: s}, x, y)
}

func (r *Recorder) Rect(x, y, w, h float64, s render.Style) {
	r.record(Op{Name: "rect", Args: []float64{w, h}, Style: s}, x, y)
}

func (r *Recorder) Polygon(points []geometry.Vector, s render.Style) {
	pts := append([]geometry.Vector(nil), points...)
	r.record(Op{Name: "polygon", Points: pts, Style: s}, 0, 0)
}

func (r *Recorder) Arc(x, y, radius, start, end float64, s render.Style) {
	r.record(Op{Name: "arc", Args: []float64{radius, start, end}, Style: s}, x, y)
}

func (r *Recorder) Text(str string, x, y, size float64, align render.Align, c color.Color) {
	r.record(Op{Name: "text", Text: str, Args: []float64{size, float64(align)}, Color: c}, x, y)
}

func (r *Recorder) Image(img render.Image, x, y, alpha float64) {
	r.record(Op{Name: "image", Image: img, Args: []float64{alpha}}, x, y)
}

// Find returns every op with the given name, in call order.
func (r *Recorder) Find(name string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// Count returns how many ops with the given name were recorded.
func (r *Recorder) Count(name string) int {
	return len(r.Find(name))
}

// Texts returns every drawn string, in call order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Find("text") {
		out = append(out, op.Text)
	}
	return out
}

// Balanced reports whether every Push had a matching Pop.
func (r *Recorder) Balanced() bool {
	return len(r.stack) == 0
}

// Reset drops recorded ops and the transform stack.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.stack = nil
	r.m = identity
}
