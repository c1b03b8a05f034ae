package entities

import "github.com/automoto/splashed/shared/geometry"

// Trail is a fixed-size ring of recent positions, oldest evicted first.
type Trail struct {
	points []geometry.Vector
	next   int
	size   int
}

func NewTrail(length int) *Trail {
	if length < 1 {
		length = 1
	}
	return &Trail{points: make([]geometry.Vector, length)}
}

func (t *Trail) Push(v geometry.Vector) {
	t.points[t.next] = v
	t.next = (t.next + 1) % len(t.points)
	if t.size < len(t.points) {
		t.size++
	}
}

// Points returns the samples oldest first.
func (t *Trail) Points() []geometry.Vector {
	out := make([]geometry.Vector, 0, t.size)
	start := (t.next - t.size + len(t.points)) % len(t.points)
	for i := 0; i < t.size; i++ {
		out = append(out, t.points[(start+i)%len(t.points)])
	}
	return out
}

func (t *Trail) Len() int { return t.size }

func (t *Trail) Cap() int { return len(t.points) }

func (t *Trail) Reset() {
	t.next = 0
	t.size = 0
}
