package entities

import (
	"testing"

	"github.com/automoto/splashed/shared/geometry"
	"github.com/stretchr/testify/assert"
)

func TestTrailEvictsOldest(t *testing.T) {
	tr := NewTrail(3)
	assert.Empty(t, tr.Points())

	for i := 1; i <= 5; i++ {
		tr.Push(geometry.NewVector(float64(i), 0))
	}

	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []geometry.Vector{{X: 3}, {X: 4}, {X: 5}}, tr.Points())

	tr.Reset()
	assert.Equal(t, 0, tr.Len())
	tr.Push(geometry.NewVector(9, 9))
	assert.Equal(t, []geometry.Vector{{X: 9, Y: 9}}, tr.Points())
}

func TestTrailMinimumLength(t *testing.T) {
	tr := NewTrail(0)
	tr.Push(geometry.NewVector(1, 1))
	tr.Push(geometry.NewVector(2, 2))
	assert.Equal(t, 1, tr.Cap())
	assert.Equal(t, []geometry.Vector{{X: 2, Y: 2}}, tr.Points())
}
