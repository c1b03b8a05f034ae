package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleWidth(t *testing.T) {
	assert.Equal(t, 1.0, Filled(color.White).Width())
	assert.Equal(t, 4.0, Stroked(color.White, 4).Width())
}

func TestWithAlpha(t *testing.T) {
	c := WithAlpha(color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.5)
	assert.Equal(t, uint8(127), c.A)
	assert.Equal(t, uint8(127), c.R)

	assert.Equal(t, uint8(0), WithAlpha(color.White, -1).A)
	assert.Equal(t, uint8(255), WithAlpha(color.White, 2).A)
}
