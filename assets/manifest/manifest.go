// Package manifest reads the sprite manifest and computes frame layout
// without touching a graphics backend.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"sort"
)

var ErrInvalid = errors.New("invalid sprite manifest")

// Sprite is one sheet. Every Width x Height cell of the image is a frame.
type Sprite struct {
	Path           string `json:"path"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	IsPlayerSprite bool   `json:"isPlayerSprite,omitempty"`
}

// Manifest maps sprite names to sheets.
type Manifest map[string]Sprite

func Parse(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	for name, s := range m {
		if s.Path == "" {
			return nil, fmt.Errorf("%w: sprite %q has no path", ErrInvalid, name)
		}
		if s.Width <= 0 || s.Height <= 0 {
			return nil, fmt.Errorf("%w: sprite %q has frame size %dx%d", ErrInvalid, name, s.Width, s.Height)
		}
	}
	return m, nil
}

func Read(fsys fs.FS, path string) (Manifest, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// PlayerSprites returns the names usable as player sprites, sorted.
func (m Manifest) PlayerSprites() []string {
	var names []string
	for name, s := range m {
		if s.IsPlayerSprite {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Tiles cuts bounds into width x height cells, row by row. Cells that do
// not fit entirely are dropped.
func Tiles(bounds image.Rectangle, width, height int) []image.Rectangle {
	if width <= 0 || height <= 0 {
		return nil
	}
	var out []image.Rectangle
	for y := bounds.Min.Y; y+height <= bounds.Max.Y; y += height {
		for x := bounds.Min.X; x+width <= bounds.Max.X; x += width {
			out = append(out, image.Rect(x, y, x+width, y+height))
		}
	}
	return out
}

// PlayerIndex picks one of n player sprites from the character sum of
// username. It returns -1 when n is zero.
func PlayerIndex(username string, n int) int {
	if n <= 0 {
		return -1
	}
	sum := 0
	for _, r := range username {
		sum += int(r)
	}
	return sum % n
}
