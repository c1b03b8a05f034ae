// Package fonts parses TrueType fonts once and hands out sized faces.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

type FontName string

const (
	Regular FontName = "regular"
	Bold    FontName = "bold"
)

// Get returns the face for f at size points. It panics if f was never
// loaded.
func (f FontName) Get(size float64) font.Face {
	return getFont(f, size)
}

type faceKey struct {
	name FontName
	size float64
}

var (
	mu    sync.Mutex
	fonts = map[FontName]*truetype.Font{}
	faces = map[faceKey]font.Face{}
)

func init() {
	mustLoad(Regular, goregular.TTF)
	mustLoad(Bold, gobold.TTF)
}

// LoadFont registers ttf under name, replacing any earlier font and its
// cached faces.
func LoadFont(name FontName, ttf []byte) error {
	parsed, err := truetype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", name, err)
	}

	mu.Lock()
	defer mu.Unlock()
	fonts[name] = parsed
	for k := range faces {
		if k.name == name {
			delete(faces, k)
		}
	}
	return nil
}

func mustLoad(name FontName, ttf []byte) {
	if err := LoadFont(name, ttf); err != nil {
		panic(err)
	}
}

func getFont(name FontName, size float64) font.Face {
	mu.Lock()
	defer mu.Unlock()

	key := faceKey{name: name, size: size}
	if f, ok := faces[key]; ok {
		return f
	}
	parsed, ok := fonts[name]
	if !ok {
		panic(fmt.Sprintf("Font %s not found", name))
	}
	f := truetype.NewFace(parsed, &truetype.Options{Size: size, Hinting: font.HintingFull})
	faces[key] = f
	return f
}
