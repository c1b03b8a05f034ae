// Package assets loads sprite sheets and sound clips for the ebiten host.
package assets

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/automoto/splashed/assets/manifest"
	"github.com/automoto/splashed/logging"
	"github.com/automoto/splashed/render"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Spritesheet holds the tiled frames of every sprite in a manifest.
type Spritesheet struct {
	frames  map[string][]render.Image
	players []string
}

// LoadSpritesheet reads the manifest at path and every image it names.
// Images missing from fsys are skipped; undecodable images are an error.
func LoadSpritesheet(fsys fs.FS, path string) (*Spritesheet, error) {
	m, err := manifest.Read(fsys, path)
	if err != nil {
		return nil, err
	}

	log := logging.For("assets")
	s := &Spritesheet{frames: map[string][]render.Image{}}
	for name, sprite := range m {
		img, err := loadImage(fsys, sprite.Path)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn().Str("sprite", name).Str("path", sprite.Path).Msg("sprite image missing")
			continue
		}
		if err != nil {
			return nil, err
		}
		s.frames[name] = tile(img, sprite.Width, sprite.Height)
	}
	for _, name := range m.PlayerSprites() {
		if len(s.frames[name]) > 0 {
			s.players = append(s.players, name)
		}
	}
	return s, nil
}

// Frames returns every frame of the named sprite, or nil.
func (s *Spritesheet) Frames(name string) []render.Image {
	if s == nil {
		return nil
	}
	return s.frames[name]
}

// PlayerSprite returns the first frame of the player sprite picked for
// username, or nil when no player sprites are loaded.
func (s *Spritesheet) PlayerSprite(username string) render.Image {
	if s == nil {
		return nil
	}
	i := manifest.PlayerIndex(username, len(s.players))
	if i < 0 {
		return nil
	}
	return s.frames[s.players[i]][0]
}

func loadImage(fsys fs.FS, path string) (*ebiten.Image, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := ebitenutil.NewImageFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

func tile(img *ebiten.Image, width, height int) []render.Image {
	var frames []render.Image
	for _, r := range manifest.Tiles(img.Bounds(), width, height) {
		frames = append(frames, img.SubImage(r).(*ebiten.Image))
	}
	return frames
}
