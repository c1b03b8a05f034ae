package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/logging"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/rs/zerolog"
)

// SoundBank keeps decoded sound effects and plays them by name.
type SoundBank struct {
	context *audio.Context
	clips   map[string][]byte
	volume  float64
	log     zerolog.Logger
}

// LoadSoundBank decodes every clip in config.Sound.SFXPaths from fsys.
// Missing files are skipped.
func LoadSoundBank(ctx *audio.Context, fsys fs.FS) (*SoundBank, error) {
	b := &SoundBank{
		context: ctx,
		clips:   map[string][]byte{},
		volume:  config.Audio.DefaultSFXVol,
		log:     logging.For("audio"),
	}
	for name, path := range config.Sound.SFXPaths {
		data, err := fs.ReadFile(fsys, path)
		if errors.Is(err, fs.ErrNotExist) {
			b.log.Warn().Str("sound", name).Str("path", path).Msg("sound file missing")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
		}
		decoded, err := b.decode(path, data)
		if err != nil {
			return nil, err
		}
		b.clips[name] = decoded
	}
	return b, nil
}

func (b *SoundBank) decode(path string, data []byte) ([]byte, error) {
	var (
		stream io.Reader
		err    error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(b.context.SampleRate(), bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(b.context.SampleRate(), bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	decoded, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", path, err)
	}
	return decoded, nil
}

// SetVolume sets the base volume in [0, 1].
func (b *SoundBank) SetVolume(v float64) {
	b.volume = max(0, min(v, 1))
}

// Play starts a new player for the named clip. Unknown names are ignored.
func (b *SoundBank) Play(name string) {
	if b == nil {
		return
	}
	data, ok := b.clips[name]
	if !ok {
		return
	}
	p := b.context.NewPlayerFromBytes(data)
	vol := b.volume
	if m, ok := config.Sound.VolumeMultipliers[name]; ok {
		vol *= m
	}
	p.SetVolume(vol)
	p.Play()
}
