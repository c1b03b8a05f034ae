package main

import (
	"errors"
	"flag"
	"image"
	"io/fs"
	"os"

	"github.com/automoto/splashed/assets"
	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/engine"
	"github.com/automoto/splashed/fonts"
	"github.com/automoto/splashed/logging"
	"github.com/automoto/splashed/network"
	"github.com/automoto/splashed/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/rs/zerolog/log"
)

type Game struct {
	bounds image.Rectangle
	scene  scenes.Scene
}

// ChangeScene switches to a new scene
func (g *Game) ChangeScene(scene scenes.Scene) {
	g.scene = scene
}

func (g *Game) Update() error {
	g.scene.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout follows the window so the arena viewport grows with it.
func (g *Game) Layout(width, height int) (int, int) {
	g.bounds = image.Rect(0, 0, width, height)
	return width, height
}

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	assetsDir := flag.String("assets", "assets", "directory holding sprites.json and audio/")
	resume := flag.Bool("resume", false, "rejoin with the stored session token")
	debug := flag.Bool("debug", false, "draw debug overlays and enable screenshots (F12)")
	flag.Parse()

	if err := config.Load(*configPath); err != nil {
		logging.Init(config.Debug.LogLevel, config.Debug.PrettyLog)
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *debug {
		config.Debug.Enabled = true
	}
	logging.Init(config.Debug.LogLevel, config.Debug.PrettyLog)

	fsys := os.DirFS(*assetsDir)

	if ttf, err := fs.ReadFile(fsys, "fonts/regular.ttf"); err == nil {
		if err := fonts.LoadFont(fonts.Regular, ttf); err != nil {
			log.Warn().Err(err).Msg("bad font, keeping Go Regular")
		}
	}

	var sprites engine.Sprites
	if sheet, err := assets.LoadSpritesheet(fsys, "sprites.json"); err == nil {
		sprites = sheet
	} else if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("dir", *assetsDir).Msg("no sprite manifest, using procedural animations")
	} else {
		log.Fatal().Err(err).Msg("failed to load sprites")
	}

	var sounds engine.Sounds
	if bank, err := assets.LoadSoundBank(audio.NewContext(config.Audio.SampleRate), fsys); err != nil {
		log.Warn().Err(err).Msg("sound disabled")
	} else {
		bank.SetVolume(config.Audio.DefaultSFXVol)
		sounds = bank
	}

	var tokens network.TokenStore
	if store, err := network.OpenGdataStore(config.Network.AppName, config.Network.TokenKey); err != nil {
		log.Warn().Err(err).Msg("could not open app data, session will not persist")
		tokens = &network.MemoryStore{}
	} else {
		tokens = store
	}

	services := &scenes.Services{
		API:     network.NewAPI(config.Network.APIURL, tokens),
		Tokens:  tokens,
		WSURL:   config.Network.WSURL,
		Sprites: sprites,
		Sounds:  sounds,
		Resume:  *resume,
		Debug:   config.Debug.Enabled,
	}

	g := &Game{}
	g.scene = scenes.NewJoinScene(g, services, "")

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.C.TPS)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal().Err(err).Msg("game exited")
	}
}
