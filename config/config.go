package config

import (
	"image/color"
	"time"
)

// Config contains window-level settings.
type Config struct {
	Width  int
	Height int
	Title  string
	TPS    int
}

// NetworkConfig contains the room service endpoints and session storage.
type NetworkConfig struct {
	APIURL         string
	WSURL          string
	AppName        string
	TokenKey       string
	RequestTimeout time.Duration
	DropLogEvery   time.Duration // minimum interval between "send dropped" log lines
}

// PlayerConfig mirrors the server's movement limits.
type PlayerConfig struct {
	MaxSpeed    float64
	TrailLength int
	Radius      float64
	NameOffset  float64
	TrailWidth  float64
	TrailFadeIn float64 // fraction of the trail that fades in from transparent
}

// CameraConfig contains zoom limits and background grid settings.
type CameraConfig struct {
	MinZoom  float64
	MaxZoom  float64
	GridSize float64
	GridLine float64
}

// InputConfig contains pointer normalization settings.
type InputConfig struct {
	RadiusFactor float64 // fraction of half the smaller viewport side
}

// MinimapConfig contains radar placement settings.
type MinimapConfig struct {
	Radius float64
	Offset float64
	Scale  float64
}

// HUDConfig contains placement for the speedometer, score and event feed.
type HUDConfig struct {
	ThrottleDiameter float64
	SpeedDiameter    float64
	SpeedSegments    int
	SpeedRedFrom     int
	SegmentInterval  float64
	ScoreOffsetX     float64
	ScoreOffsetY     float64
	TextSize         float64
	FeedLines        int
	FeedTTL          int // ticks a feed line stays on screen
	FeedX            float64
	FeedY            float64
}

// AnimationConfig contains procedural and sprite animation timings.
type AnimationConfig struct {
	ExplosionDiameter float64 // starting diameter of the ring fallback
	ExplosionGrowth   float64 // final diameter multiplier
	ExplosionTicks    int
	SpriteFrameTicks  int
}

// DebugConfig controls debug overlays and logging.
type DebugConfig struct {
	Enabled   bool
	LogLevel  string
	PrettyLog bool
}

var C *Config
var Network NetworkConfig
var Player PlayerConfig
var Camera CameraConfig
var Input InputConfig
var Minimap MinimapConfig
var HUD HUDConfig
var Animation AnimationConfig
var Debug DebugConfig

// Colors
var (
	Background   = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	GridLine     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x33}
	White        = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Translucent  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x88}
	DebugRed     = color.RGBA{R: 0xff, A: 0xff}
	Trail        = color.RGBA{R: 0xff, G: 0xa3, B: 0x20, A: 0xff}
	ThrottleBack = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x22}
	SpeedGreen   = color.RGBA{R: 0x29, G: 0xcc, B: 0x49, A: 0xff}
	SpeedRed     = color.RGBA{R: 0xec, G: 0x1f, B: 0x26, A: 0xff}
	Overlay      = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0x55}
	AsteroidIcon = color.RGBA{B: 0xff, A: 0xff}
	PlayerIcon   = color.RGBA{R: 0xff, A: 0xff}
	Multishot    = color.RGBA{G: 0xff, B: 0xff, A: 0xff}
	WideBeam     = color.RGBA{R: 0xff, B: 0xff, A: 0xff}
	Shield       = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
)

func init() {
	C = &Config{
		Width:  1280,
		Height: 720,
		Title:  "splashed",
		TPS:    60,
	}

	Network = NetworkConfig{
		APIURL:         "http://localhost:8080",
		WSURL:          "ws://localhost:8080/ws",
		AppName:        "splashed",
		TokenKey:       "token",
		RequestTimeout: 5 * time.Second,
		DropLogEvery:   2 * time.Second,
	}

	Player = PlayerConfig{
		MaxSpeed:    20,
		TrailLength: 24,
		Radius:      40,
		NameOffset:  65,
		TrailWidth:  4,
		TrailFadeIn: 0.25,
	}

	Camera = CameraConfig{
		MinZoom:  0.6,
		MaxZoom:  1.0,
		GridSize: 96,
		GridLine: 2,
	}

	Input = InputConfig{
		RadiusFactor: 0.8,
	}

	Minimap = MinimapConfig{
		Radius: 100,
		Offset: 128,
		Scale:  1.0 / 800,
	}

	HUD = HUDConfig{
		ThrottleDiameter: 220,
		SpeedDiameter:    248,
		SpeedSegments:    16,
		SpeedRedFrom:     12,
		SegmentInterval:  0.16,
		ScoreOffsetX:     280,
		ScoreOffsetY:     40,
		TextSize:         16,
		FeedLines:        6,
		FeedTTL:          60 * 6,
		FeedX:            16,
		FeedY:            24,
	}

	Animation = AnimationConfig{
		ExplosionDiameter: 10,
		ExplosionGrowth:   12,
		ExplosionTicks:    45,
		SpriteFrameTicks:  1,
	}

	Debug = DebugConfig{
		Enabled:   false,
		LogLevel:  "info",
		PrettyLog: true,
	}
}
