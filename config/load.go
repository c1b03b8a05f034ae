package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// SPLASHED_NETWORK_APIURL.
const EnvPrefix = "SPLASHED"

// Load overlays an optional config file and SPLASHED_* environment
// variables onto the package-level configuration. An empty path skips the
// file. Keys not present keep their current values.
func Load(path string) error {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	apply(v)
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("window.width", C.Width)
	v.SetDefault("window.height", C.Height)
	v.SetDefault("window.title", C.Title)
	v.SetDefault("window.tps", C.TPS)

	v.SetDefault("network.apiUrl", Network.APIURL)
	v.SetDefault("network.wsUrl", Network.WSURL)
	v.SetDefault("network.appName", Network.AppName)
	v.SetDefault("network.tokenKey", Network.TokenKey)
	v.SetDefault("network.requestTimeout", Network.RequestTimeout)
	v.SetDefault("network.dropLogEvery", Network.DropLogEvery)

	v.SetDefault("player.maxSpeed", Player.MaxSpeed)
	v.SetDefault("player.trailLength", Player.TrailLength)

	v.SetDefault("camera.minZoom", Camera.MinZoom)
	v.SetDefault("camera.maxZoom", Camera.MaxZoom)
	v.SetDefault("camera.gridSize", Camera.GridSize)

	v.SetDefault("input.radiusFactor", Input.RadiusFactor)

	v.SetDefault("hud.feedLines", HUD.FeedLines)
	v.SetDefault("hud.feedTTL", HUD.FeedTTL)

	v.SetDefault("audio.volume", Audio.DefaultSFXVol)

	v.SetDefault("debug.enabled", Debug.Enabled)
	v.SetDefault("debug.logLevel", Debug.LogLevel)
	v.SetDefault("debug.prettyLog", Debug.PrettyLog)
}

func apply(v *viper.Viper) {
	C.Width = v.GetInt("window.width")
	C.Height = v.GetInt("window.height")
	C.Title = v.GetString("window.title")
	C.TPS = v.GetInt("window.tps")

	Network.APIURL = strings.TrimRight(v.GetString("network.apiUrl"), "/")
	Network.WSURL = v.GetString("network.wsUrl")
	Network.AppName = v.GetString("network.appName")
	Network.TokenKey = v.GetString("network.tokenKey")
	Network.RequestTimeout = v.GetDuration("network.requestTimeout")
	Network.DropLogEvery = v.GetDuration("network.dropLogEvery")

	Player.MaxSpeed = v.GetFloat64("player.maxSpeed")
	Player.TrailLength = v.GetInt("player.trailLength")

	Camera.MinZoom = v.GetFloat64("camera.minZoom")
	Camera.MaxZoom = v.GetFloat64("camera.maxZoom")
	Camera.GridSize = v.GetFloat64("camera.gridSize")

	Input.RadiusFactor = v.GetFloat64("input.radiusFactor")

	HUD.FeedLines = v.GetInt("hud.feedLines")
	HUD.FeedTTL = v.GetInt("hud.feedTTL")

	Audio.DefaultSFXVol = v.GetFloat64("audio.volume")

	Debug.Enabled = v.GetBool("debug.enabled")
	Debug.LogLevel = v.GetString("debug.logLevel")
	Debug.PrettyLog = v.GetBool("debug.prettyLog")
}
