package config

// Sound names shared by the removal animation policy, player cues and the
// sound bank.
const (
	SoundExplosionBig   = "explosionBig"
	SoundExplosionSmall = "explosionSmall"
	SoundPickup         = "pickup"
	SoundShoot          = "shoot"
	SoundScore          = "score"
)

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int
	DefaultSFXVol float64
}

// SoundConfig maps sound names to file paths
type SoundConfig struct {
	SFXPaths          map[string]string
	VolumeMultipliers map[string]float64
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:    44100,
		DefaultSFXVol: 0.8,
	}

	Sound = SoundConfig{
		SFXPaths: map[string]string{
			SoundExplosionBig:   "audio/explosionBig.wav",
			SoundExplosionSmall: "audio/explosionSmall.wav",
			SoundPickup:         "audio/pickup.wav",
			SoundShoot:          "audio/shoot.wav",
			SoundScore:          "audio/score.wav",
		},
		VolumeMultipliers: map[string]float64{
			SoundShoot: 0.5,
		},
	}
}
