package abilities

import (
	"math/bits"
	"strings"
)

// Flag is a bitmask of power-up effects. A powerup carries exactly one bit;
// a player may carry several when buffs stack.
type Flag uint32

const (
	None      Flag = 0
	Multishot Flag = 1 << 1
	WideBeam  Flag = 1 << 2
	Shield    Flag = 1 << 3
)

// Known lists every ability in bit order.
var Known = []Flag{Multishot, WideBeam, Shield}

var names = map[Flag]string{
	Multishot: "multishot",
	WideBeam:  "wide",
	Shield:    "shield",
}

// IsActive reports whether ability is set in flags.
func IsActive(flags, ability Flag) bool {
	return flags&ability != 0
}

// Single reports whether exactly one bit is set.
func Single(flag Flag) bool {
	return bits.OnesCount32(uint32(flag)) == 1
}

// Name returns the sprite/sound name for a single known ability.
// Composite or unknown flags return false.
func Name(flag Flag) (string, bool) {
	name, ok := names[flag]
	return name, ok
}

// Split returns the known abilities set in flags, in bit order.
func Split(flags Flag) []Flag {
	var out []Flag
	for _, f := range Known {
		if IsActive(flags, f) {
			out = append(out, f)
		}
	}
	return out
}

func (f Flag) String() string {
	if f == None {
		return "none"
	}
	if name, ok := Name(f); ok {
		return name
	}
	parts := make([]string, 0, len(Known))
	for _, k := range Split(f) {
		parts = append(parts, names[k])
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "+")
}
