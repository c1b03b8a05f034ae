package tags

import "github.com/yohamta/donburi"

// Animation layers. Background animations draw under the entities,
// foreground animations over them.
var (
	Background = donburi.NewTag().SetName("Background")
	Foreground = donburi.NewTag().SetName("Foreground")
)
