package scenes

import (
	"github.com/automoto/splashed/engine"
	"github.com/automoto/splashed/network"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi/ecs"
)

const layerDefault ecs.LayerID = iota

type Scene interface {
	Update()
	Draw(screen *ebiten.Image)
}

type SceneChanger interface {
	ChangeScene(scene Scene)
}

// Services are the long-lived collaborators shared by every scene.
type Services struct {
	API     *network.API
	Tokens  network.TokenStore
	WSURL   string
	Sprites engine.Sprites
	Sounds  engine.Sounds
	// Resume rejoins with a stored token instead of showing the form.
	Resume bool
	Debug  bool
}
