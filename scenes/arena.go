package scenes

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/engine"
	"github.com/automoto/splashed/logging"
	"github.com/automoto/splashed/network"
	"github.com/automoto/splashed/render/ebitencanvas"
	"github.com/automoto/splashed/render/ggcanvas"
	"github.com/automoto/splashed/shared/messages"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi/ecs"
)

// ArenaScene runs one room session on top of the engine.
type ArenaScene struct {
	ecsWorld     *ecs.ECS
	sceneChanger SceneChanger
	services     *Services
	session      network.Session
	netClient    *network.Client
	engine       *engine.Engine
	canvas       *ebitencanvas.Canvas
	once         sync.Once
	log          zerolog.Logger

	fetching    bool
	initialized bool

	mu       sync.Mutex
	snapshot *messages.SnapshotEventData
	fetchErr error
	fetched  bool
}

func NewArenaScene(sc SceneChanger, services *Services, session network.Session) *ArenaScene {
	return &ArenaScene{
		sceneChanger: sc,
		services:     services,
		session:      session,
		log:          logging.For("arena").With().Str("room", session.RoomID).Logger(),
	}
}

func (s *ArenaScene) Update() {
	s.once.Do(s.configure)

	if s.netClient == nil {
		s.leave("Could not start the session")
		return
	}

	switch state := s.netClient.State(); state {
	case network.StateError:
		msg := "Connection lost"
		if err := s.netClient.LastError(); err != nil {
			msg = err.Error()
		}
		s.leave(msg)
		return
	case network.StateDisconnected:
		s.leave("Disconnected")
		return
	case network.StateConnected:
		if !s.fetching {
			s.fetching = true
			go s.fetchSnapshot()
		}
	}

	if !s.initialized {
		if err := s.bootstrap(); err != nil {
			s.log.Error().Err(err).Msg("bootstrap failed")
			s.leave("Could not load the room")
			return
		}
	}

	s.ecsWorld.Update()
}

func (s *ArenaScene) Draw(screen *ebiten.Image) {
	if s.ecsWorld == nil {
		screen.Fill(config.Background)
		return
	}
	s.ecsWorld.Draw(screen)
}

func (s *ArenaScene) configure() {
	client := network.NewClient()
	s.engine = engine.New(engine.Options{
		ClientID:      s.session.ClientID,
		Send:          client.Send,
		FetchSnapshot: s.takeSnapshot,
		Pointer:       cursor,
		Sprites:       s.services.Sprites,
		Sounds:        s.services.Sounds,
		Logger:        &s.log,
		Debug:         s.services.Debug,
	})

	s.ecsWorld = ecs.NewECS(s.engine.World())
	s.ecsWorld.AddSystem(s.updateEngine)
	s.ecsWorld.AddRenderer(layerDefault, s.drawEngine)

	if err := client.Connect(s.services.WSURL, s.session.Token); err != nil {
		s.log.Error().Err(err).Msg("connect failed")
		return
	}
	s.netClient = client
}

func (s *ArenaScene) updateEngine(_ *ecs.ECS) {
	for _, ev := range s.netClient.Drain() {
		s.engine.Receive(ev)
	}
	if !s.initialized {
		return
	}

	if pressed() {
		s.engine.Press()
	}
	if err := s.engine.Tick(); err != nil {
		s.log.Warn().Err(err).Msg("tick")
	}

	if s.services.Debug && inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		s.screenshot()
	}
}

func (s *ArenaScene) drawEngine(_ *ecs.ECS, screen *ebiten.Image) {
	b := screen.Bounds()
	s.engine.Resize(float64(b.Dx()), float64(b.Dy()))

	if s.canvas == nil {
		c, err := ebitencanvas.New(screen)
		if err != nil {
			s.log.Error().Err(err).Msg("canvas")
			return
		}
		s.canvas = c
	}
	s.canvas.Reset(screen)
	s.engine.Draw(s.canvas)
}

func (s *ArenaScene) fetchSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), config.Network.RequestTimeout)
	defer cancel()

	snapshot, err := s.services.API.FetchSnapshot(ctx)
	s.mu.Lock()
	s.snapshot, s.fetchErr, s.fetched = snapshot, err, true
	s.mu.Unlock()
}

// bootstrap runs Init on the game loop once the background fetch is back.
func (s *ArenaScene) bootstrap() error {
	s.mu.Lock()
	fetched := s.fetched
	s.mu.Unlock()
	if !fetched {
		return nil
	}
	if err := s.engine.Init(context.Background()); err != nil {
		return err
	}
	s.initialized = true
	s.log.Info().Int("entities", len(s.engine.Entities())).Msg("joined arena")
	return nil
}

func (s *ArenaScene) takeSnapshot(context.Context) (*messages.SnapshotEventData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, err := s.snapshot, s.fetchErr
	s.snapshot, s.fetchErr = nil, nil
	return snapshot, err
}

// screenshot renders the current frame headlessly and writes it to the
// working directory.
func (s *ArenaScene) screenshot() {
	c := ggcanvas.New(config.C.Width, config.C.Height)
	s.engine.Resize(float64(config.C.Width), float64(config.C.Height))
	s.engine.Draw(c)

	path := fmt.Sprintf("splashed-%s.png", time.Now().Format("20060102-150405"))
	if err := c.SavePNG(path); err != nil {
		s.log.Warn().Err(err).Msg("screenshot failed")
		return
	}
	s.log.Info().Str("path", path).Msg("saved screenshot")
}

func (s *ArenaScene) leave(status string) {
	if s.netClient != nil {
		s.log.Info().Int("dropped", s.netClient.Dropped()).Msg("leaving arena")
		s.netClient.Disconnect()
		s.netClient = nil
	}
	s.sceneChanger.ChangeScene(NewJoinScene(s.sceneChanger, s.services, status))
}

func cursor() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

func pressed() bool {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	return len(inpututil.AppendJustPressedTouchIDs(nil)) > 0
}
