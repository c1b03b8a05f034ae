// Package engine drives one arena session: it buffers inbound server events,
// reconciles them into the entity map once per tick, sends the local input
// and draws the frame.
//
// An Engine is not safe for concurrent use. Receive, Press, Tick and Draw
// must be called from the same goroutine.
package engine

import (
	"context"
	"fmt"

	"github.com/automoto/splashed/camera"
	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/entities"
	"github.com/automoto/splashed/input"
	"github.com/automoto/splashed/logging"
	"github.com/automoto/splashed/reconcile"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
	"github.com/automoto/splashed/systems"
	"github.com/rs/zerolog"
	"github.com/yohamta/donburi"
)

// Sprites provides image frames for animations and players.
type Sprites interface {
	Frames(name string) []render.Image
	PlayerSprite(username string) render.Image
}

// Sounds plays named clips.
type Sounds interface {
	Play(name string)
}

type Options struct {
	ClientID messages.EntityID
	// Send delivers an outbound event. It must not block.
	Send          func(messages.Event)
	FetchSnapshot func(ctx context.Context) (*messages.SnapshotEventData, error)
	// Pointer returns the cursor position in screen pixels.
	Pointer func() (x, y float64)
	Sprites Sprites
	Sounds  Sounds
	// Logger defaults to logging.For("engine").
	Logger *zerolog.Logger
	Debug  bool
}

type Engine struct {
	clientID messages.EntityID
	send     func(messages.Event)
	fetch    func(ctx context.Context) (*messages.SnapshotEventData, error)
	pointer  func() (float64, float64)
	sprites  Sprites
	sounds   Sounds
	log      zerolog.Logger
	debug    bool

	world      donburi.World
	entities   entities.Map
	reconciler *reconcile.Reconciler
	pending    *reconcile.Delta
	input      input.State
	camera     camera.Config
	viewport   camera.Viewport
	feed       *Feed
	names      map[messages.EntityID]string
}

func New(opts Options) *Engine {
	e := &Engine{
		clientID: opts.ClientID,
		send:     opts.Send,
		fetch:    opts.FetchSnapshot,
		pointer:  opts.Pointer,
		sprites:  opts.Sprites,
		sounds:   opts.Sounds,
		debug:    opts.Debug,
		world:    donburi.NewWorld(),
		entities: entities.Map{},
		pending:  reconcile.NewDelta(),
		camera:   camera.New(),
		viewport: camera.Viewport{Width: float64(config.C.Width), Height: float64(config.C.Height)},
		feed:     NewFeed(config.HUD.FeedLines, config.HUD.FeedTTL),
		names:    map[messages.EntityID]string{},
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	} else {
		e.log = logging.For("engine")
	}
	if e.send == nil {
		e.send = func(messages.Event) {}
	}
	if e.sprites == nil {
		e.sprites = noSprites{}
	}
	if e.sounds == nil {
		e.sounds = noSounds{}
	}

	e.reconciler = reconcile.New(e.clientID, e.entities)
	e.reconciler.Culled = func(p geometry.Vector) bool {
		return camera.Culled(e.camera, e.viewport, p)
	}
	e.reconciler.Effects = effects{e: e}
	return e
}

// Init fetches the current room state and syncs it. Fetch failures are
// returned; entity errors in the snapshot are logged.
func (e *Engine) Init(ctx context.Context) error {
	if e.fetch == nil {
		return nil
	}
	snapshot, err := e.fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}
	e.sync(snapshot)
	return nil
}

// Receive handles one inbound event. Deltas are buffered until the next
// Tick; snapshots are applied immediately.
func (e *Engine) Receive(ev messages.Event) {
	switch ev.Type {
	case messages.EventDelta:
		e.pending.Merge(ev.Delta)
	case messages.EventSnapshot:
		e.sync(ev.Snapshot)
	case messages.EventJoin:
		if ev.Join == nil {
			return
		}
		e.names[ev.Join.ID] = ev.Join.Username
		e.feed.Push(ev.Join.Username + " joined")
		e.log.Info().Str("id", string(ev.Join.ID)).Str("username", ev.Join.Username).Msg("player joined")
	case messages.EventQuit:
		if ev.Quit == nil {
			return
		}
		name := e.nameOf(ev.Quit.ID)
		delete(e.names, ev.Quit.ID)
		e.feed.Push(name + " left")
		e.log.Info().Str("id", string(ev.Quit.ID)).Str("username", name).Msg("player quit")
	default:
		e.log.Debug().Stringer("type", ev.Type).Msg("ignoring event")
	}
}

// Press records a click for the next Tick.
func (e *Engine) Press() {
	e.input.Press()
}

// Resize updates the viewport used for steering, culling and drawing.
func (e *Engine) Resize(width, height float64) {
	e.viewport = camera.Viewport{Width: width, Height: height}
}

// Tick applies the pending delta, sends at most one input event, moves the
// camera and advances animations. Entity construction errors from the delta
// are returned after the rest of the tick has run.
func (e *Engine) Tick() error {
	err := e.reconciler.Apply(e.pending)

	alive := e.Alive()
	if alive && e.pointer != nil {
		x, y := e.pointer()
		e.input.Move(x, y, e.viewport)
	}
	if ev, shot := e.input.Step(e.clientID, alive); ev != nil {
		e.send(*ev)
		if shot {
			e.sounds.Play(config.SoundShoot)
		}
	}

	if p, ok := e.entities.Player(e.clientID); ok && alive {
		camera.Follow(&e.camera, p.Position(), p.Velocity())
	}

	systems.UpdateAnimations(e.world, e.entities)
	e.feed.Step()

	if err != nil {
		return fmt.Errorf("apply delta: %w", err)
	}
	return nil
}

// Draw renders the frame. World-space layers are drawn under the camera
// transform, the minimap and HUD in screen space.
func (e *Engine) Draw(c render.Canvas) {
	c.Push()
	camera.Center(c, e.camera, e.viewport)
	systems.DrawBackground(c, e.camera, e.viewport)
	systems.DrawBackgroundAnimations(e.world, c, e.entities)
	systems.DrawEntities(c, e.entities, e.camera, e.viewport, e.debug)
	systems.DrawForegroundAnimations(e.world, c)
	c.Pop()

	systems.DrawMinimap(c, e.entities, e.camera, e.viewport, e.clientID)

	var local *entities.Player
	if p, ok := e.entities.Player(e.clientID); ok {
		local = p
	}
	systems.DrawHUD(c, local, e.input.Throttle(), e.viewport)
	systems.DrawFeed(c, e.feed.Lines())

	if !e.Alive() {
		systems.DrawRespawnPrompt(c, e.viewport)
	}
}

// Alive reports whether the local player is present and not destroyed.
func (e *Engine) Alive() bool {
	p, ok := e.entities.Player(e.clientID)
	return ok && !p.Destroyed()
}

// World is the animation registry. Hosts may run their own systems over it.
func (e *Engine) World() donburi.World {
	return e.world
}

func (e *Engine) Entities() entities.Map {
	return e.entities
}

func (e *Engine) Camera() camera.Config {
	return e.camera
}

func (e *Engine) Feed() []string {
	return e.feed.Lines()
}

func (e *Engine) sync(snapshot *messages.SnapshotEventData) {
	if err := e.reconciler.Sync(snapshot); err != nil {
		e.log.Warn().Err(err).Msg("snapshot contained invalid entities")
	}
}

func (e *Engine) nameOf(id messages.EntityID) string {
	if name, ok := e.names[id]; ok {
		return name
	}
	if p, ok := e.entities.Player(id); ok && p.Username != "" {
		return p.Username
	}
	return string(id)
}

type noSprites struct{}

func (noSprites) Frames(string) []render.Image     { return nil }
func (noSprites) PlayerSprite(string) render.Image { return nil }

type noSounds struct{}

func (noSounds) Play(string) {}
