package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/entities"
	"github.com/automoto/splashed/render"
	"github.com/automoto/splashed/render/rendertest"
	"github.com/automoto/splashed/shared/geometry"
	"github.com/automoto/splashed/shared/messages"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const me messages.EntityID = "me"

type harness struct {
	*Engine
	sent   []messages.Event
	played []string
	px, py float64
}

type soundLog struct{ h *harness }

func (s soundLog) Play(name string) { s.h.played = append(s.h.played, name) }

func newHarness(t *testing.T, snapshot *messages.SnapshotEventData) *harness {
	t.Helper()
	h := &harness{}
	nop := zerolog.Nop()
	h.Engine = New(Options{
		ClientID: me,
		Send:     func(ev messages.Event) { h.sent = append(h.sent, ev) },
		FetchSnapshot: func(context.Context) (*messages.SnapshotEventData, error) {
			return snapshot, nil
		},
		Pointer: func() (float64, float64) { return h.px, h.py },
		Sounds:  soundLog{h: h},
		Logger:  &nop,
	})
	h.Resize(1280, 720)
	h.px, h.py = 640, 360
	require.NoError(t, h.Init(context.Background()))
	return h
}

func vec(x, y float64) *geometry.Vector {
	v := geometry.NewVector(x, y)
	return &v
}

func rot(r float64) *float64 { return &r }

func playerData(id messages.EntityID, x, y float64, score uint32) messages.EntityData {
	return messages.EntityData{
		ID: id, Type: messages.EntityPlayer,
		Position: vec(x, y), Velocity: vec(0, 0), Rotation: rot(0),
		Player: &messages.PlayerData{Username: string(id), Score: score},
	}
}

func snapshotWithMe() *messages.SnapshotEventData {
	return &messages.SnapshotEventData{Timestamp: 1, Entities: []messages.EntityData{playerData(me, 0, 0, 0)}}
}

func delta(ts uint64, updated []messages.EntityData, removed ...messages.EntityID) messages.Event {
	return messages.NewDeltaEvent(messages.DeltaEventData{Timestamp: ts, Updated: updated, Removed: removed})
}

func TestInitSyncsSnapshotAndStartsTrail(t *testing.T) {
	h := newHarness(t, snapshotWithMe())

	assert.True(t, h.Alive())
	_, ok := h.Entities().Player(me)
	assert.True(t, ok)
	assert.Equal(t, 1, h.World().Len(), "trail handle")
}

func TestInitPropagatesFetchErrors(t *testing.T) {
	boom := errors.New("boom")
	nop := zerolog.Nop()
	e := New(Options{
		ClientID: me,
		Logger:   &nop,
		FetchSnapshot: func(context.Context) (*messages.SnapshotEventData, error) {
			return nil, boom
		},
	})
	assert.ErrorIs(t, e.Init(context.Background()), boom)
}

func TestInitWithNullSnapshot(t *testing.T) {
	h := newHarness(t, nil)
	assert.False(t, h.Alive())
	assert.Empty(t, h.Entities())
}

func TestTickSendsInputWhileAlive(t *testing.T) {
	h := newHarness(t, snapshotWithMe())
	h.px = 1280

	require.NoError(t, h.Tick())
	require.Len(t, h.sent, 1)
	ev := h.sent[0]
	require.Equal(t, messages.EventInput, ev.Type)
	assert.Equal(t, me, ev.Input.ID)
	assert.InDelta(t, 1, ev.Input.MouseX, 1e-9)
	assert.InDelta(t, 0, ev.Input.MouseY, 1e-9)
	assert.False(t, ev.Input.MousePressed)

	h.Press()
	require.NoError(t, h.Tick())
	require.Len(t, h.sent, 2)
	assert.True(t, h.sent[1].Input.MousePressed)
	assert.Equal(t, []string{config.SoundShoot}, h.played)
}

func TestTickWhileDeadOnlySendsRespawnOnPress(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, h.Tick())
	assert.Empty(t, h.sent)

	h.Press()
	require.NoError(t, h.Tick())
	require.Len(t, h.sent, 1)
	assert.Equal(t, messages.NewRespawnEvent(me), h.sent[0])
	assert.Empty(t, h.played)
}

func TestLocalPlayerRemovalAndRevive(t *testing.T) {
	h := newHarness(t, snapshotWithMe())
	h.Receive(delta(2, nil, me))
	require.NoError(t, h.Tick())

	assert.False(t, h.Alive())
	p, ok := h.Entities().Player(me)
	require.True(t, ok, "local player stays in the map")
	assert.True(t, p.Destroyed())
	assert.Equal(t, []string{entities.ExplosionBig}, h.played)
	assert.Equal(t, 2, h.World().Len(), "trail and explosion")
	assert.Empty(t, h.sent, "no press, no respawn")

	rec := rendertest.New(1280, 720)
	h.Draw(rec)
	assert.Contains(t, rec.Texts(), "click to respawn")
	assert.NotContains(t, rec.Texts(), string(me))

	h.Receive(delta(3, []messages.EntityData{playerData(me, 5, 5, 0)}))
	require.NoError(t, h.Tick())
	assert.True(t, h.Alive())
	assert.Same(t, p, h.Entities()[me])
	assert.Equal(t, 1, p.Trail.Len())
}

func TestScoreCueOnlyForLocalPlayer(t *testing.T) {
	h := newHarness(t, snapshotWithMe())
	h.Receive(delta(2, []messages.EntityData{playerData("other", 10, 10, 0)}))
	require.NoError(t, h.Tick())

	h.Receive(delta(3, []messages.EntityData{playerData(me, 0, 0, 1), playerData("other", 10, 10, 4)}))
	require.NoError(t, h.Tick())
	assert.Equal(t, []string{config.SoundScore}, h.played)
}

func TestTickReturnsConstructionErrors(t *testing.T) {
	h := newHarness(t, snapshotWithMe())
	bad := messages.EntityData{ID: "x", Type: messages.EntityPowerup}
	h.Receive(delta(2, []messages.EntityData{bad, playerData("ok", 1, 1, 0)}))

	err := h.Tick()
	assert.ErrorIs(t, err, entities.ErrSchema)
	assert.Contains(t, h.Entities(), messages.EntityID("ok"))
	assert.Len(t, h.sent, 1, "input still sent")
}

func TestJoinQuitFeed(t *testing.T) {
	h := newHarness(t, nil)
	h.Receive(messages.NewJoinEvent(messages.JoinEventData{ID: "b", Username: "bob"}))
	h.Receive(messages.NewQuitEvent("b"))
	h.Receive(messages.NewQuitEvent("ghost"))
	assert.Equal(t, []string{"bob joined", "bob left", "ghost left"}, h.Feed())

	rec := rendertest.New(1280, 720)
	h.Draw(rec)
	assert.Contains(t, rec.Texts(), "bob joined")
}

func TestOutboundEventsIgnored(t *testing.T) {
	h := newHarness(t, snapshotWithMe())
	h.Receive(messages.NewInputEvent(messages.InputEventData{ID: "x"}))
	h.Receive(messages.NewRespawnEvent("x"))
	assert.Len(t, h.Entities(), 1)
	assert.Empty(t, h.Feed())
}

func TestSnapshotEventSyncsImmediately(t *testing.T) {
	h := newHarness(t, nil)
	h.Receive(messages.NewSnapshotEvent(*snapshotWithMe()))
	assert.True(t, h.Alive())
}

func TestDrawLayerOrder(t *testing.T) {
	h := newHarness(t, snapshotWithMe())
	h.Receive(delta(2, []messages.EntityData{playerData(me, 10, 0, 0)}))
	require.NoError(t, h.Tick())

	rec := rendertest.New(1280, 720)
	h.Draw(rec)
	require.True(t, rec.Balanced())
	require.Equal(t, "clear", rec.Ops[0].Name)
	assert.NotContains(t, rec.Texts(), "click to respawn")

	var trail, name, score = -1, -1, -1
	for i, op := range rec.Ops {
		switch {
		case op.Name == "line" && op.Style.Stroke == render.WithAlpha(config.Trail, 0) && trail < 0:
			trail = i
		case op.Name == "text" && op.Text == string(me):
			name = i
		case op.Name == "text" && op.Text == "score: 0":
			score = i
		}
	}
	require.GreaterOrEqual(t, trail, 0)
	assert.Less(t, trail, name, "trails under entities")
	assert.Less(t, name, score, "HUD over world")
}
