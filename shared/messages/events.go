package messages

import (
	"errors"
	"fmt"
)

// EventType identifies which payload an Event carries.
type EventType int

const (
	EventJoin EventType = iota
	EventQuit
	EventInput
	EventRespawn
	EventDelta
	EventSnapshot
)

var eventTypeNames = map[EventType]string{
	EventJoin:     "join",
	EventQuit:     "quit",
	EventInput:    "input",
	EventRespawn:  "respawn",
	EventDelta:    "delta",
	EventSnapshot: "snapshot",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

func (t EventType) MarshalText() ([]byte, error) {
	name, ok := eventTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: event type %d", ErrEnum, int(t))
	}
	return []byte(name), nil
}

func (t *EventType) UnmarshalText(b []byte) error {
	for k, name := range eventTypeNames {
		if name == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("%w: event type %q", ErrEnum, b)
}

// ErrPayload is returned by Validate when the payload does not match Type.
var ErrPayload = errors.New("event payload mismatch")

// DeltaEventData is a timestamped partial update.
type DeltaEventData struct {
	Timestamp uint64       `json:"timestamp"`
	Updated   []EntityData `json:"updated"`
	Removed   []EntityID   `json:"removed"`
}

// SnapshotEventData is a full listing used to bootstrap local state.
type SnapshotEventData struct {
	Timestamp uint64       `json:"timestamp"`
	Entities  []EntityData `json:"entities"`
}

// Event is a one-of envelope; exactly the payload named by Type is set.
type Event struct {
	Type     EventType          `json:"type"`
	Join     *JoinEventData     `json:"join,omitempty"`
	Quit     *QuitEventData     `json:"quit,omitempty"`
	Input    *InputEventData    `json:"input,omitempty"`
	Respawn  *RespawnEventData  `json:"respawn,omitempty"`
	Delta    *DeltaEventData    `json:"delta,omitempty"`
	Snapshot *SnapshotEventData `json:"snapshot,omitempty"`
}

func NewInputEvent(data InputEventData) Event {
	return Event{Type: EventInput, Input: &data}
}

func NewRespawnEvent(id EntityID) Event {
	return Event{Type: EventRespawn, Respawn: &RespawnEventData{ID: id}}
}

func NewDeltaEvent(data DeltaEventData) Event {
	return Event{Type: EventDelta, Delta: &data}
}

func NewSnapshotEvent(data SnapshotEventData) Event {
	return Event{Type: EventSnapshot, Snapshot: &data}
}

func NewJoinEvent(data JoinEventData) Event {
	return Event{Type: EventJoin, Join: &data}
}

func NewQuitEvent(id EntityID) Event {
	return Event{Type: EventQuit, Quit: &QuitEventData{ID: id}}
}

// Validate checks that exactly the payload matching Type is present.
func (e Event) Validate() error {
	set := 0
	for _, p := range []bool{
		e.Join != nil, e.Quit != nil, e.Input != nil,
		e.Respawn != nil, e.Delta != nil, e.Snapshot != nil,
	} {
		if p {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("%s event with %d payloads: %w", e.Type, set, ErrPayload)
	}

	var ok bool
	switch e.Type {
	case EventJoin:
		ok = e.Join != nil
	case EventQuit:
		ok = e.Quit != nil
	case EventInput:
		ok = e.Input != nil
	case EventRespawn:
		ok = e.Respawn != nil
	case EventDelta:
		ok = e.Delta != nil
	case EventSnapshot:
		ok = e.Snapshot != nil
	default:
		return fmt.Errorf("event type %d: %w", e.Type, ErrPayload)
	}
	if !ok {
		return fmt.Errorf("%s event with wrong payload: %w", e.Type, ErrPayload)
	}
	return nil
}
