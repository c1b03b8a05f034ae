package messages

// JoinRequest is posted to the room service to obtain a client id and token.
type JoinRequest struct {
	Username string `json:"username"`
	RoomID   string `json:"roomId,omitempty"`
}

// JoinResponse carries the identity used for the rest of the session.
type JoinResponse struct {
	ClientID EntityID `json:"clientId"`
	Token    string   `json:"token"`
}

// JoinEventData announces a player entering the room.
type JoinEventData struct {
	ID       EntityID `json:"id"`
	Username string   `json:"username"`
}

// QuitEventData announces a player leaving. The entity itself is removed
// through a later delta.
type QuitEventData struct {
	ID EntityID `json:"id"`
}

// InputEventData is sent every tick while the local player is alive.
// MouseX and MouseY are normalized to [-1, 1].
type InputEventData struct {
	ID           EntityID `json:"id"`
	MouseX       float64  `json:"mouseX"`
	MouseY       float64  `json:"mouseY"`
	MousePressed bool     `json:"mousePressed"`
}

// RespawnEventData requests a new player entity after death.
type RespawnEventData struct {
	ID EntityID `json:"id"`
}
