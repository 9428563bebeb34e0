package ws

import "encoding/json"

// Incoming message types
const (
	MsgPointerDown  = "pointer_down"
	MsgPointerMove  = "pointer_move"
	MsgPointerUp    = "pointer_up"
	MsgPlaceCueBall = "place_cue_ball"
	MsgPing         = "ping"
)

// Outgoing message types
const (
	MsgState = "state"
	MsgEvent = "event"
	MsgError = "error"
	MsgPong  = "pong"
)

// WSMessage is a message from the browser.
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// PointerData is a pointer position already in table coordinates.
type PointerData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OutMessage is a message to the browser.
type OutMessage struct {
	Type    string      `json:"type"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}
