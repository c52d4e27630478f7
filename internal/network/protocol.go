// Package network streams device state to WebSocket clients and feeds their
// button actions back into a session.
package network

// MessageType tags every outgoing message.
type MessageType string

const (
	MessageFrame MessageType = "FRAME"
	MessageEvent MessageType = "EVENT"
	MessageSong  MessageType = "SONG"
	// MessageError goes only to the client whose action was rejected.
	MessageError MessageType = "ERROR"
)

// Message is the envelope for everything the hub sends.
type Message struct {
	Type MessageType `json:"type"`
	Data interface{} `json:"data"`
}

// ActionType is what a client asks the device to do.
type ActionType string

const (
	// ActionPress holds a button for exactly one tick.
	ActionPress     ActionType = "PRESS"
	ActionHold      ActionType = "HOLD"
	ActionRelease   ActionType = "RELEASE"
	ActionTimeScale ActionType = "TIME_SCALE"
)

// PlayerAction represents an incoming command from a client.
type PlayerAction struct {
	Type   ActionType `json:"type"`
	Button string     `json:"button,omitempty"` // "LEFT", "MIDDLE", "RIGHT"
	Scale  float32    `json:"scale,omitempty"`
}

// ActionHandler applies client actions to a running device.
type ActionHandler interface {
	HandleAction(action PlayerAction) error
}
