package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/clipedit/clipedit/editor"
	"github.com/clipedit/clipedit/inline"
	"github.com/clipedit/clipedit/playback"
)

// MessageType names the payload carried by a Message.
type MessageType string

const (
	MessageTypeHello    MessageType = "hello"
	MessageTypeStep     MessageType = "step"
	MessageTypeLoad     MessageType = "load"
	MessageTypeNative   MessageType = "native"
	MessageTypeBar      MessageType = "bar"
	MessageTypePing     MessageType = "ping"
	MessageTypePong     MessageType = "pong"
	MessageTypeSnapshot MessageType = "snapshot"
	MessageTypeSurface  MessageType = "surface"
	MessageTypeError    MessageType = "error"
)

// Message is the wire envelope in both directions.
type Message struct {
	ReceivedAt time.Time   `json:"-"`
	Type       MessageType `json:"type"`
	Payload    any         `json:"payload,omitempty"`
}

type receivedMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HelloMessage greets a new connection.
type HelloMessage struct {
	Session  string            `json:"session"`
	Ops      []string          `json:"ops"`
	Snapshot playback.Snapshot `json:"snapshot"`
}

// NativeMessage reports a pause or resume issued by the client's player.
type NativeMessage struct {
	Paused bool `json:"paused"`
}

type PingMessage struct {
	Timestamp float64 `json:"sendtime"`
}

type PongMessage struct {
	Timestamp float64 `json:"sendtime"`
	SvcTime   float64 `json:"servicetime"`
}

type ErrorMessage struct {
	Error string `json:"error"`
	Op    string `json:"op,omitempty"`
}

// Deserialise decodes a client message, typing its payload by m.Type.
func Deserialise(data []byte, m *Message) error {
	var rm receivedMessage
	if err := json.Unmarshal(data, &rm); err != nil {
		return err
	}

	m.ReceivedAt = time.Now()
	m.Type = rm.Type

	var err error
	switch m.Type {
	case MessageTypeStep:
		var p editor.Step
		err = unmarshalPayload(rm.Payload, &p)
		m.Payload = &p
	case MessageTypeLoad:
		var p inline.Media
		err = unmarshalPayload(rm.Payload, &p)
		m.Payload = &p
	case MessageTypeNative:
		var p NativeMessage
		err = unmarshalPayload(rm.Payload, &p)
		m.Payload = &p
	case MessageTypeBar:
		var p playback.Bar
		err = unmarshalPayload(rm.Payload, &p)
		m.Payload = &p
	case MessageTypePing:
		var p PingMessage
		err = unmarshalPayload(rm.Payload, &p)
		m.Payload = &p
	default:
		return fmt.Errorf("unsupported message type %q", rm.Type)
	}

	return err
}

func unmarshalPayload(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
