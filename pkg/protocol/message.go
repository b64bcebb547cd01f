// Package protocol defines the messages exchanged between typeracer clients and
// the server, and their JSON wire format.
//
// Every message is a single JSON object whose "messageType" field names the
// concrete message; the remaining fields are the message payload:
//
//	{"messageType":"HandshakeRequest","playerName":"ada"}
//
// Over TCP, messages are separated by a newline. Over WebSocket, each text
// frame carries exactly one message.
package protocol

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// MessageType is the discriminator carried in the "messageType" field.
type MessageType string

const (
	TypeHandshakeRequest     MessageType = "HandshakeRequest"
	TypeCreateSessionRequest MessageType = "CreateSessionRequest"
	TypeJoinSessionRequest   MessageType = "JoinSessionRequest"
	TypeLeaveSessionRequest  MessageType = "LeaveSessionRequest"
	TypeReadyRequest         MessageType = "ReadyRequest"
	TypeCharacterRequest     MessageType = "CharacterRequest"
	TypeJoinLobbyRequest     MessageType = "JoinLobbyRequest"
	TypeJoinGameRequest      MessageType = "JoinGameRequest"

	TypeHandshakeResponse        MessageType = "HandshakeResponse"
	TypeCreateSessionResponse    MessageType = "CreateSessionResponse"
	TypeJoinSessionResponse      MessageType = "JoinSessionResponse"
	TypeJoinLobbyResponse        MessageType = "JoinLobbyResponse"
	TypeJoinGameResponse         MessageType = "JoinGameResponse"
	TypeLeaveSessionResponse     MessageType = "LeaveSessionResponse"
	TypeReadyResponse            MessageType = "ReadyResponse"
	TypeCharacterResponse        MessageType = "CharacterResponse"
	TypeGameStateNotification    MessageType = "GameStateNotification"
	TypeTextNotification         MessageType = "TextNotification"
	TypePlayerJoinedNotification MessageType = "PlayerJoinedNotification"
	TypePlayerLeftNotification   MessageType = "PlayerLeftNotification"
	TypePlayerUpdateNotification MessageType = "PlayerUpdateNotification"
	TypePlayerStateNotification  MessageType = "PlayerStateNotification"
)

// Message is implemented by every request, response and notification in this
// package. The set is closed: the codec only knows the registered types.
type Message interface {
	// Type returns the value written to the "messageType" field.
	Type() MessageType

	encodeFields(e *jx.Encoder)
	decodeField(d *jx.Decoder, key string) error
}

// registry maps a discriminator to a constructor of an empty message.
var registry = map[MessageType]func() Message{ //nolint: gochecknoglobals
	TypeHandshakeRequest:     func() Message { return &HandshakeRequest{} },
	TypeCreateSessionRequest: func() Message { return &CreateSessionRequest{} },
	TypeJoinSessionRequest:   func() Message { return &JoinSessionRequest{} },
	TypeLeaveSessionRequest:  func() Message { return &LeaveSessionRequest{} },
	TypeReadyRequest:         func() Message { return &ReadyRequest{} },
	TypeCharacterRequest:     func() Message { return &CharacterRequest{} },
	TypeJoinLobbyRequest:     func() Message { return &JoinLobbyRequest{} },
	TypeJoinGameRequest:      func() Message { return &JoinGameRequest{} },

	TypeHandshakeResponse:        func() Message { return &HandshakeResponse{} },
	TypeCreateSessionResponse:    func() Message { return &CreateSessionResponse{} },
	TypeJoinSessionResponse:      func() Message { return &JoinSessionResponse{} },
	TypeJoinLobbyResponse:        func() Message { return &JoinLobbyResponse{} },
	TypeJoinGameResponse:         func() Message { return &JoinGameResponse{} },
	TypeLeaveSessionResponse:     func() Message { return &LeaveSessionResponse{} },
	TypeReadyResponse:            func() Message { return &ReadyResponse{} },
	TypeCharacterResponse:        func() Message { return &CharacterResponse{} },
	TypeGameStateNotification:    func() Message { return &GameStateNotification{} },
	TypeTextNotification:         func() Message { return &TextNotification{} },
	TypePlayerJoinedNotification: func() Message { return &PlayerJoinedNotification{} },
	TypePlayerLeftNotification:   func() Message { return &PlayerLeftNotification{} },
	TypePlayerUpdateNotification: func() Message { return &PlayerUpdateNotification{} },
	TypePlayerStateNotification:  func() Message { return &PlayerStateNotification{} },
}

// Known reports whether t names a registered message.
func Known(t MessageType) bool {
	_, ok := registry[t]

	return ok
}

func decodeString[T ~string](d *jx.Decoder, dst *T, field string) error {
	v, err := d.Str()
	if err != nil {
		return errors.Wrapf(err, "decode field %q", field)
	}
	*dst = T(v)

	return nil
}

func decodeInt(d *jx.Decoder, dst *int, field string) error {
	v, err := d.Int()
	if err != nil {
		return errors.Wrapf(err, "decode field %q", field)
	}
	*dst = v

	return nil
}

func decodeFloat(d *jx.Decoder, dst *float64, field string) error {
	v, err := d.Float64()
	if err != nil {
		return errors.Wrapf(err, "decode field %q", field)
	}
	*dst = v

	return nil
}

func decodeBool(d *jx.Decoder, dst *bool, field string) error {
	v, err := d.Bool()
	if err != nil {
		return errors.Wrapf(err, "decode field %q", field)
	}
	*dst = v

	return nil
}
