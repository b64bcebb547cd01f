package protocol

import (
	"unicode/utf8"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// ErrInvalidCharacter is returned when a CharacterRequest does not carry exactly one character.
var ErrInvalidCharacter = errors.New("character must be a single rune")

// HandshakeRequest introduces the client with the name it wants to play under.
type HandshakeRequest struct {
	PlayerName string
}

func (*HandshakeRequest) Type() MessageType { return TypeHandshakeRequest }

func (m *HandshakeRequest) encodeFields(e *jx.Encoder) {
	e.FieldStart("playerName")
	e.Str(m.PlayerName)
}

func (m *HandshakeRequest) decodeField(d *jx.Decoder, key string) error {
	if key == "playerName" {
		return decodeString(d, &m.PlayerName, key)
	}

	return d.Skip()
}

// CreateSessionRequest asks the server to open a new session.
type CreateSessionRequest struct{}

func (*CreateSessionRequest) Type() MessageType { return TypeCreateSessionRequest }

func (*CreateSessionRequest) encodeFields(*jx.Encoder) {}

func (*CreateSessionRequest) decodeField(d *jx.Decoder, _ string) error { return d.Skip() }

// JoinSessionRequest asks to join the session with the given id.
type JoinSessionRequest struct {
	SessionID int
}

func (*JoinSessionRequest) Type() MessageType { return TypeJoinSessionRequest }

func (m *JoinSessionRequest) encodeFields(e *jx.Encoder) {
	e.FieldStart("sessionId")
	e.Int(m.SessionID)
}

func (m *JoinSessionRequest) decodeField(d *jx.Decoder, key string) error {
	if key == "sessionId" {
		return decodeInt(d, &m.SessionID, key)
	}

	return d.Skip()
}

// JoinLobbyRequest is the older spelling of JoinSessionRequest.
type JoinLobbyRequest struct {
	LobbyID int
}

func (*JoinLobbyRequest) Type() MessageType { return TypeJoinLobbyRequest }

func (m *JoinLobbyRequest) encodeFields(e *jx.Encoder) {
	e.FieldStart("lobbyId")
	e.Int(m.LobbyID)
}

func (m *JoinLobbyRequest) decodeField(d *jx.Decoder, key string) error {
	if key == "lobbyId" {
		return decodeInt(d, &m.LobbyID, key)
	}

	return d.Skip()
}

// JoinGameRequest performs a handshake and joins any open session in one step.
type JoinGameRequest struct {
	PlayerName string
}

func (*JoinGameRequest) Type() MessageType { return TypeJoinGameRequest }

func (m *JoinGameRequest) encodeFields(e *jx.Encoder) {
	e.FieldStart("playerName")
	e.Str(m.PlayerName)
}

func (m *JoinGameRequest) decodeField(d *jx.Decoder, key string) error {
	if key == "playerName" {
		return decodeString(d, &m.PlayerName, key)
	}

	return d.Skip()
}

// LeaveSessionRequest leaves the current session.
type LeaveSessionRequest struct{}

func (*LeaveSessionRequest) Type() MessageType { return TypeLeaveSessionRequest }

func (*LeaveSessionRequest) encodeFields(*jx.Encoder) {}

func (*LeaveSessionRequest) decodeField(d *jx.Decoder, _ string) error { return d.Skip() }

// ReadyRequest toggles the sender's readiness for the next race.
type ReadyRequest struct {
	Ready bool
}

func (*ReadyRequest) Type() MessageType { return TypeReadyRequest }

func (m *ReadyRequest) encodeFields(e *jx.Encoder) {
	e.FieldStart("ready")
	e.Bool(m.Ready)
}

func (m *ReadyRequest) decodeField(d *jx.Decoder, key string) error {
	if key == "ready" {
		return decodeBool(d, &m.Ready, key)
	}

	return d.Skip()
}

// CharacterRequest carries one keystroke typed during a race.
type CharacterRequest struct {
	Character rune
}

func (*CharacterRequest) Type() MessageType { return TypeCharacterRequest }

func (m *CharacterRequest) encodeFields(e *jx.Encoder) {
	e.FieldStart("character")
	e.Str(string(m.Character))
}

func (m *CharacterRequest) decodeField(d *jx.Decoder, key string) error {
	if key != "character" {
		return d.Skip()
	}

	var s string
	if err := decodeString(d, &s, key); err != nil {
		return err
	}
	if utf8.RuneCountInString(s) != 1 {
		return errors.Wrapf(ErrInvalidCharacter, "got %q", s)
	}
	m.Character, _ = utf8.DecodeRuneInString(s)

	return nil
}
