package protocol

import "github.com/go-faster/jx"

// GameStateNotification announces a change of the race status to the session.
type GameStateNotification struct {
	GameStatus GameStatus
}

func (*GameStateNotification) Type() MessageType { return TypeGameStateNotification }

func (m *GameStateNotification) encodeFields(e *jx.Encoder) {
	e.FieldStart("gameStatus")
	e.Str(string(m.GameStatus))
}

func (m *GameStateNotification) decodeField(d *jx.Decoder, key string) error {
	if key == "gameStatus" {
		return decodeString(d, &m.GameStatus, key)
	}

	return d.Skip()
}

// TextNotification carries the text to type. It is sent right after the race starts.
type TextNotification struct {
	Text string
}

func (*TextNotification) Type() MessageType { return TypeTextNotification }

func (m *TextNotification) encodeFields(e *jx.Encoder) {
	e.FieldStart("text")
	e.Str(m.Text)
}

func (m *TextNotification) decodeField(d *jx.Decoder, key string) error {
	if key == "text" {
		return decodeString(d, &m.Text, key)
	}

	return d.Skip()
}

// PlayerJoinedNotification announces a player entering the session.
type PlayerJoinedNotification struct {
	NumPlayers int
	PlayerID   int
	PlayerName string
}

func (*PlayerJoinedNotification) Type() MessageType { return TypePlayerJoinedNotification }

func (m *PlayerJoinedNotification) encodeFields(e *jx.Encoder) {
	e.FieldStart("numPlayers")
	e.Int(m.NumPlayers)
	e.FieldStart("playerId")
	e.Int(m.PlayerID)
	e.FieldStart("playerName")
	e.Str(m.PlayerName)
}

func (m *PlayerJoinedNotification) decodeField(d *jx.Decoder, key string) error {
	switch key {
	case "numPlayers":
		return decodeInt(d, &m.NumPlayers, key)
	case "playerId":
		return decodeInt(d, &m.PlayerID, key)
	case "playerName":
		return decodeString(d, &m.PlayerName, key)
	default:
		return d.Skip()
	}
}

// PlayerLeftNotification announces a player leaving the session or disconnecting.
type PlayerLeftNotification struct {
	NumPlayers int
	PlayerID   int
}

func (*PlayerLeftNotification) Type() MessageType { return TypePlayerLeftNotification }

func (m *PlayerLeftNotification) encodeFields(e *jx.Encoder) {
	e.FieldStart("numPlayers")
	e.Int(m.NumPlayers)
	e.FieldStart("playerId")
	e.Int(m.PlayerID)
}

func (m *PlayerLeftNotification) decodeField(d *jx.Decoder, key string) error {
	switch key {
	case "numPlayers":
		return decodeInt(d, &m.NumPlayers, key)
	case "playerId":
		return decodeInt(d, &m.PlayerID, key)
	default:
		return d.Skip()
	}
}

// PlayerUpdateNotification announces a change of a player's readiness.
type PlayerUpdateNotification struct {
	NumPlayers int
	PlayerID   int
	PlayerName string
	Ready      bool
}

func (*PlayerUpdateNotification) Type() MessageType { return TypePlayerUpdateNotification }

func (m *PlayerUpdateNotification) encodeFields(e *jx.Encoder) {
	e.FieldStart("numPlayers")
	e.Int(m.NumPlayers)
	e.FieldStart("playerId")
	e.Int(m.PlayerID)
	e.FieldStart("playerName")
	e.Str(m.PlayerName)
	e.FieldStart("ready")
	e.Bool(m.Ready)
}

func (m *PlayerUpdateNotification) decodeField(d *jx.Decoder, key string) error {
	switch key {
	case "numPlayers":
		return decodeInt(d, &m.NumPlayers, key)
	case "playerId":
		return decodeInt(d, &m.PlayerID, key)
	case "playerName":
		return decodeString(d, &m.PlayerName, key)
	case "ready":
		return decodeBool(d, &m.Ready, key)
	default:
		return d.Skip()
	}
}

// PlayerStateNotification reports a player's race progress. Progress and
// Accuracy range from 0 to 1.
type PlayerStateNotification struct {
	Accuracy float64
	PlayerID int
	Progress float64
	WPM      float64
}

func (*PlayerStateNotification) Type() MessageType { return TypePlayerStateNotification }

func (m *PlayerStateNotification) encodeFields(e *jx.Encoder) {
	e.FieldStart("accuracy")
	e.Float64(m.Accuracy)
	e.FieldStart("playerId")
	e.Int(m.PlayerID)
	e.FieldStart("progress")
	e.Float64(m.Progress)
	e.FieldStart("wpm")
	e.Float64(m.WPM)
}

func (m *PlayerStateNotification) decodeField(d *jx.Decoder, key string) error {
	switch key {
	case "accuracy":
		return decodeFloat(d, &m.Accuracy, key)
	case "playerId":
		return decodeInt(d, &m.PlayerID, key)
	case "progress":
		return decodeFloat(d, &m.Progress, key)
	case "wpm":
		return decodeFloat(d, &m.WPM, key)
	default:
		return d.Skip()
	}
}
