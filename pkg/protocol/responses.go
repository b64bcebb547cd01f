package protocol

import "github.com/go-faster/jx"

// Permission is embedded in every response that reports a status and a reason.
// The JSON name of the status field differs per response.
type Permission struct {
	Status PermissionStatus
	Reason Reason
}

// Accepted reports whether the request was granted.
func (p Permission) Accepted() bool { return p.Status == Accepted }

func (p *Permission) encode(e *jx.Encoder, statusField string) {
	e.FieldStart(statusField)
	e.Str(string(p.Status))
	e.FieldStart("reason")
	e.Str(string(p.Reason))
}

func (p *Permission) decode(d *jx.Decoder, key, statusField string) error {
	switch key {
	case statusField:
		return decodeString(d, &p.Status, key)
	case "reason":
		return decodeString(d, &p.Reason, key)
	default:
		return d.Skip()
	}
}

// HandshakeResponse answers a HandshakeRequest.
type HandshakeResponse struct{ Permission }

// NewHandshakeResponse builds a HandshakeResponse.
func NewHandshakeResponse(status PermissionStatus, reason Reason) *HandshakeResponse {
	return &HandshakeResponse{Permission{Status: status, Reason: reason}}
}

func (*HandshakeResponse) Type() MessageType { return TypeHandshakeResponse }

func (m *HandshakeResponse) encodeFields(e *jx.Encoder) {
	m.encode(e, "connectionStatus")
}

func (m *HandshakeResponse) decodeField(d *jx.Decoder, key string) error {
	return m.decode(d, key, "connectionStatus")
}

// JoinSessionResponse answers a JoinSessionRequest.
type JoinSessionResponse struct{ Permission }

// NewJoinSessionResponse builds a JoinSessionResponse.
func NewJoinSessionResponse(status PermissionStatus, reason Reason) *JoinSessionResponse {
	return &JoinSessionResponse{Permission{Status: status, Reason: reason}}
}

func (*JoinSessionResponse) Type() MessageType { return TypeJoinSessionResponse }

func (m *JoinSessionResponse) encodeFields(e *jx.Encoder) {
	m.encode(e, "joinStatus")
}

func (m *JoinSessionResponse) decodeField(d *jx.Decoder, key string) error {
	return m.decode(d, key, "joinStatus")
}

// JoinLobbyResponse answers a JoinLobbyRequest.
type JoinLobbyResponse struct{ Permission }

// NewJoinLobbyResponse builds a JoinLobbyResponse.
func NewJoinLobbyResponse(status PermissionStatus, reason Reason) *JoinLobbyResponse {
	return &JoinLobbyResponse{Permission{Status: status, Reason: reason}}
}

func (*JoinLobbyResponse) Type() MessageType { return TypeJoinLobbyResponse }

func (m *JoinLobbyResponse) encodeFields(e *jx.Encoder) {
	m.encode(e, "joinStatus")
}

func (m *JoinLobbyResponse) decodeField(d *jx.Decoder, key string) error {
	return m.decode(d, key, "joinStatus")
}

// JoinGameResponse answers a JoinGameRequest.
type JoinGameResponse struct{ Permission }

// NewJoinGameResponse builds a JoinGameResponse.
func NewJoinGameResponse(status PermissionStatus, reason Reason) *JoinGameResponse {
	return &JoinGameResponse{Permission{Status: status, Reason: reason}}
}

func (*JoinGameResponse) Type() MessageType { return TypeJoinGameResponse }

func (m *JoinGameResponse) encodeFields(e *jx.Encoder) {
	m.encode(e, "joinStatus")
}

func (m *JoinGameResponse) decodeField(d *jx.Decoder, key string) error {
	return m.decode(d, key, "joinStatus")
}

// LeaveSessionResponse answers a LeaveSessionRequest.
type LeaveSessionResponse struct{ Permission }

// NewLeaveSessionResponse builds a LeaveSessionResponse.
func NewLeaveSessionResponse(status PermissionStatus, reason Reason) *LeaveSessionResponse {
	return &LeaveSessionResponse{Permission{Status: status, Reason: reason}}
}

func (*LeaveSessionResponse) Type() MessageType { return TypeLeaveSessionResponse }

func (m *LeaveSessionResponse) encodeFields(e *jx.Encoder) {
	m.encode(e, "leaveStatus")
}

func (m *LeaveSessionResponse) decodeField(d *jx.Decoder, key string) error {
	return m.decode(d, key, "leaveStatus")
}

// ReadyResponse answers a ReadyRequest.
type ReadyResponse struct{ Permission }

// NewReadyResponse builds a ReadyResponse.
func NewReadyResponse(status PermissionStatus, reason Reason) *ReadyResponse {
	return &ReadyResponse{Permission{Status: status, Reason: reason}}
}

func (*ReadyResponse) Type() MessageType { return TypeReadyResponse }

func (m *ReadyResponse) encodeFields(e *jx.Encoder) {
	m.encode(e, "readyStatus")
}

func (m *ReadyResponse) decodeField(d *jx.Decoder, key string) error {
	return m.decode(d, key, "readyStatus")
}

// CreateSessionResponse answers a CreateSessionRequest. SessionID is -1 when
// the session could not be created.
type CreateSessionResponse struct {
	Reason    Reason
	SessionID int
}

func (*CreateSessionResponse) Type() MessageType { return TypeCreateSessionResponse }

func (m *CreateSessionResponse) encodeFields(e *jx.Encoder) {
	e.FieldStart("reason")
	e.Str(string(m.Reason))
	e.FieldStart("sessionId")
	e.Int(m.SessionID)
}

func (m *CreateSessionResponse) decodeField(d *jx.Decoder, key string) error {
	switch key {
	case "reason":
		return decodeString(d, &m.Reason, key)
	case "sessionId":
		return decodeInt(d, &m.SessionID, key)
	default:
		return d.Skip()
	}
}

// CharacterResponse tells the typist whether the keystroke matched the text.
type CharacterResponse struct {
	Correct bool
}

func (*CharacterResponse) Type() MessageType { return TypeCharacterResponse }

func (m *CharacterResponse) encodeFields(e *jx.Encoder) {
	e.FieldStart("correct")
	e.Bool(m.Correct)
}

func (m *CharacterResponse) decodeField(d *jx.Decoder, key string) error {
	if key == "correct" {
		return decodeBool(d, &m.Correct, key)
	}

	return d.Skip()
}
