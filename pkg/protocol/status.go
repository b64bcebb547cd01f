package protocol

// GameStatus is the lifecycle state of a race.
type GameStatus string

const (
	// GameStatusWaiting means the race has not started because not every player is ready.
	GameStatusWaiting GameStatus = "WAITING_FOR_PLAYERS"
	// GameStatusRunning means the race is in progress.
	GameStatusRunning GameStatus = "RUNNING"
	// GameStatusFinished means every player finished or the race timed out.
	GameStatusFinished GameStatus = "FINISHED"
)

// PermissionStatus is the general outcome of a client request.
type PermissionStatus string

const (
	// Accepted means the request was carried out.
	Accepted PermissionStatus = "ACCEPTED"
	// Denied means the request was refused; the accompanying Reason says why.
	Denied PermissionStatus = "DENIED"
)

// Reason explains the outcome of a client request.
type Reason string

const (
	ReasonSuccess                   Reason = "SUCCESS"
	ReasonHandshakeBanned           Reason = "HANDSHAKE_BANNED"
	ReasonInvalidUsername           Reason = "INVALID_USERNAME"
	ReasonSessionNotFound           Reason = "SESSION_NOT_FOUND"
	ReasonSessionGameAlreadyStarted Reason = "SESSION_GAME_ALREADY_STARTED"
	ReasonSessionFull               Reason = "SESSION_FULL"
	ReasonSessionKicked             Reason = "SESSION_KICKED"
	ReasonSessionCreateNoPermission Reason = "SESSION_CREATE_NO_PERMISSION"
	ReasonUnknown                   Reason = "UNKNOWN"
)

var reasonTexts = map[Reason]string{ //nolint: gochecknoglobals
	ReasonSuccess:                   "The request was successful.",
	ReasonHandshakeBanned:           "You are currently banned.",
	ReasonInvalidUsername:           "This username is not allowed.",
	ReasonSessionNotFound:           "This session does not exist.",
	ReasonSessionGameAlreadyStarted: "The game has already started.",
	ReasonSessionFull:               "This session is full.",
	ReasonSessionKicked:             "You have been kicked.",
	ReasonSessionCreateNoPermission: "You do not have permission to create a session.",
	ReasonUnknown:                   "An unexpected error occurred.",
}

// Text returns a sentence suitable for showing to the player.
func (r Reason) Text() string {
	if text, ok := reasonTexts[r]; ok {
		return text
	}

	return reasonTexts[ReasonUnknown]
}
