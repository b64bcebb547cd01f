package domain

import (
	"time"

	"github.com/google/uuid"
)

// RaceID uniquely identifies a finished race.
// It wraps uuid.UUID to provide type safety at the domain layer.
type RaceID uuid.UUID

// NewRaceID returns a random RaceID.
func NewRaceID() RaceID { return RaceID(uuid.New()) }

// String returns the canonical uuid form of the id.
func (id RaceID) String() string { return uuid.UUID(id).String() }

// Race is a race that has ended, together with the standings of its players.
type Race struct {
	// ID is the unique identifier of the race.
	ID RaceID `json:"id"`
	// SessionID is the live session the race was played in.
	SessionID int `json:"sessionId"`
	// Text is the passage the players typed.
	Text string `json:"text"`

	// StartedAt is when the text was revealed to the players.
	StartedAt time.Time `json:"startedAt"`
	// FinishedAt is when the last player finished or the race timed out.
	FinishedAt time.Time `json:"finishedAt"`

	// Results holds one entry per player, ordered by place.
	Results []RaceResult `json:"results"`
}

// Winner returns the result in first place, or nil when nobody finished.
func (r Race) Winner() *RaceResult {
	for i := range r.Results {
		if r.Results[i].Place == 1 && r.Results[i].Finished {
			return &r.Results[i]
		}
	}

	return nil
}

// RaceResult is one player's outcome in a race.
type RaceResult struct {
	// PlayerName is the name the player raced under.
	PlayerName string `json:"playerName"`
	// Place is the 1-based position in the race.
	Place int `json:"place"`
	// WPM is the words per minute reached.
	WPM float64 `json:"wpm"`
	// CPM is the correctly typed characters per minute reached.
	CPM float64 `json:"cpm"`
	// Accuracy is the share of correct keystrokes, in [0, 1].
	Accuracy float64 `json:"accuracy"`
	// Finished reports whether the player typed the whole text.
	Finished bool `json:"finished"`
	// Duration is how long the player raced.
	Duration time.Duration `json:"duration"`
}
