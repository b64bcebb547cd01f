package domain

import "time"

// PlayerStats aggregates every stored race result of a player.
type PlayerStats struct {
	PlayerName      string    `json:"playerName"`
	Races           int       `json:"races"`
	Wins            int       `json:"wins"`
	BestWPM         float64   `json:"bestWpm"`
	AverageWPM      float64   `json:"averageWpm"`
	AverageAccuracy float64   `json:"averageAccuracy"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// OperatorID identifies the holder of an admin token.
type OperatorID string
