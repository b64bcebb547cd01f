package postgres

import (
	"time"
	"typeracer/pkg/domain"

	"github.com/google/uuid"
)

type PgRace struct {
	ID        uuid.UUID `db:"id"`
	SessionID int64     `db:"session_id"`
	Text      string    `db:"text"`

	StartedAt  time.Time `db:"started_at"`
	FinishedAt time.Time `db:"finished_at"`
	CreatedAt  time.Time `db:"created_at" goqu:"skipinsert"`
}

type PgRaceResult struct {
	ID         int64     `db:"id"          goqu:"skipinsert"`
	RaceID     uuid.UUID `db:"race_id"`
	PlayerName string    `db:"player_name"`
	Place      int       `db:"place"`
	WPM        float64   `db:"wpm"`
	CPM        float64   `db:"cpm"`
	Accuracy   float64   `db:"accuracy"`
	Finished   bool      `db:"finished"`
	DurationMS int64     `db:"duration_ms"`
}

type PgPlayerStats struct {
	PlayerName      string    `db:"player_name"`
	Races           int       `db:"races"`
	Wins            int       `db:"wins"`
	BestWPM         float64   `db:"best_wpm"`
	AverageWPM      float64   `db:"average_wpm"`
	AverageAccuracy float64   `db:"average_accuracy"`
	UpdatedAt       time.Time `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgRace) FromDomain(race domain.Race) {
	*p = PgRace{
		ID:         uuid.UUID(race.ID),
		SessionID:  int64(race.SessionID),
		Text:       race.Text,
		StartedAt:  race.StartedAt,
		FinishedAt: race.FinishedAt,
	}
}

// ToDomain converts the row; results are attached by the caller.
func (p *PgRace) ToDomain() domain.Race {
	return domain.Race{
		ID:         domain.RaceID(p.ID),
		SessionID:  int(p.SessionID),
		Text:       p.Text,
		StartedAt:  p.StartedAt,
		FinishedAt: p.FinishedAt,
	}
}

func (p *PgRaceResult) FromDomain(raceID domain.RaceID, result domain.RaceResult) {
	*p = PgRaceResult{
		RaceID:     uuid.UUID(raceID),
		PlayerName: result.PlayerName,
		Place:      result.Place,
		WPM:        result.WPM,
		CPM:        result.CPM,
		Accuracy:   result.Accuracy,
		Finished:   result.Finished,
		DurationMS: result.Duration.Milliseconds(),
	}
}

func (p *PgRaceResult) ToDomain() domain.RaceResult {
	return domain.RaceResult{
		PlayerName: p.PlayerName,
		Place:      p.Place,
		WPM:        p.WPM,
		CPM:        p.CPM,
		Accuracy:   p.Accuracy,
		Finished:   p.Finished,
		Duration:   time.Duration(p.DurationMS) * time.Millisecond,
	}
}

func (p *PgPlayerStats) FromDomain(stats domain.PlayerStats) {
	*p = PgPlayerStats{
		PlayerName:      stats.PlayerName,
		Races:           stats.Races,
		Wins:            stats.Wins,
		BestWPM:         stats.BestWPM,
		AverageWPM:      stats.AverageWPM,
		AverageAccuracy: stats.AverageAccuracy,
	}
}

func (p *PgPlayerStats) ToDomain() domain.PlayerStats {
	return domain.PlayerStats{
		PlayerName:      p.PlayerName,
		Races:           p.Races,
		Wins:            p.Wins,
		BestWPM:         p.BestWPM,
		AverageWPM:      p.AverageWPM,
		AverageAccuracy: p.AverageAccuracy,
		UpdatedAt:       p.UpdatedAt,
	}
}
