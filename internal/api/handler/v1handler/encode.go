package v1handler

import (
	"time"
	"typeracer/internal/session"
	"typeracer/pkg/domain"

	"github.com/go-faster/jx"
)

func encodeTime(e *jx.Encoder, field string, t time.Time) {
	e.FieldStart(field)
	if t.IsZero() {
		e.Null()

		return
	}
	e.Str(t.UTC().Format(time.RFC3339Nano))
}

func encodeRace(e *jx.Encoder, race *domain.Race) {
	e.Obj(func(e *jx.Encoder) {
		e.FieldStart("id")
		e.Str(race.ID.String())
		e.FieldStart("sessionId")
		e.Int(race.SessionID)
		e.FieldStart("text")
		e.Str(race.Text)
		encodeTime(e, "startedAt", race.StartedAt)
		encodeTime(e, "finishedAt", race.FinishedAt)
		e.FieldStart("results")
		e.Arr(func(e *jx.Encoder) {
			for i := range race.Results {
				encodeRaceResult(e, &race.Results[i])
			}
		})
	})
}

func encodeRaceResult(e *jx.Encoder, r *domain.RaceResult) {
	e.Obj(func(e *jx.Encoder) {
		e.FieldStart("playerName")
		e.Str(r.PlayerName)
		e.FieldStart("place")
		e.Int(r.Place)
		e.FieldStart("wpm")
		e.Float64(r.WPM)
		e.FieldStart("cpm")
		e.Float64(r.CPM)
		e.FieldStart("accuracy")
		e.Float64(r.Accuracy)
		e.FieldStart("finished")
		e.Bool(r.Finished)
		e.FieldStart("durationMs")
		e.Int64(r.Duration.Milliseconds())
	})
}

func encodePlayerStats(e *jx.Encoder, s *domain.PlayerStats, rank int) {
	e.Obj(func(e *jx.Encoder) {
		if rank > 0 {
			e.FieldStart("rank")
			e.Int(rank)
		}
		e.FieldStart("playerName")
		e.Str(s.PlayerName)
		e.FieldStart("races")
		e.Int(s.Races)
		e.FieldStart("wins")
		e.Int(s.Wins)
		e.FieldStart("bestWpm")
		e.Float64(s.BestWPM)
		e.FieldStart("averageWpm")
		e.Float64(s.AverageWPM)
		e.FieldStart("averageAccuracy")
		e.Float64(s.AverageAccuracy)
		encodeTime(e, "updatedAt", s.UpdatedAt)
	})
}

func encodeSession(e *jx.Encoder, s *session.Snapshot) {
	e.Obj(func(e *jx.Encoder) {
		e.FieldStart("id")
		e.Int(s.ID)
		e.FieldStart("status")
		e.Str(string(s.Status))
		e.FieldStart("maxPlayers")
		e.Int(s.MaxPlayers)
		e.FieldStart("numPlayers")
		e.Int(len(s.Players))
		encodeTime(e, "createdAt", s.CreatedAt)
		encodeTime(e, "startedAt", s.StartedAt)
		e.FieldStart("players")
		e.Arr(func(e *jx.Encoder) {
			for _, p := range s.Players {
				e.Obj(func(e *jx.Encoder) {
					e.FieldStart("id")
					e.Int(p.ID)
					e.FieldStart("name")
					e.Str(p.Name)
					e.FieldStart("ready")
					e.Bool(p.Ready)
					e.FieldStart("finished")
					e.Bool(p.Finished)
					e.FieldStart("progress")
					e.Float64(p.Progress)
					e.FieldStart("wpm")
					e.Float64(p.WPM)
				})
			}
		})
	})
}
