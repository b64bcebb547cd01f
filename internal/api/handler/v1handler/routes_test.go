package v1handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"typeracer/internal/api/handler/v1handler"
	mockv1handler "typeracer/internal/api/handler/v1handler/mock"
	"typeracer/internal/game"
	"typeracer/internal/session"
	"typeracer/pkg/domain"
	"typeracer/pkg/protocol"
	"typeracer/pkg/serrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	results  *mockv1handler.MockResults
	sessions *mockv1handler.MockSessions
	mux      *http.ServeMux
	token    string
}

func newFixture(t *testing.T, withResults bool) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	priv, pubPEM := genRSAKeys(t)

	f := &fixture{
		results:  mockv1handler.NewMockResults(ctrl),
		sessions: mockv1handler.NewMockSessions(ctrl),
		mux:      http.NewServeMux(),
	}
	deps := v1handler.Deps{Sessions: f.sessions}
	if withResults {
		deps.Results = f.results
	}
	now := time.Now()
	f.token = signJWTRS256(t, priv, "ops", now, now.Add(time.Hour))
	v1handler.New(deps).Register(f.mux, newSecHandlerForTest(t, pubPEM))

	return f
}

func (f *fixture) do(method, target string, admin bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if admin {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	return rec
}

var raceID = uuid.MustParse("7c3e1c1e-3c1d-4b8e-9a51-0d4b1f3c9a11")

func sampleRace() domain.Race {
	return domain.Race{
		ID:         domain.RaceID(raceID),
		SessionID:  12,
		Text:       "ab",
		StartedAt:  time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		FinishedAt: time.Date(2026, 1, 1, 10, 0, 30, 0, time.UTC),
		Results: []domain.RaceResult{{
			PlayerName: "ada", Place: 1, WPM: 60, CPM: 300, Accuracy: 0.5, Finished: true, Duration: 1500 * time.Millisecond,
		}},
	}
}

func TestListRaces(t *testing.T) {
	f := newFixture(t, true)

	f.results.EXPECT().RecentRaces(gomock.Any(), "", uint(v1handler.DefaultLimit)).
		Return([]domain.Race{sampleRace()}, "2026-01-01T10:00:30Z", nil)
	rec := f.do(http.MethodGet, "/v1/races", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.JSONEq(t, `{
		"items": [{
			"id": "7c3e1c1e-3c1d-4b8e-9a51-0d4b1f3c9a11",
			"sessionId": 12,
			"text": "ab",
			"startedAt": "2026-01-01T10:00:00Z",
			"finishedAt": "2026-01-01T10:00:30Z",
			"results": [{"playerName":"ada","place":1,"wpm":60,"cpm":300,"accuracy":0.5,"finished":true,"durationMs":1500}]
		}],
		"nextCursor": "2026-01-01T10:00:30Z"
	}`, rec.Body.String())

	f.results.EXPECT().RecentRaces(gomock.Any(), "c", uint(5)).Return(nil, "", nil)
	rec = f.do(http.MethodGet, "/v1/races?cursor=c&limit=5", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[],"nextCursor":null}`, rec.Body.String())

	rec = f.do(http.MethodGet, "/v1/races?limit=0", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = f.do(http.MethodGet, "/v1/races?limit=abc", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRace(t *testing.T) {
	f := newFixture(t, true)

	race := sampleRace()
	f.results.EXPECT().Race(gomock.Any(), race.ID).Return(&race, nil)
	rec := f.do(http.MethodGet, "/v1/races/"+raceID.String(), false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"sessionId":12`)

	rec = f.do(http.MethodGet, "/v1/races/nope", false)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"code":"BAD_REQUEST","message":"invalid race id"}`, rec.Body.String())

	f.results.EXPECT().Race(gomock.Any(), gomock.Any()).Return(nil, serrors.With(serrors.ErrNotFound, "race not found"))
	rec = f.do(http.MethodGet, "/v1/races/"+uuid.NewString(), false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"code":"NOT_FOUND","message":"race not found"}`, rec.Body.String())
}

func TestPlayerStatsAndLeaderboard(t *testing.T) {
	f := newFixture(t, true)

	stats := domain.PlayerStats{PlayerName: "ada", Races: 3, Wins: 2, BestWPM: 90, AverageWPM: 70, AverageAccuracy: 0.9}
	f.results.EXPECT().PlayerStats(gomock.Any(), "ada").Return(&stats, nil)
	rec := f.do(http.MethodGet, "/v1/players/ada", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"playerName":"ada","races":3,"wins":2,"bestWpm":90,"averageWpm":70,"averageAccuracy":0.9,"updatedAt":null}`,
		rec.Body.String())

	f.results.EXPECT().Leaderboard(gomock.Any(), uint(3)).
		Return([]domain.PlayerStats{stats, {PlayerName: "bob", BestWPM: 50}}, nil)
	rec = f.do(http.MethodGet, "/v1/leaderboard?limit=3", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"rank":1,"playerName":"ada"`)
	require.Contains(t, rec.Body.String(), `"rank":2,"playerName":"bob"`)
}

func TestHistoryWithoutDatabase(t *testing.T) {
	f := newFixture(t, false)

	for _, target := range []string{"/v1/races", "/v1/races/" + raceID.String(), "/v1/players/ada", "/v1/leaderboard"} {
		rec := f.do(http.MethodGet, target, false)
		require.Equal(t, http.StatusServiceUnavailable, rec.Code, target)
		require.JSONEq(t, `{"code":"UNAVAILABLE","message":"race history is disabled"}`, rec.Body.String())
	}
}

func TestListSessions(t *testing.T) {
	f := newFixture(t, false)

	f.sessions.EXPECT().List().Return([]session.Snapshot{{
		ID:         7,
		Status:     protocol.GameStatusWaiting,
		MaxPlayers: 5,
		CreatedAt:  time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
		Players:    []game.Player{{ID: 3, Name: "ada", Ready: true}},
	}})
	rec := f.do(http.MethodGet, "/v1/sessions", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[{
		"id":7,"status":"WAITING_FOR_PLAYERS","maxPlayers":5,"numPlayers":1,
		"createdAt":"2026-01-01T09:00:00Z","startedAt":null,
		"players":[{"id":3,"name":"ada","ready":true,"finished":false,"progress":0,"wpm":0}]
	}]}`, rec.Body.String())
}

func TestAdminRoutes(t *testing.T) {
	f := newFixture(t, false)

	rec := f.do(http.MethodDelete, "/v1/sessions/7", false)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	f.sessions.EXPECT().Close(gomock.Any(), 7).Return(nil)
	rec = f.do(http.MethodDelete, "/v1/sessions/7", true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	f.sessions.EXPECT().Close(gomock.Any(), 8).Return(session.ErrSessionNotFound)
	rec = f.do(http.MethodDelete, "/v1/sessions/8", true)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodDelete, "/v1/sessions/x", true)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	f.sessions.EXPECT().Kick(gomock.Any(), 7, 3).Return(nil)
	rec = f.do(http.MethodPost, "/v1/sessions/7/kick/3", true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodPost, "/v1/sessions/7/kick/me", true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
