package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/habitboard/internal/constants"
	"github.com/julianstephens/habitboard/internal/models"
	"github.com/julianstephens/habitboard/internal/service"
	"github.com/julianstephens/habitboard/internal/storage/sqlite"
)

func setupServer(t *testing.T) (*Server, *service.Service) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "habitboard.db"))
	require.NoError(t, store.Init(context.Background()))
	t.Cleanup(func() { store.Close() })

	svc := service.New(store, service.Options{
		Clock:    func() time.Time { return time.Date(2024, 3, 12, 12, 0, 0, 0, time.UTC) },
		Location: time.UTC,
	})
	return New(svc, Options{}), svc
}

// do sends a request and decodes the JSON response into out when non-nil.
func do(t *testing.T, s *Server, method, path string, body any, out any, headers ...string) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createHabit(t *testing.T, s *Server, name string) models.Habit {
	t.Helper()
	var h models.Habit
	status := do(t, s, http.MethodPost, "/habits", map[string]any{"name": name}, &h)
	require.Equal(t, http.StatusCreated, status)
	return h
}

func TestHealth(t *testing.T) {
	s, _ := setupServer(t)

	var body map[string]string
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/healthz", nil, &body))
	assert.Equal(t, "ok", body["status"])
}

func TestUsersMe(t *testing.T) {
	s, svc := setupServer(t)

	var u models.User
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/users/me", nil, &u))
	assert.Equal(t, constants.DefaultUsername, u.Username)

	bob, err := svc.CreateUser(context.Background(), "bob", "Bob", "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/users/me", nil, &u, usernameHeader, "bob"))
	assert.Equal(t, bob.ID, u.ID)

	var e ErrorResponse
	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/users/me", nil, &e, usernameHeader, "ghost"))
	assert.False(t, e.Success)
	assert.Equal(t, "Not Found", e.Error)
}

func TestHabitRoutes(t *testing.T) {
	s, _ := setupServer(t)

	h := createHabit(t, s, "Read")
	assert.Equal(t, constants.DefaultHabitIcon, h.Icon)
	assert.Equal(t, "2024-03-12", h.CreatedAt.String())

	var e ErrorResponse
	assert.Equal(t, http.StatusUnprocessableEntity,
		do(t, s, http.MethodPost, "/habits", map[string]any{"name": ""}, &e))
	assert.Contains(t, e.Message, "name")

	var updated models.Habit
	require.Equal(t, http.StatusOK,
		do(t, s, http.MethodPatch, "/habits/"+h.ID, map[string]any{"scheduled_time": "06:30"}, &updated))
	assert.Equal(t, "06:30", updated.ScheduledTime)
	assert.Equal(t, "Read", updated.Name)

	assert.Equal(t, http.StatusNotFound,
		do(t, s, http.MethodPatch, "/habits/missing", map[string]any{"name": "x"}, nil))

	var habits []models.Habit
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/habits", nil, &habits))
	assert.Len(t, habits, 1)
}

func TestToggleAndDashboard(t *testing.T) {
	s, _ := setupServer(t)
	h := createHabit(t, s, "Read")

	var res models.ToggleResult
	require.Equal(t, http.StatusOK,
		do(t, s, http.MethodPost, "/toggle", map[string]any{"habit_id": h.ID, "date": "2024-03-12"}, &res))
	assert.Equal(t, constants.ToggleStatusAdded, res.Status)
	assert.Equal(t, 1, res.NewStreak)
	assert.Equal(t, 31, res.Dashboard.Meta.DaysInMonth)

	var raw map[string]any
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/dashboard/2024/3", nil, &raw))
	for _, key := range []string{"meta", "habits", "logs", "stats", "user_info"} {
		assert.Contains(t, raw, key)
	}
	habits := raw["habits"].([]any)
	require.Len(t, habits, 1)
	assert.EqualValues(t, 1, habits[0].(map[string]any)["current_streak"])

	var logs []models.LogEntry
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/logs/2024-03", nil, &logs))
	assert.Equal(t, []models.LogEntry{{HabitID: h.ID, Date: "2024-03-12", Completed: true}}, logs)

	require.Equal(t, http.StatusOK,
		do(t, s, http.MethodPost, "/toggle", map[string]any{"habit_id": h.ID, "date": "2024-03-12"}, &res))
	assert.Equal(t, constants.ToggleStatusRemoved, res.Status)
}

func TestBadRequests(t *testing.T) {
	s, _ := setupServer(t)
	h := createHabit(t, s, "Read")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{name: "invalid month", method: http.MethodGet, path: "/dashboard/2024/13", want: http.StatusBadRequest},
		{name: "non-numeric year", method: http.MethodGet, path: "/dashboard/abc/3", want: http.StatusBadRequest},
		{name: "bad log month", method: http.MethodGet, path: "/logs/2024-3x", want: http.StatusBadRequest},
		{name: "impossible toggle date", method: http.MethodPost, path: "/toggle",
			body: map[string]any{"habit_id": h.ID, "date": "2024-02-30"}, want: http.StatusBadRequest},
		{name: "missing habit id", method: http.MethodPost, path: "/toggle",
			body: map[string]any{"date": "2024-03-01"}, want: http.StatusBadRequest},
		{name: "unknown habit", method: http.MethodPost, path: "/toggle",
			body: map[string]any{"habit_id": "missing", "date": "2024-03-01"}, want: http.StatusNotFound},
		{name: "unknown route", method: http.MethodGet, path: "/nope", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e ErrorResponse
			assert.Equal(t, tt.want, do(t, s, tt.method, tt.path, tt.body, &e))
			assert.False(t, e.Success)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestFriendsAndLeaderboard(t *testing.T) {
	s, svc := setupServer(t)
	bob, err := svc.CreateUser(context.Background(), "bob", "Bob Builder", "")
	require.NoError(t, err)

	var res models.FriendResult
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/friends/add/"+bob.FriendCode, nil, &res))
	assert.Equal(t, models.FriendResult{Status: constants.FriendStatusAdded, FriendName: "Bob Builder"}, res)

	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/friends/add/"+bob.FriendCode, nil, &res))
	assert.Equal(t, constants.FriendStatusExisted, res.Status)

	assert.Equal(t, http.StatusUnprocessableEntity, do(t, s, http.MethodPost, "/friends/add/nothex!", nil, nil))

	var friends []models.User
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/friends", nil, &friends))
	require.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Username)

	var board []models.LeaderboardEntry
	require.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/leaderboard", nil, &board))
	require.Len(t, board, 2)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, 2, board[1].Rank)
}

func TestCORSPreflight(t *testing.T) {
	s, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/habits", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
