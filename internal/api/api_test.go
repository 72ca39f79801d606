package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/clubroster/internal/api"
	"github.com/mcoot/clubroster/internal/api/apierr"
	"github.com/mcoot/clubroster/internal/api/response"
	"github.com/mcoot/clubroster/internal/factory"
	"github.com/mcoot/clubroster/internal/middleware"
	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/services/roster"
	"github.com/mcoot/clubroster/internal/services/session"
	"github.com/mcoot/clubroster/internal/testutil"
)

const adminPassword = "correct-horse-battery"

// testServer wraps the API router with a fully wired in-memory app
type testServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	router := api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		Store:       app.Store,
		AuthService: app.AuthService,
		Sessions:    app.SessionService,
	})

	return &testServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = bytes.NewBuffer(nil)
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		encoded, _ := json.Marshal(b)
		reqBody = bytes.NewBuffer(encoded)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: token})
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// login signs in and returns the session cookie value
func (ts *testServer) login(identifier, password string) string {
	ts.t.Helper()
	rr := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"identifier": identifier,
		"password":   password,
	}, "")
	require.Equal(ts.t, http.StatusOK, rr.Code, rr.Body.String())

	for _, c := range rr.Result().Cookies() {
		if c.Name == "session" {
			return c.Value
		}
	}
	ts.t.Fatal("login did not set a session cookie")
	return ""
}

// adminToken bootstraps an admin and returns their session
func (ts *testServer) adminToken() string {
	ts.t.Helper()
	_, _, err := ts.app.AuthService.BootstrapAdmin(ts.t.Context(), auth.BootstrapRequest{
		Email:    "coach@example.com",
		FullName: "Head Coach",
		Password: adminPassword,
	})
	require.NoError(ts.t, err)
	return ts.login("coach@example.com", adminPassword)
}

// createPlayer provisions a player through the API and returns the response
func (ts *testServer) createPlayer(adminToken, fullName, email string) response.CreatePlayerResponse {
	ts.t.Helper()
	rr := ts.request(http.MethodPost, "/api/admin/players", map[string]any{
		"fullName": fullName,
		"email":    email,
		"position": "Defender",
	}, adminToken)
	require.Equal(ts.t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.CreatePlayerResponse
	require.NoError(ts.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

// playerToken provisions a player and returns their session
func (ts *testServer) playerToken(adminToken string) (string, response.Player) {
	ts.t.Helper()
	ts.app.MockRandom.QueueString("PlayerPass23")
	created := ts.createPlayer(adminToken, "Pat Player", "pat@example.com")
	return ts.login("pat@example.com", "PlayerPass23"), created.Player
}

func (ts *testServer) createEvent(adminToken, title, startTime string) model.Event {
	ts.t.Helper()
	rr := ts.request(http.MethodPost, "/api/admin/events", map[string]string{
		"title":     title,
		"category":  "training",
		"startTime": startTime,
		"location":  "Main pitch",
	}, adminToken)
	require.Equal(ts.t, http.StatusOK, rr.Code, rr.Body.String())

	var resp response.EventResponse
	require.NoError(ts.t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Event
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) apierr.APIError {
	t.Helper()
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), rr.Body.String())
	return resp.Error
}

// Health

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, apierr.CodeNotFound, decodeError(t, rr).Code)
}

// Login / logout

func TestLoginSetsSessionCookie(t *testing.T) {
	ts := newTestServer(t)
	ts.adminToken()

	rr := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"identifier": "HEADCOACH",
		"password":   adminPassword,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Head Coach", resp.User.FullName)
	assert.Equal(t, "coach@example.com", resp.User.Email)
	assert.True(t, resp.User.IsAdmin)
	assert.NotContains(t, rr.Body.String(), "passwordHash")

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
}

func TestLoginMissingFields(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/login", map[string]string{"identifier": "coach"}, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/login", "{not json", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ts := newTestServer(t)
	ts.adminToken()

	rr := ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"identifier": "coach@example.com",
		"password":   "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeInvalidCredentials, decodeError(t, rr).Code)
	assert.Empty(t, rr.Result().Cookies())

	rr = ts.request(http.MethodPost, "/api/auth/login", map[string]string{
		"identifier": "nobody@example.com",
		"password":   "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestBearerTokenIsAccepted(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken()

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

// Me

func TestMeRequiresSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, apierr.CodeUnauthorized, decodeError(t, rr).Code)

	rr = ts.request(http.MethodGet, "/api/auth/me", nil, "forged.token.value")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMeExpiredSession(t *testing.T) {
	ts := newTestServer(t)
	token := ts.adminToken()

	ts.app.MockClock.Advance(8 * 24 * time.Hour)

	rr := ts.request(http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestMeReturnsOwnHistory(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	token, player := ts.playerToken(admin)
	later := ts.createEvent(admin, "Later", "2024-02-02T18:00:00Z")
	earlier := ts.createEvent(admin, "Earlier", "2024-02-01T18:00")

	rr := ts.request(http.MethodPost, "/api/admin/attendance", map[string]any{
		"eventId": later.ID,
		"records": []map[string]string{{"playerId": player.ID, "status": "late"}},
	}, admin)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		User       response.Player        `json:"user"`
		Attendance model.AttendanceCounts `json:"attendance"`
		Events     []struct {
			ID         string  `json:"id"`
			Title      string  `json:"title"`
			Status     *string `json:"status"`
			RecordedAt *string `json:"recordedAt"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.Equal(t, player.ID, resp.User.ID)
	assert.Equal(t, "patplayer", resp.User.Username)
	assert.Equal(t, model.AttendanceCounts{Late: 1}, resp.Attendance)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, string(earlier.ID), resp.Events[0].ID)
	assert.Nil(t, resp.Events[0].Status)
	assert.Nil(t, resp.Events[0].RecordedAt)
	assert.Equal(t, string(later.ID), resp.Events[1].ID)
	require.NotNil(t, resp.Events[1].Status)
	assert.Equal(t, "late", *resp.Events[1].Status)
	assert.NotNil(t, resp.Events[1].RecordedAt)
	assert.NotContains(t, rr.Body.String(), "passwordHash")
}

func TestMeAfterAccountDeleted(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	token, player := ts.playerToken(admin)

	rr := ts.request(http.MethodDelete, "/api/admin/players/"+player.ID, nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Account no longer exists", decodeError(t, rr).Message)
}

// Role isolation

func TestNonAdminGetsForbiddenOnEveryAdminEndpoint(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	token, player := ts.playerToken(admin)

	cases := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/api/admin/players", nil},
		{http.MethodPost, "/api/admin/players", map[string]string{"fullName": "X Y", "email": "x@example.com", "position": "GK"}},
		{http.MethodPost, "/api/admin/players", "{garbage"},
		{http.MethodDelete, "/api/admin/players/" + player.ID, nil},
		{http.MethodDelete, "/api/admin/players/does-not-exist", nil},
		{http.MethodGet, "/api/admin/events", nil},
		{http.MethodPost, "/api/admin/events", map[string]string{"title": "T", "category": "bogus"}},
		{http.MethodGet, "/api/admin/attendance", nil},
		{http.MethodGet, "/api/admin/attendance?eventId=x", nil},
		{http.MethodPost, "/api/admin/attendance", map[string]any{"eventId": "x", "records": []any{}}},
		{http.MethodPut, "/api/admin/players", nil},
		{http.MethodGet, "/api/admin/unknown", nil},
		{http.MethodGet, "/api/admin", nil},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := ts.request(tc.method, tc.path, tc.body, token)
			assert.Equal(t, http.StatusForbidden, rr.Code, rr.Body.String())
			assert.Equal(t, apierr.CodeForbidden, decodeError(t, rr).Code)
		})
	}

	// Nothing changed
	players, err := ts.app.Store.Players(t.Context())
	require.NoError(t, err)
	assert.Len(t, players, 2)
}

func TestAdminEndpointsRequireSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/admin/players", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

// Players

func TestCreatePlayerReturnsTemporaryPasswordOnce(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	ts.app.MockRandom.QueueString("OneTimePass2")

	created := ts.createPlayer(admin, "Dana Scully", "Dana@Example.com")
	assert.Equal(t, "OneTimePass2", created.TemporaryPassword)
	assert.Equal(t, "dana@example.com", created.Player.Email)
	assert.Equal(t, "danascully", created.Player.Username)

	// The stored hash verifies the temporary password
	stored, err := ts.app.Store.GetPlayer(t.Context(), model.PlayerID(created.Player.ID))
	require.NoError(t, err)
	assert.True(t, ts.app.CredentialsService.VerifyPassword("OneTimePass2", stored.PasswordHash))

	// No listing exposes it or its hash
	rr := ts.request(http.MethodGet, "/api/admin/players", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "OneTimePass2")
	assert.NotContains(t, rr.Body.String(), "passwordHash")
	assert.NotContains(t, rr.Body.String(), stored.PasswordHash)

	var list response.PlayersResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Players, 2)
}

func TestCreatePlayerAsAdmin(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()

	rr := ts.request(http.MethodPost, "/api/admin/players", map[string]any{
		"fullName": "Assistant Coach",
		"email":    "assistant@example.com",
		"position": "Staff",
		"username": "assist",
		"isAdmin":  true,
	}, admin)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.CreatePlayerResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Player.IsAdmin)
	assert.Equal(t, "assist", resp.Player.Username)
}

func TestCreatePlayerMissingFields(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()

	rr := ts.request(http.MethodPost, "/api/admin/players", map[string]string{"fullName": "No Email"}, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreatePlayerDuplicateEmailAnyCase(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	ts.createPlayer(admin, "Dana Scully", "dana@example.com")

	rr := ts.request(http.MethodPost, "/api/admin/players", map[string]string{
		"fullName": "Dana Other",
		"email":    "DANA@EXAMPLE.COM",
		"position": "Forward",
	}, admin)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, apierr.CodePlayerExists, decodeError(t, rr).Code)
}

func TestDeletePlayer(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	created := ts.createPlayer(admin, "Dana Scully", "dana@example.com")

	rr := ts.request(http.MethodDelete, "/api/admin/players/"+created.Player.ID, nil, admin)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())

	rr = ts.request(http.MethodDelete, "/api/admin/players/"+created.Player.ID, nil, admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteAdminIsRejected(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	claims, ok := ts.app.SessionService.Verify(admin)
	require.True(t, ok)

	rr := ts.request(http.MethodDelete, "/api/admin/players/"+string(claims.UserID), nil, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeAdminProtected, apiErr.Code)
	assert.Equal(t, "Cannot remove administrator accounts", apiErr.Message)
}

// Events

func TestCreateEventValidation(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()

	cases := map[string]map[string]string{
		"missing title":    {"category": "match", "startTime": "2024-02-01T10:00:00Z", "location": "Home"},
		"missing location": {"title": "Cup", "category": "match", "startTime": "2024-02-01T10:00:00Z"},
		"bad time":         {"title": "Cup", "category": "match", "startTime": "next tuesday", "location": "Home"},
		"bad category":     {"title": "Cup", "category": "party", "startTime": "2024-02-01T10:00:00Z", "location": "Home"},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			rr := ts.request(http.MethodPost, "/api/admin/events", body, admin)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}

	rr := ts.request(http.MethodPost, "/api/admin/events", cases["bad category"], admin)
	assert.Equal(t, "Invalid category: must be one of training, match, tournament, event", decodeError(t, rr).Message)
}

func TestAdminEventsSortedAscending(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	ts.createEvent(admin, "Second", "2024-03-02T10:00:00Z")
	ts.createEvent(admin, "First", "2024-03-01T10:00:00Z")

	rr := ts.request(http.MethodGet, "/api/admin/events", nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.EventsResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "First", resp.Events[0].Title)
	assert.Equal(t, "Second", resp.Events[1].Title)
}

func TestEventsRequireSession(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/events", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestEventCountsMatchRecords(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	ts.app.MockRandom.QueueString("Pass0000002a", "Pass0000002b", "Pass0000002c")
	p1 := ts.createPlayer(admin, "One Player", "one@example.com").Player
	p2 := ts.createPlayer(admin, "Two Player", "two@example.com").Player
	p3 := ts.createPlayer(admin, "Three Player", "three@example.com").Player
	event := ts.createEvent(admin, "Match", "2024-02-01T10:00:00Z")

	rr := ts.request(http.MethodPost, "/api/admin/attendance", map[string]any{
		"eventId": event.ID,
		"records": []map[string]string{
			{"playerId": p1.ID, "status": "present"},
			{"playerId": p2.ID, "status": "late"},
			{"playerId": p3.ID, "status": "present"},
		},
	}, admin)
	require.Equal(t, http.StatusOK, rr.Code)

	// Any signed-in player sees the same counts
	token := ts.login("one@example.com", "Pass0000002a")
	rr = ts.request(http.MethodGet, "/api/events", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.EventSummariesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Events, 1)
	assert.Equal(t, model.AttendanceCounts{Present: 2, Late: 1, Absent: 0}, resp.Events[0].Attendance)
	assert.Contains(t, rr.Body.String(), `"attendance":{"present":2,"absent":0,"late":1}`)
}

// Attendance

func TestRecordAttendanceUnknownEvent(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	_, player := ts.playerToken(admin)

	rr := ts.request(http.MethodPost, "/api/admin/attendance", map[string]any{
		"eventId": "missing",
		"records": []map[string]string{{"playerId": player.ID, "status": "present"}},
	}, admin)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Event not found", decodeError(t, rr).Message)
}

func TestRecordAttendanceMissingData(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()

	rr := ts.request(http.MethodPost, "/api/admin/attendance", map[string]any{"eventId": "x"}, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/admin/attendance", map[string]any{
		"records": []map[string]string{{"playerId": "p", "status": "present"}},
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRecordAttendanceDropsInvalidEntries(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	_, player := ts.playerToken(admin)
	event := ts.createEvent(admin, "Training", "2024-02-01T10:00:00Z")

	rr := ts.request(http.MethodPost, "/api/admin/attendance", map[string]any{
		"eventId": event.ID,
		"records": []map[string]string{
			{"playerId": player.ID, "status": "present"},
			{"playerId": "ghost", "status": "present"},
			{"playerId": player.ID, "status": "asleep"},
		},
	}, admin)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"recorded":1,"dropped":2}`, rr.Body.String())
}

func TestRecordAttendanceAllInvalid(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	event := ts.createEvent(admin, "Training", "2024-02-01T10:00:00Z")

	rr := ts.request(http.MethodPost, "/api/admin/attendance", map[string]any{
		"eventId": event.ID,
		"records": []map[string]string{{"playerId": "ghost", "status": "present"}},
	}, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "No valid attendance records provided", decodeError(t, rr).Message)
}

func TestRecordAttendanceTwiceKeepsLatest(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	_, player := ts.playerToken(admin)
	event := ts.createEvent(admin, "Training", "2024-02-01T10:00:00Z")

	for _, status := range []string{"absent", "present"} {
		rr := ts.request(http.MethodPost, "/api/admin/attendance", map[string]any{
			"eventId": event.ID,
			"records": []map[string]string{{"playerId": player.ID, "status": status}},
		}, admin)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := ts.request(http.MethodGet, "/api/admin/attendance?eventId="+string(event.ID), nil, admin)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.AttendanceResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Attendance, 1)
	assert.Equal(t, model.StatusPresent, resp.Attendance[0].Status)
}

func TestListAttendanceRequiresEventID(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()

	rr := ts.request(http.MethodGet, "/api/admin/attendance", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing eventId", decodeError(t, rr).Message)
}

// Failures

func TestStorageFailureIsGeneric500(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()
	ts.app.MemoryStorage.FailLoads(assert.AnError)

	rr := ts.request(http.MethodGet, "/api/admin/players", nil, admin)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	apiErr := decodeError(t, rr)
	assert.Equal(t, apierr.CodeInternalError, apiErr.Code)
	assert.False(t, strings.Contains(apiErr.Message, assert.AnError.Error()))
}

func TestStorageFailureIsLoggedWithRequestID(t *testing.T) {
	app := factory.NewTestApp()
	logger, logs := testutil.CaptureLogger()
	handler := middleware.RequestID()(api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Store:       app.Store,
		AuthService: app.AuthService,
		Sessions:    app.SessionService,
	}))

	token, _, err := app.SessionService.Issue(session.Identity{UserID: "u1", IsAdmin: true})
	require.NoError(t, err)
	app.MemoryStorage.FailLoads(assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/events", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusInternalServerError, rr.Code)

	entry := logs.Find("request failed")
	require.NotNil(t, entry)
	assert.Equal(t, rr.Header().Get(middleware.RequestIDHeader), entry["request_id"])
	assert.Contains(t, entry["error"], assert.AnError.Error())

	access := logs.Find("http request")
	require.NotNil(t, access)
	assert.Equal(t, "ERROR", access["level"])
}

func TestResponsesAreNotCached(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
}

func TestRosterStoreIsShared(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.adminToken()

	_, err := ts.app.Store.AddEvent(t.Context(), roster.NewEvent{
		Title:     "Direct",
		Category:  model.CategoryEvent,
		StartTime: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Location:  "Clubhouse",
	})
	require.NoError(t, err)

	rr := ts.request(http.MethodGet, "/api/admin/events", nil, admin)
	assert.Contains(t, rr.Body.String(), "Direct")
}

func TestCORSOnlyWhenConfigured(t *testing.T) {
	ts := newTestServer(t)

	preflight := func(h http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
		req.Header.Set("Origin", "https://club.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr
	}

	rr := preflight(api.WithCORS(ts.handler, nil))
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))

	rr = preflight(api.WithCORS(ts.handler, []string{"https://club.example"}))
	assert.Equal(t, "https://club.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
}
