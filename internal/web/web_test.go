package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/clubroster/internal/factory"
	"github.com/mcoot/clubroster/internal/services/auth"
	"github.com/mcoot/clubroster/internal/testutil"
	"github.com/mcoot/clubroster/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	router := web.NewRouter(web.RouterConfig{
		Logger:    testutil.NopLogger(),
		Sessions:  app.SessionService,
		StaticDir: "", // No static files in tests
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

// get makes a GET request with an optional session cookie
func (ts *webTestServer) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: ts.app.SessionService.CookieName(), Value: token})
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// token issues a session for a freshly stored player
func (ts *webTestServer) token(fullName string, isAdmin bool) string {
	ts.t.Helper()

	if isAdmin {
		_, _, err := ts.app.AuthService.BootstrapAdmin(ts.t.Context(), auth.BootstrapRequest{
			Email:    "coach@example.com",
			FullName: fullName,
			Password: "correct-horse-battery",
		})
		require.NoError(ts.t, err)
		sess, err := ts.app.AuthService.Login(ts.t.Context(), "coach@example.com", "correct-horse-battery")
		require.NoError(ts.t, err)
		return sess.Token
	}

	ts.app.MockRandom.QueueString("PlayerPass23")
	provisioned, err := ts.app.AuthService.ProvisionPlayer(ts.t.Context(), auth.ProvisionRequest{
		FullName: fullName,
		Email:    "player@example.com",
		Position: "Midfielder",
	})
	require.NoError(ts.t, err)

	token, _, err := ts.app.SessionService.Issue(auth.IdentityOf(&provisioned.Player))
	require.NoError(ts.t, err)
	return token
}

func parseHTML(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	require.NoError(t, err)
	return doc
}

func TestSignedOutAreaRedirectsToLogin(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/dashboard/x", "")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?redirectedFrom=/dashboard/x", rr.Header().Get("Location"))

	rr = ts.get("/admin", "")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?redirectedFrom=/admin", rr.Header().Get("Location"))
}

func TestForgedCookieIsTreatedAsSignedOut(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/dashboard", "not-a-real-token")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?redirectedFrom=/dashboard", rr.Header().Get("Location"))
}

func TestPlayerKeptOutOfAdminArea(t *testing.T) {
	ts := newWebTestServer(t)
	token := ts.token("Pat Player", false)

	rr := ts.get("/admin/players", token)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestAdminSentToAdminArea(t *testing.T) {
	ts := newWebTestServer(t)
	token := ts.token("Head Coach", true)

	rr := ts.get("/dashboard", token)
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))
}

func TestSignedInLoginRedirectsToLanding(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/login", ts.token("Head Coach", true))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/admin", rr.Header().Get("Location"))

	ts = newWebTestServer(t)
	rr = ts.get("/login", ts.token("Pat Player", false))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestRootRedirectsToLanding(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/", ts.token("Pat Player", false))
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/dashboard", rr.Header().Get("Location"))
}

func TestPublicPathsPassThrough(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	rr = ts.get("/favicon.ico", "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestLoginPageRendersForm(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/login?redirectedFrom=/dashboard/x", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	doc := parseHTML(t, rr)
	form := doc.Find("form#login-form")
	require.Equal(t, 1, form.Length())
	redirected, _ := form.Attr("data-redirected-from")
	assert.Equal(t, "/dashboard/x", redirected)
	assert.Equal(t, 1, form.Find(`input[name="identifier"]`).Length())
	assert.Equal(t, 1, form.Find(`input[name="password"][type="password"]`).Length())
	assert.Equal(t, 0, doc.Find("#logout").Length())
}

func TestLoginPageDropsOffsiteRedirect(t *testing.T) {
	ts := newWebTestServer(t)

	for _, target := range []string{"https://evil.example/", "//evil.example", "/\\evil.example", "dashboard"} {
		rr := ts.get("/login?redirectedFrom="+target, "")
		require.Equal(t, http.StatusOK, rr.Code)

		redirected, _ := parseHTML(t, rr).Find("form#login-form").Attr("data-redirected-from")
		assert.Empty(t, redirected, target)
	}
}

func TestDashboardShowsPlayer(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/dashboard", ts.token("Pat Player", false))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr)
	assert.Equal(t, "Pat Player", doc.Find(".player-name").Text())
	assert.Equal(t, 1, doc.Find("#logout").Length())
	assert.Equal(t, 1, doc.Find("#attendance-summary").Length())
	assert.Equal(t, 1, doc.Find("#fixtures").Length())
}

func TestAdminPageSections(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/admin", ts.token("Head Coach", true))
	require.Equal(t, http.StatusOK, rr.Code)

	doc := parseHTML(t, rr)
	assert.Equal(t, "Head Coach", doc.Find(".player-name").Text())
	for _, id := range []string{"#players", "#events", "#attendance"} {
		assert.Equal(t, 1, doc.Find(id).Length(), id)
	}
}

func TestPlayerNameIsEscaped(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/dashboard", ts.token("<script>x</script> Name", false))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "<script>x</script>")
	assert.Equal(t, 0, parseHTML(t, rr).Find("script").Length())
}

func TestUnknownPageSignedIn(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/nowhere", ts.token("Pat Player", false))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Page not found", parseHTML(t, rr).Find("h1").Text())
}

func TestUnknownPageSignedOut(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/nowhere", "")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/login?redirectedFrom=/nowhere", rr.Header().Get("Location"))
}

func TestRemovedPlayerSessionStillPassesGate(t *testing.T) {
	ts := newWebTestServer(t)
	token := ts.token("Pat Player", false)

	claims, ok := ts.app.SessionService.Verify(token)
	require.True(t, ok)
	require.NoError(t, ts.app.Store.DeletePlayer(t.Context(), claims.UserID))

	// The gate reads only the cookie; the API reports the removed account
	rr := ts.get("/dashboard", token)
	assert.Equal(t, http.StatusOK, rr.Code)
}
