package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abidalfrz/expense-tracker-webapp/internal/config"
	"github.com/abidalfrz/expense-tracker-webapp/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{
			Mode:         gin.TestMode,
			TemplateGlob: "../../web/templates/*.html",
		},
		Auth: config.AuthConfig{
			JWTSecret:   "test-secret",
			Issuer:      "test",
			ExpireHours: 1,
			BcryptCost:  4,
			CookieName:  "et_token",
		},
		Session: config.SessionConfig{
			CookieName: "et_session",
			Secret:     "test-session-secret",
		},
	}

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, database.AutoMigrate(db))

	return Setup(cfg, db)
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	r := newTestRouter(t)

	paths := []string{
		"/dashboard",
		"/add_expense",
		"/edit_expense/1",
		"/delete_expense/1",
		"/categories",
		"/categories/add",
		"/categories/edit/1",
		"/categories/delete/1",
		"/export/csv",
		"/export/xlsx",
		"/logout",
	}

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/login", w.Header().Get("Location"))
		})
	}
}

func TestPublicPages(t *testing.T) {
	r := newTestRouter(t)

	for _, path := range []string{"/", "/login", "/register"} {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}

func TestRegisterLoginDashboardFlow(t *testing.T) {
	r := newTestRouter(t)

	// register
	w := postForm(t, r, "/register", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// login
	w = postForm(t, r, "/login", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))

	var token *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "et_token" && c.Value != "" {
			token = c
		}
	}
	require.NotNil(t, token, "login should set the session cookie")

	// dashboard with the session cookie
	req := httptest.NewRequest(http.MethodGet, "/dashboard", http.NoBody)
	req.AddCookie(token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice")
}

func TestLoginWithWrongPassword(t *testing.T) {
	r := newTestRouter(t)

	w := postForm(t, r, "/register", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	w = postForm(t, r, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrongpass"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, "et_token", c.Name, "failed login must not set a session cookie")
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	r := newTestRouter(t)

	w := postForm(t, r, "/register", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	w = postForm(t, r, "/login", url.Values{
		"username": {"alice"},
		"password": {"secret123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)

	var token *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "et_token" && c.Value != "" {
			token = c
		}
	}
	require.NotNil(t, token)

	// logout revokes the session server-side
	req := httptest.NewRequest(http.MethodGet, "/logout", http.NoBody)
	req.AddCookie(token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)

	// the old token no longer works even if the browser kept it
	req = httptest.NewRequest(http.MethodGet, "/dashboard", http.NoBody)
	req.AddCookie(token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
