package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-hint/internal/middleware"
)

func form(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestRegisterLoginStatus(t *testing.T) {
	store := newMemStore()
	cookies := testCookies(t)
	auth := NewAuth(testLog, store, cookies)
	status := middleware.Wrap(http.HandlerFunc(auth.Status), middleware.Auth(cookies))

	credentials := url.Values{"username": {"alice"}, "password": {"hunter2"}}

	rec := httptest.NewRecorder()
	auth.Register(rec, form("/auth/register", credentials))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", decode[Status](t, rec).Player.Username)

	rec = httptest.NewRecorder()
	auth.Register(rec, form("/auth/register", credentials))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrUsernameTaken.Error())

	rec = httptest.NewRecorder()
	auth.Login(rec, form("/auth/login", credentials))
	require.Equal(t, http.StatusOK, rec.Code)

	r := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	status.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code)
	s := decode[Status](t, rec)
	assert.True(t, s.LoggedIn)
	assert.Equal(t, "alice", s.Player.Username)

	rec = httptest.NewRecorder()
	status.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))
	assert.False(t, decode[Status](t, rec).LoggedIn)
}

func TestLoginRejected(t *testing.T) {
	store := newMemStore()
	auth := NewAuth(testLog, store, testCookies(t))

	rec := httptest.NewRecorder()
	auth.Register(rec, form("/auth/register", url.Values{"username": {"bob"}, "password": {"right"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	tests := []struct {
		name   string
		values url.Values
		code   int
	}{
		{"wrong password", url.Values{"username": {"bob"}, "password": {"wrong"}}, http.StatusUnauthorized},
		{"unknown player", url.Values{"username": {"eve"}, "password": {"right"}}, http.StatusUnauthorized},
		{"missing password", url.Values{"username": {"bob"}}, http.StatusBadRequest},
		{"long password", url.Values{"username": {"bob"}, "password": {strings.Repeat("x", 73)}}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			auth.Login(rec, form("/auth/login", tt.values))
			assert.Equal(t, tt.code, rec.Code)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}

func TestLogoutClearsCookies(t *testing.T) {
	auth := NewAuth(testLog, newMemStore(), testCookies(t))
	rec := httptest.NewRecorder()
	auth.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	for _, c := range rec.Result().Cookies() {
		assert.Equal(t, -1, c.MaxAge)
	}
	assert.Len(t, rec.Result().Cookies(), 2)
}
