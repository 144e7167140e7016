package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutes_RequireAuth(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/user/me"},
		{http.MethodGet, "/recipe"},
		{http.MethodPost, "/recipe"},
		{http.MethodGet, "/recipe/1"},
		{http.MethodPost, "/recipe/1/upload-image"},
		{http.MethodGet, "/tag"},
		{http.MethodPatch, "/tag/1"},
		{http.MethodGet, "/ingredient"},
		{http.MethodDelete, "/ingredient/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.target, nil, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			res := decode[ErrorMessage](t, rec)
			assert.Equal(t, http.StatusText(http.StatusUnauthorized), res.Message)
		})
	}
}

func TestRoutes_InvalidToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/recipe", nil, "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "user@example.com")

	tests := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/user/me"},
		{http.MethodGet, "/user/create"},
		{http.MethodPost, "/tag"},
		{http.MethodPost, "/ingredient"},
		{http.MethodPost, "/tag/1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := env.do(t, tt.method, tt.target, map[string]any{}, token)
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		})
	}
}

func TestRoutes_TrailingSlash(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "user@example.com")

	rec := env.do(t, http.MethodGet, "/recipe/", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	env.mr.Close()
	rec = env.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
