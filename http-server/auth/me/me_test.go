package me

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renza-entrega/internal/middleware/auth"
	authsvc "renza-entrega/internal/service/auth"
)

type staticVerifier struct{}

func (staticVerifier) Verify(token string) (*authsvc.Claims, error) {
	if token != "good" {
		return nil, errors.New("bad token")
	}
	return &authsvc.Claims{UID: "u1", Email: "tec@renza.com", Name: "Técnico"}, nil
}

func TestMe(t *testing.T) {
	h := auth.Bearer(nil, staticVerifier{})(Me())

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "u1", body["uid"])
	assert.Equal(t, "Técnico", body["name"])
}

func TestMe_WithoutMiddleware(t *testing.T) {
	rr := httptest.NewRecorder()
	Me().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
