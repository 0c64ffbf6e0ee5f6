package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renza-entrega/internal/app"
	"renza-entrega/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		Env:         "local",
		Storage:     config.Storage{Driver: "memory"},
		Media:       config.Media{Driver: "memory"},
		Auth:        config.Auth{JWTSecret: "secret", TokenTTL: time.Hour},
		AdminLogin:  "admin",
		AdminPass:   "pass",
		CorsOrigins: []string{"http://localhost:5173"},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	deps, err := app.New(context.Background(), &cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { deps.Close() })

	srv := httptest.NewServer(routes(cfg, log, deps))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func loginToken(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	resp := postJSON(t, srv.URL+"/api/auth/register", map[string]string{
		"name": "Técnico", "email": "tec@renza.com", "password": "segredo",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, srv.URL+"/api/auth/login", map[string]string{
		"email": "tec@renza.com", "password": "segredo",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	require.NotEmpty(t, token.AccessToken)
	return token.AccessToken
}

func get(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestRoutes_ContractsRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/contracts", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoutes_ReportFlow(t *testing.T) {
	srv := newTestServer(t)
	token := loginToken(t, srv)

	who := get(t, srv.URL+"/api/auth/me", token)
	who.Body.Close()
	assert.Equal(t, http.StatusOK, who.StatusCode)

	resp := get(t, srv.URL+"/api/contracts", token)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.NotEmpty(t, list)

	pdf := get(t, srv.URL+"/api/contracts/contrato_001/report.pdf", token)
	defer pdf.Body.Close()
	require.Equal(t, http.StatusOK, pdf.StatusCode)
	assert.Equal(t, "application/pdf", pdf.Header.Get("Content-Type"))
	body, err := io.ReadAll(pdf.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	missing := get(t, srv.URL+"/api/contracts/nope/report.pdf", token)
	missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestRoutes_MetricsBasicAuth(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/metrics", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/metrics", nil)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "pass")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "renza_http_requests_total")
}
