// Package testutil starts a fully wired console against a fake upstream.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"internship_admin/internal/app"
	"internship_admin/internal/config"
	"internship_admin/internal/logger"
	"internship_admin/internal/testutil/fakeapi"
)

type TestServer struct {
	Server  *httptest.Server
	API     *fakeapi.Server
	Console *app.Console
}

// NewTestServer starts the console and its fake upstream. Both are closed
// when the test ends. Listings are not loaded; call Load after seeding.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	logger.Init("test")

	api := fakeapi.New()
	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Upstream.URL = api.URL
	cfg.Notify.TTL = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	console := app.SetupConsole(ctx, cfg)
	server := httptest.NewServer(console.Router)

	t.Cleanup(func() {
		server.Close()
		console.Close()
		cancel()
		api.Close()
	})
	return &TestServer{Server: server, API: api, Console: console}
}

// Load pulls the seeded upstream rows into the console.
func (ts *TestServer) Load(t *testing.T) {
	t.Helper()
	if err := ts.Console.Controller.Load(context.Background()); err != nil {
		t.Fatalf("load listings: %v", err)
	}
}

// SendRequest sends body as JSON and returns the response with its body read.
// headers are name/value pairs.
func (ts *TestServer) SendRequest(t *testing.T, method, path string, body any, headers ...string) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("send request: %v", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return res, string(resBody)
}

// Decode unmarshals a response body or fails the test.
func Decode[T any](t *testing.T, body string) T {
	t.Helper()
	var out T
	if err := json.Unmarshal([]byte(body), &out); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return out
}
