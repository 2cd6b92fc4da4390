package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/msomdec/careerforge/internal/domain"
	"github.com/msomdec/careerforge/internal/github"
	"github.com/msomdec/careerforge/internal/handler"
	"github.com/msomdec/careerforge/internal/repository/sqlite"
	"github.com/msomdec/careerforge/internal/service"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

// stubGenerator answers every prompt with the same reply.
type stubGenerator struct {
	mu    sync.Mutex
	reply string
	err   error
	calls int
}

func (g *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	return g.reply, g.err
}

func (g *stubGenerator) set(reply string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.reply, g.err = reply, err
}

func (g *stubGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

type testEnv struct {
	db  *sqlite.DB
	gen *stubGenerator
	svc handler.Services
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithLimit(t, 100)
}

func newTestEnvWithLimit(t *testing.T, capacity float64) *testEnv {
	t.Helper()
	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gh := httptest.NewServer(http.HandlerFunc(fakeGitHub))
	t.Cleanup(gh.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gen := &stubGenerator{}
	return &testEnv{
		db:  db,
		gen: gen,
		svc: handler.Services{
			Auth:        service.NewAuthService(db.Users(), db.LocalAccounts(), testJWTSecret, 4),
			ATS:         service.NewATSService(gen, db.Scans(), db.FileStore()),
			CoverLetter: service.NewCoverLetterService(gen, db.CoverLetters()),
			LinkedIn:    service.NewLinkedInService(gen),
			Roast:       service.NewRoastService(gen, github.NewClient(gh.URL, "", gh.Client()), db.Roasts()),
			Negotiation: service.NewNegotiationService(gen, nil),
			Limiter:     service.NewTokenBucket(ctx, 0.001, capacity),
		},
	}
}

func fakeGitHub(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/users/octocat":
		io.WriteString(w, `{"login":"octocat","name":"The Octocat","bio":"","followers":3,"public_repos":2}`)
	case "/users/octocat/repos":
		io.WriteString(w, `[{"name":"hello-world","stargazers_count":7},{"name":"spoon-knife","stargazers_count":1}]`)
	case "/users/busy", "/users/busy/repos":
		w.Header().Set("Retry-After", "90")
		w.WriteHeader(http.StatusTooManyRequests)
	default:
		http.NotFound(w, r)
	}
}

// server starts the full router behind the security headers.
func (e *testEnv) server(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, e.svc, false)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)
	return srv
}

// signIn registers an account and returns a client carrying its auth cookie.
func (e *testEnv) signIn(t *testing.T, srv *httptest.Server, email string) (*http.Client, *domain.User) {
	t.Helper()
	ctx := context.Background()
	user, err := e.svc.Auth.Register(ctx, email, "Test User", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token, err := e.svc.Auth.Login(ctx, email, "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	srvURL, _ := url.Parse(srv.URL)
	jar.SetCookies(srvURL, []*http.Cookie{{Name: "auth_token", Value: token, Path: "/"}})

	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}, user
}

func postJSON(t *testing.T, client *http.Client, target, body string) *http.Response {
	t.Helper()
	resp, err := client.Post(target, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func postDatastar(t *testing.T, client *http.Client, target, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Datastar-Request", "true")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("POST %s: %v", target, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body map[string]string
	decodeJSON(t, resp, &body)
	return body["error"]
}
