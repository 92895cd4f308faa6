package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/muhammadolammi/opportunitymatch/internal/docstore"
	"github.com/muhammadolammi/opportunitymatch/internal/domain"
	"github.com/muhammadolammi/opportunitymatch/internal/events"
	"github.com/muhammadolammi/opportunitymatch/internal/oracle/oracletest"
	"github.com/muhammadolammi/opportunitymatch/internal/session"
	"github.com/muhammadolammi/opportunitymatch/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type capturePublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *capturePublisher) Publish(_ context.Context, ev events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *capturePublisher) Close() error { return nil }

func (p *capturePublisher) ofType(t string) []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.Event
	for _, ev := range p.events {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

type memArchive struct {
	mu   sync.Mutex
	docs map[string]string
}

func newMemArchive() *memArchive { return &memArchive{docs: map[string]string{}} }

func (a *memArchive) Save(_ context.Context, userID int64, text string) (string, error) {
	key := docstore.ObjectKey(userID)
	a.mu.Lock()
	a.docs[key] = text
	a.mu.Unlock()
	return key, nil
}

func (a *memArchive) Load(_ context.Context, userID int64, key string) (string, error) {
	if !docstore.OwnsKey(userID, key) {
		return "", domain.NotFound("CV not found")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	text, ok := a.docs[key]
	if !ok {
		return "", domain.NotFound("CV not found")
	}
	return text, nil
}

type testEnv struct {
	t       *testing.T
	store   *store.MemStore
	oracle  *oracletest.Fake
	events  *capturePublisher
	archive *memArchive
	handler http.Handler
}

type envOption func(*Options)

func withAdminToken(tok string) envOption {
	return func(o *Options) { o.AdminToken = tok }
}

func newEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	st := store.NewMemStore()
	if err := store.SeedIfEmpty(context.Background(), st); err != nil {
		t.Fatalf("seed: %v", err)
	}
	env := &testEnv{
		t:       t,
		store:   st,
		oracle:  oracletest.New(),
		events:  &capturePublisher{},
		archive: newMemArchive(),
	}
	o := Options{
		SessionTTL:  time.Hour,
		BcryptCost:  bcrypt.MinCost,
		CORSOrigins: []string{"http://localhost:5173"},
		Backends:    map[string]string{"store": "memory", "sessions": "memory"},
	}
	for _, fn := range opts {
		fn(&o)
	}
	srv := NewServer(st, session.NewMemoryStore(time.Hour), env.oracle, env.archive, env.events, o)
	env.handler = srv.Router()
	return env
}

func (e *testEnv) do(method, path string, body any, cookie *http.Cookie, header ...string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its id and session cookie.
func (e *testEnv) register(email string) (int64, *http.Cookie) {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": email, "name": "Ada Lovelace", "password": "correct-horse",
	}, nil)
	if rec.Code != http.StatusCreated {
		e.t.Fatalf("register: %d %s", rec.Code, rec.Body)
	}
	var u domain.User
	decode(e.t, rec, &u)
	return u.ID, sessionCookieOf(e.t, rec)
}

func sessionCookieOf(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no session cookie in %v", rec.Header().Values("Set-Cookie"))
	return nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body, err)
	}
}

func messageOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, rec, &body)
	return body.Message
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d: %s", rec.Code, want, rec.Body)
	}
}

// scores renders an oracle scoring reply; pairs are id, score.
func scores(pairs ...int) string {
	type entry struct {
		OpportunityID   int      `json:"opportunityId"`
		MatchPercentage int      `json:"matchPercentage"`
		Reasons         []string `json:"reasons"`
	}
	var list []entry
	for i := 0; i+1 < len(pairs); i += 2 {
		list = append(list, entry{pairs[i], pairs[i+1], []string{"reason " + strconv.Itoa(pairs[i])}})
	}
	raw, _ := json.Marshal(map[string]any{"matches": list})
	return string(raw)
}

var errOracleDown = errors.New("oracle unavailable")
