package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/client/client"
	"github.com/dmitrijs2005/clinicadmin/internal/client/config"
	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/dmitrijs2005/clinicadmin/internal/client/session"
	"github.com/dmitrijs2005/clinicadmin/internal/cryptox"
	"github.com/dmitrijs2005/clinicadmin/internal/logging"
	"github.com/stretchr/testify/require"
)

const testSecret = "clinic-shared-secret"

// backend is an in-process stand-in for the clinic REST API.
type backend struct {
	t      *testing.T
	cipher *cryptox.PayloadCipher

	mu       sync.Mutex
	requests []string
	auth     map[string]string
	queries  map[string]string
	bodies   map[string]map[string]any
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	t.Helper()
	pc, err := cryptox.NewPayloadCipher(testSecret)
	require.NoError(t, err)

	b := &backend{
		t:       t,
		cipher:  pc,
		auth:    map[string]string{},
		queries: map[string]string{},
		bodies:  map[string]map[string]any{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", b.login)
	mux.HandleFunc("GET /api/patients", b.listPatients)
	mux.HandleFunc("GET /api/patients/{id}", b.getPatient)
	mux.HandleFunc("PUT /api/patients/{id}", b.store)
	mux.HandleFunc("DELETE /api/patients/{id}", b.noContent)
	mux.HandleFunc("POST /api/departments", b.store)
	mux.HandleFunc("GET /api/departments", b.failing)
	mux.HandleFunc("POST /api/staff", b.store)
	mux.HandleFunc("GET /rosa/chat-bot-history", b.chatHistory)

	srv := httptest.NewServer(b.record(mux))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		b.mu.Lock()
		b.requests = append(b.requests, key)
		b.auth[key] = r.Header.Get("Authorization")
		b.queries[key] = r.URL.RawQuery
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func (b *backend) calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func (b *backend) authFor(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.auth[key]
}

func (b *backend) queryFor(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries[key]
}

func (b *backend) bodyFor(key string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

func (b *backend) login(w http.ResponseWriter, r *http.Request) {
	var env models.Envelope
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&env))
	var creds models.Credentials
	require.NoError(b.t, b.cipher.Unwrap(env, &creds))

	if creds.Password != "s3cret" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"invalid credentials"}`)
		return
	}
	out, err := b.cipher.Wrap(models.AuthResult{AccessToken: "tok-clinic", RosaToken: "tok-rosa", Message: "Welcome back"})
	require.NoError(b.t, err)
	_ = json.NewEncoder(w).Encode(out)
}

func testPatients() []map[string]any {
	out := make([]map[string]any, 0, 12)
	for i := range 12 {
		branch := "B"
		if i%2 == 0 || i == 3 {
			branch = "A"
		}
		out = append(out, map[string]any{
			"_id":            fmt.Sprintf("p%d", i),
			"firstname":      fmt.Sprintf("Name%d", i),
			"lastname":       "Doe",
			"email":          fmt.Sprintf("p%d@clinic.test", i),
			"phone":          fmt.Sprintf("555-01%02d", i),
			"branch":         branch,
			"medicalHistory": fmt.Sprintf("history %d", i),
			"createdAt":      time.Date(2025, 1, 1+i, 12, 0, 0, 0, time.UTC).Format(time.RFC3339),
		})
	}
	return out
}

func (b *backend) listPatients(w http.ResponseWriter, _ *http.Request) {
	items := testPatients()
	_ = json.NewEncoder(w).Encode(map[string]any{"data": items, "totalCount": len(items)})
}

func (b *backend) getPatient(w http.ResponseWriter, r *http.Request) {
	for _, p := range testPatients() {
		if p["_id"] == r.PathValue("id") {
			_ = json.NewEncoder(w).Encode(map[string]any{"data": p})
			return
		}
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, `{"message":"patient not found"}`)
}

func (b *backend) store(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	require.NoError(b.t, json.NewDecoder(r.Body).Decode(&body))
	b.mu.Lock()
	b.bodies[r.Method+" "+r.URL.Path] = body
	b.mu.Unlock()
	_, _ = io.WriteString(w, `{"_id":"new-1"}`)
}

func (b *backend) noContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (b *backend) failing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusBadGateway)
	_, _ = io.WriteString(w, `{"message":"upstream down"}`)
}

func (b *backend) chatHistory(w http.ResponseWriter, _ *http.Request) {
	_, _ = io.WriteString(w, `{"elements":[{"_id":7,"email":"guest@mail.test","question":"Opening hours?","createdAt":"2025-02-01"}],"totalCount":1,"totalPages":1,"page":1}`)
}

type harness struct {
	app     *App
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	session *session.Memory
	backend *backend
}

// newHarness builds an App against a fresh backend. input feeds prompts and
// the shell.
func newHarness(t *testing.T, input string) *harness {
	t.Helper()

	origTerm := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = origTerm })

	b, srv := newBackend(t)
	pc, err := cryptox.NewPayloadCipher(testSecret)
	require.NoError(t, err)

	cfg := &config.Config{PageSize: 5, FetchLimit: 1000}
	sess := session.NewMemory()
	log := logging.New(io.Discard, logging.BackendSlog, "error")

	tr := client.NewHTTPClient(client.Options{
		BaseURL:     srv.URL + "/api",
		RosaBaseURL: srv.URL + "/rosa",
		Timeout:     2 * time.Second,
		Session:     sess,
		Cipher:      pc,
		Logger:      log,
	})

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	app := NewApp(Deps{
		Config:    cfg,
		Transport: tr,
		Session:   sess,
		Logger:    log,
		In:        strings.NewReader(input),
		Out:       out,
		ErrOut:    errOut,
	})
	return &harness{app: app, out: out, errOut: errOut, session: sess, backend: b}
}

func (h *harness) run(args ...string) error {
	return h.app.Run(context.Background(), args)
}

func (h *harness) loggedIn(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, h.session.SetToken(ctx, "access_token", "tok-clinic"))
	require.NoError(t, h.session.SetToken(ctx, "rosa_token", "tok-rosa"))
}
