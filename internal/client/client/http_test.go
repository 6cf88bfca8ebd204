package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/dmitrijs2005/clinicadmin/internal/client/session"
	"github.com/dmitrijs2005/clinicadmin/internal/common"
	"github.com/dmitrijs2005/clinicadmin/internal/cryptox"
	"github.com/dmitrijs2005/clinicadmin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "clinic-shared-secret"

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	calls       int
	method      string
	path        string
	rawPath     string // URL-encoded path (for testing PathEscape)
	query       url.Values
	body        string
	contentType string
	header      http.Header

	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.calls++
	h.method = r.Method
	h.path = r.URL.Path
	h.rawPath = r.URL.RawPath
	h.query = r.URL.Query()
	h.contentType = r.Header.Get("Content-Type")
	h.header = r.Header.Clone()
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

type fixture struct {
	client  *HTTPClient
	session *session.Memory
	cipher  *cryptox.PayloadCipher
	logs    *bytes.Buffer
	srv     *httptest.Server
}

func newFixture(t *testing.T, h http.Handler) *fixture {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	pc, err := cryptox.NewPayloadCipher(testSecret)
	require.NoError(t, err)

	logs := &bytes.Buffer{}
	sess := session.NewMemory()

	c := NewHTTPClient(Options{
		BaseURL:     srv.URL + "/api",
		RosaBaseURL: srv.URL + "/rosa",
		Timeout:     2 * time.Second,
		Session:     sess,
		Cipher:      pc,
		Logger:      logging.New(logs, logging.BackendSlog, "debug"),
	})
	c.requestID = func() string { return "req-1" }

	return &fixture{client: c, session: sess, cipher: pc, logs: logs, srv: srv}
}

func (f *fixture) login(t *testing.T, key, token string) {
	t.Helper()
	require.NoError(t, f.session.SetToken(context.Background(), key, token))
}

func TestHTTPClient_AuthenticatedGet(t *testing.T) {
	h := &testHandler{responseBody: `[{"_id":"1"}]`}
	f := newFixture(t, h)
	f.login(t, common.AccessTokenKey, "tok-a")

	raw, err := f.client.Do(context.Background(), Call{
		Method: http.MethodGet,
		Path:   "/patients",
		Query:  url.Values{"page": {"1"}, "limit": {"1000"}},
		Realm:  RealmClinic,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_id":"1"}]`, string(raw))

	assert.Equal(t, http.MethodGet, h.method)
	assert.Equal(t, "/api/patients", h.path)
	assert.Equal(t, "1000", h.query.Get("limit"))
	assert.Equal(t, "Bearer tok-a", h.header.Get("Authorization"))
	assert.Equal(t, "req-1", h.header.Get("X-Request-ID"))
	assert.Equal(t, "application/json", h.header.Get("Accept"))
	assert.Empty(t, h.contentType)
}

func TestHTTPClient_RosaRealmUsesRosaTokenAndURL(t *testing.T) {
	h := &testHandler{responseBody: `[]`}
	f := newFixture(t, h)
	f.login(t, common.AccessTokenKey, "tok-a")
	f.login(t, common.RosaTokenKey, "tok-r")

	_, err := f.client.Do(context.Background(), Call{Method: http.MethodGet, Path: "chat-bot-history", Realm: RealmRosa})
	require.NoError(t, err)

	assert.Equal(t, "/rosa/chat-bot-history", h.path)
	assert.Equal(t, "Bearer tok-r", h.header.Get("Authorization"))
}

func TestHTTPClient_MissingTokenShortCircuits(t *testing.T) {
	h := &testHandler{}
	f := newFixture(t, h)

	_, err := f.client.Do(context.Background(), Call{Method: http.MethodGet, Path: "/staff", Realm: RealmClinic})

	assert.ErrorIs(t, err, ErrNoToken)
	assert.Zero(t, h.calls, "nothing must be sent without a token")
	assert.Contains(t, f.logs.String(), "no bearer token")
	assert.Contains(t, f.logs.String(), "access_token")
}

func TestHTTPClient_AnonymousCallSendsNoAuthorization(t *testing.T) {
	h := &testHandler{responseBody: `{}`}
	f := newFixture(t, h)

	_, err := f.client.Do(context.Background(), Call{Method: http.MethodGet, Path: "/health"})
	require.NoError(t, err)
	assert.Empty(t, h.header.Get("Authorization"))
}

func TestHTTPClient_ExpiredTokenWarnsAndSends(t *testing.T) {
	h := &testHandler{responseBody: `[]`}
	f := newFixture(t, h)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	f.login(t, common.AccessTokenKey, expired)

	_, err = f.client.Do(context.Background(), Call{Method: http.MethodGet, Path: "/patients", Realm: RealmClinic})
	require.NoError(t, err)

	assert.Equal(t, 1, h.calls)
	assert.Contains(t, f.logs.String(), "bearer token has expired")
}

func TestHTTPClient_EncryptedRoundTrip(t *testing.T) {
	pc, err := cryptox.NewPayloadCipher(testSecret)
	require.NoError(t, err)

	reply, err := pc.Encrypt(map[string]string{"access_token": "tok-new"})
	require.NoError(t, err)
	replyBody, err := json.Marshal(models.Envelope{Data: reply})
	require.NoError(t, err)

	h := &testHandler{responseBody: string(replyBody)}
	f := newFixture(t, h)

	raw, err := f.client.Do(context.Background(), Call{
		Method:    http.MethodPost,
		Path:      LoginPath,
		Body:      models.Credentials{Email: "a@b.test", Password: "pw"},
		Encrypted: true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"tok-new"}`, string(raw))

	assert.Equal(t, "application/json", h.contentType)

	var sent models.Envelope
	require.NoError(t, json.Unmarshal([]byte(h.body), &sent))
	assert.NotContains(t, h.body, "a@b.test")

	var creds models.Credentials
	require.NoError(t, pc.Unwrap(sent, &creds))
	assert.Equal(t, models.Credentials{Email: "a@b.test", Password: "pw"}, creds)
}

func TestHTTPClient_EncryptedCallWithPlainResponse(t *testing.T) {
	h := &testHandler{responseBody: `{"data":{"_id":"s1"},"message":"created"}`}
	f := newFixture(t, h)
	f.login(t, common.AccessTokenKey, "t")

	raw, err := f.client.Do(context.Background(), Call{
		Method: http.MethodPost, Path: "/staff", Body: map[string]string{"name": "x"},
		Realm: RealmClinic, Encrypted: true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, h.responseBody, string(raw))
}

func TestHTTPClient_DecryptFailureOn200(t *testing.T) {
	h := &testHandler{responseBody: `{"data":"U2FsdGVkX19nYXJiYWdlIGdhcmJhZ2U="}`}
	f := newFixture(t, h)

	_, err := f.client.Do(context.Background(), Call{
		Method: http.MethodPost, Path: LoginPath, Body: map[string]string{}, Encrypted: true,
	})
	assert.ErrorIs(t, err, common.ErrDecrypt)
}

func TestHTTPClient_EncryptedWithoutCipher(t *testing.T) {
	h := &testHandler{}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c := NewHTTPClient(Options{BaseURL: srv.URL, Session: session.NewMemory()})
	_, err := c.Do(context.Background(), Call{Method: http.MethodPost, Path: "/x", Body: 1, Encrypted: true})
	assert.ErrorIs(t, err, ErrNoCipher)
	assert.Zero(t, h.calls)
}

func TestHTTPClient_StatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		message string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"message":"jwt expired"}`, ErrUnauthorized, "jwt expired"},
		{"forbidden", http.StatusForbidden, `{"error":"no access"}`, ErrUnauthorized, "no access"},
		{"not found", http.StatusNotFound, `not here`, ErrNotFound, "not here"},
		{"server error", http.StatusBadGateway, ``, ErrUnavailable, ""},
		{"bad request", http.StatusBadRequest, `{"message":"email taken"}`, nil, "email taken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &testHandler{statusCode: tt.status, responseBody: tt.body}
			f := newFixture(t, h)
			f.login(t, common.AccessTokenKey, "t")

			_, err := f.client.Do(context.Background(), Call{Method: http.MethodGet, Path: "/patients", Realm: RealmClinic})
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)

			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			} else {
				assert.NotErrorIs(t, err, ErrUnauthorized)
				assert.NotErrorIs(t, err, ErrNotFound)
				assert.NotErrorIs(t, err, ErrUnavailable)
			}
		})
	}
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	h := &testHandler{}
	f := newFixture(t, h)
	f.srv.Close()

	_, err := f.client.Do(context.Background(), Call{Method: http.MethodGet, Path: "/x"})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_ContextCancelled(t *testing.T) {
	h := &testHandler{}
	f := newFixture(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.client.Do(ctx, Call{Method: http.MethodGet, Path: "/x"})
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHTTPClient_NoContent(t *testing.T) {
	h := &testHandler{statusCode: http.StatusNoContent}
	f := newFixture(t, h)
	f.login(t, common.AccessTokenKey, "t")

	raw, err := f.client.Do(context.Background(), Call{Method: http.MethodDelete, Path: "/patients/1", Realm: RealmClinic})
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestAPIError_Error(t *testing.T) {
	assert.Equal(t, "HTTP 418", (&APIError{StatusCode: 418}).Error())
	assert.Equal(t, "HTTP 400: bad", newAPIError(400, "bad").Error())
}

func TestPageQuery_Values(t *testing.T) {
	q := PageQuery{Page: 2, Limit: 50, Extra: url.Values{"search": {"ann"}}}
	assert.Equal(t, "limit=50&page=2&search=ann", q.Values().Encode())
	assert.Empty(t, PageQuery{}.Values())
}

func TestRealm(t *testing.T) {
	assert.Equal(t, "access_token", RealmClinic.TokenKey())
	assert.Equal(t, "rosa_token", RealmRosa.TokenKey())
	assert.Empty(t, RealmAnonymous.TokenKey())
	assert.Equal(t, "rosa", RealmRosa.String())
}
