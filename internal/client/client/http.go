package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/client/session"
	"github.com/dmitrijs2005/clinicadmin/internal/common"
	"github.com/dmitrijs2005/clinicadmin/internal/cryptox"
	"github.com/dmitrijs2005/clinicadmin/internal/logging"
	"github.com/google/uuid"
)

// Options configure an HTTPClient. BaseURL is required; RosaBaseURL defaults
// to BaseURL.
type Options struct {
	BaseURL     string
	RosaBaseURL string
	Timeout     time.Duration
	Session     session.Session
	Cipher      *cryptox.PayloadCipher
	Logger      logging.Logger
	// HTTPClient overrides the default client (Timeout is then ignored).
	HTTPClient *http.Client
}

// HTTPClient implements Transport over the backend's JSON REST API.
type HTTPClient struct {
	baseURL     string
	rosaBaseURL string
	httpClient  *http.Client
	session     session.Session
	cipher      *cryptox.PayloadCipher
	log         logging.Logger

	now       func() time.Time
	requestID func() string
}

func NewHTTPClient(opts Options) *HTTPClient {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	log := opts.Logger
	if log == nil {
		log = logging.New(io.Discard, logging.BackendSlog, "error")
	}
	rosa := opts.RosaBaseURL
	if rosa == "" {
		rosa = opts.BaseURL
	}
	return &HTTPClient{
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		rosaBaseURL: strings.TrimRight(rosa, "/"),
		httpClient:  hc,
		session:     opts.Session,
		cipher:      opts.Cipher,
		log:         log,
		now:         time.Now,
		requestID:   uuid.NewString,
	}
}

func (c *HTTPClient) Do(ctx context.Context, call Call) ([]byte, error) {
	token, err := c.bearer(ctx, call)
	if err != nil {
		return nil, err
	}

	body, err := c.encodeBody(call)
	if err != nil {
		return nil, err
	}

	target := c.urlFor(call)
	req, err := http.NewRequestWithContext(ctx, call.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	reqID := c.requestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	started := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", call.Method, "path", call.Path, "request_id", reqID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrUnavailable, err)
	}

	c.log.Debug(ctx, "request done",
		"method", call.Method,
		"path", call.Path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"elapsed", c.now().Sub(started),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, errorMessage(raw))
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	if call.Encrypted {
		return c.decodeEnvelope(raw)
	}
	return raw, nil
}

// bearer returns the token for the call's realm. A missing token is logged
// and short-circuits the call; an expired one is logged and sent anyway.
func (c *HTTPClient) bearer(ctx context.Context, call Call) (string, error) {
	key := call.Realm.TokenKey()
	if key == "" {
		return "", nil
	}

	token, err := c.session.Token(ctx, key)
	if err != nil {
		return "", err
	}
	if token == "" {
		c.log.Warn(ctx, "no bearer token, request not sent", "token", key, "method", call.Method, "path", call.Path)
		return "", ErrNoToken
	}

	if claims, err := session.Inspect(token); err == nil && claims.Expired(c.now()) {
		c.log.Warn(ctx, "bearer token has expired", "token", key, "expired_at", claims.ExpiresAt)
	}

	return token, nil
}

func (c *HTTPClient) encodeBody(call Call) (io.Reader, error) {
	if call.Body == nil {
		return nil, nil
	}

	payload := call.Body
	if call.Encrypted {
		if c.cipher == nil {
			return nil, ErrNoCipher
		}
		env, err := c.cipher.Wrap(call.Body)
		if err != nil {
			return nil, fmt.Errorf("encrypting request: %w", err)
		}
		payload = env
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}
	return bytes.NewReader(data), nil
}

// decodeEnvelope decrypts a {"data": "<ciphertext>"} response. Responses
// that are not enveloped (data is absent or not a string) pass through.
func (c *HTTPClient) decodeEnvelope(raw []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return raw, nil
	}

	data, ok := fields["data"]
	if !ok || len(data) == 0 || data[0] != '"' {
		return raw, nil
	}

	var ciphertext string
	if err := json.Unmarshal(data, &ciphertext); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDecrypt, err)
	}

	if c.cipher == nil {
		return nil, ErrNoCipher
	}
	return c.cipher.OpenBytes(ciphertext)
}

func (c *HTTPClient) urlFor(call Call) string {
	base := c.baseURL
	if call.Realm == RealmRosa {
		base = c.rosaBaseURL
	}

	u := base + "/" + strings.TrimLeft(call.Path, "/")
	if len(call.Query) > 0 {
		u += "?" + call.Query.Encode()
	}
	return u
}

// errorMessage extracts {"message": ...} or {"error": ...} from an error
// body, falling back to the raw text.
func errorMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &body) == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}
