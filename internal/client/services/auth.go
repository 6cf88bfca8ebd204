package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/client/client"
	"github.com/dmitrijs2005/clinicadmin/internal/client/models"
	"github.com/dmitrijs2005/clinicadmin/internal/client/session"
	"github.com/dmitrijs2005/clinicadmin/internal/common"
	"github.com/dmitrijs2005/clinicadmin/internal/logging"
)

var (
	ErrEmptyCredentials = errors.New("email and password are required")
	ErrNoTokenIssued    = errors.New("backend did not return a token")
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for tokens and keep them in the session.
//   - Signup: create an account; tokens are kept when the backend issues them.
//   - Logout: drop every token and stashed record.
//   - WhoAmI: describe the stored tokens without contacting the backend.
type AuthService interface {
	Login(ctx context.Context, email, password string) (models.AuthResult, error)
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error)
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) ([]TokenStatus, error)
}

// TokenStatus describes one stored token.
type TokenStatus struct {
	Key     string
	Present bool
	Claims  session.Claims
	Expired bool
	// Opaque is set for tokens that are not JWTs.
	Opaque bool
}

type authService struct {
	transport client.Transport
	session   session.Session
	log       logging.Logger
	now       func() time.Time
}

func NewAuthService(t client.Transport, s session.Session, log logging.Logger) AuthService {
	return &authService{transport: t, session: s, log: log, now: time.Now}
}

func (a *authService) Login(ctx context.Context, email, password string) (models.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return models.AuthResult{}, ErrEmptyCredentials
	}

	res, err := a.exchange(ctx, client.LoginPath, models.Credentials{Email: email, Password: password})
	if err != nil {
		return res, fmt.Errorf("login error: %w", err)
	}
	if res.BearerToken() == "" {
		return res, ErrNoTokenIssued
	}

	if err := a.keepTokens(ctx, res); err != nil {
		return res, err
	}
	a.log.Info(ctx, "logged in", "email", email)
	return res, nil
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return models.AuthResult{}, ErrEmptyCredentials
	}

	res, err := a.exchange(ctx, client.SignupPath, req)
	if err != nil {
		return res, fmt.Errorf("signup error: %w", err)
	}

	if res.BearerToken() != "" {
		if err := a.keepTokens(ctx, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) WhoAmI(ctx context.Context) ([]TokenStatus, error) {
	keys := []string{common.AccessTokenKey, common.RosaTokenKey}
	out := make([]TokenStatus, 0, len(keys))

	for _, key := range keys {
		token, err := a.session.Token(ctx, key)
		if err != nil {
			return nil, err
		}

		st := TokenStatus{Key: key, Present: token != ""}
		if st.Present {
			claims, err := session.Inspect(token)
			if err != nil {
				st.Opaque = true
			} else {
				st.Claims = claims
				st.Expired = claims.Expired(a.now())
			}
		}
		out = append(out, st)
	}
	return out, nil
}

func (a *authService) exchange(ctx context.Context, path string, body any) (models.AuthResult, error) {
	raw, err := a.transport.Do(ctx, client.Call{
		Method:    http.MethodPost,
		Path:      path,
		Body:      body,
		Realm:     client.RealmAnonymous,
		Encrypted: true,
	})
	if err != nil {
		return models.AuthResult{}, err
	}

	var res models.AuthResult
	if len(raw) == 0 {
		return res, nil
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return res, fmt.Errorf("decoding auth response: %w", err)
	}
	return res, nil
}

func (a *authService) keepTokens(ctx context.Context, res models.AuthResult) error {
	if err := a.session.SetToken(ctx, common.AccessTokenKey, res.BearerToken()); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	if res.RosaToken != "" {
		if err := a.session.SetToken(ctx, common.RosaTokenKey, res.RosaToken); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}
	}
	return nil
}
