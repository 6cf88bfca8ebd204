// Package session keeps the client's bearer tokens and the record bridged
// from a "show" to a following "update".
//
// Session replaces ambient browser storage with an injected dependency:
// Store persists to the local sqlite database with every value sealed,
// Memory lives for the process and is what tests use.
package session

import (
	"context"
)

// Session is the token and stash storage used by the HTTP client and the
// services. Token returns "" with a nil error when no token is stored.
type Session interface {
	Token(ctx context.Context, key string) (string, error)
	SetToken(ctx context.Context, key, token string) error
	// Clear drops every token and stashed record.
	Clear(ctx context.Context) error
	Stash(ctx context.Context, resource string, v any) error
	// Stashed decodes the record stashed for resource into v and reports
	// whether there was one.
	Stashed(ctx context.Context, resource string, v any) (bool, error)
}

const (
	saltKey     = "install.salt"
	tokenPrefix = "token."
	stashPrefix = "stash."
)
