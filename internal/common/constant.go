// Package common contains shared constants and sentinel errors used across
// clinicadmin components.
package common

// AuthorizationHeaderName is the HTTP header carrying the bearer token on
// outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName tags every outbound request so client and backend logs
// can be correlated.
const RequestIDHeaderName = "X-Request-ID"

// Session keys under which bearer tokens are kept. AccessTokenKey belongs to
// the clinic backend, RosaTokenKey to the integrated chat-bot system.
const (
	AccessTokenKey = "access_token"
	RosaTokenKey   = "rosa_token"
)
