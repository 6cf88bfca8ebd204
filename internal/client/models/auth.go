package models

import "strings"

// Credentials is the login request body (sent encrypted).
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the signup request body (sent encrypted).
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}

// AuthResult is the decrypted login/signup response. Deployments differ in
// the key they use for the clinic token, so both spellings are accepted.
type AuthResult struct {
	AccessToken string         `json:"access_token,omitempty"`
	Token       string         `json:"token,omitempty"`
	RosaToken   string         `json:"rosa_token,omitempty"`
	Message     string         `json:"message,omitempty"`
	User        map[string]any `json:"user,omitempty"`
}

// BearerToken returns the clinic token, whichever key it arrived under.
func (r AuthResult) BearerToken() string {
	if t := strings.TrimSpace(r.AccessToken); t != "" {
		return t
	}
	return strings.TrimSpace(r.Token)
}
