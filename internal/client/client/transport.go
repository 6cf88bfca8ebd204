package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/clinicadmin/internal/common"
)

// Realm selects which bearer token (and base URL) a call uses.
type Realm int

const (
	// RealmAnonymous calls carry no token (login, signup).
	RealmAnonymous Realm = iota
	// RealmClinic calls use access_token against the clinic API.
	RealmClinic
	// RealmRosa calls use rosa_token against the chat bot API.
	RealmRosa
)

// TokenKey is the session key holding the realm's token.
func (r Realm) TokenKey() string {
	switch r {
	case RealmClinic:
		return common.AccessTokenKey
	case RealmRosa:
		return common.RosaTokenKey
	default:
		return ""
	}
}

func (r Realm) String() string {
	switch r {
	case RealmClinic:
		return "clinic"
	case RealmRosa:
		return "rosa"
	default:
		return "anonymous"
	}
}

// Call describes one backend request.
type Call struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded; nil sends no body.
	Body  any
	Realm Realm
	// Encrypted wraps Body in the {"data": ciphertext} envelope and decrypts
	// an enveloped response.
	Encrypted bool
}

// Transport performs a Call and returns the (decrypted) response body.
type Transport interface {
	Do(ctx context.Context, call Call) ([]byte, error)
}

// PageQuery is the pagination part of a list request.
type PageQuery struct {
	Page  int
	Limit int
	// Extra carries entity-specific filters such as search or branch.
	Extra url.Values
}

// Values encodes q as query parameters. Non-positive Page/Limit are omitted.
func (q PageQuery) Values() url.Values {
	v := url.Values{}
	for k, vals := range q.Extra {
		for _, s := range vals {
			v.Add(k, s)
		}
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
