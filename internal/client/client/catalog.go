package client

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/clinicadmin/internal/common"
)

// Endpoint describes one backend resource.
type Endpoint struct {
	Name  string
	Path  string
	Realm Realm
	// EncryptedWrites marks endpoints whose create/update bodies travel in
	// the encrypted envelope.
	EncryptedWrites bool
}

// Auth endpoints. Both are anonymous and encrypted both ways.
const (
	LoginPath  = "/auth/login"
	SignupPath = "/auth/signup"
)

// Endpoints is the catalog of managed resources, keyed by name.
var Endpoints = map[string]Endpoint{
	"patients":         {Name: "patients", Path: "/patients", Realm: RealmClinic},
	"staff":            {Name: "staff", Path: "/staff", Realm: RealmClinic, EncryptedWrites: true},
	"therapists":       {Name: "therapists", Path: "/therapists", Realm: RealmClinic},
	"branches":         {Name: "branches", Path: "/branches", Realm: RealmClinic},
	"departments":      {Name: "departments", Path: "/departments", Realm: RealmClinic},
	"languages":        {Name: "languages", Path: "/languages", Realm: RealmClinic},
	"permissions":      {Name: "permissions", Path: "/permissions", Realm: RealmClinic},
	"specializations":  {Name: "specializations", Path: "/specializations", Realm: RealmClinic},
	"team-members":     {Name: "team-members", Path: "/team-members", Realm: RealmClinic, EncryptedWrites: true},
	"therapist-team":   {Name: "therapist-team", Path: "/therapist-team", Realm: RealmClinic},
	"chat-bot-history": {Name: "chat-bot-history", Path: "/chat-bot-history", Realm: RealmRosa},
	"tickets":          {Name: "tickets", Path: "/tickets", Realm: RealmClinic},
}

// Lookup finds an endpoint by name, case-insensitively.
func Lookup(name string) (Endpoint, error) {
	e, ok := Endpoints[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %q", common.ErrUnknownResource, name)
	}
	return e, nil
}

// EndpointNames lists catalog names, sorted.
func EndpointNames() []string {
	names := make([]string, 0, len(Endpoints))
	for n := range Endpoints {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
