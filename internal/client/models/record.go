package models

import (
	"fmt"
	"maps"
	"strings"

	"github.com/dmitrijs2005/clinicadmin/internal/listing"
	"github.com/dmitrijs2005/clinicadmin/internal/timex"
)

// Record is a loosely typed backend object. Reads go through the alias
// lists below; a missing or oddly typed field reads as "".
type Record map[string]any

var (
	idKeys      = []string{"_id", "id"}
	nameKeys    = []string{"name", "fullName", "title"}
	emailKeys   = []string{"email"}
	phoneKeys   = []string{"phone", "mobile", "phoneNumber"}
	branchKeys  = []string{"branch", "city", "location"}
	createdKeys = []string{"createdAt", "created_at", "date"}
)

// Text returns field key as text.
func (r Record) Text(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return formatNumber(value)
	case bool:
		return fmt.Sprint(value)
	case map[string]any:
		// populated references such as {"_id": ..., "name": "Riga"}
		return Record(value).Name()
	default:
		return fmt.Sprint(value)
	}
}

func (r Record) first(keys []string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(r.Text(k)); s != "" {
			return s
		}
	}
	return ""
}

func (r Record) ID() string { return r.first(idKeys) }

// Name falls back to firstname + lastname when no single name field exists.
func (r Record) Name() string {
	if n := r.first(nameKeys); n != "" {
		return n
	}
	return joinName(r.Text("firstname"), r.Text("lastname"))
}

func (r Record) Email() string  { return r.first(emailKeys) }
func (r Record) Phone() string  { return r.first(phoneKeys) }
func (r Record) Branch() string { return r.first(branchKeys) }

// CreatedAt is the zero time when absent or unparseable.
func (r Record) CreatedAt() timex.Time {
	for _, k := range createdKeys {
		if v, ok := r[k]; ok {
			if ms, ok := v.(float64); ok {
				var t timex.Time
				_ = t.UnmarshalJSON([]byte(formatNumber(ms)))
				return t
			}
			if parsed, err := timex.ParseTime(r.Text(k)); err == nil && !parsed.IsZero() {
				return timex.Time{Time: parsed}
			}
		}
	}
	return timex.Time{}
}

func (r Record) ListingFields() listing.Fields {
	return listing.Fields{
		Branch:    r.Branch(),
		Text:      []string{r.Name(), r.Email(), r.Phone()},
		Timestamp: r.CreatedAt().Time,
	}
}

func (r Record) RowID() string    { return r.ID() }
func (r Record) Header() []string { return []string{"ID", "NAME", "EMAIL", "PHONE", "BRANCH", "CREATED"} }
func (r Record) Values() []string {
	return []string{r.ID(), r.Name(), r.Email(), r.Phone(), r.Branch(), formatDay(r.CreatedAt().Time)}
}

// Merge returns a copy of r with fields overwritten by changes.
func (r Record) Merge(changes map[string]any) Record {
	out := make(Record, len(r)+len(changes))
	maps.Copy(out, r)
	maps.Copy(out, changes)
	return out
}
