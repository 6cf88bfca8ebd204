package models

import (
	"errors"
	"strings"
	"time"
)

// Row is a record the CLI can print as a table line.
type Row interface {
	RowID() string
	Header() []string
	Values() []string
}

// ErrIncorrectAssignment is returned for command-line fields not written as
// name=value.
var ErrIncorrectAssignment = errors.New("field must be name=value")

// ParseAssignments turns name=value arguments into a JSON-ready object.
// Values keep their text form; "name=" sets an empty string.
func ParseAssignments(args []string) (map[string]any, error) {
	out := make(map[string]any, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, ErrIncorrectAssignment
		}
		out[name] = value
	}
	return out, nil
}

func joinName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
