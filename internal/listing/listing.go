// Package listing filters and pages in-memory collections the way the console
// list views do: fetch everything once, then narrow it by branch, free text and
// date range, and slice out the requested page.
//
// Everything here is pure. Nothing fails on a malformed record: missing
// fields compare as empty strings or the zero time.
package listing

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/common"
)

// AllBranches is the dropdown value meaning "no branch constraint".
const AllBranches = "all"

// Fields are the values of a record that take part in filtering.
type Fields struct {
	// Branch is the record's branch, city or location.
	Branch string
	// Text holds the free-text searchable values (name, email, phone).
	Text []string
	// Timestamp is matched against a date range. Zero means unknown.
	Timestamp time.Time
}

// Listable is any record the list views can filter.
type Listable interface {
	ListingFields() Fields
}

// DateRange is an inclusive [From, To] interval.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Complete reports whether both bounds are set.
func (r *DateRange) Complete() bool {
	return r != nil && !r.From.IsZero() && !r.To.IsZero()
}

// Partial reports whether exactly one bound is set.
func (r *DateRange) Partial() bool {
	return r != nil && r.From.IsZero() != r.To.IsZero()
}

// Contains reports whether t falls inside the range, bounds included.
func (r *DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(r.From) && !t.After(r.To)
}

// Criteria holds the optional filter dimensions. A zero value matches
// everything.
type Criteria struct {
	Branch     string
	SearchTerm string
	DateRange  *DateRange
}

// Validate rejects a date range with only one bound. Filter itself ignores
// such a range; callers are expected to refuse the query instead.
func (c Criteria) Validate() error {
	if c.DateRange.Partial() {
		return common.ErrPartialDateRange
	}
	return nil
}

// Predicate is a single filter condition over a record's fields.
type Predicate func(Fields) bool

// BranchPredicate matches records whose branch equals or contains branch,
// ignoring case.
func BranchPredicate(branch string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(branch))
	return func(f Fields) bool {
		return strings.Contains(strings.ToLower(f.Branch), needle)
	}
}

// SearchPredicate matches records where any text field contains term,
// ignoring case.
func SearchPredicate(term string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(term))
	return func(f Fields) bool {
		for _, s := range f.Text {
			if strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
		return false
	}
}

// DateRangePredicate matches records whose timestamp lies in r.
func DateRangePredicate(r DateRange) Predicate {
	return func(f Fields) bool {
		return r.Contains(f.Timestamp)
	}
}

// Predicates returns the active predicates for c. Inactive dimensions
// (empty or "all" branch, blank search term, missing or half-open date range)
// contribute nothing.
func Predicates(c Criteria) []Predicate {
	var preds []Predicate

	if b := strings.TrimSpace(c.Branch); b != "" && !strings.EqualFold(b, AllBranches) {
		preds = append(preds, BranchPredicate(b))
	}
	if strings.TrimSpace(c.SearchTerm) != "" {
		preds = append(preds, SearchPredicate(c.SearchTerm))
	}
	if c.DateRange.Complete() {
		preds = append(preds, DateRangePredicate(*c.DateRange))
	}

	return preds
}

// Apply keeps the records that satisfy every predicate, preserving order.
// The result is never nil.
func Apply[T Listable](records []T, preds ...Predicate) []T {
	out := make([]T, 0, len(records))

next:
	for _, r := range records {
		f := r.ListingFields()
		for _, p := range preds {
			if !p(f) {
				continue next
			}
		}
		out = append(out, r)
	}

	return out
}

// Filter applies the predicates derived from c.
func Filter[T Listable](records []T, c Criteria) []T {
	return Apply(records, Predicates(c)...)
}

// Select filters records by c and returns the requested page.
func Select[T Listable](records []T, c Criteria, pageNumber, pageSize int) Page[T] {
	return Paginate(Filter(records, c), pageNumber, pageSize)
}
