package listing

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/clinicadmin/internal/common"
)

// DayLayout is the date-picker format.
const DayLayout = "2006-01-02"

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last instant of t's day, so that a range ending on a
// picked day includes the whole day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// ParseDay parses a YYYY-MM-DD string as local midnight.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), time.Local)
}

// DayRange builds a range from two date-picker values. Both empty yields
// nil; exactly one empty yields common.ErrPartialDateRange.
func DayRange(from, to string) (*DateRange, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)

	switch {
	case from == "" && to == "":
		return nil, nil
	case from == "" || to == "":
		return nil, common.ErrPartialDateRange
	}

	f, err := ParseDay(from)
	if err != nil {
		return nil, err
	}
	t, err := ParseDay(to)
	if err != nil {
		return nil, err
	}

	return &DateRange{From: StartOfDay(f), To: EndOfDay(t)}, nil
}

// RangeKeywords lists the keywords understood by ResolveRange.
var RangeKeywords = []string{"today", "yesterday", "last7days", "last30days", "thismonth", "thisyear"}

// ResolveRange maps a quick-filter keyword to a range ending today. Case,
// spaces, dashes and underscores are ignored ("Last 7 days" works). An unknown
// keyword returns ok=false and means no date filter.
func ResolveRange(keyword string, now time.Time) (r DateRange, ok bool) {
	k := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(keyword))

	end := EndOfDay(now)
	today := StartOfDay(now)

	switch k {
	case "today":
		return DateRange{From: today, To: end}, true
	case "yesterday":
		y := today.AddDate(0, 0, -1)
		return DateRange{From: y, To: EndOfDay(y)}, true
	case "last7days":
		return DateRange{From: today.AddDate(0, 0, -6), To: end}, true
	case "last30days":
		return DateRange{From: today.AddDate(0, 0, -29), To: end}, true
	case "thismonth":
		return DateRange{From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), To: end}, true
	case "thisyear":
		return DateRange{From: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), To: end}, true
	}

	return DateRange{}, false
}
