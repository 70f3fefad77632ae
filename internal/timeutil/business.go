package timeutil

import (
	"log"
	"time"
)

// Local is the business timezone. Sri Lanka Standard Time (UTC+5:30) unless
// SetZone is called with another IANA name.
var Local = loadZone("Asia/Colombo")

func loadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// Fallback: fixed zone if tzdata is missing
		return time.FixedZone("SLST", 5*60*60+30*60)
	}
	return loc
}

// SetZone switches the business timezone. Unknown names keep the current one.
func SetZone(name string) {
	if name == "" {
		return
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("[Time] Unknown timezone %q, keeping %s", name, Local)
		return
	}
	Local = loc
}

// Now returns the current business time
func Now() time.Time {
	return time.Now().In(Local)
}

// ParseDate parses a YYYY-MM-DD report date in the business timezone.
// An empty value means today.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return StartOfDay(Now()), nil
	}
	return time.ParseInLocation(DateLayout, value, Local)
}

// FormatDate formats t as a YYYY-MM-DD report date token
func FormatDate(t time.Time) string {
	return t.In(Local).Format(DateLayout)
}

// StartOfDay returns 00:00:00 of t's business day
func StartOfDay(t time.Time) time.Time {
	l := t.In(Local)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, Local)
}

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
)
