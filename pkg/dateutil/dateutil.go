// Package dateutil converts between the date and time notations clinic
// clients send and the normalized forms the service stores.
//
// Recognized date inputs, tried in order: dd-mm-yyyy, yyyy-mm-dd,
// mm/dd/yyyy, then a short list of timestamp layouts. Display helpers never
// fail: input they cannot read comes back unchanged.
package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateTime is returned when a date and time do not form a valid instant.
var ErrInvalidDateTime = errors.New("invalid date or time")

const (
	isoLayout     = "2006-01-02"
	displayLayout = "02-01-2006"
)

var (
	reDayMonthYear   = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)
	reYearMonthDay   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	reMonthDayYear   = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	reLooseDMY       = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	reClock          = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	timestampLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
)

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// parseDate reads a calendar date from any recognized notation.
func parseDate(s string) (time.Time, bool) {
	var year, month, day string
	switch {
	case reDayMonthYear.MatchString(s):
		m := reDayMonthYear.FindStringSubmatch(s)
		day, month, year = m[1], m[2], m[3]
	case reYearMonthDay.MatchString(s):
		m := reYearMonthDay.FindStringSubmatch(s)
		year, month, day = m[1], m[2], m[3]
	case reMonthDayYear.MatchString(s):
		m := reMonthDayYear.FindStringSubmatch(s)
		month, day, year = m[1], m[2], m[3]
	default:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				y, mo, d := t.Date()
				return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC), true
			}
		}
		return time.Time{}, false
	}

	t, err := time.Parse(isoLayout, year+"-"+month+"-"+day)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Ordinal returns the English ordinal suffix for a day of the month.
func Ordinal(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// ToDisplayLong renders a date as "9th June, 2024".
func ToDisplayLong(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%d%s %s, %d", t.Day(), Ordinal(t.Day()), monthNames[t.Month()-1], t.Year())
}

// ToInputFormat converts dd-mm-yyyy to yyyy-mm-dd.
func ToInputFormat(ddmmyyyy string) string {
	m := reLooseDMY.FindStringSubmatch(ddmmyyyy)
	if m == nil {
		return ddmmyyyy
	}
	return fmt.Sprintf("%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))
}

// ToDisplayFormat converts yyyy-mm-dd, or a timestamp, to dd-mm-yyyy.
func ToDisplayFormat(s string) string {
	if m := reYearMonthDay.FindStringSubmatch(s); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
	}
	if reDayMonthYear.MatchString(s) {
		return s
	}
	if t, ok := parseDate(s); ok {
		return t.Format(displayLayout)
	}
	return s
}

// Normalize returns the yyyy-mm-dd form of any recognized date.
func Normalize(s string) string {
	trimmed := strings.TrimSpace(s)
	t, ok := parseDate(trimmed)
	if !ok {
		return s
	}
	return t.Format(isoLayout)
}

// CombineDateTime joins a date and an HH:mm clock time into one instant in loc.
// A nil loc means time.Local.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	day, ok := parseDate(strings.TrimSpace(date))
	if !ok {
		return time.Time{}, fmt.Errorf("%w: date %q", ErrInvalidDateTime, date)
	}
	h, m, sec, ok := parseClock(strings.TrimSpace(clock))
	if !ok {
		return time.Time{}, fmt.Errorf("%w: time %q", ErrInvalidDateTime, clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, sec, 0, loc), nil
}

// To12Hour converts "14:05" to "2:05 PM". Midnight is 12 AM.
func To12Hour(hhmm string) string {
	h, m, _, ok := parseClock(strings.TrimSpace(hhmm))
	if !ok {
		return hhmm
	}
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

func parseClock(s string) (hour, minute, second int, ok bool) {
	m := reClock.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, 0, false
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		second, _ = strconv.Atoi(m[3])
	}
	if hour > 23 || minute > 59 || second > 59 {
		return 0, 0, 0, false
	}
	return hour, minute, second, true
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
