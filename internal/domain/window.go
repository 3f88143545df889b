package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	weeksPerYear = 52
	daysPerWeek  = 7
)

var offsetPattern = regexp.MustCompile(`^([+-])(\d{2})(\d{2})$`)

// Window is the resolved query range for the contribution calendar.
// Aligned is false when both bounds were supplied by the caller, in which case the
// range is not guaranteed to start on a Sunday and end on a Saturday.
type Window struct {
	DateRange
	Aligned bool
}

// ParseOffset parses a UTC offset in (+|-)HHMM form into a fixed zone.
func ParseOffset(offset string) (*time.Location, error) {
	m := offsetPattern.FindStringSubmatch(offset)
	if m == nil {
		return nil, fmt.Errorf("%w: offset %q must be in (+|-)HHMM format", ErrDateParse, offset)
	}
	hours, _ := strconv.Atoi(m[2])
	minutes, _ := strconv.Atoi(m[3])
	if hours > 23 || minutes > 59 {
		return nil, fmt.Errorf("%w: offset %q is out of range", ErrDateParse, offset)
	}
	seconds := hours*3600 + minutes*60
	if m[1] == "-" {
		seconds = -seconds
	}
	return time.FixedZone(offset, seconds), nil
}

// ParseDate interprets a YYYY-MM-DD literal as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q must be in YYYY-MM-DD format: %v", ErrDateParse, s, err)
	}
	return t, nil
}

// ResolveWindow computes the range to query. Empty from or to means the bound was not given.
//
// With both bounds the range is used as is. Otherwise the missing bound is derived from the
// given one (or from now) so that the window starts on a Sunday, ends on a Saturday and spans
// a full year of weeks.
func ResolveWindow(now time.Time, from, to string, loc *time.Location) (Window, error) {
	var (
		start, end time.Time
		err        error
	)
	yearAgo := func(t time.Time) time.Time { return t.AddDate(0, 0, -weeksPerYear*daysPerWeek) }
	yearOn := func(t time.Time) time.Time { return t.AddDate(0, 0, weeksPerYear*daysPerWeek) }

	switch {
	case from != "" && to != "":
		if start, err = ParseDate(from, loc); err != nil {
			return Window{}, err
		}
		if end, err = ParseDate(to, loc); err != nil {
			return Window{}, err
		}
		return Window{DateRange: DateRange{Start: start, End: end}}, nil
	case from != "":
		anchor, err := ParseDate(from, loc)
		if err != nil {
			return Window{}, err
		}
		if start, err = firstWeekdayBackward(anchor, time.Sunday); err != nil {
			return Window{}, err
		}
		if end, err = firstWeekdayForward(yearOn(start), time.Saturday); err != nil {
			return Window{}, err
		}
	case to != "":
		anchor, err := ParseDate(to, loc)
		if err != nil {
			return Window{}, err
		}
		if end, err = firstWeekdayForward(anchor, time.Saturday); err != nil {
			return Window{}, err
		}
		if start, err = firstWeekdayBackward(yearAgo(end), time.Sunday); err != nil {
			return Window{}, err
		}
	default:
		today := midnight(now.In(loc))
		if start, err = firstWeekdayBackward(yearAgo(today), time.Sunday); err != nil {
			return Window{}, err
		}
		if end, err = firstWeekdayForward(today, time.Saturday); err != nil {
			return Window{}, err
		}
	}
	return Window{DateRange: DateRange{Start: start, End: end}, Aligned: true}, nil
}

// firstWeekdayBackward returns the first day on or before t that falls on wd.
func firstWeekdayBackward(t time.Time, wd time.Weekday) (time.Time, error) {
	return scanWeek(t, wd, -1)
}

// firstWeekdayForward returns the first day on or after t that falls on wd.
func firstWeekdayForward(t time.Time, wd time.Weekday) (time.Time, error) {
	return scanWeek(t, wd, 1)
}

func scanWeek(t time.Time, wd time.Weekday, step int) (time.Time, error) {
	for i := 0; i < daysPerWeek; i++ {
		d := t.AddDate(0, 0, i*step)
		if d.Weekday() == wd {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: no %s within a week of %s", ErrDateSearch, wd, t.Format(dateLayout))
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
