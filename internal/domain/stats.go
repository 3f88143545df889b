// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// MinDate anchors a streak that never happened. Both ends of an empty streak equal it.
var MinDate = time.Time{}

// ContributionDay holds the contribution count for a single calendar day.
// Date is a civil date stored at midnight UTC.
type ContributionDay struct {
	Date  time.Time `json:"date"`
	Count int       `json:"count"`
}

// DateRange is an inclusive span of days. Start is never after End.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days covered by the range, both ends included.
func (r DateRange) Days() int {
	return int(civil(r.End).Sub(civil(r.Start)).Hours()/24) + 1
}

// IsZero reports whether the range is the degenerate range anchored at MinDate.
func (r DateRange) IsZero() bool {
	return r.Start.Equal(MinDate) && r.End.Equal(MinDate)
}

// Stats is the result of reducing a contribution calendar.
// It is the core domain entity of this application.
type Stats struct {
	TotalContributions int       `json:"total_contributions"`
	LongestStreak      DateRange `json:"longest_streak"`
	CurrentStreak      DateRange `json:"current_streak"`
}

// Account describes the GitHub account whose calendar is queried.
type Account struct {
	Login              string `json:"login"`
	Name               string `json:"name"`
	PublicRepositories int    `json:"public_repositories"`
}

// civil drops the clock and zone of t, keeping its wall-clock date.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
