package domain

import "time"

// streakAccumulator is the running state folded over the calendar.
type streakAccumulator struct {
	total        int
	currentLen   int
	currentStart time.Time
	currentEnd   time.Time
	longestLen   int
	longest      DateRange
}

func newStreakAccumulator() streakAccumulator {
	return streakAccumulator{
		currentStart: MinDate,
		currentEnd:   MinDate,
		longest:      DateRange{Start: MinDate, End: MinDate},
	}
}

func (a *streakAccumulator) add(day ContributionDay) {
	if day.Count <= 0 {
		// The bounds of the last run are kept: it stays the current streak.
		a.currentLen = 0
		return
	}

	a.total += day.Count
	a.currentLen++
	if a.currentLen == 1 {
		a.currentStart = day.Date
	}
	a.currentEnd = day.Date

	// Ties go to the latest run.
	if a.currentLen >= a.longestLen {
		a.longestLen = a.currentLen
		a.longest = DateRange{Start: a.currentStart, End: a.currentEnd}
	}
}

func (a *streakAccumulator) stats() Stats {
	return Stats{
		TotalContributions: a.total,
		LongestStreak:      a.longest,
		CurrentStreak:      DateRange{Start: a.currentStart, End: a.currentEnd},
	}
}

// ComputeStats reduces a calendar to its total and streaks in a single pass.
//
// days must be sorted by date, without duplicates or gaps. The order is not checked.
// Among streaks of equal length the latest is reported as the longest. The current streak
// is the last run of active days, even when inactive days follow it. When no day is active
// both streaks are anchored at MinDate.
func ComputeStats(days []ContributionDay) Stats {
	acc := newStreakAccumulator()
	for _, day := range days {
		acc.add(day)
	}
	return acc.stats()
}
