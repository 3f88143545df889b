package domain

import "errors"

var (
	// ErrDateParse is returned for a malformed date literal or UTC offset.
	ErrDateParse = errors.New("invalid date")
	// ErrDateSearch is returned when no matching weekday is found within a week.
	ErrDateSearch = errors.New("weekday search exhausted")
	// ErrDataFetch wraps every failure to obtain data from GitHub.
	ErrDataFetch = errors.New("failed to fetch contribution data")
	// ErrUnknownAccount is returned when GitHub has no user with the requested login.
	ErrUnknownAccount = errors.New("no such user")
)
