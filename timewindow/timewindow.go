// Package timewindow computes day/week/month boundaries for a fixed-offset
// local time, returned as UTC instants suitable for range queries against
// UTC-stored timestamps.
package timewindow

import (
	"fmt"
	"time"
)

// ISTOffsetMinutes is India Standard Time, UTC+5:30. Room analytics are
// pinned to IST regardless of the caller's locale; personal analytics pass
// a caller-supplied offset instead.
const ISTOffsetMinutes = 330

// Window is a [Start, End] range of UTC instants. End is inclusive:
// start + span - 1ms.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Day returns the local calendar day containing now, for a UTC offset in
// minutes.
func Day(now time.Time, offsetMinutes int) Window {
	start := startOfDay(now, offsetMinutes)
	return Window{Start: start, End: start.Add(24*time.Hour - time.Millisecond)}
}

// Week returns the local Monday-to-Sunday week containing now. Sunday maps
// to six days back since the week starts Monday.
func Week(now time.Time, offsetMinutes int) Window {
	local := toLocal(now, offsetMinutes)
	daysBack := int(local.Weekday()) - 1
	if local.Weekday() == time.Sunday {
		daysBack = 6
	}
	y, m, d := local.Date()
	start := toUTC(time.Date(y, m, d-daysBack, 0, 0, 0, 0, time.UTC), offsetMinutes)
	return Window{Start: start, End: start.Add(7*24*time.Hour - time.Millisecond)}
}

// Month returns the local calendar month containing now.
func Month(now time.Time, offsetMinutes int) Window {
	local := toLocal(now, offsetMinutes)
	y, m, _ := local.Date()
	start := toUTC(time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), offsetMinutes)
	end := toUTC(time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC), offsetMinutes).Add(-time.Millisecond)
	return Window{Start: start, End: end}
}

// ParseDate interprets a YYYY-MM-DD string as a local calendar day and
// returns its midnight as a UTC instant.
func ParseDate(s string, offsetMinutes int) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return toUTC(parsed, offsetMinutes), nil
}

// ParseDateEnd is ParseDate but for the last instant of the local day.
func ParseDateEnd(s string, offsetMinutes int) (time.Time, error) {
	start, err := ParseDate(s, offsetMinutes)
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(24*time.Hour - time.Millisecond), nil
}

func startOfDay(now time.Time, offsetMinutes int) time.Time {
	local := toLocal(now, offsetMinutes)
	y, m, d := local.Date()
	return toUTC(time.Date(y, m, d, 0, 0, 0, 0, time.UTC), offsetMinutes)
}

// toLocal shifts a UTC instant so its UTC fields read as local wall-clock
// time for the given offset.
func toLocal(t time.Time, offsetMinutes int) time.Time {
	return t.UTC().Add(time.Duration(offsetMinutes) * time.Minute)
}

// toUTC converts a wall-clock instant built in UTC fields back to the real
// UTC instant.
func toUTC(wall time.Time, offsetMinutes int) time.Time {
	return wall.Add(-time.Duration(offsetMinutes) * time.Minute)
}
