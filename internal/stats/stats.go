// Package stats computes derived mood statistics. Everything here is a pure
// function over values the caller already fetched; nothing reads storage.
package stats

import (
	"math"
	"time"
)

// Summary is recomputed on every request and never persisted.
type Summary struct {
	TotalEntries int     `json:"total_entries"`
	AverageLevel float64 `json:"average_level"`
	MinLevel     int     `json:"min_level"`
	MaxLevel     int     `json:"max_level"`
}

// Aggregate reduces a sequence of mood levels to count/average/min/max.
// An empty input yields the zero Summary (average 0, not NaN) so callers
// never have to special-case users with no history.
func Aggregate(levels []int) Summary {
	if len(levels) == 0 {
		return Summary{}
	}

	total := 0
	min := levels[0]
	max := levels[0]
	for _, l := range levels {
		total += l
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
	}

	avg := float64(total) / float64(len(levels))

	return Summary{
		TotalEntries: len(levels),
		AverageLevel: math.Round(avg*10) / 10,
		MinLevel:     min,
		MaxLevel:     max,
	}
}

// StreakPolicy names the boundary rule for the consecutive-day streak.
// The two candidate rules differ only in where the backward walk starts.
type StreakPolicy int

const (
	// AnchorToday requires an entry today to count any streak at all.
	// An unbroken run ending yesterday reports 0.
	AnchorToday StreakPolicy = iota

	// AnchorLatest starts the walk at the most recent entry's date, so an
	// unbroken run ending yesterday still counts.
	AnchorLatest
)

func (p StreakPolicy) String() string {
	if p == AnchorLatest {
		return "anchor-latest"
	}
	return "anchor-today"
}

// ParseStreakPolicy maps a config value to a policy, defaulting to AnchorToday.
func ParseStreakPolicy(s string) StreakPolicy {
	if s == "anchor-latest" {
		return AnchorLatest
	}
	return AnchorToday
}

// CurrentStreak counts consecutive calendar days with at least one entry,
// walking backward from the anchor. dates must be distinct calendar dates
// sorted descending (most recent first); today is the caller's current date.
// The entry at position i contributes only when it equals anchor minus i
// days; the first gap stops the scan.
func CurrentStreak(dates []time.Time, today time.Time, policy StreakPolicy) int {
	if len(dates) == 0 {
		return 0
	}

	anchor := dateOnly(today)
	if policy == AnchorLatest {
		latest := dateOnly(dates[0])
		if latest.Before(anchor) {
			anchor = latest
		}
	}

	streak := 0
	for _, d := range dates {
		if dateOnly(d).Equal(anchor.AddDate(0, 0, -streak)) {
			streak++
		} else {
			break
		}
	}
	return streak
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
