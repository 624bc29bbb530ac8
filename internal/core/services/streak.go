package services

import (
	"sort"
	"time"

	"github.com/gmarinelli/habitpulse/internal/core/domain"
)

// ComputeStreak counts strictly consecutive calendar days of completion,
// ending at the most recent completion date in the history. The most recent
// date does not have to be today: a habit that has not been checked in a
// while keeps reporting its last streak until the next write recomputes it.
//
// Duplicate same-day entries are collapsed before walking, so a double
// completion never inflates the count.
func ComputeStreak(dates []time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	seen := make(map[string]bool, len(dates))
	unique := make([]time.Time, 0, len(dates))

	for _, d := range dates {
		day := domain.DateOnly(d)
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			unique = append(unique, day)
		}
	}

	sort.Slice(unique, func(i, j int) bool {
		return unique[i].After(unique[j])
	})

	// The most recent completion is day one. Walk backwards while each gap
	// is exactly one day; any other gap breaks the chain.
	streak := 1
	for i := 0; i < len(unique)-1; i++ {
		if unique[i].Sub(unique[i+1]) == 24*time.Hour {
			streak++
		} else {
			break
		}
	}

	return streak
}
