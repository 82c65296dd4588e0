package analytics

import (
	"time"

	"github.com/anserk/bookmind/internal/model"
)

// maxLookbackDays bounds the streak walk so pathological data terminates.
const maxLookbackDays = 366

// ComputeStreak returns the number of consecutive local calendar days,
// ending today or yesterday, with at least one completion. A missing today
// is skipped once (the user may not have logged today yet); any other gap
// stops the walk. Future-dated completions never extend a streak.
func ComputeStreak(books []model.Book, now time.Time) int {
	today := model.Day(now)
	readDays := map[string]struct{}{}
	for _, b := range books {
		if b.DateRead == "" || b.DateRead > today {
			continue
		}
		readDays[b.DateRead] = struct{}{}
	}
	if len(readDays) == 0 {
		return 0
	}

	startOffset := 0
	if _, ok := readDays[today]; !ok {
		startOffset = 1
	}
	streak := 0
	for i := startOffset; i < maxLookbackDays; i++ {
		day := model.Day(now.AddDate(0, 0, -i))
		if _, ok := readDays[day]; !ok {
			break
		}
		streak++
	}
	return streak
}
