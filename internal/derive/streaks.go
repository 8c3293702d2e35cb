// Package derive implements the two end-of-match batch computations used by
// the match-end processor: kill-streak segmentation and max killing spree.
// Both are pure functions over already-sorted history data.
package derive

import (
	"fmt"
	"time"
)

// KillStreaks greedily segments a chronologically-sorted list of kill
// timestamps (any kill type) into maximal runs where each successive
// timestamp falls within window seconds of the previous kill in the run,
// capping each run at length 5. Runs of length 2-5 emit a label formatted
// with the run's last timestamp in UTC; a run of length 1 emits nothing,
// and a run of length 6+ emits a Penta Kill for its first five entries
// before a new run starts at the sixth.
func KillStreaks(timestamps []float64, windowSeconds float64) []string {
	var streaks []string
	n := len(timestamps)
	i := 0

	for i < n {
		run := []float64{timestamps[i]}
		j := i + 1

		for j < n && (timestamps[j]-run[len(run)-1]) <= windowSeconds && len(run) < 5 {
			run = append(run, timestamps[j])
			j++
		}

		if label := streakLabel(len(run)); label != "" {
			last := run[len(run)-1]
			streaks = append(streaks, fmt.Sprintf("%s at %s", label, formatUTC(last)))
		}

		i = j
	}

	return streaks
}

func streakLabel(runLength int) string {
	switch runLength {
	case 2:
		return "Double Kill"
	case 3:
		return "Triple Kill"
	case 4:
		return "Quadra Kill"
	case 5:
		return "Penta Kill"
	default:
		return ""
	}
}

// formatUTC renders a Unix timestamp as "YYYY-MM-DD HH:MM:SS" in UTC.
func formatUTC(unixSeconds float64) string {
	return time.Unix(int64(unixSeconds), 0).UTC().Format("2006-01-02 15:04:05")
}
