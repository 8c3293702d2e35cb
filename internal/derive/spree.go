package derive

// KillRecord is one entry in a player's kill history, as read back from the
// kill-history sorted set.
type KillRecord struct {
	Timestamp float64
	KillType  string // "minion", "human", or "dragon"
}

// MaxKillingSpree walks a player's human kills in chronological order while
// advancing a pointer through their deaths, tracking the longest run of
// kills uninterrupted by a death. Kills that occur after the player's final
// recorded death do not extend the streak - the death pointer is exhausted,
// so the loop stops incrementing streak even though more kills remain. This
// asymmetry is intentional; see SPEC_FULL.md §4.
func MaxKillingSpree(kills []KillRecord, deaths []float64) int {
	var humanKills []float64
	for _, k := range kills {
		if k.KillType == "human" {
			humanKills = append(humanKills, k.Timestamp)
		}
	}

	streak := 0
	maxStreak := 0
	deathIndex := 0
	numDeaths := len(deaths)

	for _, kill := range humanKills {
		for deathIndex < numDeaths && kill >= deaths[deathIndex] {
			if streak > maxStreak {
				maxStreak = streak
			}
			streak = 0
			deathIndex++
		}
		if deathIndex < numDeaths {
			streak++
		}
	}
	if streak > maxStreak {
		maxStreak = streak
	}
	return maxStreak
}

// SpreeLabel renders a raw max-killing-spree integer to its display label.
// Values below 3 have no label; values above 7 clamp to the Godlike label.
func SpreeLabel(maxKillingSpree int) (string, bool) {
	v := maxKillingSpree
	if v > 7 {
		v = 7
	}
	switch v {
	case 3:
		return "Killing Spree", true
	case 4:
		return "Rampage", true
	case 5:
		return "Unstoppable", true
	case 6:
		return "Dominating", true
	case 7:
		return "Godlike", true
	default:
		return "", false
	}
}
