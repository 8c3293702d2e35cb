// Package processors implements the per-event-type state transitions:
// one Processor per EventType, each translating a decoded event into
// a set of independent, atomic single-key store writes.
package processors

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/registry"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// Processor is the capability every event-type handler implements: a
// single method plus the type-tag-keyed lookup built by Dispatch.
type Processor interface {
	ProcessEvent(ctx context.Context, event events.Event) error
}

// Dispatch builds the type-tag-keyed processor lookup used by the
// state-update consumer. UNKNOWN has no entry; callers drop it before
// reaching this map.
func Dispatch(st store.Store, keys store.Keys, reg *registry.Registry, killStreakWindow time.Duration) map[events.EventType]Processor {
	return map[events.EventType]Processor{
		events.MatchStart:    &MatchStartProcessor{Store: st, Keys: keys, Registry: reg},
		events.MinionKill:    &MinionKillProcessor{Store: st, Keys: keys, Registry: reg},
		events.PlayerKill:    &PlayerKillProcessor{Store: st, Keys: keys, Registry: reg},
		events.DragonKill:    &DragonKillProcessor{Store: st, Keys: keys, Registry: reg},
		events.TurretDestroy: &TurretDestroyProcessor{Store: st, Keys: keys, Registry: reg},
		events.MatchEnd:      &MatchEndProcessor{Store: st, Keys: keys, Registry: reg, StreakWindow: killStreakWindow},
	}
}

// killHistoryMember is the JSON shape stored as a kill-history zset member.
type killHistoryMember struct {
	Timestamp float64 `json:"timestamp"`
	KillType  string  `json:"kill_type"`
}

// addKillHistory appends a kill record to a player's kill-history sorted
// set, scored by timestamp so ascending iteration yields chronological order
// regardless of ingestion order.
func addKillHistory(ctx context.Context, st store.Store, key string, timestamp float64, killType string) error {
	member, err := json.Marshal(killHistoryMember{Timestamp: timestamp, KillType: killType})
	if err != nil {
		return err
	}
	return st.ZAdd(ctx, key, string(member), timestamp)
}

// formatFloat renders a Unix-seconds timestamp as a compact decimal string,
// used both as a death-history member and as the stored first_blood value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
