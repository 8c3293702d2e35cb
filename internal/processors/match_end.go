package processors

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/openmohaa/match-pipeline/internal/derive"
	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/registry"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// MatchEndProcessor records the winning team and then runs the two
// end-of-match batch computations - kill streaks and max killing spree - for
// every player the registry still has on file for this match. Both
// computations read a player's full kill and death history back out of the
// store, so they only run once, at the end.
type MatchEndProcessor struct {
	Store        store.Store
	Keys         store.Keys
	Registry     *registry.Registry
	StreakWindow time.Duration
}

func (p *MatchEndProcessor) ProcessEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(*events.MatchEndPayload)
	if !ok || payload == nil {
		return fmt.Errorf("match_end: unexpected payload type %T", event.Payload)
	}
	matchID := event.MatchID

	if err := p.Store.HSet(ctx, p.Keys.Match(matchID), map[string]any{"winning_team_id": payload.WinningTeamID}); err != nil {
		return err
	}

	for _, playerID := range p.Registry.PlayersForMatch(matchID) {
		if err := p.writeKillStreaks(ctx, matchID, playerID); err != nil {
			return err
		}
		if err := p.writeMaxKillingSpree(ctx, matchID, playerID); err != nil {
			return err
		}
	}
	return nil
}

func (p *MatchEndProcessor) writeKillStreaks(ctx context.Context, matchID, playerID string) error {
	raw, err := p.Store.ZRange(ctx, p.Keys.PlayerKillHistory(matchID, playerID))
	if err != nil {
		return err
	}
	timestamps := make([]float64, 0, len(raw))
	for _, member := range raw {
		var rec killHistoryMember
		if err := json.Unmarshal([]byte(member), &rec); err != nil {
			continue
		}
		timestamps = append(timestamps, rec.Timestamp)
	}

	window := p.StreakWindow.Seconds()
	if window <= 0 {
		window = 10
	}
	streaks := derive.KillStreaks(timestamps, window)
	if streaks == nil {
		streaks = []string{}
	}
	encoded, err := json.Marshal(streaks)
	if err != nil {
		return err
	}
	return p.Store.HSet(ctx, p.Keys.Player(matchID, playerID), map[string]any{"kill_streaks": string(encoded)})
}

func (p *MatchEndProcessor) writeMaxKillingSpree(ctx context.Context, matchID, playerID string) error {
	killRaw, err := p.Store.ZRange(ctx, p.Keys.PlayerKillHistory(matchID, playerID))
	if err != nil {
		return err
	}
	kills := make([]derive.KillRecord, 0, len(killRaw))
	for _, member := range killRaw {
		var rec killHistoryMember
		if err := json.Unmarshal([]byte(member), &rec); err != nil {
			continue
		}
		kills = append(kills, derive.KillRecord{Timestamp: rec.Timestamp, KillType: rec.KillType})
	}

	deathRaw, err := p.Store.ZRange(ctx, p.Keys.PlayerDeathHistory(matchID, playerID))
	if err != nil {
		return err
	}
	deaths := make([]float64, 0, len(deathRaw))
	for _, member := range deathRaw {
		v, err := strconv.ParseFloat(member, 64)
		if err != nil {
			continue
		}
		deaths = append(deaths, v)
	}

	spree := derive.MaxKillingSpree(kills, deaths)
	return p.Store.HSet(ctx, p.Keys.Player(matchID, playerID), map[string]any{"max_killing_spree": spree})
}
