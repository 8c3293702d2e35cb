package processors

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/gamestate"
	"github.com/openmohaa/match-pipeline/internal/registry"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// MatchStartProcessor initializes match, team, and player state and
// populates the Player Registry with the match's roster.
type MatchStartProcessor struct {
	Store    store.Store
	Keys     store.Keys
	Registry *registry.Registry
}

func (p *MatchStartProcessor) ProcessEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(*events.MatchStartPayload)
	if !ok || payload == nil {
		return fmt.Errorf("match_start: unexpected payload type %T", event.Payload)
	}
	matchID := event.MatchID

	teamsIndex := make([]gamestate.TeamIndexEntry, 0, len(payload.Teams))
	for _, team := range payload.Teams {
		ids := make([]string, 0, len(team.Players))
		for _, pl := range team.Players {
			ids = append(ids, pl.PlayerID)
		}
		teamsIndex = append(teamsIndex, gamestate.TeamIndexEntry{TeamID: team.TeamID, Players: ids})
	}
	teamsJSON, err := json.Marshal(teamsIndex)
	if err != nil {
		return err
	}

	matchFields := map[string]any{
		"match_id":       matchID,
		"start_time":     payload.Fixture.StartTime,
		"title":          payload.Fixture.Title,
		"series_current": payload.Fixture.SeriesCurrent,
		"series_max":     payload.Fixture.SeriesMax,
		"series_type":    payload.Fixture.SeriesType,
		"teams":          string(teamsJSON),
		"first_blood":    "-1",
	}
	if err := p.Store.HSet(ctx, p.Keys.Match(matchID), matchFields); err != nil {
		return err
	}

	for _, team := range payload.Teams {
		teamFields := map[string]any{"dragon_kills": 0, "tower_kills": 0}
		if err := p.Store.HSet(ctx, p.Keys.Team(matchID, team.TeamID), teamFields); err != nil {
			return err
		}

		roster := make([]string, 0, len(team.Players))
		for _, pl := range team.Players {
			roster = append(roster, pl.PlayerID)
		}

		for _, pl := range team.Players {
			p.Registry.Register(pl.PlayerID, matchID, team.TeamID)

			teammates := make([]string, 0, len(roster)-1)
			for _, other := range roster {
				if other != pl.PlayerID {
					teammates = append(teammates, other)
				}
			}
			teammatesJSON, err := json.Marshal(teammates)
			if err != nil {
				return err
			}

			alive := 0
			if pl.Alive {
				alive = 1
			}

			fields := map[string]any{
				"player_id":           pl.PlayerID,
				"name":                pl.Name,
				"alive":               alive,
				"gold":                pl.Gold,
				"minion_kills":        0,
				"human_kills":         0,
				"human_kills_assists": 0,
				"max_killing_spree":   0,
				"kill_streaks":        "[]",
				"team_members":        string(teammatesJSON),
			}
			if err := p.Store.HSet(ctx, p.Keys.Player(matchID, pl.PlayerID), fields); err != nil {
				return err
			}
		}
	}
	return nil
}
