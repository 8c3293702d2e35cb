package processors

import (
	"context"
	"fmt"

	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/registry"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// TurretDestroyProcessor increments the destroying team's tower counter and
// distributes gold to its roster: the killer gets playerGoldGranted, every
// other teammate gets teamGoldGranted.
//
// killerTeamID is nominally optional on the wire, but team-key resolution
// has no other way to find the team: without it this event cannot be
// applied, so a missing killerTeamID is treated the same as a missing
// killerID and the event no-ops; see DESIGN.md.
type TurretDestroyProcessor struct {
	Store    store.Store
	Keys     store.Keys
	Registry *registry.Registry
}

func (p *TurretDestroyProcessor) ProcessEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(*events.TurretDestroyPayload)
	if !ok || payload == nil {
		return fmt.Errorf("turret_destroy: unexpected payload type %T", event.Payload)
	}
	if payload.KillerID == nil || payload.KillerTeamID == nil {
		return nil
	}
	killerID := *payload.KillerID
	teamID := *payload.KillerTeamID

	matchID, ok := p.Registry.MatchForTeam(teamID)
	if !ok {
		return nil
	}

	if _, err := p.Store.HIncrBy(ctx, p.Keys.Team(matchID, teamID), "tower_kills", 1); err != nil {
		return err
	}

	for _, playerID := range p.Registry.PlayersForTeam(teamID) {
		var grant *int
		if playerID == killerID {
			grant = payload.PlayerGoldGranted
		} else {
			grant = payload.TeamGoldGranted
		}
		if grant == nil {
			continue
		}
		playerMatch, ok := p.Registry.MatchFor(playerID)
		if !ok {
			continue
		}
		key := p.Keys.Player(playerMatch, playerID)
		if _, err := p.Store.HIncrBy(ctx, key, "gold", int64(*grant)); err != nil {
			return err
		}
	}
	return nil
}
