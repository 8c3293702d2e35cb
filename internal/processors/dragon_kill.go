package processors

import (
	"context"
	"fmt"

	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/registry"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// DragonKillProcessor credits the killer's gold, records the kill in their
// history, and increments their team's dragon counter.
// killerID is a required payload field, so it is only ever absent here if
// the envelope failed validation upstream - this handler's own no-op guard
// is for a missing goldGranted.
type DragonKillProcessor struct {
	Store    store.Store
	Keys     store.Keys
	Registry *registry.Registry
}

func (p *DragonKillProcessor) ProcessEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(*events.DragonKillPayload)
	if !ok || payload == nil {
		return fmt.Errorf("dragon_kill: unexpected payload type %T", event.Payload)
	}
	if payload.GoldGranted == nil {
		return nil
	}

	matchID, ok := p.Registry.MatchFor(payload.KillerID)
	if !ok {
		return nil
	}

	key := p.Keys.Player(matchID, payload.KillerID)
	if _, err := p.Store.HIncrBy(ctx, key, "gold", int64(*payload.GoldGranted)); err != nil {
		return err
	}

	if ts, ok := events.ParseTimestamp(event.Timestamp); ok {
		histKey := p.Keys.PlayerKillHistory(matchID, payload.KillerID)
		if err := addKillHistory(ctx, p.Store, histKey, ts, "dragon"); err != nil {
			return err
		}
	}

	teamID, ok := p.Registry.TeamFor(payload.KillerID)
	if !ok {
		return nil
	}
	_, err := p.Store.HIncrBy(ctx, p.Keys.Team(matchID, teamID), "dragon_kills", 1)
	return err
}
