package processors

import (
	"context"
	"fmt"

	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/registry"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// MinionKillProcessor credits a minion kill's gold to the killer and records
// it in their kill history.
//
// A MINION_KILL with no parseable timestamp still credits gold and the kill
// counter, but is not added to kill history, since it cannot be ordered
// against other kills there. See DESIGN.md.
type MinionKillProcessor struct {
	Store    store.Store
	Keys     store.Keys
	Registry *registry.Registry
}

func (p *MinionKillProcessor) ProcessEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(*events.MinionKillPayload)
	if !ok || payload == nil {
		return fmt.Errorf("minion_kill: unexpected payload type %T", event.Payload)
	}
	if payload.GoldGranted == nil {
		return nil
	}

	matchID, ok := p.Registry.MatchFor(payload.PlayerID)
	if !ok {
		return nil
	}

	key := p.Keys.Player(matchID, payload.PlayerID)
	if _, err := p.Store.HIncrBy(ctx, key, "gold", int64(*payload.GoldGranted)); err != nil {
		return err
	}
	if _, err := p.Store.HIncrBy(ctx, key, "minion_kills", 1); err != nil {
		return err
	}

	if ts, ok := events.ParseTimestamp(event.Timestamp); ok {
		histKey := p.Keys.PlayerKillHistory(matchID, payload.PlayerID)
		if err := addKillHistory(ctx, p.Store, histKey, ts, "minion"); err != nil {
			return err
		}
	}
	return nil
}
