package processors

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/registry"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// PlayerKillProcessor is the busiest handler: it credits the killer,
// credits any assistants, records the victim's death, and maintains the
// match's first-blood timestamp. Every field of the payload
// is optional, so each step independently no-ops when its subject is
// absent or unregistered.
type PlayerKillProcessor struct {
	Store    store.Store
	Keys     store.Keys
	Registry *registry.Registry
}

func (p *PlayerKillProcessor) ProcessEvent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(*events.PlayerKillPayload)
	if !ok || payload == nil {
		return fmt.Errorf("player_kill: unexpected payload type %T", event.Payload)
	}

	ts, haveTs := events.ParseTimestamp(event.Timestamp)

	if payload.KillerID != nil {
		if err := p.applyKiller(ctx, *payload.KillerID, payload.GoldGranted, ts, haveTs); err != nil {
			return err
		}
	}

	for _, assistantID := range payload.Assistants {
		if err := p.applyAssist(ctx, assistantID, payload.AssistGold); err != nil {
			return err
		}
	}

	if payload.VictimID != nil && haveTs {
		if err := p.applyDeath(ctx, *payload.VictimID, ts); err != nil {
			return err
		}
	}

	if !haveTs || (payload.KillerID == nil && payload.VictimID == nil) {
		return nil
	}
	return p.updateFirstBlood(ctx, payload, ts)
}

func (p *PlayerKillProcessor) applyKiller(ctx context.Context, killerID string, goldGranted *int, ts float64, haveTs bool) error {
	matchID, ok := p.Registry.MatchFor(killerID)
	if !ok {
		return nil
	}
	key := p.Keys.Player(matchID, killerID)
	if goldGranted != nil {
		if _, err := p.Store.HIncrBy(ctx, key, "gold", int64(*goldGranted)); err != nil {
			return err
		}
	}
	if _, err := p.Store.HIncrBy(ctx, key, "human_kills", 1); err != nil {
		return err
	}
	if haveTs {
		if err := addKillHistory(ctx, p.Store, p.Keys.PlayerKillHistory(matchID, killerID), ts, "human"); err != nil {
			return err
		}
	}
	return nil
}

func (p *PlayerKillProcessor) applyAssist(ctx context.Context, assistantID string, assistGold *int) error {
	matchID, ok := p.Registry.MatchFor(assistantID)
	if !ok {
		return nil
	}
	key := p.Keys.Player(matchID, assistantID)
	if assistGold != nil {
		if _, err := p.Store.HIncrBy(ctx, key, "gold", int64(*assistGold)); err != nil {
			return err
		}
	}
	_, err := p.Store.HIncrBy(ctx, key, "human_kills_assists", 1)
	return err
}

func (p *PlayerKillProcessor) applyDeath(ctx context.Context, victimID string, ts float64) error {
	matchID, ok := p.Registry.MatchFor(victimID)
	if !ok {
		return nil
	}
	key := p.Keys.PlayerDeathHistory(matchID, victimID)
	return p.Store.ZAdd(ctx, key, formatFloat(ts), ts)
}

// updateFirstBlood resolves the match via the killer (falling back to the
// victim) and lowers the match's first_blood timestamp if this kill
// happened earlier than whatever is currently recorded. The read-then-write
// is not atomic; two PLAYER_KILL events racing for first blood can produce
// either outcome depending on interleaving. This is accepted: first blood
// only ever matters for the earliest kill in a match, a case that is not
// contended in practice. See DESIGN.md.
func (p *PlayerKillProcessor) updateFirstBlood(ctx context.Context, payload *events.PlayerKillPayload, ts float64) error {
	var resolveID string
	if payload.KillerID != nil {
		resolveID = *payload.KillerID
	} else if payload.VictimID != nil {
		resolveID = *payload.VictimID
	}
	matchID, ok := p.Registry.MatchFor(resolveID)
	if !ok {
		return nil
	}

	key := p.Keys.Match(matchID)
	current, err := p.Store.HGet(ctx, key, "first_blood")
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if current == "-1" || current == "" {
		return p.Store.HSet(ctx, key, map[string]any{"first_blood": formatFloat(ts)})
	}
	currentTs, err := strconv.ParseFloat(current, 64)
	if err != nil {
		return nil
	}
	if ts < currentTs {
		return p.Store.HSet(ctx, key, map[string]any{"first_blood": formatFloat(ts)})
	}
	return nil
}
