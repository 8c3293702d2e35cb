package processors

import (
	"context"
	"testing"

	"github.com/openmohaa/match-pipeline/internal/events"
	"github.com/openmohaa/match-pipeline/internal/registry"
	"github.com/openmohaa/match-pipeline/internal/store"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func setupPlayerKillMatch(t *testing.T) (*fakeStore, *registry.Registry, store.Keys) {
	t.Helper()
	st := newFakeStore()
	reg := registry.New()
	reg.Register("killer", "m1", "teamA")
	reg.Register("victim", "m1", "teamB")
	reg.Register("assist1", "m1", "teamA")
	keys := store.NewKeys("", "")
	if err := st.HSet(context.Background(), keys.Match("m1"), map[string]any{"first_blood": "-1"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return st, reg, keys
}

func TestPlayerKillProcessorFullPayload(t *testing.T) {
	st, reg, keys := setupPlayerKillMatch(t)
	p := &PlayerKillProcessor{Store: st, Keys: keys, Registry: reg}

	event := events.Event{
		MatchID:   "m1",
		Type:      events.PlayerKill,
		Timestamp: "2026-01-01T00:00:10Z",
		Payload: &events.PlayerKillPayload{
			KillerID:    strp("killer"),
			VictimID:    strp("victim"),
			GoldGranted: intp(300),
			Assistants:  []string{"assist1"},
			AssistGold:  intp(150),
		},
	}

	if err := p.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}

	if got, _ := st.HGet(context.Background(), keys.Player("m1", "killer"), "human_kills"); got != "1" {
		t.Errorf("killer human_kills = %q, want 1", got)
	}
	if got, _ := st.HGet(context.Background(), keys.Player("m1", "killer"), "gold"); got != "300" {
		t.Errorf("killer gold = %q, want 300", got)
	}
	if got, _ := st.HGet(context.Background(), keys.Player("m1", "assist1"), "human_kills_assists"); got != "1" {
		t.Errorf("assist1 human_kills_assists = %q, want 1", got)
	}
	if got, _ := st.HGet(context.Background(), keys.Player("m1", "assist1"), "gold"); got != "150" {
		t.Errorf("assist1 gold = %q, want 150", got)
	}

	deaths, _ := st.ZRange(context.Background(), keys.PlayerDeathHistory("m1", "victim"))
	if len(deaths) != 1 {
		t.Errorf("victim death history has %d members, want 1", len(deaths))
	}

	fb, _ := st.HGet(context.Background(), keys.Match("m1"), "first_blood")
	if fb == "-1" {
		t.Errorf("first_blood not updated")
	}
}

func TestPlayerKillProcessorFirstBloodOnlyLowers(t *testing.T) {
	st, reg, keys := setupPlayerKillMatch(t)
	p := &PlayerKillProcessor{Store: st, Keys: keys, Registry: reg}

	early := events.Event{
		MatchID:   "m1",
		Timestamp: "2026-01-01T00:00:05Z",
		Payload:   &events.PlayerKillPayload{KillerID: strp("killer"), VictimID: strp("victim")},
	}
	if err := p.ProcessEvent(context.Background(), early); err != nil {
		t.Fatalf("ProcessEvent early: %v", err)
	}
	fbAfterFirst, _ := st.HGet(context.Background(), keys.Match("m1"), "first_blood")

	later := events.Event{
		MatchID:   "m1",
		Timestamp: "2026-01-01T00:00:30Z",
		Payload:   &events.PlayerKillPayload{KillerID: strp("victim"), VictimID: strp("killer")},
	}
	if err := p.ProcessEvent(context.Background(), later); err != nil {
		t.Fatalf("ProcessEvent later: %v", err)
	}
	fbAfterSecond, _ := st.HGet(context.Background(), keys.Match("m1"), "first_blood")

	if fbAfterFirst != fbAfterSecond {
		t.Errorf("first_blood changed from %q to %q on a later kill", fbAfterFirst, fbAfterSecond)
	}
}

func TestPlayerKillProcessorMissingTimestampSkipsFirstBlood(t *testing.T) {
	st, reg, keys := setupPlayerKillMatch(t)
	p := &PlayerKillProcessor{Store: st, Keys: keys, Registry: reg}

	event := events.Event{
		MatchID: "m1",
		Payload: &events.PlayerKillPayload{KillerID: strp("killer"), VictimID: strp("victim")},
	}
	if err := p.ProcessEvent(context.Background(), event); err != nil {
		t.Fatalf("ProcessEvent: %v", err)
	}

	fb, _ := st.HGet(context.Background(), keys.Match("m1"), "first_blood")
	if fb != "-1" {
		t.Errorf("first_blood = %q, want unchanged -1 without a timestamp", fb)
	}
	if got, _ := st.HGet(context.Background(), keys.Player("m1", "killer"), "human_kills"); got != "1" {
		t.Errorf("killer credit should still apply without a timestamp, got %q", got)
	}
}
