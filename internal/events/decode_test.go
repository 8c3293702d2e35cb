package events

import "testing"

func TestParseEventType(t *testing.T) {
	cases := map[string]EventType{
		"MATCH_START":    MatchStart,
		"MINION_KILL":    MinionKill,
		"PLAYER_KILL":    PlayerKill,
		"DRAGON_KILL":    DragonKill,
		"TURRET_DESTROY": TurretDestroy,
		"MATCH_END":      MatchEnd,
		"BOGUS":          Unknown,
		"":               Unknown,
	}
	for in, want := range cases {
		if got := ParseEventType(in); got != want {
			t.Errorf("ParseEventType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeMinionKill(t *testing.T) {
	payload, err := Decode(MinionKill, []byte(`{"playerID":"p1","goldGranted":10}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	mk, ok := payload.(*MinionKillPayload)
	if !ok {
		t.Fatalf("payload type = %T", payload)
	}
	if mk.PlayerID != "p1" || mk.GoldGranted == nil || *mk.GoldGranted != 10 {
		t.Errorf("unexpected payload: %+v", mk)
	}
}

func TestDecodeMissingRequiredFieldFails(t *testing.T) {
	if _, err := Decode(MinionKill, []byte(`{"goldGranted":10}`)); err == nil {
		t.Errorf("expected validation error for missing playerID")
	}
}

func TestDecodeUnknownReturnsNil(t *testing.T) {
	payload, err := Decode(Unknown, []byte(`{}`))
	if err != nil || payload != nil {
		t.Errorf("Decode(Unknown) = %v, %v, want nil, nil", payload, err)
	}
}

func TestParseTimestamp(t *testing.T) {
	ts, ok := ParseTimestamp("2026-01-01T00:00:10Z")
	if !ok {
		t.Fatalf("expected timestamp to parse")
	}
	want := float64(1767225610)
	if ts != want {
		t.Errorf("ParseTimestamp = %v, want %v", ts, want)
	}

	if _, ok := ParseTimestamp(""); ok {
		t.Errorf("empty timestamp should not parse")
	}
	if _, ok := ParseTimestamp("not-a-date"); ok {
		t.Errorf("garbage timestamp should not parse")
	}
}
