package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Decode type-discriminates raw (the JSON-decoded "payload" field of a
// StoredEvent) into the concrete payload shape for typ and validates its
// required fields. Unknown types decode to nil with no error - the caller
// is expected to have already dropped those before calling Decode.
func Decode(typ EventType, raw json.RawMessage) (any, error) {
	var payload any

	switch typ {
	case MatchStart:
		payload = &MatchStartPayload{}
	case MinionKill:
		payload = &MinionKillPayload{}
	case PlayerKill:
		payload = &PlayerKillPayload{}
	case DragonKill:
		payload = &DragonKillPayload{}
	case TurretDestroy:
		payload = &TurretDestroyPayload{}
	case MatchEnd:
		payload = &MatchEndPayload{}
	case Unknown:
		return nil, nil
	default:
		return nil, nil
	}

	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", typ, err)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("validate %s payload: %w", typ, err)
	}
	return payload, nil
}

// ParseTimestamp parses the envelope's optional ISO-8601 timestamp string
// into Unix seconds (with fractional precision), matching the epoch-float
// timestamps used throughout the kill/death history and derivation
// functions. It accepts RFC3339 timestamps with or without fractional
// seconds, with a literal "Z" or a numeric UTC offset.
func ParseTimestamp(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UTC().UnixNano()) / 1e9, true
		}
	}
	return 0, false
}
