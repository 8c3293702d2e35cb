// Package events defines the inbound event envelope, the per-type payload
// shapes, and the validation/decoding rules described by the wire contract
// between the events queue and the state-updates queue.
package events

import (
	"encoding/json"
	"strings"
)

// EventType is the type tag carried in the envelope's "type" field.
type EventType string

const (
	MatchStart    EventType = "MATCH_START"
	MinionKill    EventType = "MINION_KILL"
	PlayerKill    EventType = "PLAYER_KILL"
	DragonKill    EventType = "DRAGON_KILL"
	TurretDestroy EventType = "TURRET_DESTROY"
	MatchEnd      EventType = "MATCH_END"
	Unknown       EventType = "UNKNOWN"
)

// ParseEventType maps a wire string onto a known EventType, degrading any
// unrecognized or empty value to Unknown rather than failing.
func ParseEventType(s string) EventType {
	switch EventType(s) {
	case MatchStart, MinionKill, PlayerKill, DragonKill, TurretDestroy, MatchEnd:
		return EventType(s)
	default:
		return Unknown
	}
}

// Envelope is the inbound event as received on the events queue.
type Envelope struct {
	MatchID   string          `json:"matchID,omitempty"`
	Type      EventType       `json:"type,omitempty"`
	Timestamp string          `json:"timestamp,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

// StoredEvent is the flat representation persisted under EV:event:<eventID>.
// The inner payload is re-encoded to a JSON string so it fits a hash field.
type StoredEvent struct {
	MatchID   string `redis:"matchID"`
	Type      string `redis:"type"`
	Timestamp string `redis:"timestamp"`
	Payload   string `redis:"payload"`
}

// ParseEnvelope decodes raw into a loosely-typed field map (step 1 of the
// ingress contract: "attempt to parse as a JSON object") and flattens it
// into a StoredEvent ready for HSET. It does not validate the type tag or
// payload shape - that happens downstream in the state-update consumer.
func ParseEnvelope(raw []byte) (StoredEvent, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return StoredEvent{}, err
	}

	out := StoredEvent{}
	if v, ok := fields["matchID"]; ok {
		out.MatchID = scalarString(v)
	}
	if v, ok := fields["type"]; ok {
		out.Type = scalarString(v)
	}
	if v, ok := fields["timestamp"]; ok {
		out.Timestamp = scalarString(v)
	}
	if v, ok := fields["payload"]; ok {
		out.Payload = string(v)
	} else {
		out.Payload = "null"
	}
	return out, nil
}

// scalarString unwraps a JSON-encoded scalar (string or number) to its
// plain text form for storage as a hash field value.
func scalarString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}

// Event is the decoded, type-discriminated event as dispatched to a processor.
type Event struct {
	MatchID   string
	Type      EventType
	Timestamp string
	Payload   any
}
