package store

import "fmt"

// Keys builds the store's key schema from the two configurable
// namespaces. The zero value is invalid - use NewKeys.
type Keys struct {
	EventsNamespace string
	StateNamespace  string
}

// NewKeys returns a Keys using the given namespaces, falling back to the
// reference defaults ("game_events"/"game_state") for empty arguments.
func NewKeys(eventsNamespace, stateNamespace string) Keys {
	if eventsNamespace == "" {
		eventsNamespace = "game_events"
	}
	if stateNamespace == "" {
		stateNamespace = "game_state"
	}
	return Keys{EventsNamespace: eventsNamespace, StateNamespace: stateNamespace}
}

// Event returns the key of the raw event hash persisted by the ingress consumer.
func (k Keys) Event(eventID string) string {
	return fmt.Sprintf("%s:event:%s", k.EventsNamespace, eventID)
}

// Match returns the key of a match's aggregate state hash.
func (k Keys) Match(matchID string) string {
	return fmt.Sprintf("%s:game:%s", k.StateNamespace, matchID)
}

// Team returns the key of a team's aggregate state hash.
func (k Keys) Team(matchID, teamID string) string {
	return fmt.Sprintf("%s:game:%s:team:%s", k.StateNamespace, matchID, teamID)
}

// Player returns the key of a player's aggregate state hash.
func (k Keys) Player(matchID, playerID string) string {
	return fmt.Sprintf("%s:game:%s:player:%s", k.StateNamespace, matchID, playerID)
}

// PlayerKillHistory returns the key of a player's kill-history sorted set.
func (k Keys) PlayerKillHistory(matchID, playerID string) string {
	return fmt.Sprintf("%s:game:%s:player:%s:kill_history", k.StateNamespace, matchID, playerID)
}

// PlayerDeathHistory returns the key of a player's death-history sorted set.
func (k Keys) PlayerDeathHistory(matchID, playerID string) string {
	return fmt.Sprintf("%s:game:%s:player:%s:death_history", k.StateNamespace, matchID, playerID)
}
