package gamestate

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/openmohaa/match-pipeline/internal/derive"
	"github.com/openmohaa/match-pipeline/internal/store"
)

// GameState is the assembled read-side view of a match.
type GameState struct {
	MatchID       string      `json:"matchID"`
	StartTime     string      `json:"startTime"`
	Title         string      `json:"title"`
	SeriesType    string      `json:"seriesType"`
	SeriesCurrent int         `json:"seriesCurrent"`
	SeriesMax     int         `json:"seriesMax"`
	WinningTeamID string      `json:"winningTeamID,omitempty"`
	FirstBlood    string      `json:"firstBlood,omitempty"`
	Teams         []TeamState `json:"teams"`
}

// TeamState is one team's aggregate view within a GameState.
type TeamState struct {
	TeamID      string        `json:"teamID"`
	DragonKills int           `json:"dragonKills"`
	TowerKills  int           `json:"towerKills"`
	Players     []PlayerState `json:"players"`
}

// PlayerState is one player's aggregate view within a TeamState.
type PlayerState struct {
	PlayerID          string   `json:"playerID"`
	Name              string   `json:"name"`
	Alive             bool     `json:"alive"`
	Gold              int      `json:"gold"`
	MinionKills       int      `json:"minionKills"`
	HumanKills        int      `json:"humanKills"`
	HumanKillsAssists int      `json:"humanKillsAssists"`
	MaxKillingSpree   string   `json:"maxKillingSpree,omitempty"`
	KillStreaks       []string `json:"killStreaks"`
}

// Reader assembles GameState views from the store.
type Reader struct {
	Store store.Store
	Keys  store.Keys
}

// ErrMatchNotFound is returned by Read when the match hash does not exist.
var ErrMatchNotFound = fmt.Errorf("gamestate: match not found")

// Read builds the full GameState for matchID: the match hash,
// its JSON-encoded teams index, and every team's and player's state hash.
func (r *Reader) Read(ctx context.Context, matchID string) (*GameState, error) {
	matchHash, err := r.Store.HGetAll(ctx, r.Keys.Match(matchID))
	if err != nil {
		return nil, err
	}
	if len(matchHash) == 0 {
		return nil, ErrMatchNotFound
	}

	var teamsIndex []TeamIndexEntry
	if raw := matchHash["teams"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &teamsIndex); err != nil {
			return nil, fmt.Errorf("decode teams index: %w", err)
		}
	}

	state := &GameState{
		MatchID:       matchID,
		StartTime:     matchHash["start_time"],
		Title:         matchHash["title"],
		SeriesType:    matchHash["series_type"],
		SeriesCurrent: atoiOrZero(matchHash["series_current"]),
		SeriesMax:     atoiOrZero(matchHash["series_max"]),
		WinningTeamID: matchHash["winning_team_id"],
		FirstBlood:    renderFirstBlood(matchHash["first_blood"]),
	}

	for _, teamEntry := range teamsIndex {
		teamState, err := r.readTeam(ctx, matchID, teamEntry)
		if err != nil {
			return nil, err
		}
		state.Teams = append(state.Teams, teamState)
	}

	return state, nil
}

func (r *Reader) readTeam(ctx context.Context, matchID string, entry TeamIndexEntry) (TeamState, error) {
	teamHash, err := r.Store.HGetAll(ctx, r.Keys.Team(matchID, entry.TeamID))
	if err != nil {
		return TeamState{}, err
	}

	team := TeamState{
		TeamID:      entry.TeamID,
		DragonKills: atoiOrZero(teamHash["dragon_kills"]),
		TowerKills:  atoiOrZero(teamHash["tower_kills"]),
	}

	for _, playerID := range entry.Players {
		playerState, err := r.readPlayer(ctx, matchID, playerID)
		if err != nil {
			return TeamState{}, err
		}
		team.Players = append(team.Players, playerState)
	}
	return team, nil
}

func (r *Reader) readPlayer(ctx context.Context, matchID, playerID string) (PlayerState, error) {
	playerHash, err := r.Store.HGetAll(ctx, r.Keys.Player(matchID, playerID))
	if err != nil {
		return PlayerState{}, err
	}

	var streaks []string
	if raw := playerHash["kill_streaks"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &streaks); err != nil {
			return PlayerState{}, fmt.Errorf("decode kill streaks for %s: %w", playerID, err)
		}
	}
	if streaks == nil {
		streaks = []string{}
	}

	spreeLabel, _ := derive.SpreeLabel(atoiOrZero(playerHash["max_killing_spree"]))

	return PlayerState{
		PlayerID:          playerID,
		Name:              playerHash["name"],
		Alive:             playerHash["alive"] == "1",
		Gold:              atoiOrZero(playerHash["gold"]),
		MinionKills:       atoiOrZero(playerHash["minion_kills"]),
		HumanKills:        atoiOrZero(playerHash["human_kills"]),
		HumanKillsAssists: atoiOrZero(playerHash["human_kills_assists"]),
		MaxKillingSpree:   spreeLabel,
		KillStreaks:       streaks,
	}, nil
}

// renderFirstBlood converts a stored epoch-seconds score back to an
// ISO-8601 UTC string. The "-1" sentinel (no kill observed yet) renders as
// the empty string, which the JSON tag's omitempty then drops.
func renderFirstBlood(stored string) string {
	if stored == "" || stored == "-1" {
		return ""
	}
	seconds, err := strconv.ParseFloat(stored, 64)
	if err != nil {
		return ""
	}
	return time.Unix(0, int64(seconds*1e9)).UTC().Format(time.RFC3339)
}

// atoiOrZero parses a possibly-empty store field as an integer, defaulting
// to 0 when the field is missing, empty, or not an integer; this applies
// to any integer field read here, not just max_killing_spree.
func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
