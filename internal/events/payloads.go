package events

// MatchStartPayload is the payload of a MATCH_START event.
type MatchStartPayload struct {
	Fixture MatchFixture `json:"fixture" validate:"required"`
	Teams   []MatchTeam  `json:"teams" validate:"required,min=1,dive"`
}

// MatchFixture carries the series/tournament metadata for a match.
type MatchFixture struct {
	StartTime     string `json:"startTime" validate:"required"`
	Title         string `json:"title" validate:"required"`
	SeriesCurrent int    `json:"seriesCurrent"`
	SeriesMax     int    `json:"seriesMax"`
	SeriesType    string `json:"seriesType" validate:"required"`
}

// MatchTeam is one side of a MATCH_START roster.
type MatchTeam struct {
	TeamID  string        `json:"teamID" validate:"required"`
	Players []MatchPlayer `json:"players" validate:"required,dive"`
}

// MatchPlayer is a single roster entry within a MatchTeam.
type MatchPlayer struct {
	PlayerID string `json:"playerID" validate:"required"`
	Gold     int    `json:"gold"`
	Alive    bool   `json:"alive"`
	Name     string `json:"name"`
}

// MinionKillPayload is the payload of a MINION_KILL event.
type MinionKillPayload struct {
	PlayerID    string `json:"playerID" validate:"required"`
	GoldGranted *int   `json:"goldGranted"`
}

// PlayerKillPayload is the payload of a PLAYER_KILL event. Every field is
// optional per the wire contract - the event carries no required fields.
type PlayerKillPayload struct {
	KillerID    *string  `json:"killerID"`
	VictimID    *string  `json:"victimID"`
	GoldGranted *int     `json:"goldGranted"`
	Assistants  []string `json:"assistants"`
	AssistGold  *int     `json:"assistGold"`
}

// DragonKillPayload is the payload of a DRAGON_KILL event.
type DragonKillPayload struct {
	KillerID    string  `json:"killerID" validate:"required"`
	DragonType  *string `json:"dragonType"`
	GoldGranted *int    `json:"goldGranted"`
}

// TurretDestroyPayload is the payload of a TURRET_DESTROY event.
type TurretDestroyPayload struct {
	KillerID          *string `json:"killerID"`
	KillerTeamID      *string `json:"killerTeamID"`
	TurretTier        *int    `json:"turretTier"`
	TurretLane        *string `json:"turretLane"`
	PlayerGoldGranted *int    `json:"playerGoldGranted"`
	TeamGoldGranted   *int    `json:"teamGoldGranted"`
}

// MatchEndPayload is the payload of a MATCH_END event.
type MatchEndPayload struct {
	WinningTeamID string `json:"winningTeamID" validate:"required"`
}
