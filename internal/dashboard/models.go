package dashboard

import (
	"shotboard/internal/reference"
	"shotboard/internal/views"
)

type ViewID string

const (
	ViewShotsByType   ViewID = "shots_by_type"
	ViewPlayerShots   ViewID = "player_shots"
	ViewHeatmap       ViewID = "heatmap"
	ViewComparison    ViewID = "comparison"
	ViewZoneOutcome   ViewID = "zone_outcome"
	ViewDistanceTrend ViewID = "distance_trend"
	ViewStadiumMap    ViewID = "stadium_map"
)

// AllViews is the render order of a full dashboard.
var AllViews = []ViewID{
	ViewShotsByType,
	ViewPlayerShots,
	ViewHeatmap,
	ViewComparison,
	ViewZoneOutcome,
	ViewDistanceTrend,
	ViewStadiumMap,
}

type Event string

const (
	EventTeam       Event = "team"
	EventPlayer     Event = "player"
	EventStadium    Event = "stadium"
	EventComparison Event = "comparison"
)

// staleViews lists the views a selection event invalidates. A team change
// also replaces the player, so the player view goes with it.
var staleViews = map[Event][]ViewID{
	EventTeam:       {ViewShotsByType, ViewPlayerShots, ViewHeatmap, ViewZoneOutcome, ViewDistanceTrend},
	EventPlayer:     {ViewPlayerShots},
	EventStadium:    {ViewStadiumMap},
	EventComparison: {ViewComparison},
}

func StaleViews(event Event) []ViewID {
	return staleViews[event]
}

// State is the selection a session currently shows. PlayerID is 0 when the
// selected team has no players with shots.
type State struct {
	TeamID      int64    `json:"team_id"`
	TeamName    string   `json:"team_name"`
	PlayerID    int64    `json:"player_id"`
	PlayerName  string   `json:"player_name,omitempty"`
	StadiumName string   `json:"stadium_name"`
	Comparison  [2]int64 `json:"comparison"`
}

// Refresh is the answer to a selection event: the new state plus every view
// that had to be recomputed. Players is nil unless the team changed.
type Refresh struct {
	State   State                    `json:"state"`
	Views   map[ViewID]views.Display `json:"views"`
	Players []reference.Player       `json:"players"`
}

// Options feed the selection controls.
type Options struct {
	Teams    []reference.Team    `json:"teams"`
	Players  []reference.Player  `json:"players"`
	Stadiums []reference.Stadium `json:"stadiums"`
}
