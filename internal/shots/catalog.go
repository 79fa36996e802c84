package shots

import (
	"context"
	"fmt"
	"log/slog"

	"shotboard/internal/shared/database"
	"shotboard/internal/shared/errors"
)

// Query names double as metric labels and log fields.
const (
	QueryShotsByType           = "shots_by_type"
	QueryPlayerShotsByType     = "player_shots_by_type"
	QueryShotHeatmap           = "shot_heatmap"
	QueryTeamComparison        = "team_comparison"
	QueryZoneOutcome           = "zone_outcome"
	QueryShotDistanceByQuarter = "shot_distance_by_quarter"
)

// Catalog runs the fixed set of aggregation queries. Every parameter is
// bound; only dialect fragments are spliced into the statement text.
type Catalog struct {
	store  *database.Store
	logger *slog.Logger
}

func NewCatalog(store *database.Store, logger *slog.Logger) *Catalog {
	logger.Debug("Initializing shot query catalog")

	return &Catalog{
		store:  store,
		logger: logger,
	}
}

func scanTypeCount(row database.Scanner) (TypeCount, error) {
	var tc TypeCount
	err := row.Scan(&tc.Type, &tc.Count)
	return tc, err
}

// ShotsByType counts a team's made shots per shot type.
func (c *Catalog) ShotsByType(ctx context.Context, teamID int64) ([]TypeCount, error) {
	query := fmt.Sprintf(`
		SELECT s.shot_type, COUNT(*) AS shot_count
		FROM shots s
		WHERE s.team_id = %s AND s.shot_made = TRUE
		GROUP BY s.shot_type
		ORDER BY s.shot_type
	`, c.store.Dialect().Param(1))

	return database.Query(ctx, c.store, QueryShotsByType, query, scanTypeCount, teamID)
}

// PlayerShotsByType counts a player's made shots per shot type, across teams.
func (c *Catalog) PlayerShotsByType(ctx context.Context, playerID int64) ([]TypeCount, error) {
	query := fmt.Sprintf(`
		SELECT s.shot_type, COUNT(*) AS shot_count
		FROM shots s
		WHERE s.player_id = %s AND s.shot_made = TRUE
		GROUP BY s.shot_type
		ORDER BY s.shot_type
	`, c.store.Dialect().Param(1))

	return database.Query(ctx, c.store, QueryPlayerShotsByType, query, scanTypeCount, playerID)
}

// ShotHeatmap counts a team's made shots per court location. Shots without
// a location are left out.
func (c *Catalog) ShotHeatmap(ctx context.Context, teamID int64) ([]HeatCell, error) {
	query := fmt.Sprintf(`
		SELECT s.loc_x, s.loc_y, COUNT(*) AS shot_count
		FROM shots s
		WHERE s.team_id = %s
			AND s.shot_made = TRUE
			AND s.loc_x IS NOT NULL
			AND s.loc_y IS NOT NULL
		GROUP BY s.loc_x, s.loc_y
		ORDER BY s.loc_x, s.loc_y
	`, c.store.Dialect().Param(1))

	return database.Query(ctx, c.store, QueryShotHeatmap, query, func(row database.Scanner) (HeatCell, error) {
		var cell HeatCell
		err := row.Scan(&cell.X, &cell.Y, &cell.Count)
		return cell, err
	}, teamID)
}

// TeamComparison counts made shots per team and type for two teams. Passing
// the same team twice yields that team's rows once.
func (c *Catalog) TeamComparison(ctx context.Context, teamID1, teamID2 int64) ([]TeamTypeCount, error) {
	d := c.store.Dialect()
	query := fmt.Sprintf(`
		SELECT s.team_id, s.shot_type, COUNT(*) AS shot_count
		FROM shots s
		WHERE s.team_id IN (%s, %s) AND s.shot_made = TRUE
		GROUP BY s.team_id, s.shot_type
		ORDER BY s.team_id, s.shot_type
	`, d.Param(1), d.Param(2))

	return database.Query(ctx, c.store, QueryTeamComparison, query, func(row database.Scanner) (TeamTypeCount, error) {
		var tc TeamTypeCount
		err := row.Scan(&tc.TeamID, &tc.Type, &tc.Count)
		return tc, err
	}, teamID1, teamID2)
}

// ZoneOutcome counts every attempt by court zone and outcome.
func (c *Catalog) ZoneOutcome(ctx context.Context, teamID int64) ([]ZoneOutcome, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(s.zone_name, 'Unknown') AS zone, s.shot_made, COUNT(*) AS shot_count
		FROM shots s
		WHERE s.team_id = %s
		GROUP BY s.zone_name, s.shot_made
		ORDER BY zone, s.shot_made
	`, c.store.Dialect().Param(1))

	return database.Query(ctx, c.store, QueryZoneOutcome, query, func(row database.Scanner) (ZoneOutcome, error) {
		var zo ZoneOutcome
		err := row.Scan(&zo.Zone, &zo.Made, &zo.Count)
		return zo, err
	}, teamID)
}

// ShotDistanceByQuarter averages a team's shot distance per calendar
// quarter for games inside the range, oldest quarter first. Shots without a
// distance count toward neither the sum nor the number of shots.
func (c *Catalog) ShotDistanceByQuarter(ctx context.Context, teamID int64, dates DateRange) ([]QuarterDistance, error) {
	if dates.To.Before(dates.From) {
		return []QuarterDistance{}, errors.Validationf("date range ends (%s) before it starts (%s)",
			dates.To.Format("2006-01-02"), dates.From.Format("2006-01-02"))
	}

	d := c.store.Dialect()
	year := d.Year("g.game_date")
	quarter := d.Quarter("g.game_date")

	query := fmt.Sprintf(`
		SELECT %s AS shot_year, %s AS shot_quarter, AVG(s.shot_distance) AS avg_distance
		FROM shots s
		JOIN games g ON s.game_id = g.game_id
		WHERE s.team_id = %s
			AND g.game_date >= %s
			AND g.game_date < %s
			AND s.shot_distance IS NOT NULL
		GROUP BY %s, %s
		ORDER BY shot_year, shot_quarter
	`, year, quarter, d.Param(1), d.Param(2), d.Param(3), year, quarter)

	// The upper bound covers the whole last day even for timestamp columns.
	until := dates.To.AddDate(0, 0, 1)

	return database.Query(ctx, c.store, QueryShotDistanceByQuarter, query, func(row database.Scanner) (QuarterDistance, error) {
		var qd QuarterDistance
		err := row.Scan(&qd.Year, &qd.Quarter, &qd.AvgDistance)
		return qd, err
	}, teamID, d.Date(dates.From), d.Date(until))
}
