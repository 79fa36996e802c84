package reference

import (
	"context"
	"fmt"
	"log/slog"

	"shotboard/internal/shared/database"
)

// Loader reads the lookup tables behind the selection controls.
type Loader interface {
	Teams(ctx context.Context) ([]Team, error)
	Players(ctx context.Context, teamID int64) ([]Player, error)
	Stadiums(ctx context.Context) ([]Stadium, error)
}

type Repository struct {
	store  *database.Store
	logger *slog.Logger
}

func NewRepository(store *database.Store, logger *slog.Logger) *Repository {
	logger.Debug("Initializing reference repository")

	return &Repository{
		store:  store,
		logger: logger,
	}
}

func (r *Repository) Teams(ctx context.Context) ([]Team, error) {
	query := `
		SELECT team_id, team_name
		FROM teams
		ORDER BY team_name, team_id
	`

	return database.Query(ctx, r.store, "load_teams", query, func(row database.Scanner) (Team, error) {
		var team Team
		err := row.Scan(&team.ID, &team.Name)
		return team, err
	})
}

// Players lists everyone with at least one shot recorded for the team.
func (r *Repository) Players(ctx context.Context, teamID int64) ([]Player, error) {
	d := r.store.Dialect()
	query := fmt.Sprintf(`
		SELECT DISTINCT p.player_id, p.player_name
		FROM players p
		JOIN shots s ON p.player_id = s.player_id
		WHERE s.team_id = %s
		ORDER BY p.player_name, p.player_id
	`, d.Param(1))

	return database.Query(ctx, r.store, "load_players", query, func(row database.Scanner) (Player, error) {
		var player Player
		err := row.Scan(&player.ID, &player.Name)
		return player, err
	}, teamID)
}

func (r *Repository) Stadiums(ctx context.Context) ([]Stadium, error) {
	query := `
		SELECT stadium_name, latitude, longitude
		FROM stadiums
		ORDER BY stadium_name
	`

	return database.Query(ctx, r.store, "load_stadiums", query, func(row database.Scanner) (Stadium, error) {
		var stadium Stadium
		err := row.Scan(&stadium.Name, &stadium.Latitude, &stadium.Longitude)
		return stadium, err
	})
}
