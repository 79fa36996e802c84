package dashboard

import (
	"context"
	"log/slog"

	"shotboard/internal/reference"
	"shotboard/internal/shared/metrics"
	"shotboard/internal/shots"
	"shotboard/internal/views"
)

// Catalog is the set of aggregations the dashboard renders. *shots.Catalog
// implements it.
type Catalog interface {
	ShotsByType(ctx context.Context, teamID int64) ([]shots.TypeCount, error)
	PlayerShotsByType(ctx context.Context, playerID int64) ([]shots.TypeCount, error)
	ShotHeatmap(ctx context.Context, teamID int64) ([]shots.HeatCell, error)
	TeamComparison(ctx context.Context, teamID1, teamID2 int64) ([]shots.TeamTypeCount, error)
	ZoneOutcome(ctx context.Context, teamID int64) ([]shots.ZoneOutcome, error)
	ShotDistanceByQuarter(ctx context.Context, teamID int64, dates shots.DateRange) ([]shots.QuarterDistance, error)
}

// Service holds what every session shares: reference data, the query
// catalog, the mapper and the season window.
type Service struct {
	reference *reference.Service
	catalog   Catalog
	mapper    *views.Mapper
	dates     shots.DateRange
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewService(ref *reference.Service, catalog Catalog, mapper *views.Mapper, dates shots.DateRange, m *metrics.Metrics, logger *slog.Logger) *Service {
	logger.Debug("Initializing dashboard service",
		"date_from", dates.From.Format("2006-01-02"),
		"date_to", dates.To.Format("2006-01-02"))

	return &Service{
		reference: ref,
		catalog:   catalog,
		mapper:    mapper,
		dates:     dates,
		metrics:   m,
		logger:    logger,
	}
}

func (s *Service) Reference() *reference.Service {
	return s.reference
}

// NewSession builds a session on the default selection: the first team and
// its first player, the first stadium, and the first team in both
// comparison slots.
func (s *Service) NewSession(ctx context.Context) (*Session, error) {
	logger := s.logger.With("component", "dashboard", "operation", "new_session")

	teams, err := s.reference.Teams(ctx)
	if err != nil {
		logger.Error("Failed to load teams for new session", "error", err)
		return nil, err
	}

	sess := &Session{svc: s, logger: s.logger.With("component", "session")}

	if len(teams) > 0 {
		sess.team = teams[0]
		sess.comparison = [2]reference.Team{teams[0], teams[0]}

		players, err := s.reference.Players(ctx, sess.team.ID)
		if err != nil {
			logger.Warn("Players unavailable for default team", "team_id", sess.team.ID, "error", err)
			sess.playersErr = err
		}
		if len(players) > 0 {
			sess.player = &players[0]
		}
	} else {
		logger.Warn("No teams in the warehouse")
	}

	stadiums, err := s.reference.Stadiums(ctx)
	if err != nil {
		logger.Warn("Stadiums unavailable", "error", err)
	}
	if len(stadiums) > 0 {
		sess.stadium = &stadiums[0]
	}

	logger.Debug("Session initialized", "team_id", sess.team.ID, "stadium", sess.State().StadiumName)
	return sess, nil
}
