package reference

import (
	"context"
	"log/slog"

	"shotboard/internal/shared/errors"
)

// Service resolves selection names to reference rows. Every call reads
// through the loader; nothing is kept between calls here.
type Service struct {
	loader        Loader
	fallbackColor string
	logger        *slog.Logger
}

func NewService(loader Loader, fallbackColor string, logger *slog.Logger) *Service {
	logger.Debug("Initializing reference service")

	if fallbackColor == "" {
		fallbackColor = DefaultColor
	}

	return &Service{
		loader:        loader,
		fallbackColor: fallbackColor,
		logger:        logger,
	}
}

// Teams returns every team with its display color filled in.
func (s *Service) Teams(ctx context.Context) ([]Team, error) {
	teams, err := s.loader.Teams(ctx)
	if err != nil {
		return teams, err
	}

	colored := make([]Team, len(teams))
	for i, team := range teams {
		team.Color = s.Color(team.Name)
		colored[i] = team
	}
	return colored, nil
}

func (s *Service) Players(ctx context.Context, teamID int64) ([]Player, error) {
	return s.loader.Players(ctx, teamID)
}

func (s *Service) Stadiums(ctx context.Context) ([]Stadium, error) {
	return s.loader.Stadiums(ctx)
}

func (s *Service) Color(teamName string) string {
	return TeamColor(teamName, s.fallbackColor)
}

func (s *Service) TeamByName(ctx context.Context, name string) (Team, error) {
	teams, err := s.Teams(ctx)
	if err != nil {
		return Team{}, err
	}
	for _, team := range teams {
		if team.Name == name {
			return team, nil
		}
	}
	return Team{}, errors.Lookupf("team %q not found", name)
}

func (s *Service) TeamByID(ctx context.Context, id int64) (Team, error) {
	teams, err := s.Teams(ctx)
	if err != nil {
		return Team{}, err
	}
	for _, team := range teams {
		if team.ID == id {
			return team, nil
		}
	}
	return Team{}, errors.Lookupf("team %d not found", id)
}

// PlayerByName only matches players who shot for the given team.
func (s *Service) PlayerByName(ctx context.Context, teamID int64, name string) (Player, error) {
	players, err := s.loader.Players(ctx, teamID)
	if err != nil {
		return Player{}, err
	}
	for _, player := range players {
		if player.Name == name {
			return player, nil
		}
	}
	return Player{}, errors.Lookupf("player %q has no shots for team %d", name, teamID)
}

func (s *Service) StadiumByName(ctx context.Context, name string) (Stadium, error) {
	stadiums, err := s.loader.Stadiums(ctx)
	if err != nil {
		return Stadium{}, err
	}
	for _, stadium := range stadiums {
		if stadium.Name == name {
			return stadium, nil
		}
	}
	return Stadium{}, errors.Lookupf("stadium %q not found", name)
}
