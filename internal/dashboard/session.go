package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"shotboard/internal/reference"
	"shotboard/internal/shared/errors"
	"shotboard/internal/shots"
	"shotboard/internal/views"
)

// Session is one dashboard's selection. Events on a session run strictly
// one after another; a rejected event leaves the selection untouched.
type Session struct {
	mu         sync.Mutex
	svc        *Service
	logger     *slog.Logger
	team       reference.Team
	player     *reference.Player
	playersErr error
	stadium    *reference.Stadium
	comparison [2]reference.Team
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	state := State{
		TeamID:     s.team.ID,
		TeamName:   s.team.Name,
		Comparison: [2]int64{s.comparison[0].ID, s.comparison[1].ID},
	}
	if s.player != nil {
		state.PlayerID = s.player.ID
		state.PlayerName = s.player.Name
	}
	if s.stadium != nil {
		state.StadiumName = s.stadium.Name
	}
	return state
}

// Views renders every view for the current selection.
func (s *Session) Views(ctx context.Context) Refresh {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Refresh{State: s.stateLocked(), Views: s.renderLocked(ctx, AllViews)}
}

// Options loads the choices the selection controls offer, with players
// limited to the selected team.
func (s *Session) Options(ctx context.Context) (Options, error) {
	s.mu.Lock()
	teamID := s.team.ID
	s.mu.Unlock()

	ref := s.svc.reference
	teams, err := ref.Teams(ctx)
	if err != nil {
		return Options{}, err
	}
	players, err := ref.Players(ctx, teamID)
	if err != nil {
		return Options{}, err
	}
	stadiums, err := ref.Stadiums(ctx)
	if err != nil {
		return Options{}, err
	}
	return Options{Teams: teams, Players: players, Stadiums: stadiums}, nil
}

// SelectTeam switches the team and re-derives the player from the new
// team's shooters, picking the first one.
func (s *Session) SelectTeam(ctx context.Context, name string) (Refresh, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger := s.logger.With("operation", "select_team", "team", name)

	team, err := s.svc.reference.TeamByName(ctx, name)
	s.svc.metrics.ObserveSelection(string(EventTeam), err)
	if err != nil {
		logger.Warn("Team selection rejected", "error", err)
		return Refresh{}, err
	}

	players, err := s.svc.reference.Players(ctx, team.ID)
	if err != nil {
		logger.Warn("Players unavailable for team", "team_id", team.ID, "error", err)
	}

	s.team = team
	s.player = nil
	s.playersErr = err
	if len(players) > 0 {
		s.player = &players[0]
	}

	logger.Debug("Team selected", "team_id", team.ID, "players", len(players))
	return s.refreshLocked(ctx, EventTeam, players), nil
}

func (s *Session) SelectPlayer(ctx context.Context, name string) (Refresh, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger := s.logger.With("operation", "select_player", "player", name)

	player, err := s.svc.reference.PlayerByName(ctx, s.team.ID, name)
	s.svc.metrics.ObserveSelection(string(EventPlayer), err)
	if err != nil {
		logger.Warn("Player selection rejected", "team_id", s.team.ID, "error", err)
		return Refresh{}, err
	}

	s.player = &player
	s.playersErr = nil
	return s.refreshLocked(ctx, EventPlayer, nil), nil
}

func (s *Session) SelectStadium(ctx context.Context, name string) (Refresh, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger := s.logger.With("operation", "select_stadium", "stadium", name)

	stadium, err := s.svc.reference.StadiumByName(ctx, name)
	s.svc.metrics.ObserveSelection(string(EventStadium), err)
	if err != nil {
		logger.Warn("Stadium selection rejected", "error", err)
		return Refresh{}, err
	}

	s.stadium = &stadium
	return s.refreshLocked(ctx, EventStadium, nil), nil
}

// SelectComparisonTeam sets slot 1 or 2 of the comparison pair.
func (s *Session) SelectComparisonTeam(ctx context.Context, slot int, name string) (Refresh, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger := s.logger.With("operation", "select_comparison_team", "slot", slot, "team", name)

	if slot != 1 && slot != 2 {
		err := errors.Validationf("comparison slot must be 1 or 2, got %d", slot)
		s.svc.metrics.ObserveSelection(string(EventComparison), err)
		return Refresh{}, err
	}

	team, err := s.svc.reference.TeamByName(ctx, name)
	s.svc.metrics.ObserveSelection(string(EventComparison), err)
	if err != nil {
		logger.Warn("Comparison selection rejected", "error", err)
		return Refresh{}, err
	}

	s.comparison[slot-1] = team
	return s.refreshLocked(ctx, EventComparison, nil), nil
}

// Heatmap returns the raw cells behind the heatmap view for the selected
// team, for renderers other than the display spec.
func (s *Session) Heatmap(ctx context.Context) (reference.Team, []shots.HeatCell, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	team := s.team
	team.Color = s.svc.reference.Color(team.Name)
	cells, err := s.svc.catalog.ShotHeatmap(ctx, team.ID)
	return team, cells, err
}

func (s *Session) refreshLocked(ctx context.Context, event Event, players []reference.Player) Refresh {
	if event == EventTeam && players == nil {
		players = []reference.Player{}
	}
	return Refresh{
		State:   s.stateLocked(),
		Views:   s.renderLocked(ctx, StaleViews(event)),
		Players: players,
	}
}

func (s *Session) renderLocked(ctx context.Context, ids []ViewID) map[ViewID]views.Display {
	out := make(map[ViewID]views.Display, len(ids))
	for _, id := range ids {
		out[id] = s.render(ctx, id)
	}
	return out
}

// render re-executes the one query behind a view. Query failures arrive as
// an empty result plus error and become an empty spec with an error notice.
func (s *Session) render(ctx context.Context, id ViewID) views.Display {
	catalog, mapper := s.svc.catalog, s.svc.mapper

	switch id {
	case ViewShotsByType:
		rows, err := catalog.ShotsByType(ctx, s.team.ID)
		return mapper.ShotsByType(s.team, rows, err)
	case ViewPlayerShots:
		if s.player == nil {
			return mapper.PlayerShots(nil, nil, s.playersErr)
		}
		rows, err := catalog.PlayerShotsByType(ctx, s.player.ID)
		return mapper.PlayerShots(s.player, rows, err)
	case ViewHeatmap:
		rows, err := catalog.ShotHeatmap(ctx, s.team.ID)
		return mapper.Heatmap(s.team, rows, err)
	case ViewComparison:
		rows, err := catalog.TeamComparison(ctx, s.comparison[0].ID, s.comparison[1].ID)
		return mapper.Comparison(s.comparison[0], s.comparison[1], rows, err)
	case ViewZoneOutcome:
		rows, err := catalog.ZoneOutcome(ctx, s.team.ID)
		return mapper.ZoneOutcome(s.team, rows, err)
	case ViewDistanceTrend:
		rows, err := catalog.ShotDistanceByQuarter(ctx, s.team.ID, s.svc.dates)
		return mapper.DistanceTrend(s.team, rows, err)
	case ViewStadiumMap:
		return mapper.StadiumPoint(s.stadium, nil)
	}

	s.logger.Error("Unknown view requested", "view", id)
	return nil
}
