package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"shotboard/internal/dashboard"
	"shotboard/internal/render"
	"shotboard/internal/shared/errors"
	"shotboard/internal/shared/response"
)

type SelectionRequest struct {
	Name string `json:"name"`
}

type SessionResponse struct {
	ID      string             `json:"id"`
	Options *dashboard.Options `json:"options,omitempty"`
	dashboard.Refresh
}

type SessionHandler struct {
	store *dashboard.Store
	court render.Court
}

func NewSessionHandler(store *dashboard.Store, court render.Court) *SessionHandler {
	return &SessionHandler{store: store, court: court}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "create_session")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id, sess, err := h.store.Create(ctx)
	if err != nil {
		fail(w, r, logger, err)
		return
	}

	options, err := sess.Options(ctx)
	if err != nil {
		fail(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, SessionResponse{
		ID:      id,
		Options: &options,
		Refresh: sess.Views(ctx),
	})
}

// Session serves GET (full re-render) and DELETE on one session.
func (h *SessionHandler) Session(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "session")

	id := r.PathValue("id")

	switch r.Method {
	case http.MethodGet:
		sess, err := h.store.Get(id)
		if err != nil {
			response.Error(w, r, logger, err)
			return
		}
		options, err := sess.Options(ctx)
		if err != nil {
			fail(w, r, logger, err)
			return
		}
		response.Success(w, http.StatusOK, SessionResponse{ID: id, Options: &options, Refresh: sess.Views(ctx)})
	case http.MethodDelete:
		if err := h.store.Delete(id); err != nil {
			response.Error(w, r, logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
	}
}

func (h *SessionHandler) SelectTeam(w http.ResponseWriter, r *http.Request) {
	h.selection(w, r, "select_team", (*dashboard.Session).SelectTeam)
}

func (h *SessionHandler) SelectPlayer(w http.ResponseWriter, r *http.Request) {
	h.selection(w, r, "select_player", (*dashboard.Session).SelectPlayer)
}

func (h *SessionHandler) SelectStadium(w http.ResponseWriter, r *http.Request) {
	h.selection(w, r, "select_stadium", (*dashboard.Session).SelectStadium)
}

func (h *SessionHandler) SelectComparison(w http.ResponseWriter, r *http.Request) {
	h.selection(w, r, "select_comparison", func(s *dashboard.Session, ctx context.Context, name string) (dashboard.Refresh, error) {
		slot, err := strconv.Atoi(r.PathValue("slot"))
		if err != nil {
			return dashboard.Refresh{}, errors.WrapValidation("invalid comparison slot format", err)
		}
		return s.SelectComparisonTeam(ctx, slot, name)
	})
}

func (h *SessionHandler) selection(w http.ResponseWriter, r *http.Request, name string, apply func(*dashboard.Session, context.Context, string) (dashboard.Refresh, error)) {
	ctx := r.Context()
	logger := slog.With("handler", name)

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	id := r.PathValue("id")
	sess, err := h.store.Get(id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req SelectionRequest
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid JSON in request body", err))
		return
	}
	if req.Name == "" {
		response.Error(w, r, logger, errors.Validation("name is required"))
		return
	}

	refresh, err := apply(sess, ctx, req.Name)
	if err != nil {
		fail(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, SessionResponse{ID: id, Refresh: refresh})
}

// HeatmapSVG draws the selected team's heatmap as an SVG shot chart.
func (h *SessionHandler) HeatmapSVG(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "heatmap_svg")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	sess, err := h.store.Get(r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	team, cells, err := sess.Heatmap(ctx)
	if err != nil {
		logger.Warn("Heatmap query failed, drawing empty chart", "team_id", team.ID, "error", err)
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	render.Heatmap(w, h.court, team.Name, team.Color, cells)
}

// fail keeps SQL and driver details out of client responses.
func fail(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch errors.GetType(err) {
	case errors.ErrorTypeQuery:
		response.ErrorWithMessage(w, r, logger, err, "failed to load dashboard data")
	case errors.ErrorTypeConnection:
		response.ErrorWithMessage(w, r, logger, err, "database unavailable")
	default:
		response.Error(w, r, logger, err)
	}
}
