package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"shotboard/internal/reference"
	"shotboard/internal/shared/errors"
	"shotboard/internal/shared/response"
)

type ReferenceHandler struct {
	service *reference.Service
}

func NewReferenceHandler(service *reference.Service) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

func (h *ReferenceHandler) Teams(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_teams")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	teams, err := h.service.Teams(r.Context())
	if err != nil {
		fail(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, teams)
}

func (h *ReferenceHandler) Players(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_team_players")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	teamIDStr := r.PathValue("id")
	if teamIDStr == "" {
		response.Error(w, r, logger, errors.Validation("team ID is required"))
		return
	}

	teamID, err := strconv.ParseInt(teamIDStr, 10, 64)
	if err != nil {
		response.Error(w, r, logger, errors.WrapValidation("invalid team ID format", err))
		return
	}

	players, err := h.service.Players(r.Context(), teamID)
	if err != nil {
		fail(w, r, logger, err)
		return
	}

	if players == nil {
		players = []reference.Player{}
	}

	response.Success(w, http.StatusOK, players)
}

func (h *ReferenceHandler) Stadiums(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_stadiums")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	stadiums, err := h.service.Stadiums(r.Context())
	if err != nil {
		fail(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, stadiums)
}
