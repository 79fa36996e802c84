package server

import (
	"log/slog"
	"net/http"

	"shotboard/internal/dashboard"
	dashboardHandlers "shotboard/internal/dashboard/handlers"
	"shotboard/internal/render"
	serverHandlers "shotboard/internal/server/handlers"
	"shotboard/internal/shared/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type Routes struct {
	db          serverHandlers.Pinger
	sessions    *dashboard.Store
	service     *dashboard.Service
	gatherer    prometheus.Gatherer
	metricsPath string
	court       render.Court
}

// NewRoutes wires the API. A nil gatherer leaves the scrape endpoint out.
func NewRoutes(db serverHandlers.Pinger, sessions *dashboard.Store, service *dashboard.Service, gatherer prometheus.Gatherer, metricsPath string, court render.Court) *Routes {
	return &Routes{
		db:          db,
		sessions:    sessions,
		service:     service,
		gatherer:    gatherer,
		metricsPath: metricsPath,
		court:       court,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	healthHandler := serverHandlers.NewHealthHandler(r.db)
	sessionHandler := dashboardHandlers.NewSessionHandler(r.sessions, r.court)
	referenceHandler := dashboardHandlers.NewReferenceHandler(r.service.Reference())

	mux.Handle("/api/server/health", healthHandler)

	// Reference data for the selection controls
	mux.HandleFunc("/api/teams", referenceHandler.Teams)
	mux.HandleFunc("/api/teams/{id}/players", referenceHandler.Players)
	mux.HandleFunc("/api/stadiums", referenceHandler.Stadiums)

	// Dashboard sessions and selection events
	mux.HandleFunc("/api/sessions", sessionHandler.Create)
	mux.HandleFunc("/api/sessions/{id}", sessionHandler.Session)
	mux.HandleFunc("/api/sessions/{id}/team", sessionHandler.SelectTeam)
	mux.HandleFunc("/api/sessions/{id}/player", sessionHandler.SelectPlayer)
	mux.HandleFunc("/api/sessions/{id}/stadium", sessionHandler.SelectStadium)
	mux.HandleFunc("/api/sessions/{id}/comparison/{slot}", sessionHandler.SelectComparison)
	mux.HandleFunc("/api/sessions/{id}/heatmap.svg", sessionHandler.HeatmapSVG)

	endpoints := []string{"/api/server/health", "/api/teams", "/api/stadiums", "/api/sessions"}
	if r.gatherer != nil && r.metricsPath != "" {
		mux.Handle(r.metricsPath, metrics.Handler(r.gatherer))
		endpoints = append(endpoints, r.metricsPath)
	}

	logger.Info("Routes configured successfully", "endpoints", endpoints)

	return mux
}
