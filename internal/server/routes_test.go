package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"shotboard/internal/dashboard"
	"shotboard/internal/reference"
	"shotboard/internal/render"
	"shotboard/internal/shared/database"
	"shotboard/internal/shared/metrics"
	"shotboard/internal/shots"
	"shotboard/internal/testutil"
	"shotboard/internal/views"

	"github.com/prometheus/client_golang/prometheus"
)

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("connection refused") }

type sessionBody struct {
	ID      string             `json:"id"`
	Options *dashboard.Options `json:"options"`
	State   dashboard.State    `json:"state"`
	Views   map[string]struct {
		Kind   views.Kind `json:"kind"`
		Empty  bool       `json:"empty"`
		Notice string     `json:"notice"`
	} `json:"views"`
	Players []reference.Player `json:"players"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := testutil.DiscardLogger()
	fixture := testutil.Sample(t)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	store := database.NewStore(fixture.DB, database.SQLite, m, logger)

	ref := reference.NewService(reference.NewRepository(store, logger), "", logger)
	dates := shots.DateRange{
		From: time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2023, 8, 31, 0, 0, 0, 0, time.UTC),
	}
	service := dashboard.NewService(ref, shots.NewCatalog(store, logger), views.NewMapper("", ""), dates, m, logger)
	sessions := dashboard.NewStore(service, time.Hour, 10, m, logger)

	mux := NewRoutes(fixture.DB, sessions, service, reg, "/metrics", render.CourtFeet).Setup()
	srv := httptest.NewServer(m.Middleware(mux))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, data
}

func decode(t *testing.T, data []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode %s: %v", data, err)
	}
}

func createSession(t *testing.T, srv *httptest.Server) sessionBody {
	t.Helper()
	resp, data := do(t, http.MethodPost, srv.URL+"/api/sessions", "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, data)
	}
	var body sessionBody
	decode(t, data, &body)
	return body
}

func TestCreateSessionReturnsDefaultsAndAllViews(t *testing.T) {
	srv := newTestServer(t)

	body := createSession(t, srv)

	if body.ID == "" || body.State.TeamID != testutil.HawksID {
		t.Fatalf("unexpected session %+v", body.State)
	}
	if len(body.Views) != len(dashboard.AllViews) {
		t.Fatalf("expected every view, got %d", len(body.Views))
	}
	if body.Views["shots_by_type"].Kind != views.KindBar {
		t.Fatalf("unexpected bar view %+v", body.Views["shots_by_type"])
	}
	if body.Options == nil || len(body.Options.Teams) != 3 || len(body.Options.Stadiums) != 2 {
		t.Fatalf("unexpected options %+v", body.Options)
	}
}

func TestSelectionEventsOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv).ID
	base := srv.URL + "/api/sessions/" + id

	resp, data := do(t, http.MethodPost, base+"/team", `{"name":"Gotham Rogues"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select team: %d %s", resp.StatusCode, data)
	}
	var body sessionBody
	decode(t, data, &body)
	if body.State.TeamID != testutil.RoguesID || body.State.PlayerID != 0 {
		t.Fatalf("unexpected state %+v", body.State)
	}
	if body.Players == nil || len(body.Players) != 0 {
		t.Fatalf("expected an empty player list, got %v", body.Players)
	}
	if v := body.Views["player_shots"]; !v.Empty || v.Notice != views.NoPlayerMessage {
		t.Fatalf("unexpected player view %+v", v)
	}

	resp, data = do(t, http.MethodPost, base+"/comparison/2", `{"name":"Atlanta Hawks"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select comparison: %d %s", resp.StatusCode, data)
	}
	body = sessionBody{}
	decode(t, data, &body)
	if len(body.Views) != 1 || body.Views["comparison"].Kind != views.KindScatter {
		t.Fatalf("expected only the comparison view, got %v", body.Views)
	}

	resp, data = do(t, http.MethodPost, base+"/stadium", `{"name":"TD Garden"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select stadium: %d %s", resp.StatusCode, data)
	}
	body = sessionBody{}
	decode(t, data, &body)
	if body.State.StadiumName != "TD Garden" {
		t.Fatalf("unexpected stadium %q", body.State.StadiumName)
	}
}

func TestRejectedSelectionKeepsState(t *testing.T) {
	srv := newTestServer(t)
	created := createSession(t, srv)
	base := srv.URL + "/api/sessions/" + created.ID

	resp, data := do(t, http.MethodPost, base+"/player", `{"name":"Jayson Tatum"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.StatusCode, data)
	}
	if !bytes.Contains(data, []byte(`"error":"lookup"`)) {
		t.Fatalf("expected lookup error body, got %s", data)
	}

	resp, data = do(t, http.MethodGet, base, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get session: %d %s", resp.StatusCode, data)
	}
	var body sessionBody
	decode(t, data, &body)
	if body.State != created.State {
		t.Fatalf("state changed: %+v -> %+v", created.State, body.State)
	}
}

func TestSelectionRequestValidation(t *testing.T) {
	srv := newTestServer(t)
	base := srv.URL + "/api/sessions/" + createSession(t, srv).ID

	cases := []struct {
		name   string
		method string
		url    string
		body   string
		status int
	}{
		{"malformed json", http.MethodPost, base + "/team", `{"name":`, http.StatusBadRequest},
		{"missing name", http.MethodPost, base + "/team", `{}`, http.StatusBadRequest},
		{"bad slot", http.MethodPost, base + "/comparison/x", `{"name":"Atlanta Hawks"}`, http.StatusBadRequest},
		{"slot out of range", http.MethodPost, base + "/comparison/3", `{"name":"Atlanta Hawks"}`, http.StatusBadRequest},
		{"wrong method with bad slot", http.MethodGet, base + "/comparison/x", "", http.StatusMethodNotAllowed},
		{"wrong method with slot", http.MethodPut, base + "/comparison/1", `{"name":"Atlanta Hawks"}`, http.StatusMethodNotAllowed},
		{"wrong method", http.MethodGet, base + "/team", "", http.StatusMethodNotAllowed},
		{"malformed session id", http.MethodGet, srv.URL + "/api/sessions/abc", "", http.StatusBadRequest},
		{"unknown session", http.MethodGet, srv.URL + "/api/sessions/0b8a3f5e-7c55-4a39-9a0e-3c1b2d4e5f60", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, data := do(t, tc.method, tc.url, tc.body)
			if resp.StatusCode != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, resp.StatusCode, data)
			}
		})
	}
}

func TestDeleteSession(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/api/sessions/" + createSession(t, srv).ID

	if resp, _ := do(t, http.MethodDelete, url, ""); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if resp, _ := do(t, http.MethodGet, url, ""); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.StatusCode)
	}
}

func TestHeatmapSVG(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL + "/api/sessions/" + createSession(t, srv).ID + "/heatmap.svg"

	resp, data := do(t, http.MethodGet, url, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !bytes.Contains(data, []byte("Atlanta Hawks")) || !bytes.Contains(data, []byte("</svg>")) {
		t.Fatalf("unexpected svg %s", data)
	}
}

func TestReferenceEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, data := do(t, http.MethodGet, srv.URL+"/api/teams", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("teams: %d", resp.StatusCode)
	}
	var teams []reference.Team
	decode(t, data, &teams)
	if len(teams) != 3 || teams[0].Name != "Atlanta Hawks" || teams[0].Color == "" {
		t.Fatalf("unexpected teams %v", teams)
	}

	resp, data = do(t, http.MethodGet, srv.URL+"/api/teams/1610619999/players", "")
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty player list, got %d %s", resp.StatusCode, data)
	}

	if resp, _ := do(t, http.MethodGet, srv.URL+"/api/teams/abc/players", ""); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad team id, got %d", resp.StatusCode)
	}

	resp, data = do(t, http.MethodGet, srv.URL+"/api/stadiums", "")
	var stadiums []reference.Stadium
	decode(t, data, &stadiums)
	if resp.StatusCode != http.StatusOK || len(stadiums) != 2 {
		t.Fatalf("unexpected stadiums %d %v", resp.StatusCode, stadiums)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	resp, data := do(t, http.MethodGet, srv.URL+"/api/server/health", "")
	if resp.StatusCode != http.StatusOK || !bytes.Contains(data, []byte(`"database":"connected"`)) {
		t.Fatalf("unexpected health %d %s", resp.StatusCode, data)
	}

	createSession(t, srv)
	resp, data = do(t, http.MethodGet, srv.URL+"/metrics", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics: %d", resp.StatusCode)
	}
	for _, name := range []string{"shotboard_sessions_active 1", "shotboard_http_requests_total", "shotboard_query_duration_seconds"} {
		if !bytes.Contains(data, []byte(name)) {
			t.Fatalf("expected %s in scrape output", name)
		}
	}
}

func TestHealthReportsDatabaseDown(t *testing.T) {
	logger := testutil.DiscardLogger()
	store := testutil.NewFixture(t).Store()
	ref := reference.NewService(reference.NewRepository(store, logger), "", logger)
	service := dashboard.NewService(ref, shots.NewCatalog(store, logger), views.NewMapper("", ""), shots.DateRange{}, nil, logger)

	mux := NewRoutes(failingPinger{}, dashboard.NewStore(service, 0, 1, nil, logger), service, nil, "", render.CourtFeet).Setup()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/server/health", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"database":"disconnected"`) {
		t.Fatalf("unexpected health %d %s", rec.Code, rec.Body.String())
	}
}
