package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"shotboard/internal/shots"
)

func TestVmap(t *testing.T) {
	if got := vmap(0, -250, 250, 0, 500); got != 250 {
		t.Fatalf("expected center of court at 250, got %v", got)
	}
	if got := vmap(420, -50, 420, 40, 520); got != 520 {
		t.Fatalf("expected far edge at 520, got %v", got)
	}
}

func TestHeatmapDrawsOneCirclePerCell(t *testing.T) {
	var buf bytes.Buffer
	Heatmap(&buf, CourtTenths, "Atlanta Hawks", "#E03A3E", []shots.HeatCell{
		{X: 0, Y: 5, Count: 4},
		{X: 10, Y: 120, Count: 3},
		{X: -100, Y: 240, Count: 1},
	})

	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") {
		t.Fatalf("expected an SVG document, got %q", out[:40])
	}
	if got := strings.Count(out, "fill:#E03A3E"); got != 3 {
		t.Fatalf("expected 3 shot circles, got %d", got)
	}
	if !strings.Contains(out, "Atlanta Hawks") || !strings.Contains(out, "8 made shots") {
		t.Fatalf("expected title and total in output")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Fatalf("document not closed")
	}
}

func TestHeatmapEmpty(t *testing.T) {
	var buf bytes.Buffer
	Heatmap(&buf, CourtFeet, "Gotham Rogues", "#636EFA", nil)

	out := buf.String()
	if !strings.Contains(out, "No data available") {
		t.Fatalf("expected no-data text")
	}
	if strings.Contains(out, "fill:#636EFA") {
		t.Fatalf("expected no shot circles")
	}
}

func TestCourtFeetMatchesTenths(t *testing.T) {
	cases := []struct {
		feetX, feetY     float64
		tenthsX, tenthsY float64
	}{
		{0, 5.25, 0, 0},
		{-22, 5.25, -220, 0},
		{10, 25.25, 100, 200},
	}

	for _, tc := range cases {
		fx, fy := CourtFeet.place(tc.feetX, tc.feetY)
		tx, ty := CourtTenths.place(tc.tenthsX, tc.tenthsY)
		if fx != tx || fy != ty {
			t.Fatalf("feet (%v, %v) drawn at (%d, %d), tenths (%v, %v) at (%d, %d)",
				tc.feetX, tc.feetY, fx, fy, tc.tenthsX, tc.tenthsY, tx, ty)
		}
	}
}

func TestHeatmapPlacesFeetInsideCourt(t *testing.T) {
	var buf bytes.Buffer
	Heatmap(&buf, CourtFeet, "Atlanta Hawks", "#E03A3E", []shots.HeatCell{
		{X: 0, Y: 5.25, Count: 1},
	})

	hoop := fmt.Sprintf(`cx="%d" cy="%d"`, courtX(0), courtY(0))
	if got := strings.Count(buf.String(), hoop); got < 2 {
		t.Fatalf("expected a shot circle on the hoop at %s, got %d matches", hoop, got)
	}
}

func TestCourtFor(t *testing.T) {
	if CourtFor("tenths") != CourtTenths {
		t.Fatalf("expected tenths court")
	}
	if CourtFor("feet") != CourtFeet || CourtFor("") != CourtFeet {
		t.Fatalf("expected feet court by default")
	}
}
