package views

import (
	"fmt"
	"strconv"

	"shotboard/internal/reference"
	"shotboard/internal/shots"
)

const secondSlotColor = "#EF553B"

var pieColors = []string{"#FF9999", "#66B3FF"}

var outcomeColors = map[string]string{
	"made":   "green",
	"missed": "red",
}

// Mapper carries only presentation settings; every method is a pure
// function of its arguments.
type Mapper struct {
	fallbackColor string
	courtImageURL string
}

func NewMapper(fallbackColor, courtImageURL string) *Mapper {
	if fallbackColor == "" {
		fallbackColor = reference.DefaultColor
	}
	return &Mapper{
		fallbackColor: fallbackColor,
		courtImageURL: courtImageURL,
	}
}

// header marks a display empty when there are no rows, carrying the query
// error description when one caused it.
func header(kind Kind, title string, rows int, err error) Header {
	h := Header{Kind: kind, Title: title}
	if rows == 0 {
		h.Empty = true
		h.Notice = NoDataMessage
	}
	if err != nil {
		h.Error = err.Error()
	}
	return h
}

func (m *Mapper) ShotsByType(team reference.Team, rows []shots.TypeCount, err error) BarChartSpec {
	data := make([]Row, 0, len(rows))
	for _, r := range rows {
		data = append(data, Row{"type": r.Type, "count": r.Count})
	}

	return BarChartSpec{
		Header:   header(KindBar, fmt.Sprintf("2PT and 3PT Made Shots: %s", team.Name), len(data), err),
		Axes:     Axes{XTitle: "Shot Type", YTitle: "Shot Count"},
		Rows:     data,
		X:        "type",
		Y:        "count",
		Colors:   []string{reference.TeamColor(team.Name, m.fallbackColor)},
		Template: DefaultTemplate,
	}
}

// PlayerShots renders the pie for a player. A nil player means the team
// has no shooters to pick from, or, with err set, that loading them failed.
func (m *Mapper) PlayerShots(player *reference.Player, rows []shots.TypeCount, err error) PieChartSpec {
	if player == nil {
		h := Header{Kind: KindPie, Title: "2PT and 3PT Shot Distribution", Empty: true, Notice: NoPlayerMessage}
		if err != nil {
			h.Notice = NoDataMessage
			h.Error = err.Error()
		}
		return PieChartSpec{
			Header:   h,
			Rows:     []Row{},
			Values:   "count",
			Names:    "type",
			Colors:   pieColors,
			Template: DefaultTemplate,
		}
	}

	data := make([]Row, 0, len(rows))
	for _, r := range rows {
		data = append(data, Row{"type": r.Type, "count": r.Count})
	}

	return PieChartSpec{
		Header:   header(KindPie, fmt.Sprintf("2PT and 3PT Shot Distribution: %s", player.Name), len(data), err),
		Rows:     data,
		Values:   "count",
		Names:    "type",
		Colors:   pieColors,
		Template: DefaultTemplate,
	}
}

func (m *Mapper) Heatmap(team reference.Team, rows []shots.HeatCell, err error) HeatmapSpec {
	data := make([]Row, 0, len(rows))
	for _, r := range rows {
		data = append(data, Row{"x": r.X, "y": r.Y, "count": r.Count})
	}

	spec := HeatmapSpec{
		Header:   header(KindHeatmap, fmt.Sprintf("Shot Zone Heatmap: %s", team.Name), len(data), err),
		Axes:     Axes{XTitle: "Location X", YTitle: "Location Y"},
		Rows:     data,
		X:        "x",
		Y:        "y",
		Z:        "count",
		Template: DefaultTemplate,
	}

	if m.courtImageURL != "" {
		spec.Background = &ImageOverlay{
			Source:  m.courtImageURL,
			X:       0,
			Y:       0,
			XRef:    "x",
			YRef:    "y",
			SizeX:   100,
			SizeY:   50,
			XAnchor: "center",
			YAnchor: "middle",
			Opacity: 0.5,
			Layer:   "below",
		}
	}

	return spec
}

// Comparison keys series by team id. Colors come from the palette by name,
// then the slot default; when both slots hold one team, slot one wins.
func (m *Mapper) Comparison(first, second reference.Team, rows []shots.TeamTypeCount, err error) ScatterSpec {
	names := map[int64]string{second.ID: second.Name, first.ID: first.Name}
	colors := map[string]string{
		seriesKey(second.ID): reference.TeamColor(second.Name, secondSlotColor),
	}
	colors[seriesKey(first.ID)] = reference.TeamColor(first.Name, m.fallbackColor)

	data := make([]Row, 0, len(rows))
	for _, r := range rows {
		data = append(data, Row{
			"team":      seriesKey(r.TeamID),
			"team_name": names[r.TeamID],
			"type":      r.Type,
			"count":     r.Count,
		})
	}

	return ScatterSpec{
		Header:    header(KindScatter, fmt.Sprintf("Shot Comparison: %s vs %s", first.Name, second.Name), len(data), err),
		Axes:      Axes{XTitle: "Shot Type", YTitle: "Shot Count"},
		Rows:      data,
		X:         "type",
		Y:         "count",
		Color:     "team",
		Size:      "count",
		HoverName: "team_name",
		SizeMax:   DefaultBubbleSize,
		ColorMap:  colors,
		Template:  DefaultTemplate,
	}
}

func (m *Mapper) ZoneOutcome(team reference.Team, rows []shots.ZoneOutcome, err error) ScatterSpec {
	data := make([]Row, 0, len(rows))
	for _, r := range rows {
		outcome := "missed"
		if r.Made {
			outcome = "made"
		}
		data = append(data, Row{"zone": r.Zone, "made": r.Made, "outcome": outcome, "count": r.Count})
	}

	return ScatterSpec{
		Header:   header(KindScatter, fmt.Sprintf("Shots by Zone and Outcome: %s", team.Name), len(data), err),
		Axes:     Axes{XTitle: "Shot Zone", YTitle: "Shot Count"},
		Rows:     data,
		X:        "zone",
		Y:        "count",
		Color:    "outcome",
		ColorMap: outcomeColors,
		Template: DefaultTemplate,
	}
}

func (m *Mapper) DistanceTrend(team reference.Team, rows []shots.QuarterDistance, err error) LineSpec {
	data := make([]Row, 0, len(rows))
	for _, r := range rows {
		data = append(data, Row{
			"period":       r.Label(),
			"year":         r.Year,
			"quarter":      r.Quarter,
			"avg_distance": r.AvgDistance,
		})
	}

	return LineSpec{
		Header:   header(KindLine, fmt.Sprintf("Average Shot Distance per Quarter: %s", team.Name), len(data), err),
		Axes:     Axes{XTitle: "Year-Quarter", YTitle: "Average Shot Distance (ft)"},
		Rows:     data,
		X:        "period",
		Y:        "avg_distance",
		Markers:  true,
		Template: DefaultTemplate,
	}
}

// StadiumPoint maps a stadium to a single map marker; nil yields the empty spec.
func (m *Mapper) StadiumPoint(stadium *reference.Stadium, err error) MapPointSpec {
	if stadium == nil {
		h := Header{Kind: KindMapPoint, Title: "Stadium", Empty: true, Notice: NoStadiumMessage}
		if err != nil {
			h.Error = err.Error()
		}
		return MapPointSpec{Header: h}
	}

	return MapPointSpec{
		Header:    Header{Kind: KindMapPoint, Title: fmt.Sprintf("Stadium: %s", stadium.Name)},
		Name:      stadium.Name,
		Latitude:  stadium.Latitude,
		Longitude: stadium.Longitude,
	}
}

func seriesKey(teamID int64) string {
	return strconv.FormatInt(teamID, 10)
}
