// Package render draws shot charts as SVG.
package render

import (
	"fmt"
	"io"

	"shotboard/internal/shared/config"
	"shotboard/internal/shots"

	svg "github.com/ajstarks/svgo"
)

// Court bounds in drawing units: tenths of a foot with the hoop at the origin.
const (
	courtMinX = -250.0
	courtMaxX = 250.0
	courtMinY = -50.0
	courtMaxY = 420.0
)

const (
	width  = 500
	height = 520
	top    = 40
)

// Court converts warehouse shot locations into drawing units.
type Court struct {
	Scale float64 // drawing units per warehouse unit
	HoopY float64 // hoop position on the y axis, in warehouse units
}

var (
	// CourtFeet reads locations in feet from the baseline, hoop 5.25 ft out.
	CourtFeet = Court{Scale: 10, HoopY: 5.25}
	// CourtTenths reads locations already in tenths of a foot from the hoop.
	CourtTenths = Court{Scale: 1, HoopY: 0}
)

// CourtFor returns the court for a DASHBOARD_COURT_UNITS value, feet when unknown.
func CourtFor(units string) Court {
	if units == config.CourtUnitsTenths {
		return CourtTenths
	}
	return CourtFeet
}

func (c Court) place(x, y float64) (int, int) {
	return courtX(x * c.Scale), courtY((y - c.HoopY) * c.Scale)
}

// vmap maps one range into another
func vmap(value, low1, high1, low2, high2 float64) float64 {
	return low2 + (high2-low2)*(value-low1)/(high1-low1)
}

func courtX(x float64) int {
	return int(vmap(x, courtMinX, courtMaxX, 0, width))
}

func courtY(y float64) int {
	return int(vmap(y, courtMinY, courtMaxY, top, height))
}

// Heatmap writes a half-court chart with one circle per location cell.
// Radius and opacity grow with the cell's shot count.
func Heatmap(w io.Writer, court Court, title, color string, cells []shots.HeatCell) {
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white;stroke:black;stroke-width:2")
	drawCourt(canvas)

	canvas.Gstyle("font-family:Calibri,sans-serif;font-size:18px")
	canvas.Text(width/2, 26, title, "text-anchor:middle;fill:gray")

	if len(cells) == 0 {
		canvas.Text(width/2, height/2, "No data available", "text-anchor:middle;fill:gray")
		canvas.Gend()
		canvas.End()
		return
	}

	var maxCount, total int64
	for _, c := range cells {
		total += c.Count
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}

	for _, c := range cells {
		r, opacity := 4.0, 0.6
		if maxCount > 1 {
			r = vmap(float64(c.Count), 1, float64(maxCount), 4, 14)
			opacity = vmap(float64(c.Count), 1, float64(maxCount), 0.3, 0.9)
		}
		cx, cy := court.place(c.X, c.Y)
		canvas.Circle(cx, cy, int(r),
			fmt.Sprintf("fill:%s;fill-opacity:%.2f", color, opacity))
	}

	canvas.Text(10, height-10, fmt.Sprintf("%d made shots", total), "fill:gray")
	canvas.Gend()
	canvas.End()
}

func drawCourt(canvas *svg.SVG) {
	line := "fill:none;stroke:#bbbbbb;stroke-width:2"

	// baseline and sidelines
	canvas.Rect(courtX(-250), courtY(-47.5), courtX(250)-courtX(-250), courtY(422.5)-courtY(-47.5), line)
	// paint
	canvas.Rect(courtX(-80), courtY(-47.5), courtX(80)-courtX(-80), courtY(142.5)-courtY(-47.5), line)
	canvas.Circle(courtX(0), courtY(142.5), courtX(60)-courtX(0), line)
	// hoop and backboard
	canvas.Circle(courtX(0), courtY(0), courtX(7.5)-courtX(0), line)
	canvas.Line(courtX(-30), courtY(-7.5), courtX(30), courtY(-7.5), line)
	// corner threes and the arc
	canvas.Line(courtX(-220), courtY(-47.5), courtX(-220), courtY(92.5), line)
	canvas.Line(courtX(220), courtY(-47.5), courtX(220), courtY(92.5), line)
	radius := courtX(237.5) - courtX(0)
	canvas.Arc(courtX(-220), courtY(92.5), radius, radius, 0, false, false, courtX(220), courtY(92.5), line)
}
