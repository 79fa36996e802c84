package shots

import (
	"fmt"
	"time"
)

// Shot type values as recorded in the NBA shot detail feed.
const (
	TwoPoint   = "2PT Field Goal"
	ThreePoint = "3PT Field Goal"
)

type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

type HeatCell struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Count int64   `json:"count"`
}

type TeamTypeCount struct {
	TeamID int64  `json:"team"`
	Type   string `json:"type"`
	Count  int64  `json:"count"`
}

type ZoneOutcome struct {
	Zone  string `json:"zone"`
	Made  bool   `json:"made"`
	Count int64  `json:"count"`
}

type QuarterDistance struct {
	Year        int     `json:"year"`
	Quarter     int     `json:"quarter"`
	AvgDistance float64 `json:"avg_distance"`
}

// Label renders the period the way the trend chart's x axis shows it.
func (q QuarterDistance) Label() string {
	return fmt.Sprintf("%d-Q%d", q.Year, q.Quarter)
}

// DateRange is a closed range of calendar days.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
