// Package views turns aggregation results into renderer-neutral display
// specs. Nothing here queries or remembers anything.
package views

type Kind string

const (
	KindBar      Kind = "bar"
	KindPie      Kind = "pie"
	KindHeatmap  Kind = "heatmap"
	KindScatter  Kind = "scatter"
	KindLine     Kind = "line"
	KindMapPoint Kind = "map_point"
)

const (
	NoDataMessage     = "No data available"
	NoPlayerMessage   = "No player selected"
	NoStadiumMessage  = "No stadium information found"
	DefaultTemplate   = "plotly_white"
	DefaultBubbleSize = 30
)

// Display is implemented by every spec through its embedded Header.
type Display interface {
	DisplayKind() Kind
	IsEmpty() bool
}

// Row is one data point; keys are the field names a chart binds.
type Row map[string]any

type Header struct {
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	Empty  bool   `json:"empty"`
	Notice string `json:"notice,omitempty"`
	Error  string `json:"error,omitempty"`
}

func (h Header) DisplayKind() Kind { return h.Kind }

func (h Header) IsEmpty() bool { return h.Empty }

type Axes struct {
	XTitle string `json:"x_title"`
	YTitle string `json:"y_title"`
}

type BarChartSpec struct {
	Header
	Axes
	Rows     []Row    `json:"rows"`
	X        string   `json:"x"`
	Y        string   `json:"y"`
	Colors   []string `json:"colors"`
	Template string   `json:"template"`
}

type PieChartSpec struct {
	Header
	Rows     []Row    `json:"rows"`
	Values   string   `json:"values"`
	Names    string   `json:"names"`
	Colors   []string `json:"colors"`
	Template string   `json:"template"`
}

// ImageOverlay places a picture (the court) under the plotted data.
type ImageOverlay struct {
	Source  string  `json:"source"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	XRef    string  `json:"xref"`
	YRef    string  `json:"yref"`
	SizeX   float64 `json:"sizex"`
	SizeY   float64 `json:"sizey"`
	XAnchor string  `json:"xanchor"`
	YAnchor string  `json:"yanchor"`
	Opacity float64 `json:"opacity"`
	Layer   string  `json:"layer"`
}

type HeatmapSpec struct {
	Header
	Axes
	Rows       []Row         `json:"rows"`
	X          string        `json:"x"`
	Y          string        `json:"y"`
	Z          string        `json:"z"`
	Template   string        `json:"template"`
	Background *ImageOverlay `json:"background,omitempty"`
}

type ScatterSpec struct {
	Header
	Axes
	Rows      []Row             `json:"rows"`
	X         string            `json:"x"`
	Y         string            `json:"y"`
	Color     string            `json:"color"`
	Size      string            `json:"size,omitempty"`
	HoverName string            `json:"hover_name,omitempty"`
	SizeMax   int               `json:"size_max,omitempty"`
	ColorMap  map[string]string `json:"color_map"`
	Template  string            `json:"template"`
}

type LineSpec struct {
	Header
	Axes
	Rows     []Row  `json:"rows"`
	X        string `json:"x"`
	Y        string `json:"y"`
	Markers  bool   `json:"markers"`
	Template string `json:"template"`
}

type MapPointSpec struct {
	Header
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}
