package main

// Typed subset of the Plotly figure schema. Traces are a closed union so a
// figure can only carry the four kinds the dashboard renders; field sets are
// fixed instead of nested maps.

// Figure is the chart-specification object returned to the dashboard host.
type Figure struct {
	Data   []Trace      `json:"data"`
	Layout Layout       `json:"layout"`
	Config FigureConfig `json:"config"`
}

// Trace is implemented by the four supported trace kinds.
type Trace interface {
	traceType() string
}

// Font styles a text element.
type Font struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

// Marker styles trace points or bars. Color holds either one color string or
// a per-bar color array; Colors is the pie-specific slice palette.
type Marker struct {
	Color  any      `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
	Size   int      `json:"size,omitempty"`
}

// Line styles a scatter trace's line.
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

// HoverLabel styles the hover box.
type HoverLabel struct {
	BgColor     string `json:"bgcolor,omitempty"`
	BorderColor string `json:"bordercolor,omitempty"`
	Font        *Font  `json:"font,omitempty"`
}

// PieTrace is a donut/pie slice set.
type PieTrace struct {
	Type          string    `json:"type"`
	Labels        []string  `json:"labels"`
	Values        []float64 `json:"values"`
	Hole          float64   `json:"hole,omitempty"`
	Marker        *Marker   `json:"marker,omitempty"`
	TextInfo      string    `json:"textinfo,omitempty"`
	TextPosition  string    `json:"textposition,omitempty"`
	TextFont      *Font     `json:"textfont,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	CustomData    []string  `json:"customdata,omitempty"`
}

func (PieTrace) traceType() string { return "pie" }

// BarTrace is a vertical or horizontal bar series. X and Y hold either
// category labels or numeric values depending on orientation.
type BarTrace struct {
	Type          string   `json:"type"`
	X             []any    `json:"x"`
	Y             []any    `json:"y"`
	Orientation   string   `json:"orientation,omitempty"`
	Marker        *Marker  `json:"marker,omitempty"`
	Text          []string `json:"text,omitempty"`
	TextPosition  string   `json:"textposition,omitempty"`
	TextFont      *Font    `json:"textfont,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
	CustomData    []string `json:"customdata,omitempty"`
}

func (BarTrace) traceType() string { return "bar" }

// ScatterTrace is a line+markers time series.
type ScatterTrace struct {
	Type          string      `json:"type"`
	X             []string    `json:"x"`
	Y             []float64   `json:"y"`
	Mode          string      `json:"mode,omitempty"`
	Name          string      `json:"name,omitempty"`
	Line          *Line       `json:"line,omitempty"`
	Marker        *Marker     `json:"marker,omitempty"`
	HoverTemplate string      `json:"hovertemplate,omitempty"`
	CustomData    []string    `json:"customdata,omitempty"`
	HoverLabel    *HoverLabel `json:"hoverlabel,omitempty"`
}

func (ScatterTrace) traceType() string { return "scatter" }

// ColorBar styles a choropleth's color legend.
type ColorBar struct {
	Title    *AxisTitle `json:"title,omitempty"`
	TickFont *Font      `json:"tickfont,omitempty"`
}

// ChoroplethTrace is a US-state heat map.
type ChoroplethTrace struct {
	Type          string    `json:"type"`
	Locations     []string  `json:"locations"`
	Z             []float64 `json:"z"`
	LocationMode  string    `json:"locationmode,omitempty"`
	ColorScale    string    `json:"colorscale,omitempty"`
	Text          []string  `json:"text,omitempty"`
	HoverTemplate string    `json:"hovertemplate,omitempty"`
	ColorBar      *ColorBar `json:"colorbar,omitempty"`
}

func (ChoroplethTrace) traceType() string { return "choropleth" }

// Title is a chart title with optional subtitle markup already applied.
type Title struct {
	Text string  `json:"text"`
	Font *Font   `json:"font,omitempty"`
	X    float64 `json:"x,omitempty"`
}

// AxisTitle is an axis or colorbar title.
type AxisTitle struct {
	Text string `json:"text,omitempty"`
	Font *Font  `json:"font,omitempty"`
}

// Axis configures one layout axis.
type Axis struct {
	Title     *AxisTitle `json:"title,omitempty"`
	Range     []float64  `json:"range,omitempty"`
	TickFont  *Font      `json:"tickfont,omitempty"`
	GridColor string     `json:"gridcolor,omitempty"`
}

// Legend configures the layout legend.
type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	YAnchor     string  `json:"yanchor,omitempty"`
	Y           float64 `json:"y,omitempty"`
	Font        *Font   `json:"font,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Geo configures the choropleth map area.
type Geo struct {
	Scope          string     `json:"scope,omitempty"`
	Projection     Projection `json:"projection"`
	ShowLakes      bool       `json:"showlakes"`
	LakeColor      string     `json:"lakecolor,omitempty"`
	BgColor        string     `json:"bgcolor,omitempty"`
	LandColor      string     `json:"landcolor,omitempty"`
	CoastlineColor string     `json:"coastlinecolor,omitempty"`
	ShowLand       bool       `json:"showland"`
	ShowCoastlines bool       `json:"showcoastlines"`
	ShowOcean      bool       `json:"showocean"`
	OceanColor     string     `json:"oceancolor,omitempty"`
}

// Projection is the map projection for a Geo layout.
type Projection struct {
	Type string `json:"type"`
}

// Layout is the figure layout. DragMode has no omitempty: every chart ships
// an explicit "dragmode": false.
type Layout struct {
	Title        *Title     `json:"title,omitempty"`
	Height       int        `json:"height,omitempty"`
	ShowLegend   *bool      `json:"showlegend,omitempty"`
	Legend       *Legend    `json:"legend,omitempty"`
	Margin       *Margin    `json:"margin,omitempty"`
	XAxis        *Axis      `json:"xaxis,omitempty"`
	YAxis        *Axis      `json:"yaxis,omitempty"`
	Geo          *Geo       `json:"geo,omitempty"`
	HoverMode    string     `json:"hovermode,omitempty"`
	PaperBgColor string     `json:"paper_bgcolor,omitempty"`
	PlotBgColor  string     `json:"plot_bgcolor,omitempty"`
	Font         *Font      `json:"font,omitempty"`
	HoverLabel   *HoverLabel `json:"hoverlabel,omitempty"`
	DragMode     bool       `json:"dragmode"`
}

// FigureConfig is the fixed interaction config attached to every chart:
// charts are presentational, so zoom/pan/select are disabled and their
// toolbar buttons removed.
type FigureConfig struct {
	ScrollZoom             bool     `json:"scrollZoom"`
	DisplayLogo            bool     `json:"displaylogo"`
	Responsive             bool     `json:"responsive"`
	ModeBarButtonsToRemove []string `json:"modeBarButtonsToRemove"`
}

var figureConfig = FigureConfig{
	ScrollZoom:  false,
	DisplayLogo: false,
	Responsive:  true,
	ModeBarButtonsToRemove: []string{
		"zoom2d", "pan2d", "select2d", "lasso2d",
		"zoomIn2d", "zoomOut2d", "autoScale2d", "resetScale2d",
	},
}

// baseLayout is the shared starting layout for every chart: transparent
// backgrounds, theme font color, interactions off.
func baseLayout(theme string) Layout {
	colors := resolveTheme(theme)
	return Layout{
		PaperBgColor: colors.Background,
		PlotBgColor:  colors.Background,
		Font:         &Font{Color: colors.Text},
		Margin:       &Margin{L: 50, R: 50, T: 80, B: 50},
		DragMode:     false,
	}
}

// chartTitle renders the title/subtitle pair with the theme's text color.
func chartTitle(title, subtitle string, colors ThemeColors) *Title {
	return &Title{
		Text: "<b>" + title + "</b><br><sup>" + subtitle + "</sup>",
		Font: &Font{Color: colors.Text, Size: 16},
		X:    0.5,
	}
}

// hoverTemplate picks the metric-appropriate template for a trace kind.
// Chosen once per figure and reused across traces so hover formatting stays
// consistent. Kinds: "pie", "hbar" (categories on y), "vbar" (categories on
// x).
func hoverTemplate(metric, kind string) string {
	amount := isAmountMetric(metric)
	switch kind {
	case "pie":
		if amount {
			return "<b>%{label}</b><br>%{customdata}<br>%{percent}<extra></extra>"
		}
		return "<b>%{label}</b><br>%{value:,.0f} filings<br>%{percent}<extra></extra>"
	case "vbar":
		if amount {
			return "<b>%{x}</b><br>%{customdata}<extra></extra>"
		}
		return "<b>%{x}</b><br>%{y:,.0f} filings<extra></extra>"
	default: // hbar
		if amount {
			return "<b>%{y}</b><br>%{customdata}<extra></extra>"
		}
		return "<b>%{y}</b><br>%{x:,.0f} filings<extra></extra>"
	}
}

func boolPtr(b bool) *bool { return &b }
