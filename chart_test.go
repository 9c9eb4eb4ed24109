package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestFigureConfigIsFixedAndNonInteractive(t *testing.T) {
	data, err := json.Marshal(figureConfig)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	body := string(data)

	for _, want := range []string{
		`"scrollZoom":false`,
		`"displaylogo":false`,
		`"zoom2d"`, `"pan2d"`, `"select2d"`, `"lasso2d"`,
		`"zoomIn2d"`, `"zoomOut2d"`, `"autoScale2d"`, `"resetScale2d"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("config missing %s: %s", want, body)
		}
	}
}

func TestBaseLayoutDisablesDrag(t *testing.T) {
	data, err := json.Marshal(baseLayout("dark"))
	if err != nil {
		t.Fatalf("marshal layout: %v", err)
	}
	if !strings.Contains(string(data), `"dragmode":false`) {
		t.Errorf("dragmode not serialized explicitly: %s", data)
	}
}

func TestBaseLayoutUsesThemePalette(t *testing.T) {
	dark := baseLayout("dark")
	if dark.Font.Color != darkTheme.Text || dark.PaperBgColor != darkTheme.Background {
		t.Errorf("dark layout = %+v", dark)
	}
	light := baseLayout("light")
	if light.Font.Color != lightTheme.Text {
		t.Errorf("light layout font = %+v", light.Font)
	}
}

func TestChartTitleMarkup(t *testing.T) {
	title := chartTitle("Main", "sub", darkTheme)
	if title.Text != "<b>Main</b><br><sup>sub</sup>" {
		t.Errorf("title text = %q", title.Text)
	}
	if title.Font.Color != darkTheme.Text {
		t.Errorf("title font = %+v", title.Font)
	}
}

func TestHoverTemplateSelection(t *testing.T) {
	tests := []struct {
		metric string
		kind   string
		want   string
	}{
		{"count", "pie", "%{value:,.0f} filings"},
		{"offering_amount", "pie", "%{customdata}"},
		{"count", "hbar", "%{x:,.0f} filings"},
		{"amount_sold", "hbar", "%{customdata}"},
		{"count", "vbar", "%{y:,.0f} filings"},
		{"offering_amount", "vbar", "%{customdata}"},
	}
	for _, tt := range tests {
		got := hoverTemplate(tt.metric, tt.kind)
		if !strings.Contains(got, tt.want) {
			t.Errorf("hoverTemplate(%q, %q) = %q, want it to contain %q", tt.metric, tt.kind, got, tt.want)
		}
		if !strings.Contains(got, "<extra></extra>") {
			t.Errorf("hoverTemplate(%q, %q) missing extra suppression", tt.metric, tt.kind)
		}
	}
}

func TestTraceTypeTags(t *testing.T) {
	tests := []struct {
		trace Trace
		want  string
	}{
		{PieTrace{}, "pie"},
		{BarTrace{}, "bar"},
		{ScatterTrace{}, "scatter"},
		{ChoroplethTrace{}, "choropleth"},
	}
	for _, tt := range tests {
		if got := tt.trace.traceType(); got != tt.want {
			t.Errorf("traceType = %q, want %q", got, tt.want)
		}
	}
}
