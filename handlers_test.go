package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeBackend serves canned Form D responses. The fixture clock is
// 2024-06-15, so "2024-06" is the in-progress month.
func fakeBackend() *httptest.Server {
	mux := http.NewServeMux()
	writeJSON := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}

	mux.HandleFunc("/api/charts/security-type-distribution", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"distribution": [
				{"name": "Equity", "value": 100},
				{"name": "Debt", "value": 50},
				{"name": "Fund", "value": 30},
				{"name": "Pooled Investment", "value": 20},
				{"name": "Other", "value": 10}
			],
			"available_years": ["2008", "2023", "2024"]
		}`)
	})

	mux.HandleFunc("/api/charts/industry-distribution", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"distribution": [
				{"name": "Technology", "value": 90},
				{"name": "Healthcare", "value": 80},
				{"name": "Real Estate", "value": 70}
			]
		}`)
	})

	mux.HandleFunc("/api/charts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"time_series": [
				{"date": "2008-12", "equity_filings": 99, "debt_filings": 99, "fund_filings": 99},
				{"date": "2024-01", "equity_filings": 10, "debt_filings": 5, "fund_filings": 2},
				{"date": "2024-05", "equity_filings": 20, "debt_filings": 8, "fund_filings": 3},
				{"date": "2024-06", "equity_filings": 7, "debt_filings": 1, "fund_filings": 1}
			]
		}`)
	})

	mux.HandleFunc("/api/charts/industry-timeseries", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"timeseries": [
				{"date": "2024-01", "filings": 4, "total_amount": 1000000},
				{"date": "2024-05", "filings": 6, "total_amount": 2500000}
			]
		}`)
	})

	mux.HandleFunc("/api/charts/top-fundraisers", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"top_fundraisers": [
				{"company_name": "X", "amount": 5, "security_type": "Equity"},
				{"company_name": "X", "amount": 9, "security_type": "Debt"},
				{"company_name": "Y", "amount": 3, "security_type": "Fund"}
			]
		}`)
	})

	mux.HandleFunc("/api/charts/location-distribution", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"distribution": [
				{"name": "CA", "value": 500},
				{"name": "NY", "value": 300},
				{"name": "TX", "value": 200}
			]
		}`)
	})

	mux.HandleFunc("/api/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"total_filings": 523000,
			"total_companies": 180000,
			"total_offering_amount": 2300000000,
			"total_amount_sold": 1500000000
		}`)
	})

	mux.HandleFunc("/api/filings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{
			"filings": [
				{"company_name": "Acme", "amount": 1000000},
				{"company_name": "Globex", "amount": 2000000}
			],
			"pagination": {"total_items": 2, "total_pages": 1, "has_next": false, "has_prev": false}
		}`)
	})

	return httptest.NewServer(mux)
}

// deadServer returns a base URL nothing listens on.
func deadServer() string {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	return srv.URL
}

func newTestApp(backendURL, marketURL string) *app {
	logger := discardLogger()
	a := newApp(
		&backendClient{baseURL: backendURL, http: &http.Client{Timeout: 5 * time.Second}, log: logger},
		&marketClient{baseURL: marketURL, http: &http.Client{Timeout: 5 * time.Second}, log: logger},
		nil,
		logger,
	)
	a.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return a
}

func doRequest(t *testing.T, a *app, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	setupRouter(a).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: status %d", path, w.Code)
	}
	return w
}

func decodeMap(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not a JSON object: %v\n%s", err, w.Body.String())
	}
	return body
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []any {
	t.Helper()
	var body []any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not a JSON array: %v\n%s", err, w.Body.String())
	}
	return body
}

func TestHealthCheck(t *testing.T) {
	a := newTestApp("http://localhost:9", "http://localhost:9")
	body := decodeMap(t, doRequest(t, a, "/health"))
	if body["status"] != "healthy" {
		t.Errorf("health = %v", body)
	}
}

func TestSecurityTypesChart(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	body := decodeMap(t, doRequest(t, a, "/security_types?year=2023&metric=count"))

	traces, _ := body["data"].([]any)
	if len(traces) != 1 {
		t.Fatalf("expected 1 trace, got %d", len(traces))
	}
	trace := traces[0].(map[string]any)
	if trace["type"] != "pie" {
		t.Errorf("trace type = %v", trace["type"])
	}
	labels, _ := trace["labels"].([]any)
	if len(labels) != 5 || labels[4] != "All Others" {
		t.Errorf("labels = %v", labels)
	}
	values, _ := trace["values"].([]any)
	if len(values) != 5 || values[4].(float64) != 10 {
		t.Errorf("values = %v", values)
	}

	layout := body["layout"].(map[string]any)
	if layout["dragmode"] != false {
		t.Error("dragmode not disabled")
	}
	title := layout["title"].(map[string]any)["text"].(string)
	if title != "<b>Security Type Distribution</b><br><sup>Total: 210 (Year: 2023, by Count)</sup>" {
		t.Errorf("title = %q", title)
	}

	config := body["config"].(map[string]any)
	buttons, _ := config["modeBarButtonsToRemove"].([]any)
	if len(buttons) != 8 {
		t.Errorf("modeBarButtonsToRemove = %v", buttons)
	}
}

func TestSecurityTypesRawMode(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	records := decodeList(t, doRequest(t, a, "/security_types?raw=true"))
	if len(records) != 5 {
		t.Fatalf("expected 5 raw records, got %d", len(records))
	}
	first := records[0].(map[string]any)
	if first["name"] != "Equity" || first["value"].(float64) != 100 {
		t.Errorf("first raw record = %v", first)
	}
}

func TestSecurityTypesBackendDown(t *testing.T) {
	a := newTestApp(deadServer(), deadServer())

	body := decodeMap(t, doRequest(t, a, "/security_types"))
	if body["error"] != "No data available from backend" {
		t.Errorf("body = %v", body)
	}
}

func TestChartResponseIdempotent(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	first := doRequest(t, a, "/security_types?metric=offering_amount&theme=light")
	second := doRequest(t, a, "/security_types?metric=offering_amount&theme=light")
	if first.Body.String() != second.Body.String() {
		t.Error("identical requests produced different chart JSON")
	}
}

func TestTopIndustriesLargestOnTop(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	body := decodeMap(t, doRequest(t, a, "/top_industries"))
	trace := body["data"].([]any)[0].(map[string]any)
	if trace["type"] != "bar" || trace["orientation"] != "h" {
		t.Fatalf("trace = %v", trace)
	}
	// Ascending order so the largest industry renders as the top bar
	names, _ := trace["y"].([]any)
	if len(names) != 3 || names[0] != "Real Estate" || names[2] != "Technology" {
		t.Errorf("bar order = %v", names)
	}
}

func TestMonthlyActivityDropsEpochAndCurrentMonth(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	points := decodeList(t, doRequest(t, a, "/monthly_activity?raw=true"))
	if len(points) != 2 {
		t.Fatalf("expected 2 months after filtering, got %d: %v", len(points), points)
	}
	first := points[0].(map[string]any)
	if first["month"] != "2024-01" || first["equity"].(float64) != 10 {
		t.Errorf("first point = %v", first)
	}
	last := points[1].(map[string]any)
	if last["month"] != "2024-05" {
		t.Errorf("last point = %v", last)
	}
}

func TestMonthlyActivityIndustryViewSingleTrace(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	body := decodeMap(t, doRequest(t, a, "/monthly_activity?industry=Biotech&metric=offering_amount"))
	traces := body["data"].([]any)
	if len(traces) != 1 {
		t.Fatalf("expected 1 trace for industry view, got %d", len(traces))
	}
	trace := traces[0].(map[string]any)
	if trace["name"] != "Biotech - Total Amount" {
		t.Errorf("trace name = %v", trace["name"])
	}
	custom, _ := trace["customdata"].([]any)
	if len(custom) != 2 || custom[0] != "$1.0M" || custom[1] != "$2.5M" {
		t.Errorf("customdata = %v", custom)
	}
}

func TestMonthlyActivityAllIndustriesThreeTraces(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	body := decodeMap(t, doRequest(t, a, "/monthly_activity"))
	traces := body["data"].([]any)
	if len(traces) != 3 {
		t.Fatalf("expected 3 traces, got %d", len(traces))
	}
	names := []any{
		traces[0].(map[string]any)["name"],
		traces[1].(map[string]any)["name"],
		traces[2].(map[string]any)["name"],
	}
	if names[0] != "Equity Filings" || names[1] != "Debt Filings" || names[2] != "Fund Filings" {
		t.Errorf("trace names = %v", names)
	}
}

func TestTopFundraisersDeduped(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	records := decodeList(t, doRequest(t, a, "/top_fundraisers?raw=true"))
	if len(records) != 2 {
		t.Fatalf("expected 2 companies after dedupe, got %d", len(records))
	}
	first := records[0].(map[string]any)
	if first["company_name"] != "X" || first["amount"].(float64) != 9 {
		t.Errorf("first record = %v", first)
	}
}

func TestTopFundraisersSecurityTypeColors(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	body := decodeMap(t, doRequest(t, a, "/top_fundraisers"))
	trace := body["data"].([]any)[0].(map[string]any)
	marker := trace["marker"].(map[string]any)
	colors, _ := marker["color"].([]any)
	// Ascending display: Y (Fund) first, X (Debt, kept via max) last
	if len(colors) != 2 || colors[0] != "#10B981" || colors[1] != "#F59E0B" {
		t.Errorf("bar colors = %v", colors)
	}
}

func TestLocationDistributionChoropleth(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	body := decodeMap(t, doRequest(t, a, "/location_distribution"))
	trace := body["data"].([]any)[0].(map[string]any)
	if trace["type"] != "choropleth" || trace["locationmode"] != "USA-states" {
		t.Fatalf("trace = %v", trace)
	}
	locations, _ := trace["locations"].([]any)
	if len(locations) != 3 || locations[0] != "CA" {
		t.Errorf("locations = %v", locations)
	}
	layout := body["layout"].(map[string]any)
	title := layout["title"].(map[string]any)["text"].(string)
	want := "<b>Geographic Distribution</b><br><sup>All years data - 1,000 total across 3 states (by Count)</sup>"
	if title != want {
		t.Errorf("title = %q", title)
	}
}

func TestYearlyStatisticsRollup(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	stats := decodeList(t, doRequest(t, a, "/yearly_statistics?raw=true"))
	if len(stats) != 1 {
		t.Fatalf("expected a single year, got %v", stats)
	}
	year := stats[0].(map[string]any)
	// 2008 dropped by the epoch filter, 2024-06 dropped as in-progress:
	// (10+5+2) + (20+8+3)
	if year["year"] != "2024" || year["value"].(float64) != 48 {
		t.Errorf("rollup = %v", year)
	}
}

func TestLatestFilings(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	body := decodeMap(t, doRequest(t, a, "/latest_filings?page=1&per_page=25"))
	rows, _ := body["data"].([]any)
	if len(rows) != 2 {
		t.Fatalf("rows = %v", rows)
	}
	pagination := body["pagination"].(map[string]any)
	if pagination["total_items"].(float64) != 2 || pagination["has_next"] != false {
		t.Errorf("pagination = %v", pagination)
	}
}

func TestLatestFilingsErrorKeepsEnvelope(t *testing.T) {
	a := newTestApp(deadServer(), deadServer())

	body := decodeMap(t, doRequest(t, a, "/latest_filings?page=3&per_page=10"))
	rows, _ := body["data"].([]any)
	if len(rows) != 1 || rows[0].(map[string]any)["error"] == "" {
		t.Errorf("error rows = %v", rows)
	}
	pagination := body["pagination"].(map[string]any)
	if pagination["page"].(float64) != 3 || pagination["per_page"].(float64) != 10 {
		t.Errorf("pagination = %v", pagination)
	}
}

func TestAvailableYears(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	body := decodeMap(t, doRequest(t, a, "/api/available_years"))
	years, _ := body["years"].([]any)
	if len(years) != 3 {
		t.Fatalf("years = %v", years)
	}
	first := years[0].(map[string]any)
	if first["label"] != "All Years" || first["value"] != "all" {
		t.Errorf("first option = %v", first)
	}
	// 2008 filtered out, newest first
	if years[1].(map[string]any)["value"] != "2024" || years[2].(map[string]any)["value"] != "2023" {
		t.Errorf("year order = %v", years)
	}
}

func TestMarketOverviewFallsBackToSample(t *testing.T) {
	a := newTestApp(deadServer(), deadServer())

	body := decodeMap(t, doRequest(t, a, "/market_overview?ticker=SPY&period=1mo"))
	trace := body["data"].([]any)[0].(map[string]any)
	if trace["type"] != "scatter" {
		t.Fatalf("trace = %v", trace)
	}
	xs, _ := trace["x"].([]any)
	if len(xs) != 21 {
		t.Errorf("expected 21 sample points, got %d", len(xs))
	}
	layout := body["layout"].(map[string]any)
	title := layout["title"].(map[string]any)["text"].(string)
	if title != "<b>SPY Price History</b><br><sup>Sample data (market data provider unavailable)</sup>" {
		t.Errorf("title = %q", title)
	}

	// Fallback is deterministic under a fixed clock
	again := doRequest(t, a, "/market_overview?ticker=SPY&period=1mo")
	if body["data"] == nil || again.Body.Len() == 0 {
		t.Fatal("missing body")
	}
	first := doRequest(t, a, "/market_overview?ticker=SPY&period=1mo")
	if first.Body.String() != again.Body.String() {
		t.Error("sample series not deterministic")
	}
}

func TestMarketOverviewProviderData(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/quotes" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"candles": [
			{"date": "2024-06-13", "open": 100, "high": 101, "low": 99, "close": 100.5, "volume": 1000},
			{"date": "2024-06-14", "open": 100.5, "high": 102, "low": 100, "close": 101.5, "volume": 1200}
		]}`))
	}))
	defer provider.Close()
	a := newTestApp(deadServer(), provider.URL)

	candles := decodeList(t, doRequest(t, a, "/market_overview?raw=true"))
	if len(candles) != 2 {
		t.Fatalf("candles = %v", candles)
	}
	if candles[1].(map[string]any)["close"].(float64) != 101.5 {
		t.Errorf("close = %v", candles[1])
	}
}

func TestStatsSummaryFormatting(t *testing.T) {
	backend := fakeBackend()
	defer backend.Close()
	a := newTestApp(backend.URL, deadServer())

	body := decodeMap(t, doRequest(t, a, "/stats"))
	if body["total_filings"] != "523,000" {
		t.Errorf("total_filings = %v", body["total_filings"])
	}
	if body["total_offering_amount"] != "$2.3B" {
		t.Errorf("total_offering_amount = %v", body["total_offering_amount"])
	}
	if body["total_amount_sold"] != "$1.5B" {
		t.Errorf("total_amount_sold = %v", body["total_amount_sold"])
	}
}

func TestWidgetsConfigServed(t *testing.T) {
	a := newTestApp(deadServer(), deadServer())

	w := doRequest(t, a, "/widgets.json")
	body := decodeMap(t, w)
	if _, ok := body["security_types"]; !ok {
		t.Errorf("widgets.json missing security_types: %v", body)
	}
}
