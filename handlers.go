package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const epochYear = 2009

// app holds the long-lived clients shared by all handlers. Everything else is
// request-scoped.
type app struct {
	backend *backendClient
	market  *marketClient
	cache   *redis.Client
	log     *slog.Logger
	now     func() time.Time
}

func newApp(backend *backendClient, market *marketClient, cache *redis.Client, log *slog.Logger) *app {
	return &app{
		backend: backend,
		market:  market,
		cache:   cache,
		log:     log,
		now:     time.Now,
	}
}

// noData is the uniform answer when the backend has nothing usable. Always
// HTTP 200; the host dashboard renders the error string.
func noData(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"error": "No data available from backend"})
}

// writeResult serializes the payload, caches it under key, and writes it.
// Handlers funnel every successful response through here so cache entries and
// live responses are byte-identical.
func (a *app) writeResult(c *gin.Context, key string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		a.log.Error("failed to marshal response", "error", err)
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	a.storeResponse(c.Request.Context(), key, data)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// serveCached writes a cached response if one exists.
func (a *app) serveCached(c *gin.Context, key string) bool {
	data := a.cachedResponse(c.Request.Context(), key)
	if data == nil {
		return false
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
	return true
}

func cacheKey(c *gin.Context) string {
	return "chart:" + c.Request.URL.RequestURI()
}

func rawRequested(c *gin.Context) bool {
	return c.Query("raw") == "true"
}

// healthCheck reports service liveness.
func (a *app) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "formd-analytics-hub",
		"backend": a.backend.baseURL,
	})
}

// securityTypes serves the security-type breakdown as a donut chart: top 4
// types plus an "All Others" bucket, total in the subtitle.
func (a *app) securityTypes(c *gin.Context) {
	year := c.Query("year")
	metric := c.DefaultQuery("metric", "count")
	theme := c.DefaultQuery("theme", "dark")

	key := cacheKey(c)
	if a.serveCached(c, key) {
		return
	}

	endpoint := "charts/security-type-distribution?" + buildQueryParams(year, "", metric)
	data := a.backend.fetchJSON(endpoint)
	distribution := parseDistribution(getList(data, "distribution"))
	if len(distribution) == 0 {
		noData(c)
		return
	}
	a.log.Info("security type distribution loaded", "records", len(distribution))

	if rawRequested(c) {
		a.writeResult(c, key, distribution)
		return
	}

	total := totalValue(distribution)
	display := topNPlusOther(distribution, 4)

	colors := resolveTheme(theme)
	hover := resolveHoverColors(theme)
	filterText := buildFilterContext(year, "", metric)

	var subtitle string
	if isAmountMetric(metric) {
		subtitle = "Total: " + formatCurrencyShort(total) + filterText
	} else {
		subtitle = "Total: " + formatCount(total) + filterText
	}

	labels := make([]string, len(display))
	values := make([]float64, len(display))
	for i, r := range display {
		labels[i] = r.Name
		values[i] = r.Value
	}
	var customData []string
	if isAmountMetric(metric) {
		customData = formatTextValues(values, metric)
	}

	trace := PieTrace{
		Type:          "pie",
		Labels:        labels,
		Values:        values,
		Hole:          0.4,
		Marker:        &Marker{Colors: pieColors[:min(len(display), len(pieColors))]},
		TextInfo:      "label+percent",
		TextPosition:  "auto",
		TextFont:      &Font{Color: "white", Size: 12},
		HoverTemplate: hoverTemplate(metric, "pie"),
		CustomData:    customData,
	}

	layout := baseLayout(theme)
	layout.Title = chartTitle("Security Type Distribution", subtitle, colors)
	layout.Height = 400
	layout.ShowLegend = boolPtr(true)
	layout.Legend = &Legend{Orientation: "v", YAnchor: "middle", Y: 0.5, Font: &Font{Size: 12, Color: colors.Text}}
	layout.HoverLabel = &HoverLabel{BgColor: hover.BgColor, BorderColor: hover.BorderColor, Font: &Font{Color: colors.Text}}

	a.writeResult(c, key, Figure{Data: []Trace{trace}, Layout: layout, Config: figureConfig})
}

// topIndustries serves the ten most active industries as a horizontal bar
// chart, re-sorted ascending so the largest bar renders on top.
func (a *app) topIndustries(c *gin.Context) {
	year := c.Query("year")
	metric := c.DefaultQuery("metric", "count")
	theme := c.DefaultQuery("theme", "dark")

	key := cacheKey(c)
	if a.serveCached(c, key) {
		return
	}

	endpoint := "charts/industry-distribution?" + buildQueryParams(year, "", metric)
	data := a.backend.fetchJSON(endpoint)
	distribution := parseDistribution(getList(data, "distribution"))
	if len(distribution) == 0 {
		noData(c)
		return
	}
	distribution = distribution[:min(len(distribution), 10)]

	if rawRequested(c) {
		a.writeResult(c, key, distribution)
		return
	}

	display := sortDistribution(distribution, 0, false)
	colors := resolveTheme(theme)

	values := make([]float64, len(display))
	names := make([]any, len(display))
	xs := make([]any, len(display))
	for i, r := range display {
		values[i] = r.Value
		names[i] = truncateLabel(r.Name, 30)
		xs[i] = r.Value
	}
	textValues := formatTextValues(values, metric)
	var customData []string
	if isAmountMetric(metric) {
		customData = textValues
	}

	trace := BarTrace{
		Type:          "bar",
		X:             xs,
		Y:             names,
		Orientation:   "h",
		Marker:        &Marker{Color: colors.MainLine},
		Text:          textValues,
		TextPosition:  "outside",
		TextFont:      &Font{Color: colors.Text, Size: 12},
		HoverTemplate: hoverTemplate(metric, "hbar"),
		CustomData:    customData,
	}

	filterText := buildFilterContext(year, "", metric)
	layout := baseLayout(theme)
	layout.Title = chartTitle("Top 10 Industries", "Real Form D data - most active sectors"+filterText, colors)
	layout.Height = 400
	layout.Margin = &Margin{L: 150, R: 50, T: 80, B: 50}
	layout.XAxis = &Axis{
		Title:     &AxisTitle{Text: axisTitle(metric), Font: &Font{Color: colors.Text}},
		Range:     []float64{0, maxValue(values) * 1.1},
		TickFont:  &Font{Color: colors.Text},
		GridColor: colors.Grid,
	}
	layout.YAxis = &Axis{TickFont: &Font{Color: colors.Text}, GridColor: colors.Grid}

	a.writeResult(c, key, Figure{Data: []Trace{trace}, Layout: layout, Config: figureConfig})
}

// monthlySeries is the normalized monthly time series plus which backend
// response shape it came from.
func (a *app) monthlySeries(metric, industry string) ([]MonthlyPoint, bool) {
	industryView := industry != "" && industry != "all"

	var endpoint string
	if industryView {
		endpoint = "charts/industry-timeseries?metric=" + metric + "&industry=" + url.QueryEscape(industry)
	} else {
		switch metric {
		case "offering_amount":
			endpoint = "charts/amount-raised-timeseries?metric=offering_amount"
		case "amount_sold":
			endpoint = "charts/amount-raised-timeseries?metric=amount_sold"
		default:
			endpoint = "charts"
		}
	}

	data := a.backend.fetchJSON(endpoint)
	if data == nil {
		return nil, false
	}

	var points []MonthlyPoint
	if industryView {
		// Industry series only carry a single total; it rides in the
		// equity slot so the chart code has one shape to deal with.
		for _, item := range getList(data, "timeseries") {
			m := getMap(item)
			if m == nil {
				continue
			}
			value := getFloat(m, "filings")
			if isAmountMetric(metric) {
				value = getFloat(m, "total_amount")
			}
			points = append(points, MonthlyPoint{Month: getString(m, "date"), Equity: value})
		}
	} else {
		for _, item := range getList(data, "time_series") {
			m := getMap(item)
			if m == nil {
				continue
			}
			p := MonthlyPoint{Month: getString(m, "date")}
			if isAmountMetric(metric) {
				p.Equity = getFloat(m, "equity_amount")
				p.Debt = getFloat(m, "debt_amount")
				p.Fund = getFloat(m, "fund_amount")
			} else {
				p.Equity = getFloat(m, "equity_filings")
				p.Debt = getFloat(m, "debt_filings")
				p.Fund = getFloat(m, "fund_filings")
			}
			points = append(points, p)
		}
	}

	return a.filterMonths(points), true
}

// filterMonths drops months before the epoch year and the in-progress
// current month.
func (a *app) filterMonths(points []MonthlyPoint) []MonthlyPoint {
	currentMonth := a.now().Format("2006-01")
	filtered := make([]MonthlyPoint, 0, len(points))
	for _, p := range points {
		if len(p.Month) < 7 {
			continue
		}
		year, err := strconv.Atoi(p.Month[:4])
		if err != nil || year < epochYear || p.Month == currentMonth {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// monthlyActivity serves the filing-activity time series: three security-type
// lines, or a single line when filtered to one industry.
func (a *app) monthlyActivity(c *gin.Context) {
	metric := c.DefaultQuery("metric", "count")
	industry := c.DefaultQuery("industry", "all")
	theme := c.DefaultQuery("theme", "dark")
	industryView := industry != "" && industry != "all"

	key := cacheKey(c)
	if a.serveCached(c, key) {
		return
	}

	points, ok := a.monthlySeries(metric, industry)
	if !ok {
		noData(c)
		return
	}

	if rawRequested(c) {
		if points == nil {
			points = []MonthlyPoint{}
		}
		a.writeResult(c, key, points)
		return
	}

	colors := resolveTheme(theme)
	hover := resolveHoverColors(theme)

	months := make([]string, len(points))
	equity := make([]float64, len(points))
	debt := make([]float64, len(points))
	fund := make([]float64, len(points))
	for i, p := range points {
		months[i] = p.Month
		equity[i] = p.Equity
		debt[i] = p.Debt
		fund[i] = p.Fund
	}

	amount := isAmountMetric(metric)
	var tmpl, yTitle string
	if amount {
		tmpl = "<b>%{x}</b><br><b>%{fullData.name}</b>: %{customdata}<extra></extra>"
		yTitle = "Amount ($)"
	} else {
		tmpl = "<b>%{x}</b><br><b>%{fullData.name}</b>: %{y:,.0f} filings<extra></extra>"
		yTitle = "Number of Filings"
	}

	hoverLabel := &HoverLabel{BgColor: hover.BgColor, BorderColor: hover.BorderColor, Font: &Font{Color: colors.Text}}
	line := func(x []string, y []float64, name, color string) ScatterTrace {
		var customData []string
		if amount {
			customData = formatTextValues(y, metric)
		}
		return ScatterTrace{
			Type:          "scatter",
			X:             x,
			Y:             y,
			Mode:          "lines+markers",
			Name:          name,
			Line:          &Line{Color: color, Width: 3},
			Marker:        &Marker{Size: 6},
			HoverTemplate: tmpl,
			CustomData:    customData,
			HoverLabel:    hoverLabel,
		}
	}

	var traces []Trace
	var filterText string
	if industryView {
		suffix := " - Filings"
		if amount {
			suffix = " - Total Amount"
			yTitle = "Amount ($)"
		}
		traces = []Trace{line(months, equity, industry+suffix, "#3B82F6")}
		filterText = " (Industry: " + industry + ")"
	} else {
		equityName, debtName, fundName := "Equity Filings", "Debt Filings", "Fund Filings"
		if amount {
			equityName, debtName, fundName = "Equity", "Debt", "Fund"
		}
		traces = []Trace{
			line(months, equity, equityName, "#3B82F6"),
			line(months, debt, debtName, "#F59E0B"),
			line(months, fund, fundName, "#10B981"),
		}
	}

	var baseSubtitle string
	switch metric {
	case "offering_amount":
		baseSubtitle = "offering amounts over time"
	case "amount_sold":
		baseSubtitle = "amounts sold over time"
	default:
		baseSubtitle = "filings over time"
	}

	yMax := maxValue(equity)
	if m := maxValue(debt); m > yMax {
		yMax = m
	}
	if m := maxValue(fund); m > yMax {
		yMax = m
	}

	layout := baseLayout(theme)
	layout.Title = chartTitle("Monthly Filing Activity", "Real Form D data - "+baseSubtitle+filterText, colors)
	layout.Height = 500
	layout.HoverMode = "x"
	layout.Margin = &Margin{L: 80, R: 50, T: 80, B: 80}
	layout.XAxis = &Axis{
		Title:     &AxisTitle{Text: "Month", Font: &Font{Color: colors.Text}},
		TickFont:  &Font{Color: colors.Text},
		GridColor: colors.Grid,
	}
	layout.YAxis = &Axis{
		Title:     &AxisTitle{Text: yTitle, Font: &Font{Color: colors.Text}},
		Range:     []float64{0, yMax * 1.1},
		TickFont:  &Font{Color: colors.Text},
		GridColor: colors.Grid,
	}
	layout.Legend = &Legend{Font: &Font{Color: colors.Text, Size: 12}}

	a.writeResult(c, key, Figure{Data: traces, Layout: layout, Config: figureConfig})
}

// topFundraisers serves the twenty largest offerings as a horizontal bar
// chart, one bar per company colored by security type.
func (a *app) topFundraisers(c *gin.Context) {
	year := c.Query("year")
	industry := c.Query("industry")
	metric := c.DefaultQuery("metric", "offering_amount")
	theme := c.DefaultQuery("theme", "dark")

	key := cacheKey(c)
	if a.serveCached(c, key) {
		return
	}

	endpoint := "charts/top-fundraisers?" + buildQueryParams(year, industry, metric)
	data := a.backend.fetchJSON(endpoint)
	fundraisers := parseFundraisers(getList(data, "top_fundraisers"))
	if len(fundraisers) == 0 {
		noData(c)
		return
	}

	fundraisers = fundraisers[:min(len(fundraisers), 20)]
	fundraisers = dedupeKeepMax(fundraisers)
	fundraisers = sortFundraisers(fundraisers, 20, true)
	a.log.Info("top fundraisers aggregated", "companies", len(fundraisers))

	if rawRequested(c) {
		a.writeResult(c, key, fundraisers)
		return
	}

	// Ascending for display so the largest bar lands on top.
	display := sortFundraisers(fundraisers, 0, false)
	colors := resolveTheme(theme)

	amounts := make([]float64, len(display))
	xs := make([]any, len(display))
	names := make([]any, len(display))
	barColors := make([]string, len(display))
	securityTypes := make([]string, len(display))
	for i, r := range display {
		amounts[i] = r.Amount
		xs[i] = r.Amount
		names[i] = truncateLabel(r.CompanyName, 40)
		barColors[i] = securityTypeColor(r.SecurityType)
		securityTypes[i] = r.SecurityType
	}

	trace := BarTrace{
		Type:          "bar",
		X:             xs,
		Y:             names,
		Orientation:   "h",
		Marker:        &Marker{Color: barColors},
		Text:          formatTextValues(amounts, metric),
		TextPosition:  "outside",
		TextFont:      &Font{Color: colors.Text, Size: 10},
		HoverTemplate: "<b>%{y}</b><br>Amount: %{text}<br>Type: %{customdata}<extra></extra>",
		CustomData:    securityTypes,
	}

	filterText := buildFilterContext(year, industry, metric)
	layout := baseLayout(theme)
	layout.Title = chartTitle("Top 20 Fundraisers", "Real Form D data - largest offering amounts"+filterText, colors)
	layout.Height = 600
	layout.Margin = &Margin{L: 200, R: 50, T: 80, B: 80}
	layout.XAxis = &Axis{
		Title:     &AxisTitle{Text: axisTitle(metric), Font: &Font{Color: colors.Text}},
		Range:     []float64{0, maxValue(amounts) * 1.1},
		TickFont:  &Font{Color: colors.Text},
		GridColor: colors.Grid,
	}
	layout.YAxis = &Axis{TickFont: &Font{Color: colors.Text}, GridColor: colors.Grid}

	a.writeResult(c, key, Figure{Data: []Trace{trace}, Layout: layout, Config: figureConfig})
}

// locationDistribution serves the per-state filing distribution as a US
// choropleth over the top 25 states.
func (a *app) locationDistribution(c *gin.Context) {
	year := c.Query("year")
	metric := c.DefaultQuery("metric", "count")
	theme := c.DefaultQuery("theme", "dark")

	key := cacheKey(c)
	if a.serveCached(c, key) {
		return
	}

	endpoint := "charts/location-distribution?" + buildQueryParams(year, "", metric)
	if year != "" && year != "all" {
		// Cache buster: the backend has served stale per-year responses
		// from its own cache without it.
		endpoint += fmt.Sprintf("&_t=%d", a.now().Unix())
	}
	data := a.backend.fetchJSON(endpoint)
	distribution := parseDistribution(getList(data, "distribution"))
	if len(distribution) == 0 {
		noData(c)
		return
	}
	distribution = distribution[:min(len(distribution), 25)]
	a.log.Info("location distribution loaded", "states", len(distribution), "total", totalValue(distribution))

	if rawRequested(c) {
		a.writeResult(c, key, distribution)
		return
	}

	colors := resolveTheme(theme)

	locations := make([]string, len(distribution))
	values := make([]float64, len(distribution))
	hoverTexts := make([]string, len(distribution))
	for i, r := range distribution {
		locations[i] = r.Name
		values[i] = r.Value
		if isAmountMetric(metric) {
			hoverTexts[i] = r.Name + ": " + formatCurrencyShort(r.Value)
		} else {
			hoverTexts[i] = r.Name + ": " + formatCount(r.Value) + " filings"
		}
	}

	trace := ChoroplethTrace{
		Type:          "choropleth",
		Locations:     locations,
		Z:             values,
		LocationMode:  "USA-states",
		ColorScale:    "Blues",
		Text:          hoverTexts,
		HoverTemplate: "<b>%{text}</b><extra></extra>",
		ColorBar: &ColorBar{
			Title:    &AxisTitle{Text: axisTitle(metric), Font: &Font{Color: colors.Text}},
			TickFont: &Font{Color: colors.Text},
		},
	}

	total := totalValue(distribution)
	totalText := formatCount(total)
	if isAmountMetric(metric) {
		totalText = formatCurrencyShort(total)
	}
	var subtitle string
	if year != "" && year != "all" {
		subtitle = fmt.Sprintf("Year %s data - %s total across %d states", year, totalText, len(distribution))
	} else {
		subtitle = fmt.Sprintf("All years data - %s total across %d states", totalText, len(distribution))
	}
	if filterText := buildFilterContext(year, "", metric); filterText != "" {
		subtitle += filterText
	}

	layout := baseLayout(theme)
	layout.Title = chartTitle("Geographic Distribution", subtitle, colors)
	layout.Height = 600
	layout.Geo = &Geo{
		Scope:          "usa",
		Projection:     Projection{Type: "albers usa"},
		ShowLakes:      true,
		LakeColor:      "rgb(255, 255, 255)",
		BgColor:        colors.Background,
		LandColor:      "rgba(255,255,255,0.1)",
		CoastlineColor: "rgba(255,255,255,0.3)",
		ShowLand:       true,
		ShowCoastlines: true,
		ShowOcean:      true,
		OceanColor:     colors.Background,
	}

	a.writeResult(c, key, Figure{Data: []Trace{trace}, Layout: layout, Config: figureConfig})
}

// yearlyStatistics rolls the monthly series up into yearly totals and serves
// them as a vertical bar chart.
func (a *app) yearlyStatistics(c *gin.Context) {
	metric := c.DefaultQuery("metric", "count")
	industry := c.DefaultQuery("industry", "all")
	theme := c.DefaultQuery("theme", "dark")

	key := cacheKey(c)
	if a.serveCached(c, key) {
		return
	}

	points, ok := a.monthlySeries(metric, industry)
	if !ok {
		noData(c)
		return
	}

	totals := make(map[string]float64)
	for _, p := range points {
		totals[p.Month[:4]] += p.Equity + p.Debt + p.Fund
	}
	years := make([]string, 0, len(totals))
	for year := range totals {
		years = append(years, year)
	}
	sort.Strings(years)

	yearly := make([]YearlyStat, 0, len(years))
	for _, year := range years {
		yearly = append(yearly, YearlyStat{Year: year, Value: totals[year]})
	}

	if rawRequested(c) {
		a.writeResult(c, key, yearly)
		return
	}

	colors := resolveTheme(theme)

	xs := make([]any, len(yearly))
	values := make([]float64, len(yearly))
	ys := make([]any, len(yearly))
	for i, s := range yearly {
		xs[i] = s.Year
		values[i] = s.Value
		ys[i] = s.Value
	}
	textValues := formatTextValues(values, metric)

	trace := BarTrace{
		Type:          "bar",
		X:             xs,
		Y:             ys,
		Marker:        &Marker{Color: colors.MainLine},
		Text:          textValues,
		TextPosition:  "outside",
		TextFont:      &Font{Color: colors.Text, Size: 12},
		HoverTemplate: hoverTemplate(metric, "vbar"),
		CustomData:    textValues,
	}

	filterText := buildFilterContext("", industry, metric)
	layout := baseLayout(theme)
	layout.Title = chartTitle("Yearly Statistics", "Annual totals by year"+filterText, colors)
	layout.Height = 500
	layout.Margin = &Margin{L: 80, R: 50, T: 80, B: 80}
	layout.XAxis = &Axis{
		Title:     &AxisTitle{Text: "Year", Font: &Font{Color: colors.Text}},
		TickFont:  &Font{Color: colors.Text},
		GridColor: colors.Grid,
	}
	layout.YAxis = &Axis{
		Title:     &AxisTitle{Text: axisTitle(metric), Font: &Font{Color: colors.Text}},
		TickFont:  &Font{Color: colors.Text},
		GridColor: colors.Grid,
	}

	a.writeResult(c, key, Figure{Data: []Trace{trace}, Layout: layout, Config: figureConfig})
}

// latestFilings serves one page of the filings table. The response envelope
// always carries a pagination block, errors included, so the table widget can
// render something either way.
func (a *app) latestFilings(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "25"))
	if err != nil || perPage < 1 {
		perPage = 25
	}

	emptyPage := Pagination{Page: page, PerPage: perPage}

	endpoint := fmt.Sprintf("filings?page=%d&per_page=%d", page, perPage)
	data := a.backend.fetchJSON(endpoint)
	if data == nil {
		c.JSON(http.StatusOK, gin.H{
			"data":       []gin.H{{"error": "No data available from backend"}},
			"pagination": emptyPage,
		})
		return
	}

	filings := getList(data, "filings")
	if filings == nil {
		filings = []any{}
	}

	pagination := emptyPage
	if p := getMap(data["pagination"]); p != nil {
		pagination = Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: int(getFloat(p, "total_items")),
			TotalPages: int(getFloat(p, "total_pages")),
			HasNext:    p["has_next"] == true,
			HasPrev:    p["has_prev"] == true,
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": filings, "pagination": pagination})
}

// marketOverview serves a close-price line for a ticker. Provider outage
// falls back to a synthetic sample series so the widget still renders.
func (a *app) marketOverview(c *gin.Context) {
	ticker := c.DefaultQuery("ticker", "SPY")
	period := c.DefaultQuery("period", "1y")
	theme := c.DefaultQuery("theme", "dark")

	key := cacheKey(c)
	if a.serveCached(c, key) {
		return
	}

	candles := a.market.fetchCandles(ticker, period)
	sample := len(candles) == 0
	if sample {
		a.log.Warn("market data unavailable, using sample series", "ticker", ticker)
		candles = syntheticCandles(ticker, period, a.now())
	}

	if rawRequested(c) {
		a.writeResult(c, key, candles)
		return
	}

	colors := resolveTheme(theme)
	hover := resolveHoverColors(theme)

	dates := make([]string, len(candles))
	closes := make([]float64, len(candles))
	for i, candle := range candles {
		dates[i] = candle.Date
		closes[i] = candle.Close
	}

	trace := ScatterTrace{
		Type:          "scatter",
		X:             dates,
		Y:             closes,
		Mode:          "lines",
		Name:          ticker,
		Line:          &Line{Color: colors.MainLine, Width: 2},
		HoverTemplate: "<b>%{x}</b><br>Close: $%{y:.2f}<extra></extra>",
		HoverLabel:    &HoverLabel{BgColor: hover.BgColor, BorderColor: hover.BorderColor, Font: &Font{Color: colors.Text}},
	}

	subtitle := fmt.Sprintf("Daily close - last %s", period)
	if sample {
		subtitle = "Sample data (market data provider unavailable)"
	}

	layout := baseLayout(theme)
	layout.Title = chartTitle(ticker+" Price History", subtitle, colors)
	layout.Height = 500
	layout.HoverMode = "x"
	layout.Margin = &Margin{L: 80, R: 50, T: 80, B: 80}
	layout.XAxis = &Axis{TickFont: &Font{Color: colors.Text}, GridColor: colors.Grid}
	layout.YAxis = &Axis{
		Title:     &AxisTitle{Text: "Price ($)", Font: &Font{Color: colors.Text}},
		TickFont:  &Font{Color: colors.Text},
		GridColor: colors.Grid,
	}

	a.writeResult(c, key, Figure{Data: []Trace{trace}, Layout: layout, Config: figureConfig})
}

// statsSummary serves headline backend totals with display formatting
// applied, for the markdown summary widget.
func (a *app) statsSummary(c *gin.Context) {
	data := a.backend.fetchJSON("stats")
	if data == nil {
		noData(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_filings":         formatCount(getFloat(data, "total_filings")),
		"total_companies":       formatCount(getFloat(data, "total_companies")),
		"total_offering_amount": formatCurrencyShort(getFloat(data, "total_offering_amount")),
		"total_amount_sold":     formatCurrencyShort(getFloat(data, "total_amount_sold")),
	})
}

// availableYears serves the year-filter dropdown options, newest first, with
// an "All Years" entry on top.
func (a *app) availableYears(c *gin.Context) {
	data := a.backend.fetchJSON("charts/security-type-distribution?metric=count")
	raw := getList(data, "available_years")
	if len(raw) == 0 {
		noData(c)
		return
	}

	years := make([]string, 0, len(raw))
	for _, v := range raw {
		var year string
		switch y := v.(type) {
		case string:
			year = y
		case float64:
			year = strconv.Itoa(int(y))
		default:
			continue
		}
		if n, err := strconv.Atoi(year); err == nil && n >= epochYear {
			years = append(years, year)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))

	options := []YearOption{{Label: "All Years", Value: "all"}}
	for _, year := range years {
		options = append(options, YearOption{Label: year, Value: year})
	}

	c.JSON(http.StatusOK, gin.H{"years": options})
}
