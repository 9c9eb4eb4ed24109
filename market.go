package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// marketClient queries the market-data provider for OHLCV history by ticker.
// Provider outages fall back to a synthetic sample series rather than failing
// the request, so this client's callers never see an error.
type marketClient struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

func newMarketClient(log *slog.Logger) *marketClient {
	baseURL := os.Getenv("MARKET_DATA_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8001"
	}
	return &marketClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// fetchCandles returns the provider's OHLCV series for a ticker, or nil when
// the provider is unreachable or answers badly.
func (m *marketClient) fetchCandles(ticker, period string) []Candle {
	url := fmt.Sprintf("%s/quotes?symbol=%s&period=%s", m.baseURL, ticker, period)
	m.log.Info("fetching market data", "ticker", ticker, "period", period)

	resp, err := m.http.Get(url)
	if err != nil {
		m.log.Warn("market data fetch failed", "ticker", ticker, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		m.log.Warn("market data provider returned non-2xx", "ticker", ticker, "status", resp.StatusCode)
		return nil
	}

	var body struct {
		Candles []Candle `json:"candles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		m.log.Warn("market data response not valid JSON", "ticker", ticker, "error", err)
		return nil
	}
	return body.Candles
}

// periodDays maps a request period to the number of daily bars.
func periodDays(period string) int {
	switch period {
	case "1mo":
		return 21
	case "3mo":
		return 63
	case "6mo":
		return 126
	case "5y":
		return 1260
	default: // 1y
		return 252
	}
}

// syntheticCandles builds a deterministic placeholder series for a ticker so
// the chart still renders when the provider is down. The walk is seeded from
// the ticker name, so the same ticker always gets the same shape.
func syntheticCandles(ticker, period string, now time.Time) []Candle {
	days := periodDays(period)

	// FNV-1a over the ticker, then a small LCG for the walk.
	seed := uint64(14695981039346656037)
	for i := 0; i < len(ticker); i++ {
		seed ^= uint64(ticker[i])
		seed *= 1099511628211
	}

	next := func() float64 {
		seed = seed*6364136223846793005 + 1442695040888963407
		return float64(seed>>11) / float64(1<<53)
	}

	price := 50 + next()*400
	candles := make([]Candle, 0, days)
	start := now.AddDate(0, 0, -days)
	for i := 0; i < days; i++ {
		change := (next() - 0.5) * price * 0.04
		open := price
		price += change
		high := open
		if price > high {
			high = price
		}
		high *= 1 + next()*0.01
		low := open
		if price < low {
			low = price
		}
		low *= 1 - next()*0.01
		candles = append(candles, Candle{
			Date:   start.AddDate(0, 0, i).Format("2006-01-02"),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(price),
			Volume: float64(1_000_000 + int(next()*9_000_000)),
		})
	}
	return candles
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
