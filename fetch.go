package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"
)

// backendClient fetches JSON from the Form D backend. One GET per call, fixed
// timeout, no retries. Any transport error, timeout, or non-2xx status is
// logged and reported as nil data; callers apply their own fallback.
type backendClient struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// newBackendClient reads BACKEND_URL from the environment, falling back to
// the local development backend.
func newBackendClient(log *slog.Logger) *backendClient {
	baseURL := os.Getenv("BACKEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	return &backendClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// fetchJSON GETs baseURL + "/api/" + endpoint and returns the decoded body,
// or nil when anything goes wrong.
func (b *backendClient) fetchJSON(endpoint string) map[string]any {
	url := fmt.Sprintf("%s/api/%s", b.baseURL, endpoint)
	b.log.Info("fetching backend data", "endpoint", endpoint)

	resp, err := b.http.Get(url)
	if err != nil {
		b.log.Warn("backend fetch failed", "endpoint", endpoint, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b.log.Warn("backend returned non-2xx", "endpoint", endpoint, "status", resp.StatusCode)
		return nil
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		b.log.Warn("backend response not valid JSON", "endpoint", endpoint, "error", err)
		return nil
	}
	return data
}

// The backend's response shapes are loosely structured; missing or mistyped
// keys default instead of failing.

func getList(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	list, _ := m[key].([]any)
	return list
}

func getMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func getFloat(m map[string]any, key string) float64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	default:
		return 0
	}
}

// parseDistribution normalizes a backend distribution list into records,
// skipping entries that are not objects.
func parseDistribution(list []any) []DistributionRecord {
	records := make([]DistributionRecord, 0, len(list))
	for _, item := range list {
		m := getMap(item)
		if m == nil {
			continue
		}
		records = append(records, DistributionRecord{
			Name:        getString(m, "name"),
			Value:       getFloat(m, "value"),
			Count:       getFloat(m, "count"),
			TotalAmount: getFloat(m, "total_amount"),
		})
	}
	return records
}

// parseFundraisers normalizes the top-fundraisers list. A missing security
// type defaults to "Unknown".
func parseFundraisers(list []any) []FundraiserRecord {
	records := make([]FundraiserRecord, 0, len(list))
	for _, item := range list {
		m := getMap(item)
		if m == nil {
			continue
		}
		securityType := getString(m, "security_type")
		if securityType == "" {
			securityType = "Unknown"
		}
		records = append(records, FundraiserRecord{
			CompanyName:  getString(m, "company_name"),
			Amount:       getFloat(m, "amount"),
			SecurityType: securityType,
		})
	}
	return records
}
