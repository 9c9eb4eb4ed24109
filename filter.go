package main

import (
	"net/url"
	"strings"
)

// buildFilterContext assembles the title suffix describing active filters,
// e.g. " (Year: 2023, Industry: Technology, by Offering Amount)". The "all"
// sentinel suppresses year and industry; a supplied metric always contributes
// its label. Order is fixed: year, industry, metric.
func buildFilterContext(year, industry, metric string) string {
	var parts []string
	if year != "" && year != "all" {
		parts = append(parts, "Year: "+year)
	}
	if industry != "" && industry != "all" {
		parts = append(parts, "Industry: "+industry)
	}
	if metric != "" {
		parts = append(parts, metricLabel(metric))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// buildQueryParams serializes active filters for the outbound backend call,
// in the same year, industry, metric order as the title suffix. The "all"
// sentinel is not forwarded.
func buildQueryParams(year, industry, metric string) string {
	var parts []string
	if year != "" && year != "all" {
		parts = append(parts, "year="+url.QueryEscape(year))
	}
	if industry != "" && industry != "all" {
		parts = append(parts, "industry="+url.QueryEscape(industry))
	}
	if metric != "" {
		parts = append(parts, "metric="+url.QueryEscape(metric))
	}
	return strings.Join(parts, "&")
}
