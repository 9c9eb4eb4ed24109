package main

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// isAmountMetric reports whether the metric carries currency semantics.
// Axis titles, hover templates, and text formatting all branch on this one
// predicate.
func isAmountMetric(metric string) bool {
	return metric == "offering_amount" || metric == "amount_sold"
}

// formatCurrencyShort renders a dollar magnitude in short form: $1.5M, $2.3B.
// Threshold selection is by magnitude so negative values keep their sign on
// the divided number. Values under 1K get thousands separators instead.
func formatCurrencyShort(value float64) string {
	abs := math.Abs(value)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("$%.1fT", value/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("$%.1fB", value/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("$%.1fM", value/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("$%.1fK", value/1e3)
	default:
		return "$" + humanize.Comma(int64(math.Round(value)))
	}
}

// formatCount renders a count with thousands separators.
func formatCount(value float64) string {
	return humanize.Comma(int64(math.Round(value)))
}

// formatTextValues formats a value series for on-chart text labels, picking
// currency or count form from the metric.
func formatTextValues(values []float64, metric string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		if isAmountMetric(metric) {
			out[i] = formatCurrencyShort(v)
		} else {
			out[i] = formatCount(v)
		}
	}
	return out
}

// metricLabel is the title-suffix wording for a metric.
func metricLabel(metric string) string {
	switch metric {
	case "offering_amount":
		return "by Offering Amount"
	case "amount_sold":
		return "by Amount Sold"
	default:
		return "by Count"
	}
}

// axisTitle is the value-axis wording for a metric.
func axisTitle(metric string) string {
	switch metric {
	case "offering_amount":
		return "Offering Amount ($)"
	case "amount_sold":
		return "Amount Sold ($)"
	default:
		return "Number of Filings"
	}
}

// truncateLabel shortens long display labels for horizontal bar axes.
func truncateLabel(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
