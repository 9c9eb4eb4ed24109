package main

import "sort"

// dedupeKeepMax collapses fundraiser records to one per company, keeping the
// record with the largest amount. Output preserves first-seen company order;
// callers re-sort before display.
func dedupeKeepMax(records []FundraiserRecord) []FundraiserRecord {
	best := make(map[string]FundraiserRecord, len(records))
	order := make([]string, 0, len(records))
	for _, r := range records {
		cur, seen := best[r.CompanyName]
		if !seen {
			order = append(order, r.CompanyName)
			best[r.CompanyName] = r
			continue
		}
		if r.Amount > cur.Amount {
			best[r.CompanyName] = r
		}
	}
	out := make([]FundraiserRecord, 0, len(order))
	for _, name := range order {
		out = append(out, best[name])
	}
	return out
}

// sortFundraisers stable-sorts by amount and optionally truncates to limit.
// limit <= 0 means no truncation.
func sortFundraisers(records []FundraiserRecord, limit int, descending bool) []FundraiserRecord {
	out := make([]FundraiserRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Amount < out[j].Amount
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// sortDistribution stable-sorts by value and optionally truncates to limit.
// Ties keep input order so display order stays reproducible.
func sortDistribution(records []DistributionRecord, limit int, descending bool) []DistributionRecord {
	out := make([]DistributionRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return out[i].Value > out[j].Value
		}
		return out[i].Value < out[j].Value
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// topNPlusOther sorts descending by value, keeps the first n records, and
// folds the remainder into a single "All Others" bucket with summed value and
// summed auxiliary fields. No bucket is synthesized when nothing remains.
func topNPlusOther(records []DistributionRecord, n int) []DistributionRecord {
	sorted := sortDistribution(records, 0, true)
	if len(sorted) <= n {
		return sorted
	}
	top := sorted[:n:n]
	other := DistributionRecord{Name: "All Others"}
	for _, r := range sorted[n:] {
		other.Value += r.Value
		other.Count += r.Count
		other.TotalAmount += r.TotalAmount
	}
	return append(top, other)
}

// totalValue sums the value field across records.
func totalValue(records []DistributionRecord) float64 {
	var total float64
	for _, r := range records {
		total += r.Value
	}
	return total
}

// maxValue returns the largest value in the series, or 0 for an empty series.
func maxValue(values []float64) float64 {
	var max float64
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	return max
}
