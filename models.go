package main

// DistributionRecord is one category's aggregate in a backend distribution
// response (security type, industry, or state).
type DistributionRecord struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Count       float64 `json:"count,omitempty"`
	TotalAmount float64 `json:"total_amount,omitempty"`
}

// FundraiserRecord is one company's filing in the top-fundraisers response.
// After aggregation there is at most one record per company, holding the
// largest amount seen.
type FundraiserRecord struct {
	CompanyName  string  `json:"company_name"`
	Amount       float64 `json:"amount"`
	SecurityType string  `json:"security_type"`
}

// MonthlyPoint is one month of the filing-activity time series, split by
// security type. For industry-filtered views only Equity carries data.
type MonthlyPoint struct {
	Month  string  `json:"month"`
	Equity float64 `json:"equity"`
	Debt   float64 `json:"debt"`
	Fund   float64 `json:"fund"`
}

// YearlyStat is one year's rolled-up total.
type YearlyStat struct {
	Year  string  `json:"year"`
	Value float64 `json:"value"`
}

// Candle is one OHLCV bar from the market-data provider.
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// YearOption is one entry of the year-filter dropdown.
type YearOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Pagination describes one page of the filings table.
type Pagination struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}
