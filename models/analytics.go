package models

// AnalyticsSummary is derived on demand from an asset's view log and never
// stored. ViewsPerDay is sparse: days without views have no key, and an asset
// without views serializes as an empty object rather than null.
type AnalyticsSummary struct {
	TotalViews  int64            `json:"total_views"`
	UniqueIPs   int              `json:"unique_ips"`
	ViewsPerDay map[string]int64 `json:"views_per_day"`
}
