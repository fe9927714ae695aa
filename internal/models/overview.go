package models

// Breakdown is one row of a per-project or per-insurer split. Percentage
// is computed by the backend; the dashboard renders it verbatim.
type Breakdown struct {
	Name       string  `json:"name"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// OverviewAnalytics is read-only derived data for the dashboard index.
type OverviewAnalytics struct {
	InsuredCount       int64       `json:"insured_count"`
	NonInsuredCount    int64       `json:"non_insured_count"`
	SaudiCount         int64       `json:"saudi_count"`
	NonSaudiCount      int64       `json:"non_saudi_count"`
	Projects           []Breakdown `json:"projects"`
	InsuranceCompanies []Breakdown `json:"insurance_companies"`
}
