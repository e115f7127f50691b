// Package models defines the data structures shared by the analysis pipelines.
package models

// Frequency is the pay period declared on a posting.
type Frequency string

const (
	FrequencyAnnual Frequency = "Annual"
	FrequencyDaily  Frequency = "Daily"
	FrequencyHourly Frequency = "Hourly"
)

// Posting is one row of the input table. Rows are immutable after load;
// NormalizedSalary is appended once by the loader and never mutated.
type Posting struct {
	Agency                  string    `json:"agency"`
	BusinessTitle           string    `json:"business_title"`
	NumberOfPositions       int       `json:"number_of_positions"`
	SalaryFrom              *float64  `json:"salary_from"`
	SalaryTo                *float64  `json:"salary_to"`
	SalaryFrequency         Frequency `json:"salary_frequency"`
	MinimumQualRequirements string    `json:"minimum_qual_requirements,omitempty"`
	WorkLocation            string    `json:"work_location,omitempty"`

	// NormalizedSalary is the annual-equivalent pay. Nil when either salary
	// bound is missing; such rows are excluded from salary-dependent
	// computations but still count toward agency totals.
	NormalizedSalary *float64 `json:"normalized_salary"`
}

// HasSalary reports whether the posting carries a usable normalized salary.
func (p *Posting) HasSalary() bool {
	return p.NormalizedSalary != nil
}

// AgencySummary is one row of an agency ranking. Recomputed fresh from the
// posting set on each aggregation call, never persisted.
type AgencySummary struct {
	Agency         string `json:"agency"`
	PostingCount   int    `json:"posting_count"`
	TotalPositions int    `json:"total_positions"`
}

// TermFrequencyEntry is one distinct normalized word and its occurrence
// count across a corpus.
type TermFrequencyEntry struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
}

// GeoCacheEntry is one resolved (or explicitly unresolved) work location.
// Unresolved entries keep nil coordinates; they stay in the store and are
// filtered out only at render time.
type GeoCacheEntry struct {
	LocationQuery   string   `json:"location_query"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	ResolvedAddress *string  `json:"resolved_address,omitempty"`
	Resolved        bool     `json:"resolved"`
}
