// Package salary converts heterogeneous pay representations into one
// comparable annualized scalar per posting.
package salary

import (
	"math"

	"github.com/jmfield/postings-atlas/models"
)

// Annualization policy constants. Fixed by convention, not derived from data.
const (
	WorkingDaysPerYear = 261
	WorkingHoursPerDay = 8.4
)

// Normalize returns the annual-equivalent value of a salary range for the
// given pay frequency, rounded to cents. Any frequency other than Annual or
// Daily annualizes as Hourly.
func Normalize(from, to float64, freq models.Frequency) float64 {
	mid := (from + to) / 2
	switch freq {
	case models.FrequencyAnnual:
		return round2(mid)
	case models.FrequencyDaily:
		return round2(mid * WorkingDaysPerYear)
	default:
		return round2(mid * WorkingDaysPerYear * WorkingHoursPerDay)
	}
}

// NormalizePosting computes the normalized salary for a posting, or nil when
// either salary bound is missing. Such postings are excluded from every
// salary-dependent computation downstream.
func NormalizePosting(p *models.Posting) *float64 {
	if p.SalaryFrom == nil || p.SalaryTo == nil {
		return nil
	}
	v := Normalize(*p.SalaryFrom, *p.SalaryTo, p.SalaryFrequency)
	return &v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
