// Package aggregate groups postings by agency and produces ranked
// summaries. All functions are pure over the input sequence; summaries are
// recomputed fresh on every call.
package aggregate

import (
	"sort"

	"github.com/jmfield/postings-atlas/models"
)

// byAgency accumulates the per-agency reductions in one pass, remembering
// the order agencies were first seen so that ties rank reproducibly.
type byAgency struct {
	order     []string
	counts    map[string]int
	positions map[string]int
}

func collect(postings []models.Posting) *byAgency {
	acc := &byAgency{
		counts:    make(map[string]int),
		positions: make(map[string]int),
	}
	for _, p := range postings {
		if _, seen := acc.counts[p.Agency]; !seen {
			acc.order = append(acc.order, p.Agency)
		}
		acc.counts[p.Agency]++
		acc.positions[p.Agency] += p.NumberOfPositions
	}
	return acc
}

func (a *byAgency) summaries() []models.AgencySummary {
	out := make([]models.AgencySummary, 0, len(a.order))
	for _, agency := range a.order {
		out = append(out, models.AgencySummary{
			Agency:         agency,
			PostingCount:   a.counts[agency],
			TotalPositions: a.positions[agency],
		})
	}
	return out
}

// CountByAgency returns one summary per distinct agency, ranked descending
// by posting count. Equal counts keep first-encounter order.
func CountByAgency(postings []models.Posting) []models.AgencySummary {
	out := collect(postings).summaries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PostingCount > out[j].PostingCount
	})
	return out
}

// SumPositionsByAgency returns one summary per distinct agency, ranked
// descending by total open positions. Equal sums keep first-encounter order.
func SumPositionsByAgency(postings []models.Posting) []models.AgencySummary {
	out := collect(postings).summaries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalPositions > out[j].TotalPositions
	})
	return out
}

// TopN returns the first n entries of a ranked summary sequence.
func TopN(summaries []models.AgencySummary, n int) []models.AgencySummary {
	if n > len(summaries) {
		n = len(summaries)
	}
	if n < 0 {
		n = 0
	}
	return summaries[:n]
}

// BottomN returns the last n entries of a ranked summary sequence, lowest
// ranked last.
func BottomN(summaries []models.AgencySummary, n int) []models.AgencySummary {
	if n > len(summaries) {
		n = len(summaries)
	}
	if n < 0 {
		n = 0
	}
	return summaries[len(summaries)-n:]
}
