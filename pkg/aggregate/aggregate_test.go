package aggregate

import (
	"testing"

	"github.com/jmfield/postings-atlas/models"
	"github.com/stretchr/testify/require"
)

func posting(agency string, positions int) models.Posting {
	return models.Posting{Agency: agency, NumberOfPositions: positions}
}

func TestCountByAgency(t *testing.T) {
	postings := []models.Posting{
		posting("A", 1),
		posting("B", 2),
		posting("A", 3),
		posting("C", 1),
		posting("A", 1),
		posting("B", 1),
	}

	got := CountByAgency(postings)
	want := []models.AgencySummary{
		{Agency: "A", PostingCount: 3, TotalPositions: 5},
		{Agency: "B", PostingCount: 2, TotalPositions: 3},
		{Agency: "C", PostingCount: 1, TotalPositions: 1},
	}
	require.Equal(t, want, got)
}

func TestCountByAgencyPartitionInvariant(t *testing.T) {
	postings := []models.Posting{
		posting("X", 1), posting("Y", 1), posting("X", 1),
		posting("Z", 1), posting("Z", 1), posting("Z", 1),
	}

	summaries := CountByAgency(postings)
	total := 0
	for _, s := range summaries {
		total += s.PostingCount
	}
	require.Equal(t, len(postings), total, "posting counts must partition the input")
}

func TestCountByAgencyTieOrder(t *testing.T) {
	// B and C tie on count; B was seen first and must rank first.
	postings := []models.Posting{
		posting("B", 1),
		posting("C", 1),
		posting("A", 1),
		posting("A", 1),
	}

	got := CountByAgency(postings)
	require.Equal(t, "A", got[0].Agency)
	require.Equal(t, "B", got[1].Agency)
	require.Equal(t, "C", got[2].Agency)
}

func TestSumPositionsByAgency(t *testing.T) {
	postings := []models.Posting{
		posting("A", 1),
		posting("B", 10),
		posting("A", 2),
	}

	got := SumPositionsByAgency(postings)
	require.Equal(t, "B", got[0].Agency)
	require.Equal(t, 10, got[0].TotalPositions)
	require.Equal(t, "A", got[1].Agency)
	require.Equal(t, 3, got[1].TotalPositions)
}

func TestTopNBottomN(t *testing.T) {
	postings := []models.Posting{
		posting("A", 1), posting("A", 1), posting("A", 1),
		posting("B", 1), posting("B", 1),
		posting("C", 1),
	}
	ranked := CountByAgency(postings)

	top := TopN(ranked, 2)
	require.Len(t, top, 2)
	require.Equal(t, "A", top[0].Agency)
	require.Equal(t, "B", top[1].Agency)

	bottom := BottomN(ranked, 2)
	require.Len(t, bottom, 2)
	require.Equal(t, "B", bottom[0].Agency)
	require.Equal(t, "C", bottom[1].Agency)

	require.Len(t, TopN(ranked, 10), 3)
	require.Len(t, BottomN(ranked, 10), 3)
	require.Empty(t, TopN(ranked, 0))
}

func TestEmptyInput(t *testing.T) {
	require.Empty(t, CountByAgency(nil))
	require.Empty(t, SumPositionsByAgency(nil))
}
