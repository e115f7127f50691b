package common

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jmfield/postings-atlas/models"
	"github.com/jmfield/postings-atlas/pkg/db"
	"github.com/jmfield/postings-atlas/pkg/geocode"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	calls   int
	results map[string]geocode.Result
}

func (s *stubGeocoder) Geocode(_ context.Context, query string) (geocode.Result, error) {
	s.calls++
	if r, ok := s.results[query]; ok {
		return r, nil
	}
	return geocode.Result{Found: false}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testResolver(t *testing.T, geocoder geocode.Geocoder) *geocode.Resolver {
	t.Helper()
	store, err := db.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return geocode.NewResolver(geocoder, store)
}

func TestResolveLocations(t *testing.T) {
	geocoder := &stubGeocoder{results: map[string]geocode.Result{
		"55 Water St": {Latitude: 40.7033, Longitude: -74.0087, Found: true},
		"1 Centre St": {Latitude: 40.7128, Longitude: -74.006, Found: true},
	}}
	resolver := testResolver(t, geocoder)

	postings := []models.Posting{
		{BusinessTitle: "Analyst", WorkLocation: "55 Water St"},
		{BusinessTitle: "Clerk", WorkLocation: ""},
		{BusinessTitle: "Inspector", WorkLocation: "Various Locations"},
		{BusinessTitle: "Engineer", WorkLocation: "1 Centre St"},
		{BusinessTitle: "Aide", WorkLocation: "55 Water St"},
	}

	located, unresolved, err := ResolveLocations(context.Background(), discardLogger(), resolver, postings, 0)
	require.NoError(t, err)

	// Analyst, Engineer, and Aide resolve; blank and no-match rows do not.
	require.Len(t, located, 3)
	require.Equal(t, 2, unresolved)
	// Three distinct non-blank locations, one repeated: three external calls.
	require.Equal(t, 3, geocoder.calls)
	require.Equal(t, "Analyst", located[0].Posting.BusinessTitle)
	require.Equal(t, 40.7033, *located[0].Entry.Latitude)
}

func TestResolveLocationsLookupCap(t *testing.T) {
	geocoder := &stubGeocoder{results: map[string]geocode.Result{
		"A": {Latitude: 1, Longitude: 1, Found: true},
		"B": {Latitude: 2, Longitude: 2, Found: true},
		"C": {Latitude: 3, Longitude: 3, Found: true},
	}}
	resolver := testResolver(t, geocoder)

	postings := []models.Posting{
		{WorkLocation: "A"},
		{WorkLocation: "B"},
		{WorkLocation: "C"},
		{WorkLocation: "A"}, // cached by then, still answered under the cap
	}

	located, unresolved, err := ResolveLocations(context.Background(), discardLogger(), resolver, postings, 2)
	require.NoError(t, err)
	require.Equal(t, 2, geocoder.calls, "cap limits external calls, not cache reads")
	require.Len(t, located, 3, "A, B, and the cached repeat of A")
	require.Equal(t, 1, unresolved, "C fell beyond the cap")
}
