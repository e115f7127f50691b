package db

import (
	"errors"
	"testing"

	"github.com/jmfield/postings-atlas/models"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	database := &DB{path: ":memory:"}
	var err error
	database.DB, err = openDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := database.InitSchema(); err != nil {
		t.Fatalf("failed to initialize schema: %v", err)
	}

	return database
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string { return &v }

func TestGeocodeCacheRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	entry := &models.GeoCacheEntry{
		LocationQuery:   "55 Water St, New York NY",
		Latitude:        floatPtr(40.7033),
		Longitude:       floatPtr(-74.0087),
		ResolvedAddress: strPtr("55 Water Street, Manhattan, New York"),
		Resolved:        true,
	}
	if err := db.PutGeocode(entry); err != nil {
		t.Fatalf("PutGeocode() error = %v", err)
	}

	got, ok, err := db.GetGeocode(entry.LocationQuery)
	if err != nil {
		t.Fatalf("GetGeocode() error = %v", err)
	}
	if !ok {
		t.Fatal("GetGeocode() cache miss after put")
	}
	if !got.Resolved || got.Latitude == nil || *got.Latitude != 40.7033 {
		t.Errorf("GetGeocode() = %+v, want resolved entry with latitude 40.7033", got)
	}
	if got.ResolvedAddress == nil || *got.ResolvedAddress != *entry.ResolvedAddress {
		t.Errorf("GetGeocode() address = %v, want %q", got.ResolvedAddress, *entry.ResolvedAddress)
	}
}

func TestGeocodeCacheMiss(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, ok, err := db.GetGeocode("nowhere in particular")
	if err != nil {
		t.Fatalf("GetGeocode() error = %v", err)
	}
	if ok {
		t.Error("GetGeocode() reported a hit for an unseen query")
	}
}

func TestGeocodeCacheWriteOnce(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	first := &models.GeoCacheEntry{
		LocationQuery: "1 Centre St, New York NY",
		Latitude:      floatPtr(40.7128),
		Longitude:     floatPtr(-74.0060),
		Resolved:      true,
	}
	if err := db.PutGeocode(first); err != nil {
		t.Fatalf("PutGeocode() error = %v", err)
	}

	// A second put for the same query must not clobber the first entry.
	second := &models.GeoCacheEntry{LocationQuery: first.LocationQuery, Resolved: false}
	if err := db.PutGeocode(second); err != nil {
		t.Fatalf("PutGeocode() second write error = %v", err)
	}

	got, ok, err := db.GetGeocode(first.LocationQuery)
	if err != nil || !ok {
		t.Fatalf("GetGeocode() = %v, %v", ok, err)
	}
	if !got.Resolved {
		t.Error("second PutGeocode overwrote the original entry")
	}
}

func TestUnresolvedEntryIsCached(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	unresolved := &models.GeoCacheEntry{LocationQuery: "Various Locations", Resolved: false}
	if err := db.PutGeocode(unresolved); err != nil {
		t.Fatalf("PutGeocode() error = %v", err)
	}

	got, ok, err := db.GetGeocode("Various Locations")
	if err != nil || !ok {
		t.Fatalf("unresolved entry not cached: %v, %v", ok, err)
	}
	if got.Resolved || got.Latitude != nil || got.Longitude != nil {
		t.Errorf("GetGeocode() = %+v, want unresolved entry with nil coordinates", got)
	}

	// Unresolved rows never show up in the render set.
	resolved, err := db.ResolvedGeocodes()
	if err != nil {
		t.Fatalf("ResolvedGeocodes() error = %v", err)
	}
	if len(resolved) != 0 {
		t.Errorf("ResolvedGeocodes() returned %d rows, want 0", len(resolved))
	}
}

func TestRunLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun("data/nyc-jobs.csv")
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if runID == 0 {
		t.Fatal("StartRun() returned 0 ID")
	}

	stats := RunStats{RowCount: 120, ExcludedSalaryRows: 4, GeocodeLookups: 17, GeocodeUnresolved: 2}
	if err := db.CompleteRun(runID, stats); err != nil {
		t.Fatalf("CompleteRun() error = %v", err)
	}

	var status string
	var rowCount int
	if err := db.QueryRow("SELECT status, row_count FROM runs WHERE run_id = ?", runID).Scan(&status, &rowCount); err != nil {
		t.Fatalf("failed to read run row: %v", err)
	}
	if status != "completed" || rowCount != 120 {
		t.Errorf("run row = (%s, %d), want (completed, 120)", status, rowCount)
	}
}

func TestFailRun(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	runID, err := db.StartRun("data/bad.csv")
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if err := db.FailRun(runID, errors.New("missing column Agency")); err != nil {
		t.Fatalf("FailRun() error = %v", err)
	}

	var status, msg string
	if err := db.QueryRow("SELECT status, error FROM runs WHERE run_id = ?", runID).Scan(&status, &msg); err != nil {
		t.Fatalf("failed to read run row: %v", err)
	}
	if status != "failed" || msg == "" {
		t.Errorf("run row = (%s, %q), want failed status with message", status, msg)
	}
}
