package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmfield/postings-atlas/models"
)

// GetGeocode returns the cached entry for a location string, if any.
func (db *DB) GetGeocode(locationQuery string) (*models.GeoCacheEntry, bool, error) {
	entry := models.GeoCacheEntry{LocationQuery: locationQuery}
	var lat, lng sql.NullFloat64
	var addr sql.NullString

	err := db.QueryRow(`
		SELECT latitude, longitude, resolved_address, resolved
		FROM geocode_cache WHERE location_query = ?
	`, locationQuery).Scan(&lat, &lng, &addr, &entry.Resolved)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read geocode cache: %w", err)
	}

	if lat.Valid {
		entry.Latitude = &lat.Float64
	}
	if lng.Valid {
		entry.Longitude = &lng.Float64
	}
	if addr.Valid {
		entry.ResolvedAddress = &addr.String
	}
	return &entry, true, nil
}

// PutGeocode stores an entry for a location string. Entries are write-once:
// an existing row for the same query is left untouched.
func (db *DB) PutGeocode(entry *models.GeoCacheEntry) error {
	_, err := db.Exec(`
		INSERT INTO geocode_cache (location_query, latitude, longitude, resolved_address, resolved)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(location_query) DO NOTHING
	`, entry.LocationQuery, nullFloat(entry.Latitude), nullFloat(entry.Longitude),
		nullString(entry.ResolvedAddress), entry.Resolved)
	if err != nil {
		return fmt.Errorf("failed to write geocode cache: %w", err)
	}
	return nil
}

// ResolvedGeocodes returns every cache entry with usable coordinates.
func (db *DB) ResolvedGeocodes() ([]models.GeoCacheEntry, error) {
	rows, err := db.Query(`
		SELECT location_query, latitude, longitude, resolved_address
		FROM geocode_cache WHERE resolved = 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resolved geocodes: %w", err)
	}
	defer rows.Close()

	var out []models.GeoCacheEntry
	for rows.Next() {
		var entry models.GeoCacheEntry
		var lat, lng sql.NullFloat64
		var addr sql.NullString
		if err := rows.Scan(&entry.LocationQuery, &lat, &lng, &addr); err != nil {
			return nil, fmt.Errorf("failed to scan geocode row: %w", err)
		}
		entry.Resolved = true
		if lat.Valid {
			entry.Latitude = &lat.Float64
		}
		if lng.Valid {
			entry.Longitude = &lng.Float64
		}
		if addr.Valid {
			entry.ResolvedAddress = &addr.String
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// RunStats is the row-count bookkeeping recorded at the end of a run.
type RunStats struct {
	RowCount           int
	ExcludedSalaryRows int
	GeocodeLookups     int
	GeocodeUnresolved  int
}

// StartRun records the start of a batch run and returns its id.
func (db *DB) StartRun(inputPath string) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (started_at, status, input_path)
		VALUES (?, 'started', ?)
	`, time.Now().UTC(), inputPath)
	if err != nil {
		return 0, fmt.Errorf("failed to record run start: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return runID, nil
}

// CompleteRun marks a run finished with its final counters.
func (db *DB) CompleteRun(runID int64, stats RunStats) error {
	_, err := db.Exec(`
		UPDATE runs
		SET completed_at = ?, status = 'completed',
		    row_count = ?, excluded_salary_rows = ?,
		    geocode_lookups = ?, geocode_unresolved = ?
		WHERE run_id = ?
	`, time.Now().UTC(), stats.RowCount, stats.ExcludedSalaryRows,
		stats.GeocodeLookups, stats.GeocodeUnresolved, runID)
	if err != nil {
		return fmt.Errorf("failed to record run completion: %w", err)
	}
	return nil
}

// FailRun marks a run failed with the fatal error message.
func (db *DB) FailRun(runID int64, runErr error) error {
	msg := ""
	if runErr != nil {
		msg = runErr.Error()
	}
	_, err := db.Exec(`
		UPDATE runs SET completed_at = ?, status = 'failed', error = ? WHERE run_id = ?
	`, time.Now().UTC(), msg, runID)
	if err != nil {
		return fmt.Errorf("failed to record run failure: %w", err)
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
