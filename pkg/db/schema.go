package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Geocode cache: one row per distinct location string ever looked up.
-- Unresolved lookups (no match from the geocoding service) keep NULL
-- coordinates; they are cached so the service is not asked again.
CREATE TABLE IF NOT EXISTS geocode_cache (
    location_query TEXT PRIMARY KEY,
    latitude REAL,
    longitude REAL,
    resolved_address TEXT,
    resolved BOOLEAN NOT NULL DEFAULT 0,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_geocode_resolved ON geocode_cache(resolved);

-- Run log: one row per batch run.
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at TIMESTAMP NOT NULL,
    completed_at TIMESTAMP,
    status TEXT NOT NULL DEFAULT 'started',   -- started, completed, failed
    input_path TEXT,
    row_count INTEGER DEFAULT 0,
    excluded_salary_rows INTEGER DEFAULT 0,
    geocode_lookups INTEGER DEFAULT 0,
    geocode_unresolved INTEGER DEFAULT 0,
    error TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
