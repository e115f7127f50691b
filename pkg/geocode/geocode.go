// Package geocode resolves free-text work locations to coordinates through
// an injectable external service, memoizing every answer in a durable store
// so repeated runs never re-ask for a location already seen.
package geocode

import (
	"context"
	"strings"

	"github.com/jmfield/postings-atlas/models"
)

// Result is one answer from the external geocoding collaborator.
type Result struct {
	Latitude  float64
	Longitude float64
	Address   string
	Found     bool
}

// Geocoder is the external lookup collaborator.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Result, error)
}

// Store is the durable key-value cache backing the resolver.
type Store interface {
	GetGeocode(locationQuery string) (*models.GeoCacheEntry, bool, error)
	PutGeocode(entry *models.GeoCacheEntry) error
}

// Resolver answers location queries from the store first and falls through
// to the geocoder only for queries never seen before. Both matches and
// explicit no-match answers are persisted; a no-match is not retried until
// the caller clears the store or re-runs explicitly.
type Resolver struct {
	geocoder Geocoder
	store    Store

	// Lookups counts external-service calls made through this resolver.
	Lookups int
}

// NewResolver wires a geocoder to a store.
func NewResolver(geocoder Geocoder, store Store) *Resolver {
	return &Resolver{geocoder: geocoder, store: store}
}

// ResolveCached answers from the store only; it never calls the external
// service.
func (r *Resolver) ResolveCached(query string) (*models.GeoCacheEntry, bool, error) {
	if strings.TrimSpace(query) == "" {
		return &models.GeoCacheEntry{LocationQuery: query}, false, nil
	}
	return r.store.GetGeocode(query)
}

// Resolve returns the entry for a location string, consulting the store
// before the external service. The second return value reports a cache hit.
func (r *Resolver) Resolve(ctx context.Context, query string) (*models.GeoCacheEntry, bool, error) {
	if strings.TrimSpace(query) == "" {
		return &models.GeoCacheEntry{LocationQuery: query}, false, nil
	}

	if entry, ok, err := r.store.GetGeocode(query); err != nil {
		return nil, false, err
	} else if ok {
		return entry, true, nil
	}

	r.Lookups++
	result, err := r.geocoder.Geocode(ctx, query)
	if err != nil {
		// One sequential retry on transport errors; a clean "no match"
		// answer never reaches this path.
		r.Lookups++
		result, err = r.geocoder.Geocode(ctx, query)
		if err != nil {
			return nil, false, err
		}
	}

	entry := &models.GeoCacheEntry{
		LocationQuery: query,
		Resolved:      result.Found,
	}
	if result.Found {
		lat, lng := result.Latitude, result.Longitude
		entry.Latitude = &lat
		entry.Longitude = &lng
		if result.Address != "" {
			addr := result.Address
			entry.ResolvedAddress = &addr
		}
	}

	if err := r.store.PutGeocode(entry); err != nil {
		return nil, false, err
	}
	return entry, false, nil
}
