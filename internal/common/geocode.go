package common

import (
	"context"
	"log/slog"

	"github.com/jmfield/postings-atlas/models"
	"github.com/jmfield/postings-atlas/pkg/geocode"
	"github.com/jmfield/postings-atlas/pkg/report"
)

// ResolveLocations resolves each posting's work location sequentially
// through the cache-backed resolver. maxLookups caps external-service
// calls for the run (0 means no cap); once hit, remaining rows are answered
// from the cache only. Rows that stay unresolved are counted and skipped,
// not failed.
func ResolveLocations(ctx context.Context, logger *slog.Logger, resolver *geocode.Resolver, postings []models.Posting, maxLookups int) ([]report.LocatedPosting, int, error) {
	var located []report.LocatedPosting
	unresolved := 0
	capReached := false

	for _, p := range postings {
		if p.WorkLocation == "" {
			unresolved++
			continue
		}

		if !capReached && maxLookups > 0 && resolver.Lookups >= maxLookups {
			capReached = true
			logger.Info("external lookup cap reached, remaining rows use cache only", "cap", maxLookups)
		}

		var entry *models.GeoCacheEntry
		if capReached {
			cached, hit, err := resolver.ResolveCached(p.WorkLocation)
			if err != nil {
				return nil, 0, err
			}
			if !hit {
				unresolved++
				continue
			}
			entry = cached
		} else {
			resolved, hit, err := resolver.Resolve(ctx, p.WorkLocation)
			if err != nil {
				if ctx.Err() != nil {
					return nil, 0, err
				}
				logger.Error("geocode lookup failed", "location", p.WorkLocation, "error", err)
				unresolved++
				continue
			}
			if !hit && resolved.Resolved {
				logger.Info("resolved location", "location", p.WorkLocation)
			}
			entry = resolved
		}

		if !entry.Resolved {
			unresolved++
			continue
		}
		located = append(located, report.LocatedPosting{Posting: p, Entry: *entry})
	}

	return located, unresolved, nil
}
