package geocode

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/jmfield/postings-atlas/internal/common"
	"github.com/jmfield/postings-atlas/pkg/dataset"
	"github.com/jmfield/postings-atlas/pkg/db"
	geo "github.com/jmfield/postings-atlas/pkg/geocode"
	"github.com/jmfield/postings-atlas/pkg/report"
)

// GeocodeAction resolves work locations for both salary brackets and writes
// the map artifacts, without touching the other pipelines. Useful for
// warming the cache incrementally under a --max-lookups budget.
func GeocodeAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	postings, err := dataset.Load(config.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load postings: %w", err)
	}

	database, err := db.Open(config.CacheDB)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer database.Close()

	writer := report.NewWriter(config.OutputDir)
	resolver := geo.NewResolver(geo.NewNominatim(config.Geocoder), database)

	high := dataset.HighSalary(postings, config.HighSalaryThreshold)
	low := dataset.LowSalary(postings, config.LowSalaryThreshold)

	var allPoints []report.MapPoint
	highLocated, highUnresolved, err := common.ResolveLocations(c.Context, logger, resolver, high, config.Geocoder.MaxLookups)
	if err != nil {
		return err
	}
	if _, err := writer.WriteMapCSV(report.BracketHigh, highLocated); err != nil {
		return err
	}
	allPoints = append(allPoints, report.Points(report.BracketHigh, highLocated)...)

	lowLocated, lowUnresolved, err := common.ResolveLocations(c.Context, logger, resolver, low, config.Geocoder.MaxLookups)
	if err != nil {
		return err
	}
	if _, err := writer.WriteMapCSV(report.BracketLow, lowLocated); err != nil {
		return err
	}
	allPoints = append(allPoints, report.Points(report.BracketLow, lowLocated)...)

	mapPath, err := writer.WriteMapHTML(allPoints)
	if err != nil {
		return err
	}
	logger.Info("wrote map artifacts",
		"path", mapPath,
		"lookups", resolver.Lookups,
		"unresolved", highUnresolved+lowUnresolved)
	return nil
}
