package run

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/jmfield/postings-atlas/internal/common"
	"github.com/jmfield/postings-atlas/models"
	"github.com/jmfield/postings-atlas/pkg/dataset"
	"github.com/jmfield/postings-atlas/pkg/db"
	"github.com/jmfield/postings-atlas/pkg/geocode"
	"github.com/jmfield/postings-atlas/pkg/report"
	"github.com/jmfield/postings-atlas/pkg/textfreq"
)

// RunAction executes the whole batch: load, aggregate, both term-frequency
// phases per salary bracket, geocoding, and every output artifact.
func RunAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	postings, err := dataset.Load(config.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load postings: %w", err)
	}
	logger.Info("loaded postings", "path", config.InputPath, "rows", len(postings))

	database, err := db.Open(config.CacheDB)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer database.Close()

	runID, err := database.StartRun(config.InputPath)
	if err != nil {
		return err
	}

	stats, err := runPipelines(c.Context, logger, config, postings, database)
	if err != nil {
		if failErr := database.FailRun(runID, err); failErr != nil {
			logger.Error("failed to record run failure", "error", failErr)
		}
		return err
	}

	if err := database.CompleteRun(runID, stats); err != nil {
		return err
	}
	logger.Info("run complete",
		"rows", stats.RowCount,
		"excluded_salary_rows", stats.ExcludedSalaryRows,
		"geocode_lookups", stats.GeocodeLookups,
		"geocode_unresolved", stats.GeocodeUnresolved)
	return nil
}

func runPipelines(ctx context.Context, logger *slog.Logger, config *models.Config, postings []models.Posting, database *db.DB) (db.RunStats, error) {
	stats := db.RunStats{RowCount: len(postings)}
	for _, p := range postings {
		if !p.HasSalary() {
			stats.ExcludedSalaryRows++
		}
	}

	writer := report.NewWriter(config.OutputDir)

	if err := writer.WriteAgencyReports(postings, config.TopAgencies); err != nil {
		return stats, err
	}
	logger.Info("wrote agency rankings", "agencies_top_n", config.TopAgencies)

	high := dataset.HighSalary(postings, config.HighSalaryThreshold)
	low := dataset.LowSalary(postings, config.LowSalaryThreshold)
	logger.Info("split salary brackets",
		"high", len(high), "low", len(low),
		"high_threshold", config.HighSalaryThreshold,
		"low_threshold", config.LowSalaryThreshold)

	brackets := []struct {
		bracket   report.Bracket
		postings  []models.Posting
		stopwords []string
	}{
		{report.BracketHigh, high, config.HighBracketStopwords},
		{report.BracketLow, low, config.LowBracketStopwords},
	}
	for _, b := range brackets {
		if err := writeTermReports(logger, writer, config, b.bracket, b.postings, b.stopwords); err != nil {
			return stats, err
		}
	}

	resolver := geocode.NewResolver(geocode.NewNominatim(config.Geocoder), database)
	allPoints := make([]report.MapPoint, 0)
	for _, b := range brackets {
		located, unresolved, err := common.ResolveLocations(ctx, logger, resolver, b.postings, config.Geocoder.MaxLookups)
		if err != nil {
			return stats, err
		}
		stats.GeocodeUnresolved += unresolved
		if _, err := writer.WriteMapCSV(b.bracket, located); err != nil {
			return stats, err
		}
		allPoints = append(allPoints, report.Points(b.bracket, located)...)
	}
	stats.GeocodeLookups = resolver.Lookups

	if _, err := writer.WriteMapHTML(allPoints); err != nil {
		return stats, err
	}

	_, err := writer.WriteRunSummary(report.RunSummary{
		InputPath:          config.InputPath,
		TotalRows:          stats.RowCount,
		ExcludedSalaryRows: stats.ExcludedSalaryRows,
		HighBracketRows:    len(high),
		LowBracketRows:     len(low),
		GeocodeLookups:     stats.GeocodeLookups,
		GeocodeUnresolved:  stats.GeocodeUnresolved,
	})
	return stats, err
}

// writeTermReports runs both term-frequency phases for one bracket corpus:
// the raw table goes to disk first so the custom removal list can be
// curated from it, then the filtered pass.
func writeTermReports(logger *slog.Logger, writer *report.Writer, config *models.Config, bracket report.Bracket, postings []models.Posting, stopwords []string) error {
	corpus := dataset.Qualifications(postings)

	opts := []textfreq.Option{}
	if config.EnglishOnly {
		opts = append(opts, textfreq.WithEnglishOnly())
	}
	if len(stopwords) > 0 {
		opts = append(opts, textfreq.WithCustomStopwords(stopwords))
	}
	pipeline := textfreq.NewPipeline(opts...)

	rawPath, err := writer.WriteRawTerms(bracket, pipeline.RawFrequencies(corpus))
	if err != nil {
		return err
	}
	logger.Info("wrote raw term table", "bracket", bracket, "path", rawPath, "documents", len(corpus))

	path, err := writer.WriteTerms(bracket, pipeline.Frequencies(corpus))
	if err != nil {
		return err
	}
	logger.Info("wrote filtered term table", "bracket", bracket, "path", path, "custom_stopwords", len(stopwords))
	return nil
}
