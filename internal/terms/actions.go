package terms

import (
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/jmfield/postings-atlas/internal/common"
	"github.com/jmfield/postings-atlas/models"
	"github.com/jmfield/postings-atlas/pkg/dataset"
	"github.com/jmfield/postings-atlas/pkg/report"
	"github.com/jmfield/postings-atlas/pkg/textfreq"
)

// TermsAction runs the term-frequency pipeline for one salary bracket.
// Without --stopwords it writes only the phase-one raw table, which is the
// artifact the curated removal list gets built from; with --stopwords it
// writes both phases.
func TermsAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	bracket, err := parseBracket(c.String("bracket"))
	if err != nil {
		return err
	}

	postings, err := dataset.Load(config.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load postings: %w", err)
	}

	var subset []models.Posting
	if bracket == report.BracketHigh {
		subset = dataset.HighSalary(postings, config.HighSalaryThreshold)
	} else {
		subset = dataset.LowSalary(postings, config.LowSalaryThreshold)
	}
	corpus := dataset.Qualifications(subset)

	stopwords, err := customStopwords(c, config, bracket)
	if err != nil {
		return err
	}

	opts := []textfreq.Option{}
	if config.EnglishOnly {
		opts = append(opts, textfreq.WithEnglishOnly())
	}
	if len(stopwords) > 0 {
		opts = append(opts, textfreq.WithCustomStopwords(stopwords))
	}
	pipeline := textfreq.NewPipeline(opts...)

	writer := report.NewWriter(config.OutputDir)
	rawPath, err := writer.WriteRawTerms(bracket, pipeline.RawFrequencies(corpus))
	if err != nil {
		return err
	}
	logger.Info("wrote raw term table", "bracket", bracket, "path", rawPath, "documents", len(corpus))

	if len(stopwords) == 0 {
		logger.Info("no custom stopwords supplied, skipping filtered pass",
			"hint", "inspect the raw table, then re-run with --stopwords")
		return nil
	}

	path, err := writer.WriteTerms(bracket, pipeline.Frequencies(corpus))
	if err != nil {
		return err
	}
	logger.Info("wrote filtered term table", "bracket", bracket, "path", path, "custom_stopwords", len(stopwords))
	return nil
}

func parseBracket(s string) (report.Bracket, error) {
	switch s {
	case "high", "":
		return report.BracketHigh, nil
	case "low":
		return report.BracketLow, nil
	default:
		return "", fmt.Errorf("invalid bracket %q (want high or low)", s)
	}
}

// customStopwords merges the config list for the bracket with an optional
// --stopwords file of one word per line.
func customStopwords(c *cli.Context, config *models.Config, bracket report.Bracket) ([]string, error) {
	words := config.HighBracketStopwords
	if bracket == report.BracketLow {
		words = config.LowBracketStopwords
	}

	if path := c.String("stopwords"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read stopword file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			words = append(words, line)
		}
	}
	return words, nil
}
