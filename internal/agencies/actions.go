package agencies

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/jmfield/postings-atlas/internal/common"
	"github.com/jmfield/postings-atlas/pkg/dataset"
	"github.com/jmfield/postings-atlas/pkg/report"
)

// AgenciesAction writes only the agency ranking artifacts.
func AgenciesAction(c *cli.Context) error {
	logger := common.NewLogger(c)

	config, err := common.LoadConfig(c)
	if err != nil {
		return err
	}

	postings, err := dataset.Load(config.InputPath)
	if err != nil {
		return fmt.Errorf("failed to load postings: %w", err)
	}

	writer := report.NewWriter(config.OutputDir)
	if err := writer.WriteAgencyReports(postings, config.TopAgencies); err != nil {
		return err
	}
	logger.Info("wrote agency rankings", "rows", len(postings), "output_dir", config.OutputDir)
	return nil
}
