package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jmfield/postings-atlas/internal/agencies"
	"github.com/jmfield/postings-atlas/internal/geocode"
	"github.com/jmfield/postings-atlas/internal/run"
	"github.com/jmfield/postings-atlas/internal/terms"
)

// sharedFlags apply to every command; per-flag values override the YAML
// config file.
func sharedFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "config.yaml",
			Usage: "path to the YAML config file",
		},
		&cli.StringFlag{
			Name:  "input",
			Usage: "path to the postings CSV (overrides config)",
		},
		&cli.StringFlag{
			Name:  "output-dir",
			Usage: "directory for output artifacts (overrides config)",
		},
		&cli.StringFlag{
			Name:  "cache-db",
			Usage: "path to the SQLite cache database (overrides config)",
		},
		&cli.BoolFlag{
			Name:  "english-only",
			Usage: "drop non-English qualification text before counting",
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "only log errors",
		},
	}
}

func main() {
	app := &cli.App{
		Name:  "postings-atlas",
		Usage: "batch analysis over a job-postings dataset",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Execute the full batch: rankings, term tables, geocoding, map",
				Flags:  append(sharedFlags(), maxLookupsFlag()),
				Action: run.RunAction,
			},
			{
				Name:   "agencies",
				Usage:  "Write the agency ranking artifacts only",
				Flags:  sharedFlags(),
				Action: agencies.AgenciesAction,
			},
			{
				Name:  "terms",
				Usage: "Run the term-frequency pipeline for one salary bracket",
				Flags: append(sharedFlags(),
					&cli.StringFlag{
						Name:  "bracket",
						Value: "high",
						Usage: "salary bracket: high or low",
					},
					&cli.StringFlag{
						Name:  "stopwords",
						Usage: "file with one custom stopword per line (enables the filtered pass)",
					},
				),
				Action: terms.TermsAction,
			},
			{
				Name:   "geocode",
				Usage:  "Resolve work locations through the cache and write map artifacts",
				Flags:  append(sharedFlags(), maxLookupsFlag()),
				Action: geocode.GeocodeAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func maxLookupsFlag() cli.Flag {
	return &cli.IntFlag{
		Name:  "max-lookups",
		Usage: "cap external geocoding calls for this run (0 = no cap)",
	}
}
