package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/sabia-pyme/backend-go/pkg/logger"
)

func newFormatFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "format",
		Usage: "Output format: json or csv",
		Value: formatJSON,
	}
}

func newOutputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Write the result to this file instead of stdout",
	}
}

func main() {
	// stdout carries command output
	logger.SetOutput(os.Stderr)

	app := &cli.App{
		Name:  "sabia",
		Usage: "Cost, margin and inventory analysis for small businesses",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Build the master profitability table from the six input tables",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "dir",
						Usage:   "Local directory holding the six CSV files",
						EnvVars: []string{"SABIA_INPUT_DIR"},
					},
					&cli.StringFlag{
						Name:  "bucket-prefix",
						Usage: "Key prefix in the configured storage bucket",
					},
					&cli.StringFlag{
						Name:  "drive-folder",
						Usage: "Google Drive folder id (defaults to GOOGLE_DRIVE_FOLDER_ID)",
					},
					newFormatFlag(),
					newOutputFlag(),
				},
				Action: runAnalyze,
			},
			{
				Name:  "inventory",
				Usage: "Analyze a single product report (CSV or XLSX)",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "file",
						Aliases:  []string{"f"},
						Usage:    "Path to the report",
						Required: true,
					},
					newFormatFlag(),
					newOutputFlag(),
				},
				Action: runInventory,
			},
			{
				Name:  "sample",
				Usage: "Write the demonstration report datos_pyme.csv",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output-dir",
						Usage: "Directory to write into (defaults to APP_DATA_DIR)",
					},
				},
				Action: runSample,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("Command failed")
	}
}
