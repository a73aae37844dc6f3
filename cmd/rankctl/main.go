// cmd/rankctl/main.go
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "rankctl",
		Usage: "Rank search candidates and maintain the activity registry",
		Commands: []*cli.Command{
			{
				Name:   "rank",
				Usage:  "Rank candidates for a query and print the JSON response",
				Action: rankCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "query",
						Aliases: []string{"q"},
						Usage:   "Free-text search query",
					},
					&cli.StringFlag{
						Name:    "state",
						Aliases: []string{"s"},
						Usage:   "State filter, e.g. TX",
						Value:   "All States",
					},
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "JSON file holding a candidate array (defaults to the demo records)",
					},
					&cli.BoolFlag{
						Name:  "entities",
						Usage: "Rank the demo organizations and affiliates instead of candidates",
					},
				},
			},
			{
				Name:  "registry",
				Usage: "Inspect or edit the activity registry",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "path",
						Aliases: []string{"p"},
						Usage:   "Path to registry file",
						Value:   "configs/activity-registry.json",
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "validate",
						Usage:  "Check naming, schemas and uniqueness",
						Action: registryValidateCommand,
					},
					{
						Name:   "list",
						Usage:  "List registered activities",
						Action: registryListCommand,
					},
					{
						Name:   "check",
						Usage:  "Validate job variables against a task type's input schema",
						Action: registryCheckCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "task", Usage: "Task type", Required: true},
							&cli.StringFlag{Name: "vars", Usage: "Job variables as JSON", Required: true},
						},
					},
					{
						Name:   "add",
						Usage:  "Register a new activity",
						Action: registryAddCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{Name: "id", Usage: "Activity ID (e.g., search.request.parse)", Required: true},
							&cli.StringFlag{Name: "task", Usage: "Task type (e.g., parse-search-request)", Required: true},
							&cli.StringFlag{Name: "name", Usage: "Display name", Required: true},
							&cli.StringFlag{Name: "description", Usage: "Description"},
							&cli.StringFlag{Name: "category", Usage: "Category", Value: "search"},
							&cli.StringFlag{Name: "version", Usage: "Version", Value: "1.0.0"},
							&cli.StringFlag{Name: "timeout", Usage: "Job timeout", Value: "10s"},
							&cli.StringFlag{Name: "status", Usage: "Implementation status", Value: "planned"},
						},
					},
					{
						Name:      "status",
						Usage:     "Set an activity's implementation status",
						ArgsUsage: "<id> <status>",
						Action:    registryStatusCommand,
					},
				},
			},
		},
	}
}
