// Package cmd provides CLI commands for the terminal-chat binary.
package cmd

import "github.com/urfave/cli/v2"

// RootFlags returns the flags of the root ask action.
func RootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "model",
			Aliases: []string{"m"},
			Usage:   "Model identifier",
		},
		&cli.StringFlag{
			Name:  "verbosity",
			Usage: "Text verbosity: low, medium, high",
		},
		&cli.StringFlag{
			Name:  "system",
			Usage: "System instruction override",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "Config file path (default: <user-config-dir>/terminal-chat/config.yaml)",
		},
		&cli.StringFlag{
			Name:  "debug-log",
			Usage: "Append structured JSONL debug records to PATH",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored output",
		},
	}
}
