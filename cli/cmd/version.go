package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// Version is the canonical project version.
const Version = "0.2.0"

// VersionCommand returns the version command. It never contacts the API.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "terminal-chat %s (commit: %s)\n", Version, commit)
			return nil
		},
	}
}
