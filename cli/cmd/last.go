package cmd

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/dillweed/terminal-chat/outcome"
)

// LastCommand returns the last command. Read-only: it prints the artifact
// persisted by the most recent ask.
func LastCommand() *cli.Command {
	return &cli.Command{
		Name:  "last",
		Usage: "Print the last successful output (or last error payload)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "error",
				Usage: "Print the last error payload instead of the last output",
			},
		},
		Action: lastAction,
	}
}

func lastAction(c *cli.Context) error {
	store, err := defaultStore()
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	return printArtifact(c.App.Writer, store, c.Bool("error"))
}

// printArtifact writes the named artifact verbatim to w. A missing
// artifact is an error: nothing has been persisted yet.
func printArtifact(w io.Writer, store outcome.Store, wantError bool) error {
	name := outcome.LastOutputName
	if wantError {
		name = outcome.LastErrorName
	}

	data, err := store.Get(name)
	if err != nil {
		return cli.Exit(fmt.Sprintf("no %s artifact recorded yet", name), exitFailure)
	}

	fmt.Fprint(w, string(data))
	return nil
}
