// Package main provides the terminal-chat CLI entrypoint.
//
// One invocation sends a single stateless prompt to the Responses API and
// streams the reply to the terminal. Subcommands are read-only.
//
// Usage:
//
//	terminal-chat [flags] [prompt...]
//	terminal-chat last [--error]
//	terminal-chat version
//
// Exit codes:
//   - 0: success (reply text streamed)
//   - 1: error or empty response
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/dillweed/terminal-chat/cli/cmd"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	// A .env in the working directory supplies defaults; real environment
	// variables always win because godotenv never overrides set ones.
	_ = godotenv.Load()

	app := &cli.App{
		Name:           "terminal-chat",
		Usage:          "Send one prompt to a hosted model and stream the reply",
		ArgsUsage:      "[prompt...]",
		Version:        fmt.Sprintf("%s (commit: %s)", cmd.Version, commit),
		Flags:          cmd.RootFlags(),
		Action:         cmd.AskAction,
		ExitErrHandler: exitErrHandler,
		Commands: []*cli.Command{
			cmd.LastCommand(),
			cmd.VersionCommand(commit),
		},
	}

	if err := app.Run(os.Args); err != nil {
		// cli.ExitCoder errors already exited inside exitErrHandler;
		// whatever reaches here was never wrapped with a code.
		os.Exit(1)
	}
}

// exitErrHandler preserves the exit codes carried by cli.Exit errors so
// success and non-success stay unambiguous to callers.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	// errors.As sees through wrapping, so a wrapped cli.Exit keeps its code.
	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()

		// cli.Exit("", n) stringifies as "exit status n"; that synthetic
		// message is noise, so only real messages reach stderr.
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
