package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// errEmptyPrompt rejects an invocation before any request is sent.
var errEmptyPrompt = errors.New("empty prompt: pass text as arguments, pipe it in, or type it interactively")

// isTTY returns true if f is a character device (an interactive terminal).
func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}

// acquirePrompt obtains the prompt text for one invocation, in precedence
// order:
//
//  1. Positional arguments, joined with single spaces.
//  2. Piped stdin (interactive=false): read everything.
//  3. Interactive terminal (interactive=true): print a hint to stderr,
//     then read stdin until EOF so multiline prompts work.
//
// A prompt that is empty after trimming is an input error.
func acquirePrompt(args []string, stdin io.Reader, interactive bool, stderr io.Writer) (string, error) {
	if prompt := strings.TrimSpace(strings.Join(args, " ")); prompt != "" {
		return prompt, nil
	}
	if len(args) > 0 {
		// Arguments were given but held only whitespace.
		return "", errEmptyPrompt
	}

	if interactive {
		fmt.Fprintln(stderr, "Enter prompt (Ctrl-D to send):")
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}

	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errEmptyPrompt
	}
	return prompt, nil
}
