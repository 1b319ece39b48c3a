package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/dillweed/terminal-chat/api"
	"github.com/dillweed/terminal-chat/cli/config"
	"github.com/dillweed/terminal-chat/iox"
	"github.com/dillweed/terminal-chat/log"
	"github.com/dillweed/terminal-chat/outcome"
	"github.com/dillweed/terminal-chat/render"
	"github.com/dillweed/terminal-chat/stream"
)

// Exit codes. Anything short of a successful reply is non-zero so callers
// can script on the result.
const (
	exitSuccess = 0
	exitFailure = 1
)

// AskAction is the root action: send one prompt, stream the reply.
func AskAction(c *cli.Context) error {
	settings, err := resolveSettings(c)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	if !api.ValidVerbosity(settings.Verbosity) {
		return cli.Exit(fmt.Sprintf("invalid verbosity %q: must be low, medium, or high", settings.Verbosity), exitFailure)
	}
	if settings.APIKey == "" {
		return cli.Exit(fmt.Sprintf("%s is not set", config.EnvAPIKey), exitFailure)
	}

	prompt, err := acquirePrompt(c.Args().Slice(), os.Stdin, isTTY(os.Stdin), os.Stderr)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}

	logger, err := buildLogger(settings)
	if err != nil {
		return cli.Exit(err.Error(), exitFailure)
	}
	defer iox.DiscardErr(logger.Sync)

	outStyles := outputStyles(c.Bool("no-color"), os.Stdout)
	errStyles := outputStyles(c.Bool("no-color"), os.Stderr)
	renderer := render.New(os.Stdout, settings.Model, outStyles)
	client := api.New(api.Config{APIKey: settings.APIKey, BaseURL: settings.BaseURL})

	store, err := defaultStore()
	if err != nil {
		// Artifacts are advisory; a broken store never blocks the ask.
		logger.Warn("artifact store unavailable", map[string]any{"error": err.Error()})
	}

	req := api.Request{
		Model:     settings.Model,
		Verbosity: settings.Verbosity,
		System:    settings.SystemPrompt,
		Prompt:    prompt,
	}
	logger.Info("request resolved", map[string]any{
		"base_url":      settings.BaseURL,
		"prompt_length": len(prompt),
	})

	start := time.Now()
	body, err := client.Stream(c.Context, req)
	if err != nil {
		logger.Error("request failed", map[string]any{"error": err.Error()})
		return cli.Exit(errStyles.Error.Render(fmt.Sprintf("request failed: %v", err)), exitFailure)
	}
	defer iox.DiscardClose(body)

	res := streamReply(body, renderer, logger, os.Stderr, errStyles)
	res.Elapsed = time.Since(start)
	renderer.EndLine()

	o := outcome.Determine(res)
	logger.Info("outcome", map[string]any{
		"status":  string(o.Status),
		"message": o.Message,
		"elapsed": o.Elapsed.Seconds(),
		"bytes":   len(o.Text),
	})

	if store != nil {
		if err := outcome.Persist(o, store); err != nil {
			logger.Error("artifact write failed", map[string]any{"error": err.Error()})
		}
	}

	switch o.Status {
	case outcome.StatusSuccess:
		renderer.PrintElapsed(o.Elapsed)
		return nil
	case outcome.StatusEmpty:
		fmt.Fprintln(os.Stderr, errStyles.Meta.Render("empty response: the stream completed without any text"))
		return cli.Exit("", exitFailure)
	default:
		return cli.Exit(errStyles.Error.Render("error: "+o.Message), exitFailure)
	}
}

// streamReply consumes the decoded event stream, drives the renderer, and
// reports what it observed. The caller stamps the elapsed time.
func streamReply(body io.Reader, renderer *render.Renderer, logger *log.Logger, stderr io.Writer, styles render.Styles) outcome.StreamResult {
	dec := stream.NewDecoder(body)

	var res outcome.StreamResult
	for {
		ev, err := dec.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				// A mid-stream read failure ends decoding like a normal
				// end-of-stream; the decision table handles what remains.
				fmt.Fprintln(stderr, styles.Meta.Render(fmt.Sprintf("stream interrupted: %v", err)))
				logger.Warn("stream read failed", map[string]any{"error": err.Error()})
			}
			break
		}

		logger.Debug("stream event", map[string]any{
			"kind":  ev.Kind.String(),
			"name":  ev.Name,
			"bytes": len(ev.Payload),
		})

		switch ev.Kind {
		case stream.KindTextDelta:
			renderer.HandleDelta(ev.Payload)
		case stream.KindError:
			res.SawError = true
			res.ErrorPayload = string(ev.Payload)
		case stream.KindDone:
			res.SawDone = true
			res.DonePayload = string(ev.Payload)
		}
	}

	res.Text = renderer.Text()
	res.Leftover = dec.Leftover()
	return res
}

// resolveSettings loads the config file and computes effective settings
// from flags, environment, file, and defaults.
func resolveSettings(c *cli.Context) (config.Settings, error) {
	path := c.String("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Settings{}, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Settings{}, err
	}

	flags := config.Overrides{
		Model:     c.String("model"),
		Verbosity: c.String("verbosity"),
		System:    c.String("system"),
		DebugLog:  c.String("debug-log"),
	}
	return config.Resolve(flags, cfg), nil
}

// buildLogger opens the JSONL debug logger when configured, else a no-op.
func buildLogger(settings config.Settings) (*log.Logger, error) {
	if settings.DebugLog == "" {
		return log.NewNop(), nil
	}
	return log.NewFileLogger(settings.DebugLog, settings.Model, settings.Verbosity)
}

// outputStyles picks the style set for messages written to f. Stdout and
// stderr are judged separately: redirecting one must not leak ANSI codes
// into it just because the other is a terminal.
func outputStyles(noColor bool, f *os.File) render.Styles {
	if noColor || !isTTY(f) {
		return render.PlainStyles()
	}
	return render.DefaultStyles()
}

// defaultStore opens the fixed artifact location,
// <user-config-dir>/terminal-chat/.
func defaultStore() (outcome.Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve artifact dir: %w", err)
	}
	return outcome.NewDirStore(filepath.Join(dir, "terminal-chat")), nil
}
