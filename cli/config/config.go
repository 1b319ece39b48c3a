package config

import "os"

// Config represents a terminal-chat config.yaml file.
// All values are optional and act as defaults below environment variables
// and CLI flags in the resolution order.
type Config struct {
	Model        string `yaml:"model"`
	Verbosity    string `yaml:"verbosity"`
	SystemPrompt string `yaml:"system_prompt"`
	BaseURL      string `yaml:"base_url"`
	DebugLog     string `yaml:"debug_log"`
}

// Built-in defaults, used when no flag, environment variable, or config
// file value is set.
const (
	DefaultModel     = "gpt-5"
	DefaultVerbosity = "low"

	// DefaultSystemPrompt is the built-in instruction sent when no
	// override is configured.
	DefaultSystemPrompt = "You are a concise assistant answering a single " +
		"question in a terminal. Reply in plain text suited to a terminal " +
		"window; keep answers short unless asked otherwise."
)

// Environment variables consulted during resolution.
const (
	EnvModel     = "TERMINAL_CHAT_MODEL"
	EnvVerbosity = "TERMINAL_CHAT_VERBOSITY"
	EnvAPIKey    = "OPENAI_API_KEY"
	EnvBaseURL   = "OPENAI_BASE_URL"
)

// Overrides are the flag-level values passed down by the CLI layer.
// An empty field means the flag was not set.
type Overrides struct {
	Model     string
	Verbosity string
	System    string
	DebugLog  string
}

// Settings are the fully resolved effective settings for one invocation.
type Settings struct {
	Model        string
	Verbosity    string
	SystemPrompt string
	BaseURL      string
	APIKey       string
	DebugLog     string
}

// Resolve computes effective settings with precedence
// flag > environment > config file > built-in default.
//
// The API key comes from the environment only, and the base URL has no
// flag; both fall through to the config file where one exists. Validation
// (verbosity levels, required key) is the caller's concern.
func Resolve(flags Overrides, file *Config) Settings {
	if file == nil {
		file = &Config{}
	}

	return Settings{
		Model:        firstOf(flags.Model, os.Getenv(EnvModel), file.Model, DefaultModel),
		Verbosity:    firstOf(flags.Verbosity, os.Getenv(EnvVerbosity), file.Verbosity, DefaultVerbosity),
		SystemPrompt: firstOf(flags.System, file.SystemPrompt, DefaultSystemPrompt),
		BaseURL:      firstOf(os.Getenv(EnvBaseURL), file.BaseURL),
		APIKey:       os.Getenv(EnvAPIKey),
		DebugLog:     firstOf(flags.DebugLog, file.DebugLog),
	}
}

// firstOf returns the first non-empty value.
func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
