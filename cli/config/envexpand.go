// Package config handles YAML config file loading and effective-setting
// resolution for terminal-chat.
package config

import (
	"os"
	"regexp"
)

// envVarPattern matches ${VAR} and ${VAR:-default} references.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnv substitutes ${VAR} and ${VAR:-default} references in input
// with environment values. ${VAR:-default} falls back to the default when
// VAR is unset or empty.
//
// A plain ${VAR} for an unset variable becomes the empty string rather
// than an error; a required value that stays empty is caught downstream,
// at the validation step before any request is sent.
func ExpandEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}

		// groups[1] is the variable name, groups[2] the default.
		value, ok := os.LookupEnv(groups[1])
		if ok && value != "" {
			return value
		}
		if len(groups) >= 3 && groups[2] != "" {
			return groups[2]
		}
		return ""
	})
}
