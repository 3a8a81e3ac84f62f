// Package config assembles the tool's run configuration from CLI flags, with
// optional .env-based overrides for operators scripting repeated runs. No
// on-disk persisted configuration is in scope: the tool is stateless across
// runs.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/zwimer/smllr/internal/filehash"
	"github.com/zwimer/smllr/internal/logging"
)

// Action selects what the actor pipeline does with each duplicate group.
type Action uint8

const (
	// ActionPrint reports groups without touching the filesystem.
	ActionPrint Action = iota
	// ActionDelete removes every non-keeper path.
	ActionDelete
	// ActionLink replaces every non-keeper path with a hardlink to the
	// keeper.
	ActionLink
)

// SelectPolicy chooses which Selector implementation and orientation to use.
type SelectPolicy uint8

const (
	// SelectShortest keeps the shallowest path (PathSelector, forward).
	SelectShortest SelectPolicy = iota
	// SelectLongest keeps the deepest path (PathSelector, reversed).
	SelectLongest
	// SelectOldest keeps the oldest file (DateSelector, reversed).
	SelectOldest
	// SelectNewest keeps the newest file (DateSelector, forward).
	SelectNewest
)

// Config holds every value the CLI assembles from flags (and, for a small
// set of fields, environment-variable overrides).
type Config struct {
	// Roots are the starting directories to scan.
	Roots []string
	// SkipPaths are exact path prefixes excluded from traversal.
	SkipPaths []string
	// SkipPatterns are compiled regexes matched against file base names.
	SkipPatterns []*regexp.Regexp
	// Algorithm is the digest strategy: MD5 by default, SHA3_256 when
	// --paranoid is set.
	Algorithm filehash.Algorithm
	// Action is what the actor pipeline does with each duplicate group.
	Action Action
	// Select is the keeper policy.
	Select SelectPolicy
	// Format controls Printer's output encoding.
	Format string
	// LogLevel is the root logger's level.
	LogLevel logging.Level
	// NoColor disables colorized output regardless of TTY detection.
	NoColor bool
}

// EnvOverrides merges optional .env-sourced overrides for
// SMLLR_LOG_LEVEL, SMLLR_NO_COLOR, and SMLLR_PARANOID into the process
// environment before flags are parsed, mirroring the shape of
// compose.LoadEnvironment but scoped to operator convenience rather than
// Compose-style variable interpolation: a missing .env file is not an error.
func EnvOverrides(dotenvPath string) error {
	values, err := godotenv.Read(dotenvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("unable to load environment file (%s): %w", dotenvPath, err)
	}
	for key, value := range values {
		if _, already := os.LookupEnv(key); already {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("unable to set %s: %w", key, err)
		}
	}
	return nil
}

// StringEnvOverride returns envVar's value when the flag it backs was not
// explicitly set on the command line and the variable is present in the
// environment; otherwise it returns value unchanged. changed is the flag's
// pflag.Flag.Changed (or cobra.Command.Flags().Changed(name)) result.
func StringEnvOverride(changed bool, envVar string, value string) string {
	if changed {
		return value
	}
	if v, ok := os.LookupEnv(envVar); ok {
		return v
	}
	return value
}

// BoolEnvOverride is StringEnvOverride for boolean flags. A present but
// unparseable envVar value is ignored in favor of value, since a malformed
// override should not be fatal for an already-valid flag default.
func BoolEnvOverride(changed bool, envVar string, value bool) bool {
	if changed {
		return value
	}
	if v, ok := os.LookupEnv(envVar); ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return value
}

// CompilePatterns compiles each regex blacklist pattern, returning a
// startup-fatal error on the first malformed expression, per the error
// handling design's Regex error kind.
func CompilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid skip regex %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// ParseAction converts a --action flag value into an Action.
func ParseAction(value string) (Action, error) {
	switch value {
	case "print":
		return ActionPrint, nil
	case "delete":
		return ActionDelete, nil
	case "link":
		return ActionLink, nil
	default:
		return 0, fmt.Errorf("unknown action: %s", value)
	}
}

// ParseSelectPolicy converts a --select flag value into a SelectPolicy.
func ParseSelectPolicy(value string) (SelectPolicy, error) {
	switch value {
	case "shortest":
		return SelectShortest, nil
	case "longest":
		return SelectLongest, nil
	case "oldest":
		return SelectOldest, nil
	case "newest":
		return SelectNewest, nil
	default:
		return 0, fmt.Errorf("unknown select policy: %s", value)
	}
}

// ParseFormat validates a --format flag value.
func ParseFormat(value string) (string, error) {
	switch value {
	case "text", "yaml":
		return value, nil
	default:
		return "", fmt.Errorf("unknown format: %s", value)
	}
}
