package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/nube-system/nubepurge"
	"github.com/nube-system/nubepurge/internal/purge"
)

var k = koanf.New(".")

// Safelist applied when neither the config file nor the environment sets one
var (
	defaultStandardSafelist = []string{"html", "body"}
	defaultGreedySafelist   = []string{"^is-", "^has-", "^data-"}
)

// listKeys hold space-separated lists when set through the environment
var listKeys = map[string]bool{
	"extensions":        true,
	"safelist.standard": true,
	"safelist.greedy":   true,
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".nubepurge.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence; unset flags only fill missing keys)
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (NUBEPURGE_* prefix)
	if err := k.Load(env.ProviderWithValue("NUBEPURGE_", ".", func(key, value string) (string, interface{}) {
		key = envKey(key)
		if listKeys[key] {
			return key, strings.Fields(value)
		}
		return key, value
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps an environment variable to a config key:
// NUBEPURGE_MIN_SIBLING -> min-sibling
// NUBEPURGE_WATCH_DEBOUNCE -> watch.debounce
// NUBEPURGE_SAFELIST_GREEDY -> safelist.greedy
func envKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, "NUBEPURGE_"))
	for _, section := range []string{"safelist", "watch"} {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + strings.ReplaceAll(rest, "_", "-")
		}
	}
	return strings.ReplaceAll(key, "_", "-")
}

// buildConfig constructs the library's Config struct from koanf state.
func buildConfig() (nubepurge.Config, error) {
	safelist, err := buildSafelist()
	if err != nil {
		return nubepurge.Config{}, err
	}

	config := nubepurge.Config{
		ContentDir: getStringWithFallback("content", "content", nubepurge.DefaultContentDir),
		SourcePath: getStringWithFallback("source", "source", nubepurge.DefaultSourcePath),
		OutputPath: getStringWithFallback("output", "output", ""),
		Extensions: getStringsWithFallback("extensions", "extensions", nubepurge.DefaultExtensions),
		Minify:     getBoolWithFallback("minify", "minify", false),
		MinSibling: getBoolWithFallback("min-sibling", "min-sibling", false),
		Gitignore:  getBoolWithFallback("gitignore", "gitignore", false),
		Safelist:   safelist,
		Logger:     newLogger(getBoolWithFallback("verbose", "verbose", false)),
	}

	return config, nil
}

// buildSafelist compiles the configured safelist. The greedy entries are
// regular expressions matched against each identifier of a selector.
func buildSafelist() (purge.Safelist, error) {
	safelist := purge.Safelist{
		Standard: defaultStandardSafelist,
	}
	if k.Exists("safelist.standard") {
		safelist.Standard = k.Strings("safelist.standard")
	}

	greedy := defaultGreedySafelist
	if k.Exists("safelist.greedy") {
		greedy = k.Strings("safelist.greedy")
	}
	for _, pattern := range greedy {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return purge.Safelist{}, fmt.Errorf("safelist.greedy %q: %w", pattern, err)
		}
		safelist.Greedy = append(safelist.Greedy, re)
	}

	return safelist, nil
}

// newLogger returns a debug logger on stderr when verbose, a discarding one otherwise
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}
