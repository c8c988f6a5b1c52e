// Package config loads the pcrex command configuration.
//
// A configuration file is YAML. Every field is optional; fields absent
// from the file keep their default, and command-line flags override both.
//
//	pattern: '(?<=\d{4})[^\d\s]{3,11}(?=\S)'
//	subject: 'a;jhgoqoghqoj0329 u0tyu10hg0h9Y0Y...'
//	address: 127.0.0.1:7878
//	engine: backtrack
//	options: [utf, ucp]
//	log_level: info
//	receive_buffer: 0
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/coregx/pcrex"
	"github.com/coregx/pcrex/native"
)

// Demo pattern and subject: runs of 3 to 11 characters that are neither
// digits nor whitespace, preceded by four digits and followed by a
// non-whitespace character.
const (
	DefaultPattern = `(?<=\d{4})[^\d\s]{3,11}(?=\S)`
	DefaultSubject = `a;jhgoqoghqoj0329 u0tyu10hg0h9Y0Y9827342482y(Y0y(G)_)lajf;lqjfgqhgpqjopjqa=)*(^!@#$%^&*())9999999`
	DefaultAddress = "127.0.0.1:7878"
)

// Config is the command configuration.
type Config struct {
	// Pattern is the regular expression to match.
	Pattern string `yaml:"pattern"`

	// Subject is the text to scan when no input file is given.
	Subject string `yaml:"subject"`

	// Address is the UDP destination for send and the bind address for listen.
	Address string `yaml:"address"`

	// Engine names the registered engine. Empty selects the default.
	Engine string `yaml:"engine"`

	// Options are compile option names, see OptionNames.
	// Empty selects "utf" and "ucp".
	Options []string `yaml:"options"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// ReceiveBuffer is the socket receive buffer for listen, in bytes.
	// Zero keeps the system default.
	ReceiveBuffer int `yaml:"receive_buffer"`
}

// DefaultConfig returns a Config with the demo pattern and subject.
func DefaultConfig() *Config {
	return &Config{
		Pattern:  DefaultPattern,
		Subject:  DefaultSubject,
		Address:  DefaultAddress,
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file yields the defaults
// without error; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if c.Pattern == "" {
		return errors.New("pattern must not be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	if c.ReceiveBuffer < 0 {
		return fmt.Errorf("receive_buffer must be >= 0, got %d", c.ReceiveBuffer)
	}
	if c.Engine != "" {
		if _, ok := native.Lookup(c.Engine); !ok {
			return fmt.Errorf("unknown engine %q, available: %s", c.Engine, strings.Join(native.Names(), ", "))
		}
	}
	if _, err := ParseOptions(c.Options); err != nil {
		return err
	}
	return nil
}

// RegexConfig converts c into a library configuration.
func (c *Config) RegexConfig() (pcrex.Config, error) {
	cfg := pcrex.DefaultConfig()
	if c.Engine != "" {
		lib, err := pcrex.LibraryByName(c.Engine)
		if err != nil {
			return cfg, err
		}
		cfg.Library = lib
	}
	opts, err := ParseOptions(c.Options)
	if err != nil {
		return cfg, err
	}
	cfg.Options = opts
	return cfg, nil
}

// OptionNames maps option names accepted in configuration files and on
// the command line to compile flags.
var OptionNames = map[string]pcrex.Options{
	"caseless":       pcrex.Caseless,
	"multiline":      pcrex.Multiline,
	"dotall":         pcrex.DotAll,
	"extended":       pcrex.Extended,
	"ungreedy":       pcrex.Ungreedy,
	"no-autocapture": pcrex.NoAutoCapture,
	"literal":        pcrex.Literal,
	"anchored":       pcrex.Anchored,
	"end-anchored":   pcrex.EndAnchored,
	"dollar-endonly": pcrex.DollarEndOnly,
	"firstline":      pcrex.FirstLine,
	"utf":            pcrex.UTF,
	"ucp":            pcrex.UCP,
	"ascii":          pcrex.ASCIIOptions,
}

// ParseOptions ORs the named options together. An empty list yields
// pcrex.DefaultOptions.
func ParseOptions(names []string) (pcrex.Options, error) {
	if len(names) == 0 {
		return pcrex.DefaultOptions, nil
	}
	var opts pcrex.Options
	for _, name := range names {
		flag, ok := OptionNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, fmt.Errorf("unknown option %q, available: %s", name, strings.Join(optionList(), ", "))
		}
		opts |= flag
	}
	return opts, nil
}

func optionList() []string {
	names := make([]string, 0, len(OptionNames))
	for name := range OptionNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
