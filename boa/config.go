package boa

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ConfigFormat is the syntax of a driver configuration file.
type ConfigFormat int

const (
	FormatTOML ConfigFormat = iota
	FormatYAML
)

func (f ConfigFormat) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

const (
	EmitAsm     = "asm"
	EmitListing = "listing"
	EmitAST     = "ast"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

var (
	emitModes  = []string{EmitAsm, EmitListing, EmitAST}
	colorModes = []string{ColorAuto, ColorAlways, ColorNever}
)

// Config controls the driver. The compiler itself takes no options.
type Config struct {
	// Emit selects what is written to the output path.
	Emit string `toml:"emit" yaml:"emit"`
	// Run executes the compiled instructions on the reference machine and
	// reports the result.
	Run bool `toml:"run" yaml:"run"`
	// Trace logs every instruction the reference machine executes.
	Trace bool `toml:"trace" yaml:"trace"`
	// Color controls highlighting of diagnostics on stderr.
	Color string `toml:"color" yaml:"color"`
	// Verbosity is passed to the logging backend.
	Verbosity int `toml:"verbosity" yaml:"verbosity"`
	// LogFile redirects logs from stderr to a file.
	LogFile string `toml:"log_file" yaml:"log_file"`
}

func DefaultConfig() Config {
	return Config{
		Emit:  EmitAsm,
		Color: ColorAuto,
	}
}

// LoadConfig reads a TOML or YAML file, chosen by extension, on top of the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	format, err := detectFormat(path)
	if err != nil {
		return cfg, err
	}
	return ParseConfig(content, format)
}

// ParseConfig decodes content on top of the defaults and validates it.
func ParseConfig(content []byte, format ConfigFormat) (Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %s", format)
	}
	return cfg, cfg.Validate()
}

func detectFormat(path string) (ConfigFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return FormatTOML, fmt.Errorf("cannot tell config format of %q: use .toml, .yaml or .yml", path)
}

func (c Config) Validate() error {
	if !slices.Contains(emitModes, c.Emit) {
		return fmt.Errorf("invalid emit mode %q (want one of %s)", c.Emit, strings.Join(emitModes, ", "))
	}
	if !slices.Contains(colorModes, c.Color) {
		return fmt.Errorf("invalid color mode %q (want one of %s)", c.Color, strings.Join(colorModes, ", "))
	}
	if c.Trace && !c.Run {
		return fmt.Errorf("trace requires run")
	}
	return nil
}
