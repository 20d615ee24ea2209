package cmd

import (
	"errors"
	"os"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/csstreelang/csscore/internal/lexer"
	"github.com/csstreelang/csscore/internal/printer"
)

// Config is the optional .csstoolrc.yaml shape: the library's own
// FeatureSet and serializer Options, unmarshaled directly rather than
// through a parallel CLI-only config type (SPEC_FULL.md §B.3).
type Config struct {
	Features lexer.FeatureSet `yaml:"features"`
	Print    printer.Options  `yaml:"print"`
}

// DefaultConfig returns the byte-identical round-trip serializer options
// with no lexer feature flags enabled, used when no .csstoolrc.yaml is
// found.
func DefaultConfig() Config {
	return Config{Print: printer.Default()}
}

// LoadConfig reads ".csstoolrc.yaml" from dir, if present. A missing file
// is not an error: it just means DefaultConfig applies.
func LoadConfig(dir string) (Config, error) {
	cfg := DefaultConfig()

	name := path.Join(dir, ".csstoolrc.yaml")
	contents, err := os.ReadFile(name)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
