// Package testutil loads YAML-described golden fixtures shared across
// this module's test suites. Grounded on vippsas-sqlcode's
// sqlparser.Document.DocstringYamldoc/yaml.Unmarshal pattern (decode an
// external YAML document straight into a typed Go value, rather than
// hand-parsing it) -- see DESIGN.md.
package testutil

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

// Case is one golden fixture entry: Name identifies the subtest, Input
// is the source text, Want is the expected output. For a pure round-trip
// fixture Want is left empty and callers should compare against Input
// itself.
type Case struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input"`
	Want  string `yaml:"want"`
}

// WantOrInput returns Want if it was set in the fixture, else Input --
// the common case of "this should round-trip byte for byte".
func (c Case) WantOrInput() string {
	if c.Want != "" {
		return c.Want
	}
	return c.Input
}

// LoadCases reads path as a YAML list of Case values and fails the test
// immediately if the file is missing or malformed.
func LoadCases(t *testing.T, path string) []Case {
	t.Helper()
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", path, err)
	}
	var cases []Case
	if err := yaml.Unmarshal(contents, &cases); err != nil {
		t.Fatalf("parsing fixture %s: %v", path, err)
	}
	return cases
}
