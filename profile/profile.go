// Package profile loads the lint profile: the YAML file configuring the
// linter for a project.
package profile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ChainSafe/pysniff/common"
	"gopkg.in/yaml.v3"
)

// DefaultMaxLineLength is the line length limit used when none is configured.
const DefaultMaxLineLength = 79

// FileNames are the profile names looked up by Discover, in order.
var FileNames = []string{".pysniff.yaml", ".pysniff.yml"}

// LintProfile represents the configuration of a lint run.
type LintProfile struct {
	MaxLineLength int      `yaml:"max_line_length"`
	Extensions    []string `yaml:"extensions"`
	Exclude       []string `yaml:"exclude"`
	// StrictUsage makes the unused import and variable checks search the
	// enclosing function or module instead of the declaring statement.
	StrictUsage bool `yaml:"strict_usage"`
}

// Default returns the profile used when no file is given.
func Default() *LintProfile {
	return &LintProfile{
		MaxLineLength: DefaultMaxLineLength,
		Extensions:    []string{".py"},
	}
}

// LoadProfile loads a profile from a YAML file. Keys missing from the file
// keep their default value.
func LoadProfile(filename string) (*LintProfile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}
	defer file.Close()

	profile := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(profile); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse profile %s: %w", filename, err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filename, err)
	}
	return profile, nil
}

// Discover returns the path of the profile closest to target, or an empty
// string when there is none.
func Discover(target string) (string, error) {
	path, err := common.FindUpward(target, FileNames...)
	if errors.Is(err, common.ErrNotFound) {
		return "", nil
	}
	return path, err
}

// Validate checks the profile values and normalizes the extensions to
// start with a dot.
func (p *LintProfile) Validate() error {
	if p.MaxLineLength <= 0 {
		return fmt.Errorf("max_line_length must be positive, got %d", p.MaxLineLength)
	}
	if len(p.Extensions) == 0 {
		return errors.New("extensions must not be empty")
	}
	for i, ext := range p.Extensions {
		if ext == "" || ext == "." {
			return fmt.Errorf("invalid extension %q", ext)
		}
		if !strings.HasPrefix(ext, ".") {
			p.Extensions[i] = "." + ext
		}
	}
	return nil
}
