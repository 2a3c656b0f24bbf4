package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andyballingall/deploy-preflight/internal/preflight"
)

// DefaultFile is looked up at the repository root when no path is given.
const DefaultFile = ".preflight.yml"

// EnvVar names an explicit config file, equivalent to --config.
const EnvVar = "PREFLIGHT_CONFIG"

const DefaultRegion = "eu-central-1"

// Defaults holds per-repository defaults for the preflight flags.
// Anything set explicitly on the command line wins.
type Defaults struct {
	Region              string   `yaml:"region"`
	Production          bool     `yaml:"production"`
	Environment         string   `yaml:"environment"`
	TagPrefix           string   `yaml:"tagPrefix"`
	NoticeFolderChanges []string `yaml:"noticeFolderChanges"`
}

// Load reads the defaults file at path. When explicit is false a missing file
// is not an error and yields empty Defaults.
func Load(path string, explicit bool) (*Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return nil, &MissingConfigError{Path: path}
			}
			return &Defaults{}, nil
		}
		return nil, err
	}
	return Parse(path, data)
}

// Parse decodes a defaults document. Unknown keys are rejected so that a
// misspelt folder list does not silently disable the notice check.
func Parse(path string, data []byte) (*Defaults, error) {
	var d Defaults
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return nil, &InvalidYAMLError{Path: filepath.Base(path), Wrapped: err}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Defaults) Validate() error {
	if !preflight.IsLabel(d.Environment) {
		return &InvalidPropertyError{Property: "environment", Value: d.Environment, Reason: "must not contain whitespace"}
	}
	if !preflight.IsLabel(d.TagPrefix) {
		return &InvalidPropertyError{Property: "tagPrefix", Value: d.TagPrefix, Reason: "must not contain whitespace"}
	}
	for i, f := range d.NoticeFolderChanges {
		if strings.TrimSpace(f) == "" {
			return &InvalidPropertyError{
				Property: fmt.Sprintf("noticeFolderChanges[%d]", i),
				Value:    f,
				Reason:   "must not be empty",
			}
		}
	}
	return nil
}
