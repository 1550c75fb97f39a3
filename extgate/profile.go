// Package extgate turns the codec's compile-time-shaped extension list
// (spec.md's "feature set") into a runtime-checked gate: a deployment
// enables a subset of IMAP capabilities by listing them in a small YAML
// profile, and the resulting set can be queried before a given
// command/response variant is encoded or accepted.
package extgate

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/corvid-mail/imapcodec"
)

// Profile is the on-disk shape of an extension-gating configuration:
// which optional IMAP capabilities this deployment turns on.
type Profile struct {
	Capabilities []string `yaml:"capabilities"`
}

// defaultProfilePaths mirrors the multi-path search a deployment-local
// config file is conventionally looked up from.
var defaultProfilePaths = []string{
	"/etc/imapcodec/extgate.yaml",
	"./config/extgate.yaml",
	"./extgate.yaml",
}

// LoadProfile reads and parses a Profile from path. If path is empty,
// the default search path is tried in order and the first readable
// file wins.
func LoadProfile(path string) (*Profile, error) {
	paths := defaultProfilePaths
	if path != "" {
		paths = []string{path}
	}

	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(filepath.Clean(p))
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// FeatureSet converts the profile's capability names into a gate ready
// to be passed to wire.ParseCommand/wire.ParseResponse.
func (p *Profile) FeatureSet() *FeatureSet {
	if p == nil {
		return NewFeatureSet()
	}
	caps := make([]imap.Cap, len(p.Capabilities))
	for i, c := range p.Capabilities {
		caps[i] = imap.Cap(c)
	}
	return NewFeatureSet(caps...)
}
