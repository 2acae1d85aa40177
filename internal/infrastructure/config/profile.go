package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile holds per-user CLI preferences, kept apart from the process config so one
// database can be driven by several people.
type Profile struct {
	// Address commands act as when --actor is omitted
	DefaultActor string `yaml:"default_actor,omitempty"`

	path string
}

// ProfilePath is where the profile lives: $HS_PROFILE, else <user config dir>/homestead/profile.yaml
func ProfilePath() (string, error) {
	if p := os.Getenv(EnvPrefix + "_PROFILE"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}
	return filepath.Join(dir, "homestead", "profile.yaml"), nil
}

// LoadProfile reads the profile. A missing file is an empty profile.
func LoadProfile() (*Profile, error) {
	path, err := ProfilePath()
	if err != nil {
		return nil, err
	}
	p := &Profile{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

// Path returns the file the profile is loaded from and saved to
func (p *Profile) Path() string {
	return p.path
}

// Save writes the profile through a temp file so a crash never leaves it half written
func (p *Profile) Save() error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create profile dir: %w", err)
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	return os.Rename(tmp, p.path)
}
