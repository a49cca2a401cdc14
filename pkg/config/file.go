package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the defaults file location.
const EnvConfigPath = "FD_CONFIG"

// File holds defaults read from config.yaml. Nil pointers mean unset.
type File struct {
	Hidden   *bool    `yaml:"hidden"`
	Follow   *bool    `yaml:"follow"`
	Filename *bool    `yaml:"filename"`
	Color    string   `yaml:"color"`
	Exclude  []string `yaml:"exclude"`
}

// FilePath returns $FD_CONFIG if set, otherwise the OS-standard config
// path (e.g. ~/.config/fd/config.yaml on Linux).
func FilePath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "fd", "config.yaml"), nil
}

// LoadFile reads a defaults file. A missing file yields empty defaults.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return File{}, nil
	}
	if err != nil {
		return File{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if f.Color != "" {
		if _, err := ParseColorMode(f.Color); err != nil {
			return File{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	return f, nil
}

// Apply fills opts from the file for every flag the user did not set on
// the command line. changed reports whether a flag was given explicitly.
func (f File) Apply(opts *Options, changed func(flag string) bool) {
	if f.Hidden != nil && !changed("hidden") {
		opts.Hidden = *f.Hidden
	}
	if f.Follow != nil && !changed("follow") {
		opts.Follow = *f.Follow
	}
	if f.Filename != nil && !changed("filename") {
		opts.FilenameOnly = *f.Filename
	}
	if f.Color != "" && !changed("color") {
		opts.Color = f.Color
	}
	if len(f.Exclude) > 0 && !changed("exclude") {
		opts.Excludes = f.Exclude
	}
}
