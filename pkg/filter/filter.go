package filter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/nethoundsh/fd/pkg/walker"
)

// HiddenPrefix marks hidden entries.
const HiddenPrefix = "."

type Config struct {
	SearchHidden bool
	// Excludes are doublestar globs, already validated.
	Excludes []string
	MinSize  int64
	MaxSize  int64
}

// IsHidden reports whether a bare entry name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, HiddenPrefix)
}

// Excluded reports whether rel (or its base name) matches any exclude glob.
func Excluded(rel string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	slashed := filepath.ToSlash(rel)
	name := filepath.Base(rel)
	for _, pattern := range excludes {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// ValidateExcludes rejects malformed exclude globs.
func ValidateExcludes(excludes []string) error {
	for _, p := range excludes {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return nil
}

// Prune decides, before descent, whether an entry and everything below
// it is left out of the scan.
func (c Config) Prune(e walker.Entry) bool {
	if !c.SearchHidden && IsHidden(e.Name) {
		return true
	}
	return Excluded(e.Rel, c.Excludes)
}

// ShouldProcess applies the size bounds to a matched entry. With no
// bounds set every entry passes; otherwise only regular files within
// bounds do.
func (c Config) ShouldProcess(e walker.Entry) (bool, error) {
	if c.MinSize <= 0 && c.MaxSize <= 0 {
		return true, nil
	}
	info, err := e.Info()
	if err != nil {
		return false, fmt.Errorf("reading file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	size := info.Size()
	if c.MinSize > 0 && size < c.MinSize {
		return false, nil
	}
	if c.MaxSize > 0 && size > c.MaxSize {
		return false, nil
	}
	return true, nil
}
