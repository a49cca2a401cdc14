// Package config turns parsed command-line options into the immutable
// search configuration and compiled pattern for one invocation.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"regexp/syntax"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/nethoundsh/fd/pkg/filter"
)

// ErrWorkingDir is returned when the current directory cannot be read.
var ErrWorkingDir = errors.New("could not get current directory")

// Options holds raw flag values as the user supplied them.
type Options struct {
	Pattern       string
	Sensitive     bool
	FilenameOnly  bool
	Hidden        bool
	Follow        bool
	NoColor       bool
	Color         string
	Excludes      []string
	MinSize       string
	MaxSize       string
	MaxDepth      int
	BaseDirectory string
	ListDetails   bool
	AbsolutePath  bool
	Stats         bool
	Verbose       bool
}

// Config is built once per run and never modified afterwards.
type Config struct {
	CaseSensitive  bool
	SearchFullPath bool
	SearchHidden   bool
	FollowLinks    bool
	Colored        bool

	Root         string
	MaxDepth     int
	Excludes     []string
	MinSize      int64
	MaxSize      int64
	ListDetails  bool
	AbsolutePath bool
	Stats        bool
	Verbose      bool
}

// Filter returns the entry filter settings.
func (c Config) Filter() filter.Config {
	return filter.Config{
		SearchHidden: c.SearchHidden,
		Excludes:     c.Excludes,
		MinSize:      c.MinSize,
		MaxSize:      c.MaxSize,
	}
}

// stdoutIsTerminal is swapped out in tests.
var stdoutIsTerminal = func() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New derives the Config and the compiled pattern from opts.
func New(opts Options) (Config, *regexp.Regexp, error) {
	cfg := Config{
		CaseSensitive:  IsCaseSensitive(opts.Pattern, opts.Sensitive),
		SearchFullPath: !opts.FilenameOnly,
		SearchHidden:   opts.Hidden,
		FollowLinks:    opts.Follow,
		Excludes:       opts.Excludes,
		ListDetails:    opts.ListDetails,
		AbsolutePath:   opts.AbsolutePath,
		Stats:          opts.Stats,
		Verbose:        opts.Verbose,
	}

	mode := ColorNever
	if !opts.NoColor {
		var err error
		if mode, err = ParseColorMode(opts.Color); err != nil {
			return Config{}, nil, err
		}
	}
	cfg.Colored = mode.Enabled(stdoutIsTerminal)

	if err := filter.ValidateExcludes(opts.Excludes); err != nil {
		return Config{}, nil, err
	}

	if opts.MaxDepth < 0 {
		return Config{}, nil, fmt.Errorf("invalid --max-depth value %d: must not be negative", opts.MaxDepth)
	}
	cfg.MaxDepth = opts.MaxDepth

	var err error
	if cfg.MinSize, err = parseSize("--min-size", opts.MinSize); err != nil {
		return Config{}, nil, err
	}
	if cfg.MaxSize, err = parseSize("--max-size", opts.MaxSize); err != nil {
		return Config{}, nil, err
	}
	if cfg.MinSize > 0 && cfg.MaxSize > 0 && cfg.MinSize > cfg.MaxSize {
		return Config{}, nil, fmt.Errorf("--min-size (%s) cannot be greater than --max-size (%s)",
			opts.MinSize, opts.MaxSize)
	}

	root, err := resolveRoot(opts.BaseDirectory)
	if err != nil {
		return Config{}, nil, err
	}
	cfg.Root = root

	re, err := Compile(opts.Pattern, cfg.CaseSensitive)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, re, nil
}

// IsCaseSensitive implements smart case: matching is case-sensitive if
// requested explicitly or if the pattern contains an uppercase letter.
func IsCaseSensitive(pattern string, sensitive bool) bool {
	return sensitive || strings.ContainsFunc(pattern, unicode.IsUpper)
}

// PatternError reports a pattern that is not a valid regular expression.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	// syntax.Error repeats the raw expression, which may span lines.
	var serr *syntax.Error
	if errors.As(e.Err, &serr) {
		return fmt.Sprintf("invalid pattern %q: %s: %q", e.Pattern, serr.Code, serr.Expr)
	}
	return fmt.Sprintf("invalid pattern %q: %s", e.Pattern, strings.ReplaceAll(e.Err.Error(), "\n", " "))
}

func (e *PatternError) Unwrap() error { return e.Err }

// Compile compiles pattern for unanchored search.
func Compile(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	// Validate the pattern as written so errors never mention the flag prefix.
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	if caseSensitive {
		return re, nil
	}
	re, err = regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}

// parseSize parses a human-readable size; the empty string means no bound.
func parseSize(flag, value string) (int64, error) {
	if value == "" {
		return 0, nil
	}
	bytes, err := humanize.ParseBytes(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", flag, value, err)
	}
	if bytes > math.MaxInt64 {
		return 0, fmt.Errorf("invalid %s value %q: too large", flag, value)
	}
	return int64(bytes), nil
}

func resolveRoot(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrWorkingDir, err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving base directory %q: %w", dir, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("base directory: %w", err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("base directory %q is not a directory", dir)
	}
	return abs, nil
}
