package config

import (
	"errors"
	"os"
	"path/filepath"
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCaseSensitive(t *testing.T) {
	tests := []struct {
		name      string
		pattern   string
		sensitive bool
		want      bool
	}{
		{name: "all lowercase", pattern: "readme", want: false},
		{name: "uppercase letter", pattern: "Readme", want: true},
		{name: "non-ascii uppercase", pattern: "ärger|Äpfel", want: true},
		{name: "empty pattern", pattern: "", want: false},
		{name: "flag forces sensitivity", pattern: "readme", sensitive: true, want: true},
		{name: "flag with uppercase", pattern: "README", sensitive: true, want: true},
		{name: "digits and symbols", pattern: `\d+\.go$`, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCaseSensitive(tt.pattern, tt.sensitive))
		})
	}
}

func TestCompileSmartCase(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    bool
	}{
		{pattern: "readme", input: "README.md", want: true},
		{pattern: "readme", input: "readme.md", want: true},
		{pattern: "Readme", input: "Readme.md", want: true},
		{pattern: "Readme", input: "readme.md", want: false},
		{pattern: "", input: "anything", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			re, err := Compile(tt.pattern, IsCaseSensitive(tt.pattern, false))
			require.NoError(t, err)
			assert.Equal(t, tt.want, re.MatchString(tt.input))
		})
	}
}

func TestCompileInvalidPattern(t *testing.T) {
	_, err := Compile("foo(", false)
	require.Error(t, err)

	var perr *PatternError
	require.True(t, errors.As(err, &perr), "expected *PatternError, got %T", err)
	assert.Equal(t, "foo(", perr.Pattern)
	assert.NotContains(t, err.Error(), "(?i)")

	var serr *syntax.Error
	assert.True(t, errors.As(err, &serr), "PatternError should unwrap to the regexp syntax error")
}

func TestPatternErrorIsSingleLine(t *testing.T) {
	_, err := Compile("a\n(", false)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "\n")
	assert.Contains(t, err.Error(), "missing closing )")

	plain := &PatternError{Pattern: "x", Err: errors.New("first\nsecond")}
	assert.Equal(t, `invalid pattern "x": first second`, plain.Error())
}

func TestNewSizeOverflowMessage(t *testing.T) {
	_, _, err := New(Options{MinSize: "10EB", BaseDirectory: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --min-size value")
}

func TestNewDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, re, err := New(Options{Pattern: "readme", BaseDirectory: root})
	require.NoError(t, err)

	assert.False(t, cfg.CaseSensitive)
	assert.True(t, cfg.SearchFullPath)
	assert.False(t, cfg.SearchHidden)
	assert.False(t, cfg.FollowLinks)
	assert.True(t, cfg.Colored)
	assert.Equal(t, root, cfg.Root)
	assert.True(t, re.MatchString("README"))
}

func TestNewFlags(t *testing.T) {
	cfg, _, err := New(Options{
		Pattern:       "x",
		Sensitive:     true,
		FilenameOnly:  true,
		Hidden:        true,
		Follow:        true,
		NoColor:       true,
		BaseDirectory: t.TempDir(),
	})
	require.NoError(t, err)

	assert.True(t, cfg.CaseSensitive)
	assert.False(t, cfg.SearchFullPath)
	assert.True(t, cfg.SearchHidden)
	assert.True(t, cfg.FollowLinks)
	assert.False(t, cfg.Colored)
}

func TestNewColorModes(t *testing.T) {
	old := stdoutIsTerminal
	defer func() { stdoutIsTerminal = old }()

	tests := []struct {
		name     string
		opts     Options
		terminal bool
		want     bool
	}{
		{name: "default is always", opts: Options{}, want: true},
		{name: "never", opts: Options{Color: "never"}, terminal: true, want: false},
		{name: "auto on terminal", opts: Options{Color: "auto"}, terminal: true, want: true},
		{name: "auto when piped", opts: Options{Color: "auto"}, terminal: false, want: false},
		{name: "no-color wins over always", opts: Options{Color: "always", NoColor: true}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdoutIsTerminal = func() bool { return tt.terminal }
			tt.opts.BaseDirectory = t.TempDir()
			cfg, _, err := New(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Colored)
		})
	}
}

func TestNewSizes(t *testing.T) {
	cfg, _, err := New(Options{MinSize: "1k", MaxSize: "2MB", BaseDirectory: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), cfg.MinSize)
	assert.Equal(t, int64(2000000), cfg.MaxSize)

	filt := cfg.Filter()
	assert.Equal(t, cfg.MinSize, filt.MinSize)
	assert.Equal(t, cfg.MaxSize, filt.MaxSize)
}

func TestNewErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name string
		opts Options
	}{
		{name: "invalid pattern", opts: Options{Pattern: "[a-", BaseDirectory: dir}},
		{name: "invalid color", opts: Options{Color: "sometimes", BaseDirectory: dir}},
		{name: "invalid exclude", opts: Options{Excludes: []string{"[x"}, BaseDirectory: dir}},
		{name: "invalid min size", opts: Options{MinSize: "lots", BaseDirectory: dir}},
		{name: "min size beyond int64", opts: Options{MinSize: "10EB", BaseDirectory: dir}},
		{name: "max size beyond int64", opts: Options{MaxSize: "10EB", BaseDirectory: dir}},
		{name: "min greater than max", opts: Options{MinSize: "2k", MaxSize: "1k", BaseDirectory: dir}},
		{name: "negative depth", opts: Options{MaxDepth: -1, BaseDirectory: dir}},
		{name: "missing base directory", opts: Options{BaseDirectory: filepath.Join(dir, "nope")}},
		{name: "base directory is a file", opts: Options{BaseDirectory: file}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := New(tt.opts)
			assert.Error(t, err)
		})
	}
}

func TestNewUsesWorkingDirectory(t *testing.T) {
	want, err := os.Getwd()
	require.NoError(t, err)

	cfg, _, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, want, cfg.Root)
}

func TestParseColorMode(t *testing.T) {
	for _, s := range []string{"auto", "always", "never"} {
		m, err := ParseColorMode(s)
		require.NoError(t, err)
		assert.Equal(t, s, m.String())
	}
	m, err := ParseColorMode("")
	require.NoError(t, err)
	assert.Equal(t, ColorAlways, m)

	_, err = ParseColorMode("yes")
	assert.Error(t, err)
}
