package config

import "fmt"

// ColorMode selects when output is colorized.
type ColorMode int

const (
	ColorAlways ColorMode = iota
	ColorAuto
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAuto:
		return "auto"
	case ColorNever:
		return "never"
	default:
		return "always"
	}
}

// ParseColorMode parses a --color value. The empty string means always.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "always":
		return ColorAlways, nil
	case "auto":
		return ColorAuto, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAlways, fmt.Errorf("invalid --color value %q; must be 'auto', 'always', or 'never'", s)
	}
}

// Enabled resolves the mode; isTerminal is only consulted for auto.
func (m ColorMode) Enabled(isTerminal func() bool) bool {
	switch m {
	case ColorAlways:
		return true
	case ColorAuto:
		return isTerminal()
	default:
		return false
	}
}
