package matcher

import (
	"regexp"

	"github.com/nethoundsh/fd/pkg/walker"
)

// Matcher tests entries against a compiled pattern.
type Matcher struct {
	re       *regexp.Regexp
	fullPath bool
}

func New(re *regexp.Regexp, fullPath bool) *Matcher {
	return &Matcher{re: re, fullPath: fullPath}
}

// Candidate returns the string the pattern is searched in. In
// filename-only mode entries that do not resolve to a regular file are
// not eligible.
func (m *Matcher) Candidate(e walker.Entry) (string, bool) {
	if m.fullPath {
		return e.Rel, true
	}
	if !e.IsRegular() {
		return "", false
	}
	return e.Name, true
}

// Match reports whether the pattern occurs anywhere in the entry's candidate.
func (m *Matcher) Match(e walker.Entry) bool {
	s, ok := m.Candidate(e)
	return ok && m.re.FindStringIndex(s) != nil
}
