package runner

import (
	"fmt"
	"io"
	"regexp"

	"github.com/fatih/color"
	"github.com/nethoundsh/fd/pkg/config"
	"github.com/nethoundsh/fd/pkg/fileinfo"
	"github.com/nethoundsh/fd/pkg/matcher"
	outputpkg "github.com/nethoundsh/fd/pkg/output"
	"github.com/nethoundsh/fd/pkg/walker"
)

// Stats counts what a scan saw.
type Stats struct {
	Scanned int // entries that reached the matcher
	Matched int
	Skipped int // entries dropped because of traversal errors
}

// Scan walks cfg.Root and prints every entry matching re to stdout in
// discovery order. Per-entry failures are skipped, and reported on
// stderr only in verbose mode. The only error returned is a failed
// write to stdout.
func Scan(cfg config.Config, re *regexp.Regexp, stdout, stderr io.Writer) (Stats, error) {
	var st Stats
	m := matcher.New(re, cfg.SearchFullPath)
	p := outputpkg.NewPrinter(stdout, cfg.Colored, cfg.ListDetails)
	filt := cfg.Filter()

	warn := func(err error) {
		st.Skipped++
		if cfg.Verbose {
			fmt.Fprintln(stderr, "Warning:", err)
		}
	}

	entries := walker.Walk(cfg.Root, walker.Options{
		FollowLinks: cfg.FollowLinks,
		MaxDepth:    cfg.MaxDepth,
		Skip:        filt.Prune,
	})
	for e, err := range entries {
		if err != nil {
			warn(err)
			continue
		}
		st.Scanned++

		if !m.Match(e) {
			continue
		}
		ok, err := filt.ShouldProcess(e)
		if err != nil {
			warn(fmt.Errorf("%s: %w", e.Path, err))
			continue
		}
		if !ok {
			continue
		}

		var meta *fileinfo.Meta
		if cfg.ListDetails {
			info, err := e.Info()
			if err != nil {
				warn(err)
				continue
			}
			meta = fileinfo.New(info)
		}

		path := e.Rel
		if cfg.AbsolutePath {
			path = e.Path
		}
		if err := p.Print(path, e.Kind(), meta); err != nil {
			return st, fmt.Errorf("writing output: %w", err)
		}
		st.Matched++
	}
	return st, nil
}

// PrintStats writes the --stats summary line.
func PrintStats(w io.Writer, st Stats, colored bool) {
	matched := fmt.Sprintf("%d", st.Matched)
	if colored {
		c := color.New(color.FgGreen)
		if st.Matched == 0 {
			c = color.New(color.FgYellow)
		}
		c.EnableColor()
		matched = c.Sprint(matched)
	}
	unit := "matches"
	if st.Matched == 1 {
		unit = "match"
	}
	fmt.Fprintf(w, "%s %s, %d entries scanned", matched, unit, st.Scanned)
	if st.Skipped > 0 {
		fmt.Fprintf(w, ", %d skipped", st.Skipped)
	}
	fmt.Fprintln(w)
}
