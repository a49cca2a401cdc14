// Package walker enumerates a directory tree depth-first as a lazy
// sequence of entries.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/nethoundsh/fd/pkg/fileinfo"
)

// ErrLoop is reported for a followed symbolic link that points at one of
// its own ancestors.
var ErrLoop = errors.New("filesystem loop detected")

// Entry is one step of a traversal. It is only valid for the iteration
// that produced it.
type Entry struct {
	Path  string // root joined with Rel
	Rel   string // path relative to the root, native separators
	Name  string
	Depth int // children of the root have depth 1

	d      fs.DirEntry
	target fs.FileInfo // set when a symlink was followed
}

type Options struct {
	FollowLinks bool
	// MaxDepth stops descent below this depth. Zero means unlimited.
	MaxDepth int
	// Skip is consulted for every entry before it is yielded or
	// resolved. A skipped directory is not descended into.
	Skip func(Entry) bool
}

func (e Entry) IsSymlink() bool {
	return e.d != nil && e.d.Type()&fs.ModeSymlink != 0
}

// IsDir reports whether the entry is a directory, or a followed link to one.
func (e Entry) IsDir() bool {
	if e.target != nil {
		return e.target.IsDir()
	}
	return e.d != nil && e.d.IsDir()
}

// IsRegular reports whether the entry's path resolves to a regular file.
// Unfollowed symlinks are resolved on demand.
func (e Entry) IsRegular() bool {
	if e.target != nil {
		return e.target.Mode().IsRegular()
	}
	if e.IsSymlink() {
		fi, err := os.Stat(e.Path)
		return err == nil && fi.Mode().IsRegular()
	}
	return e.d != nil && e.d.Type().IsRegular()
}

func (e Entry) Kind() fileinfo.Kind {
	return fileinfo.KindOf(e.IsSymlink(), e.IsDir())
}

// Info returns the followed target's info for followed links and the
// entry's own (lstat) info otherwise.
func (e Entry) Info() (fs.FileInfo, error) {
	if e.target != nil {
		return e.target, nil
	}
	if e.d == nil {
		return nil, fmt.Errorf("%s: no directory entry", e.Path)
	}
	return e.d.Info()
}

// Walk yields every entry below root in depth-first pre-order, siblings
// sorted by name. The root itself is never yielded. Entries that cannot
// be read are yielded with a non-nil error and the walk continues.
func Walk(root string, opts Options) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		info, err := os.Stat(root)
		if err != nil {
			yield(Entry{Path: root}, err)
			return
		}
		if !info.IsDir() {
			yield(Entry{Path: root}, fmt.Errorf("%s: not a directory", root))
			return
		}
		w := &walk{opts: opts, yield: yield}
		w.dir(root, "", 0, []fs.FileInfo{info})
	}
}

type walk struct {
	opts  Options
	yield func(Entry, error) bool
}

// dir walks the children of path. It returns false once the consumer
// has stopped iterating.
func (w *walk) dir(path, rel string, depth int, ancestors []fs.FileInfo) bool {
	children, err := os.ReadDir(path)
	if err != nil {
		// ReadDir may return a partial listing alongside the error.
		if !w.yield(Entry{Path: path, Rel: rel, Depth: depth}, err) {
			return false
		}
	}

	for _, d := range children {
		e := Entry{
			Path:  filepath.Join(path, d.Name()),
			Rel:   filepath.Join(rel, d.Name()),
			Name:  d.Name(),
			Depth: depth + 1,
			d:     d,
		}

		if w.opts.Skip != nil && w.opts.Skip(e) {
			continue
		}

		if w.opts.FollowLinks && e.IsSymlink() {
			target, err := os.Stat(e.Path)
			if err != nil {
				if !w.yield(e, err) {
					return false
				}
				continue
			}
			if target.IsDir() && isAncestor(target, ancestors) {
				if !w.yield(e, fmt.Errorf("%s: %w", e.Path, ErrLoop)) {
					return false
				}
				continue
			}
			e.target = target
		}

		if !w.yield(e, nil) {
			return false
		}

		if !e.IsDir() || (w.opts.MaxDepth > 0 && e.Depth >= w.opts.MaxDepth) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			if !w.yield(e, err) {
				return false
			}
			continue
		}
		// Siblings reuse the same slot in ancestors; each subtree is
		// finished before the next sibling overwrites it.
		if !w.dir(e.Path, e.Rel, e.Depth, append(ancestors, info)) {
			return false
		}
	}
	return true
}

func isAncestor(fi fs.FileInfo, ancestors []fs.FileInfo) bool {
	for _, a := range ancestors {
		if os.SameFile(fi, a) {
			return true
		}
	}
	return false
}
