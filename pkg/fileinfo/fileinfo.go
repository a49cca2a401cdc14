package fileinfo

import (
	"io/fs"
	"time"

	"github.com/dustin/go-humanize"
)

// Kind is the display classification of a directory entry.
type Kind int

const (
	// KindFile covers regular files and anything that is neither a
	// directory nor a symbolic link (sockets, devices, pipes).
	KindFile Kind = iota
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "file"
	}
}

// KindOf classifies an entry. isLink must reflect the entry's own type
// bits (lstat), isDir may reflect the followed target.
func KindOf(isLink, isDir bool) Kind {
	switch {
	case isLink:
		return KindSymlink
	case isDir:
		return KindDir
	default:
		return KindFile
	}
}

// Meta is the metadata shown in a long listing.
type Meta struct {
	Name        string
	Size        int64
	SizeHuman   string
	Modified    time.Time
	Permissions string
}

func New(fi fs.FileInfo) *Meta {
	return &Meta{
		Name:        fi.Name(),
		Size:        fi.Size(),
		SizeHuman:   humanize.Bytes(uint64(fi.Size())),
		Modified:    fi.ModTime().UTC(),
		Permissions: fi.Mode().String(),
	}
}
