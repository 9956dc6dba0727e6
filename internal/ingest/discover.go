package ingest

import (
	"os"
	"path/filepath"
	"strings"

	domainerr "ssg/internal/domain/errors"
)

type SourceFile struct {
	Path string
}

type DiscoverOptions struct {
	// Ext is the content extension without the dot, e.g. "md".
	Ext string
	// Strict fails on entries that have no extension at all.
	Strict bool
}

// DiscoverSource lists the content files directly under root in directory
// order (os.ReadDir sorts by file name). Subdirectories are not descended.
func DiscoverSource(root string, opt DiscoverOptions) ([]SourceFile, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, domainerr.IO(root, err)
	}

	var out []SourceFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(root, e.Name())
		ext, ok := extension(e.Name())
		if !ok {
			if opt.Strict {
				return nil, domainerr.Unrecognized(path, "entry has no file extension")
			}
			continue
		}
		if ext != opt.Ext {
			continue
		}
		out = append(out, SourceFile{Path: path})
	}
	return out, nil
}

// extension returns the text after the last dot. A name whose only dot is
// the leading one (".env") has no extension.
func extension(name string) (string, bool) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return "", false
	}
	return name[i+1:], true
}
