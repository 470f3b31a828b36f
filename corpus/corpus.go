// Package corpus enumerates documents to be processed.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
)

// ErrPattern is returned for malformed include or exclude glob.
var ErrPattern = errors.New("bad glob pattern")

// Entry is a single corpus document.
type Entry struct {
	// Path to the document, used as storage key.
	Path string
	// RelPath is slash separated path relative to corpus root.
	RelPath string
	// ID is document identity used for active item lookups: its base name.
	ID string
}

// Enumerate returns documents under root in natural order of their relative
// paths. When root is a regular file it is the only document of the corpus and
// patterns are not consulted. Otherwise files are selected when their relative
// path or base name matches any of include globs and none of exclude globs.
// Directories matching exclude are not entered, symbolic links are never
// followed.
func Enumerate(root string, include, exclude []string) ([]Entry, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return nil, fmt.Errorf("%w: %q", ErrPattern, p)
		}
	}

	info, err := os.Lstat(root)
	if err != nil {
		return nil, fmt.Errorf("unable to access corpus: %w", err)
	}
	if info.Mode().IsRegular() {
		name := filepath.Base(root)
		return []Entry{{Path: root, RelPath: name, ID: name}}, nil
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus %q is neither directory nor regular file", root)
	}

	var entries []Entry
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if matchesAny(rel, exclude) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !matchesAny(rel, include) || matchesAny(rel, exclude) {
			return nil
		}
		entries = append(entries, Entry{Path: p, RelPath: rel, ID: path.Base(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("unable to enumerate corpus: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return natural.Less(entries[i].RelPath, entries[j].RelPath)
	})
	return entries, nil
}

func matchesAny(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
