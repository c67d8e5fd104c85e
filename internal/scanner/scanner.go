// Package scanner provides extension filtering and non-recursive directory
// listing for the path selectors.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ExtensionSet is a normalized set of lowercase, dot-prefixed file suffixes.
// A nil set accepts every file.
type ExtensionSet map[string]struct{}

// ParseExtensions turns a "|"-separated list such as "png|JPG|.jpeg" into an
// ExtensionSet. Blank input, or input made only of empty tokens, returns nil
// so that a malformed filter never rejects every file.
func ParseExtensions(s string) ExtensionSet {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	set := make(ExtensionSet)
	for _, tok := range strings.Split(s, "|") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" {
			continue
		}
		if !strings.HasPrefix(tok, ".") {
			tok = "." + tok
		}
		set[tok] = struct{}{}
	}

	if len(set) == 0 {
		return nil
	}
	return set
}

// Match reports whether name's lowercased suffix is in the set.
func (s ExtensionSet) Match(name string) bool {
	if s == nil {
		return true
	}
	_, ok := s[strings.ToLower(filepath.Ext(name))]
	return ok
}

// String returns the normalized form: members sorted and joined by "|".
func (s ExtensionSet) String() string {
	exts := make([]string, 0, len(s))
	for ext := range s {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, "|")
}

// Result holds the output of scanning a directory.
type Result struct {
	Paths        []string
	SkippedCount int
}

// Scan lists the regular files directly inside dir (non-recursive) that match
// exts. Symlinks are followed, so a link to a regular file counts and a link to
// a directory does not. SkippedCount is the number of regular files rejected
// by the extension filter.
func Scan(dir string, exts ExtensionSet) (*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot read directory: %w", err)
	}

	result := &Result{}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !isRegular(path, entry) {
			continue
		}
		if exts.Match(entry.Name()) {
			result.Paths = append(result.Paths, path)
		} else {
			result.SkippedCount++
		}
	}

	return result, nil
}

func isRegular(path string, entry os.DirEntry) bool {
	mode := entry.Type()
	if mode&os.ModeSymlink == 0 {
		return mode.IsRegular()
	}
	// Dangling links fall out here too.
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
