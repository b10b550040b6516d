// Package selector lists, filters and orders the files that go into a bundle.
package selector

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Devon-White/code-bundler/internal/config"
)

// ErrDirectoryNotFound is returned when the directory to bundle is missing.
var ErrDirectoryNotFound = errors.New("directory not found")

// excludedPrefixes are joined onto the directory and matched as plain string
// prefixes, so "binder.cs" is excluded as well as "bin/...".
var excludedPrefixes = []string{"bin", "debug"}

// CandidateFile is a file picked from a directory listing.
type CandidateFile struct {
	Path string // absolute
	Name string
}

// SelectOptions adjusts a selection beyond the language and sort mode.
type SelectOptions struct {
	// Exclude lists absolute paths that are never selected.
	Exclude []string
}

// SelectFiles lists the regular files directly inside dir, keeps those matching
// language and orders them by mode.
func SelectFiles(dir, language string, mode config.SortMode) ([]CandidateFile, error) {
	return Select(dir, language, mode, SelectOptions{})
}

// Select is SelectFiles with extra options.
func Select(dir, language string, mode config.SortMode, opts SelectOptions) ([]CandidateFile, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("accessing %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	matchAll := config.IsAllLanguages(language)
	language = strings.TrimPrefix(language, ".")

	var files []CandidateFile
	for _, e := range entries {
		f := CandidateFile{Path: filepath.Join(absDir, e.Name()), Name: e.Name()}
		if !isRegularFile(e, f.Path) {
			continue
		}
		if slices.Contains(opts.Exclude, f.Path) {
			continue
		}
		if !matchAll {
			if !strings.EqualFold(extension(f.Name), language) || isExcluded(absDir, f.Path) {
				continue
			}
		}
		files = append(files, f)
	}

	Sort(files, mode)
	return files, nil
}

// Sort orders files in place by name or extension, case-insensitively.
func Sort(files []CandidateFile, mode config.SortMode) {
	key := func(f CandidateFile) string { return f.Name }
	if mode == config.ByExtension {
		key = func(f CandidateFile) string { return filepath.Ext(f.Name) }
	}
	slices.SortStableFunc(files, func(a, b CandidateFile) int {
		return strings.Compare(strings.ToUpper(key(a)), strings.ToUpper(key(b)))
	})
}

// isRegularFile reports whether an entry is a file, following symlinks.
func isRegularFile(e fs.DirEntry, path string) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return e.Type().IsRegular()
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func extension(name string) string {
	return strings.TrimPrefix(filepath.Ext(name), ".")
}

func isExcluded(absDir, path string) bool {
	for _, p := range excludedPrefixes {
		if strings.HasPrefix(path, filepath.Join(absDir, p)) {
			return true
		}
	}
	return false
}
