// Package bundler concatenates the selected files of a directory into a
// single bundle file.
package bundler

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Devon-White/code-bundler/internal/config"
	"github.com/Devon-White/code-bundler/internal/converter"
	"github.com/Devon-White/code-bundler/internal/extractor"
	"github.com/Devon-White/code-bundler/internal/selector"
	"github.com/Devon-White/code-bundler/internal/writer"
)

// ErrOutputDirNotFound is returned when the bundle's parent directory is missing.
var ErrOutputDirNotFound = errors.New("output directory not found")

// ErrorKind classifies a failed bundle run.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInvalidDirectory
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidDirectory:
		return "invalid directory"
	default:
		return "unexpected"
	}
}

// Result is the outcome of a bundle run.
type Result struct {
	Output string // short name of the written bundle
	Kind   ErrorKind
	Err    error
}

// OK reports whether the bundle was written.
func (r Result) OK() bool {
	return r.Kind == KindNone
}

// Message renders the result as the line shown to the user.
func (r Result) Message() string {
	switch r.Kind {
	case KindNone:
		return fmt.Sprintf("File '%s' was created", r.Output)
	case KindInvalidDirectory:
		return "Error: File path is invalid"
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", r.Err)
	}
}

// Bundle bundles the files of the current working directory.
func Bundle(cfg config.BundleConfig) Result {
	return BundleDir(".", cfg)
}

// BundleDir selects files from dir according to cfg, transforms them and
// writes the bundle to cfg.Output. The output file is replaced atomically, so
// a failed run never leaves a partial bundle behind.
func BundleDir(dir string, cfg config.BundleConfig) Result {
	output, err := filepath.Abs(cfg.Output)
	if err != nil {
		return failure(KindUnexpected, fmt.Errorf("resolving output path: %w", err))
	}
	if err := checkOutputDir(output); err != nil {
		return failure(KindInvalidDirectory, err)
	}

	files, err := selector.Select(dir, cfg.Language, cfg.Sort, selector.SelectOptions{
		Exclude: []string{output},
	})
	if err != nil {
		if errors.Is(err, selector.ErrDirectoryNotFound) {
			return failure(KindInvalidDirectory, err)
		}
		return failure(KindUnexpected, err)
	}
	slog.Debug("selected files", "dir", dir, "language", cfg.Language, "sort", cfg.Sort.String(), "count", len(files))

	sections := make([]writer.Section, 0, len(files))
	for _, f := range files {
		content, err := processFile(f, cfg)
		if err != nil {
			return failure(KindUnexpected, err)
		}

		s := writer.Section{Content: content}
		if cfg.Note {
			// The note names the bundle itself, not the source file.
			s.Note = output
		}
		sections = append(sections, s)
		slog.Debug("added file", "file", f.Name, "bytes", len(content))
	}

	data := writer.Assemble(cfg.Author, sections)
	if err := writer.WriteFileAtomic(output, []byte(data), 0644); err != nil {
		return failure(KindUnexpected, fmt.Errorf("writing %s: %w", filepath.Base(output), err))
	}
	slog.Debug("bundle written", "path", output, "files", len(sections), "bytes", len(data))

	return Result{Output: filepath.Base(output)}
}

// checkOutputDir fails with ErrOutputDirNotFound unless the directory that
// will hold the bundle exists.
func checkOutputDir(output string) error {
	dir := filepath.Dir(output)
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrOutputDirNotFound, dir)
		}
		return fmt.Errorf("accessing %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrOutputDirNotFound, dir)
	}
	return nil
}

// processFile reads a single file and applies the configured transforms.
func processFile(f selector.CandidateFile, cfg config.BundleConfig) (string, error) {
	body, err := os.ReadFile(f.Path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", f.Name, err)
	}
	content := string(body)

	if cfg.HTMLToMarkdown && isHTML(f.Name) {
		page, err := extractor.Extract(body, cfg.Selector)
		if err != nil {
			return "", fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		content, err = converter.ConvertPage(page.Title, page.HTML)
		if err != nil {
			return "", fmt.Errorf("converting %s: %w", f.Name, err)
		}
	}

	if cfg.RemoveEmptyLines {
		content = converter.RemoveEmptyLines(content)
	}

	return content, nil
}

func isHTML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm":
		return true
	}
	return false
}

func failure(kind ErrorKind, err error) Result {
	return Result{Kind: kind, Err: err}
}
