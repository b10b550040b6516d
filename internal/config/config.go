package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LanguageAll is the language filter value that matches every file.
const LanguageAll = "all"

var (
	ErrMissingOutput   = errors.New("output path is required")
	ErrMissingLanguage = errors.New("language is required")
)

// SortMode selects the key files are ordered by.
type SortMode int

const (
	ByName SortMode = iota
	ByExtension
)

func (m SortMode) String() string {
	if m == ByExtension {
		return "type"
	}
	return "name"
}

// ParseSortMode maps "name" and "type" (any case) to a SortMode.
// Anything else, including the empty string, falls back to ByName.
func ParseSortMode(s string) SortMode {
	if strings.EqualFold(strings.TrimSpace(s), "type") {
		return ByExtension
	}
	return ByName
}

// BundleConfig is the resolved, validated input to a bundle run.
type BundleConfig struct {
	Output           string
	Language         string
	Note             bool
	Sort             SortMode
	RemoveEmptyLines bool
	Author           string // empty = no header line
	HTMLToMarkdown   bool
	Selector         string // CSS selector for HTML sources; empty = heuristic
}

// IsAllLanguages reports whether language is the "all" filter, in any case.
func IsAllLanguages(language string) bool {
	return strings.EqualFold(strings.TrimSpace(language), LanguageAll)
}

// Options holds raw option values as bound from flags or a config file.
type Options struct {
	Output           string `yaml:"output"`
	Language         string `yaml:"language"`
	Note             bool   `yaml:"note"`
	Sort             string `yaml:"sort"`
	RemoveEmptyLines bool   `yaml:"remove_empty_lines"`
	Author           string `yaml:"author"`
	HTMLToMarkdown   bool   `yaml:"html_to_markdown"`
	Selector         string `yaml:"selector"`
}

// Build validates the options and resolves them into a BundleConfig.
func (o Options) Build() (BundleConfig, error) {
	if strings.TrimSpace(o.Output) == "" {
		return BundleConfig{}, ErrMissingOutput
	}
	if strings.TrimSpace(o.Language) == "" {
		return BundleConfig{}, ErrMissingLanguage
	}
	return BundleConfig{
		Output:           o.Output,
		Language:         strings.TrimPrefix(strings.TrimSpace(o.Language), "."),
		Note:             o.Note,
		Sort:             ParseSortMode(o.Sort),
		RemoveEmptyLines: o.RemoveEmptyLines,
		Author:           o.Author,
		HTMLToMarkdown:   o.HTMLToMarkdown,
		Selector:         o.Selector,
	}, nil
}

// LoadFile reads bundle options from a YAML file.
func LoadFile(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return opts, nil
}
