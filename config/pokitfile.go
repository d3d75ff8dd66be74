// Package config — .pokit.yaml configuration file support.
//
// When a .pokit.yaml file exists in the project root, pokit uses its
// catalog globs as the set of files to work on. Without one, catalogs
// are auto-detected from the po/ directory.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// YAML schema
// ---------------------------------------------------------------------------

// ProjectFile is the top-level .pokit.yaml structure.
type ProjectFile struct {
	// Catalogs are globs, relative to the project root, naming the PO/POT
	// files pokit operates on (e.g. "po/*.po").
	Catalogs []string `yaml:"catalogs"`
	// Lock enables pokit.lock checksum tracking (default true).
	Lock *bool `yaml:"lock,omitempty"`
	// Language is the default language for `pokit init`.
	Language string `yaml:"language,omitempty"`
	// Project overrides the detected package name.
	Project string `yaml:"project,omitempty"`
	// Version overrides the detected package version.
	Version string `yaml:"version,omitempty"`
	// BugsEmail fills Report-Msgid-Bugs-To in new catalogs.
	BugsEmail string `yaml:"bugs_email,omitempty"`
	// CopyrightHolder fills the header comment of new catalogs.
	CopyrightHolder string `yaml:"copyright_holder,omitempty"`
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// ProjectFileName is the default config file name.
const ProjectFileName = ".pokit.yaml"

// LoadProjectFile loads and validates .pokit.yaml from the given directory.
// Returns nil if no .pokit.yaml exists.
func LoadProjectFile(rootDir string) (*ProjectFile, error) {
	pf, err := ReadProjectFile(filepath.Join(rootDir, ProjectFileName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return pf, err
}

// ReadProjectFile loads and validates a project file at an explicit path.
// A missing file is an error wrapping os.ErrNotExist.
func ReadProjectFile(path string) (*ProjectFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var pf ProjectFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&pf); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for i, pat := range pf.Catalogs {
		if pat == "" {
			return nil, fmt.Errorf("%s: catalog #%d is empty", path, i+1)
		}
		if _, err := filepath.Match(pat, ""); err != nil {
			return nil, fmt.Errorf("%s: catalog %q: %w", path, pat, err)
		}
	}

	return &pf, nil
}

// LockEnabled reports whether pokit.lock tracking is on.
func (pf *ProjectFile) LockEnabled() bool {
	return pf == nil || pf.Lock == nil || *pf.Lock
}

// ---------------------------------------------------------------------------
// Resolving catalogs
// ---------------------------------------------------------------------------

// Resolve expands the catalog globs under projectRoot into a sorted,
// deduplicated list of absolute paths.
func (pf *ProjectFile) Resolve(projectRoot string) ([]string, error) {
	absRoot, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var files []string
	for _, pat := range pf.Catalogs {
		matches, err := filepath.Glob(filepath.Join(absRoot, pat))
		if err != nil {
			return nil, fmt.Errorf("catalog %q: %w", pat, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() {
				continue
			}
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// Apply overlays the file's project metadata onto a detected project.
func (pf *ProjectFile) Apply(p *Project) {
	if pf == nil {
		return
	}
	if pf.Project != "" {
		p.Name = pf.Project
	}
	if pf.Version != "" {
		p.Version = pf.Version
	}
	if pf.BugsEmail != "" {
		p.BugsEmail = pf.BugsEmail
	}
	if pf.CopyrightHolder != "" {
		p.CopyrightHolder = pf.CopyrightHolder
	}
}
