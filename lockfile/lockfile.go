// Package lockfile implements pokit.lock — a lock file that tracks MD5
// checksums of catalogs already in canonical form. `pokit fmt` consults it
// to skip files that have not changed since they were last formatted.
//
// The lock file is stored alongside .pokit.yaml as pokit.lock.
package lockfile

import (
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LockFileName is the default lock file name.
const LockFileName = "pokit.lock"

// Version is the lock file format version.
const Version = 1

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// LockFile represents the pokit.lock file structure.
type LockFile struct {
	Version   int               `yaml:"version"`
	Checksums map[string]string `yaml:"checksums"` // catalog path -> md5 of canonical text

	mu   sync.Mutex `yaml:"-"`
	path string     `yaml:"-"`
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a lock file from the given directory.
// Returns an empty lock file if the file doesn't exist.
func Load(dir string) (*LockFile, error) {
	path := filepath.Join(dir, LockFileName)
	lf := &LockFile{
		Version:   Version,
		Checksums: make(map[string]string),
		path:      path,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("no lock file at %s", path)
			return lf, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, lf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if lf.Version != Version {
		return nil, fmt.Errorf("%s: unsupported lock file version %d", path, lf.Version)
	}
	lf.path = path

	if lf.Checksums == nil {
		lf.Checksums = make(map[string]string)
	}

	return lf, nil
}

// Save writes the lock file to disk.
func (lf *LockFile) Save() error {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	if lf.path == "" {
		return fmt.Errorf("lock file path not set")
	}

	data, err := yaml.Marshal(lf)
	if err != nil {
		return fmt.Errorf("marshaling lock file: %w", err)
	}

	if err := os.WriteFile(lf.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", lf.path, err)
	}

	return nil
}

// Path returns the lock file path.
func (lf *LockFile) Path() string {
	return lf.path
}

// ---------------------------------------------------------------------------
// Checksum operations
// ---------------------------------------------------------------------------

// Hash computes the MD5 hex digest of a string.
func Hash(s string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(s)))
}

// TargetKey builds the lock key for a catalog path relative to the
// project root, e.g. "po/ru.po".
func TargetKey(root, path string) string {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return filepath.ToSlash(path)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	if rel, err := filepath.Rel(absRoot, absPath); err == nil && rel != ".." &&
		!strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		path = rel
	}
	return filepath.ToSlash(path)
}

// IsChanged reports whether content differs from the canonical text last
// recorded for target. Unknown targets are always changed.
func (lf *LockFile) IsChanged(target, content string) bool {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	old, ok := lf.Checksums[target]
	if !ok {
		return true
	}
	return old != Hash(content)
}

// Update records the checksum of the canonical text of target.
func (lf *LockFile) Update(target, content string) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	lf.Checksums[target] = Hash(content)
}

// Clean removes targets that are no longer part of the project. This
// prevents stale entries from accumulating.
func (lf *LockFile) Clean(currentTargets []string) {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	valid := make(map[string]bool, len(currentTargets))
	for _, t := range currentTargets {
		valid[t] = true
	}

	for t := range lf.Checksums {
		if !valid[t] {
			log.Debugf("dropping stale lock entry %s", t)
			delete(lf.Checksums, t)
		}
	}
}

// ---------------------------------------------------------------------------
// Stats
// ---------------------------------------------------------------------------

// Stats returns the number of tracked catalogs.
func (lf *LockFile) Stats() int {
	lf.mu.Lock()
	defer lf.mu.Unlock()
	return len(lf.Checksums)
}

// Targets returns sorted list of target keys.
func (lf *LockFile) Targets() []string {
	lf.mu.Lock()
	defer lf.mu.Unlock()

	targets := make([]string, 0, len(lf.Checksums))
	for t := range lf.Checksums {
		targets = append(targets, t)
	}
	sort.Strings(targets)
	return targets
}

// Summary returns a human-readable summary string.
func (lf *LockFile) Summary() string {
	targets := lf.Targets()
	if len(targets) == 0 {
		return "empty"
	}
	return fmt.Sprintf("%d catalogs (%s)", len(targets), strings.Join(targets, ", "))
}
