// Package config implements auto-detection of project settings
// from debian/changelog, existing po/ directory, etc.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// POStructure indicates how PO files are organized.
type POStructure string

const (
	// POStructureFlat: po/en.po, po/ru.po, po/de.po
	POStructureFlat POStructure = "flat"
	// POStructureNested: po/en/*.po, po/ru/*.po, po/de/*.po
	POStructureNested POStructure = "nested"
	// POStructureUnknown: could not determine
	POStructureUnknown POStructure = "unknown"
)

// Project holds auto-detected project configuration.
type Project struct {
	// Name is the project/package name.
	Name string
	// Version from debian/changelog or fallback.
	Version string
	// PODir is the directory containing .po files.
	PODir string
	// POStructure indicates how PO files are organized.
	POStructure POStructure
	// Languages that already have a catalog, detected from existing .po
	// files. `pokit init` refuses to add a second one without --force.
	Languages []string
	// BugsEmail for the Report-Msgid-Bugs-To header of new catalogs.
	BugsEmail string
	// CopyrightHolder for the header comment of new catalogs.
	CopyrightHolder string
}

// Detect auto-detects project settings from the working directory.
func Detect(rootDir string) *Project {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		absRoot = rootDir
	}

	p := &Project{
		PODir:       filepath.Join(absRoot, "po"),
		POStructure: POStructureUnknown,
	}

	// Try debian/changelog
	changelogPath := filepath.Join(absRoot, "debian", "changelog")
	if name, version, err := parseChangelog(changelogPath); err == nil {
		p.Name = name
		p.Version = version
	}

	// Fallback to directory name
	if p.Name == "" {
		p.Name = filepath.Base(absRoot)
	}
	if p.Version == "" {
		p.Version = "0.0.0"
	}

	p.POStructure = detectPOStructure(p.PODir)
	p.Languages = p.detectLanguagesWithStructure()
	return p
}

// Catalogs returns every .po and .pot file under PODir, sorted. Flat
// layouts contribute po/*.po, nested ones po/LL/*.po; templates directly
// in PODir are always included.
func (p *Project) Catalogs() []string {
	var patterns []string
	switch p.POStructure {
	case POStructureFlat:
		patterns = []string{"*.po", "*.pot"}
	case POStructureNested:
		patterns = []string{"*/*.po", "*.pot"}
	default:
		patterns = []string{"*.pot"}
	}

	var files []string
	for _, pat := range patterns {
		matches, _ := filepath.Glob(filepath.Join(p.PODir, pat))
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files
}

// POPath returns the path to the .po file for a given language.
func (p *Project) POPath(lang string) string {
	if p.POStructure == POStructureNested {
		return filepath.Join(p.PODir, lang, p.Name+".po")
	}
	return filepath.Join(p.PODir, lang+".po")
}

// detectPOStructure determines how PO files are organized in a directory.
func detectPOStructure(poDir string) POStructure {
	entries, err := os.ReadDir(poDir)
	if err != nil {
		return POStructureUnknown
	}

	hasPOFiles := false
	hasLangDirs := false

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".po") && !entry.IsDir() {
			hasPOFiles = true
		}
		if entry.IsDir() && isLangCode(name) && hasPOFile(filepath.Join(poDir, name)) {
			hasLangDirs = true
		}
	}

	if hasPOFiles && !hasLangDirs {
		return POStructureFlat
	} else if hasLangDirs {
		return POStructureNested
	}
	return POStructureUnknown
}

func hasPOFile(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, sub := range entries {
		if strings.HasSuffix(sub.Name(), ".po") && !sub.IsDir() {
			return true
		}
	}
	return false
}

// isLangCode checks if a string looks like a language code (en, ru, pt_BR, zh_CN, etc).
func isLangCode(s string) bool {
	if len(s) == 2 {
		return s[0] >= 'a' && s[0] <= 'z' && s[1] >= 'a' && s[1] <= 'z'
	}
	if len(s) == 5 && s[2] == '_' {
		return s[0] >= 'a' && s[0] <= 'z' && s[1] >= 'a' && s[1] <= 'z' &&
			s[3] >= 'A' && s[3] <= 'Z' && s[4] >= 'A' && s[4] <= 'Z'
	}
	return false
}

// detectLanguagesWithStructure finds language codes based on PO structure.
func (p *Project) detectLanguagesWithStructure() []string {
	switch p.POStructure {
	case POStructureFlat:
		return detectLanguagesFlat(p.PODir)
	case POStructureNested:
		return detectLanguagesNested(p.PODir)
	}
	return nil
}

// detectLanguagesNested finds languages from nested structure (po/lang/*.po).
func detectLanguagesNested(poDir string) []string {
	entries, err := os.ReadDir(poDir)
	if err != nil {
		return nil
	}

	var langs []string
	for _, entry := range entries {
		if entry.IsDir() && isLangCode(entry.Name()) && hasPOFile(filepath.Join(poDir, entry.Name())) {
			langs = append(langs, entry.Name())
		}
	}
	sort.Strings(langs)
	return langs
}

// detectLanguagesFlat finds language codes from .po files in a directory.
func detectLanguagesFlat(poDir string) []string {
	entries, err := os.ReadDir(poDir)
	if err != nil {
		return nil
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".po") && !entry.IsDir() {
			langs = append(langs, strings.TrimSuffix(name, ".po"))
		}
	}
	sort.Strings(langs)
	return langs
}

// parseChangelog extracts package name and version from debian/changelog.
var changelogRe = regexp.MustCompile(`^(\S+)\s+\(([^)]+)\)`)

func parseChangelog(path string) (name, version string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if scanner.Scan() {
		line := scanner.Text()
		matches := changelogRe.FindStringSubmatch(line)
		if len(matches) >= 3 {
			return matches[1], matches[2], nil
		}
	}
	return "", "", os.ErrNotExist
}
