package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestDetect(t *testing.T) {
	t.Run("flat structure with changelog", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "debian", "changelog"),
			"minios-tools (4.1.2) unstable; urgency=medium\n\n  * Release.\n")
		writeFile(t, filepath.Join(dir, "po", "ru.po"), "")
		writeFile(t, filepath.Join(dir, "po", "de.po"), "")
		writeFile(t, filepath.Join(dir, "po", "messages.pot"), "")

		p := Detect(dir)
		if p.Name != "minios-tools" || p.Version != "4.1.2" {
			t.Fatalf("name/version = %q/%q, want minios-tools/4.1.2", p.Name, p.Version)
		}
		if p.POStructure != POStructureFlat {
			t.Fatalf("POStructure = %q, want flat", p.POStructure)
		}
		if !reflect.DeepEqual(p.Languages, []string{"de", "ru"}) {
			t.Fatalf("Languages = %v, want [de ru]", p.Languages)
		}
		want := []string{
			filepath.Join(p.PODir, "de.po"),
			filepath.Join(p.PODir, "messages.pot"),
			filepath.Join(p.PODir, "ru.po"),
		}
		if got := p.Catalogs(); !reflect.DeepEqual(got, want) {
			t.Fatalf("Catalogs = %v, want %v", got, want)
		}
		if got, want := p.POPath("fr"), filepath.Join(p.PODir, "fr.po"); got != want {
			t.Fatalf("POPath = %q, want %q", got, want)
		}
	})

	t.Run("nested structure falls back to directory name", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "widget")
		writeFile(t, filepath.Join(dir, "po", "pt_BR", "widget.po"), "")
		writeFile(t, filepath.Join(dir, "po", "ru", "widget.po"), "")
		writeFile(t, filepath.Join(dir, "po", "notalang", "x.po"), "")

		p := Detect(dir)
		if p.Name != "widget" || p.Version != "0.0.0" {
			t.Fatalf("name/version = %q/%q, want widget/0.0.0", p.Name, p.Version)
		}
		if p.POStructure != POStructureNested {
			t.Fatalf("POStructure = %q, want nested", p.POStructure)
		}
		if !reflect.DeepEqual(p.Languages, []string{"pt_BR", "ru"}) {
			t.Fatalf("Languages = %v, want [pt_BR ru]", p.Languages)
		}
		if got, want := p.POPath("de"), filepath.Join(p.PODir, "de", "widget.po"); got != want {
			t.Fatalf("POPath = %q, want %q", got, want)
		}
	})

	t.Run("no po directory", func(t *testing.T) {
		p := Detect(t.TempDir())
		if p.POStructure != POStructureUnknown {
			t.Fatalf("POStructure = %q, want unknown", p.POStructure)
		}
		if got := p.Catalogs(); len(got) != 0 {
			t.Fatalf("Catalogs = %v, want none", got)
		}
	})
}

func TestIsLangCode(t *testing.T) {
	for s, want := range map[string]bool{
		"ru": true, "pt_BR": true, "zh_CN": true,
		"RU": false, "pt-BR": false, "eng": false, "": false,
	} {
		if got := isLangCode(s); got != want {
			t.Errorf("isLangCode(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestLoadProjectFile(t *testing.T) {
	t.Run("missing file returns nil", func(t *testing.T) {
		pf, err := LoadProjectFile(t.TempDir())
		if err != nil {
			t.Fatalf("LoadProjectFile error: %v", err)
		}
		if pf != nil {
			t.Fatalf("LoadProjectFile expected nil, got %#v", pf)
		}
		if !pf.LockEnabled() {
			t.Fatal("lock should default to enabled without a config file")
		}
	})

	t.Run("reads fields and defaults lock", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ProjectFileName),
			"catalogs:\n  - po/*.po\n  - po/*.pot\nlanguage: ru\nproject: minios\n")

		pf, err := LoadProjectFile(dir)
		if err != nil {
			t.Fatalf("LoadProjectFile error: %v", err)
		}
		if !reflect.DeepEqual(pf.Catalogs, []string{"po/*.po", "po/*.pot"}) {
			t.Fatalf("Catalogs = %v", pf.Catalogs)
		}
		if pf.Language != "ru" {
			t.Fatalf("Language = %q, want ru", pf.Language)
		}
		if !pf.LockEnabled() {
			t.Fatal("lock should default to enabled")
		}
	})

	t.Run("lock can be disabled", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ProjectFileName), "catalogs: [po/*.po]\nlock: false\n")
		pf, err := LoadProjectFile(dir)
		if err != nil {
			t.Fatalf("LoadProjectFile error: %v", err)
		}
		if pf.LockEnabled() {
			t.Fatal("lock: false should disable the lock")
		}
	})

	t.Run("empty file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ProjectFileName), "")
		pf, err := LoadProjectFile(dir)
		if err != nil {
			t.Fatalf("LoadProjectFile error: %v", err)
		}
		if pf == nil || len(pf.Catalogs) != 0 {
			t.Fatalf("expected empty config, got %#v", pf)
		}
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ProjectFileName), "targets:\n  - name: app\n")
		_, err := LoadProjectFile(dir)
		if err == nil {
			t.Fatal("expected error for unknown key")
		}
		if !strings.Contains(err.Error(), "targets") {
			t.Fatalf("error %q does not name the unknown key", err)
		}
	})

	t.Run("rejects bad globs", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ProjectFileName), "catalogs: [\"po/[\"]\n")
		if _, err := LoadProjectFile(dir); err == nil {
			t.Fatal("expected error for malformed glob")
		}
	})
}

func TestProjectFileResolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "po", "ru.po"), "")
	writeFile(t, filepath.Join(dir, "po", "de.po"), "")
	writeFile(t, filepath.Join(dir, "po", "app.pot"), "")
	if err := os.MkdirAll(filepath.Join(dir, "po", "dir.po"), 0755); err != nil {
		t.Fatal(err)
	}

	pf := &ProjectFile{Catalogs: []string{"po/*.po", "po/ru.po", "po/*.pot"}}
	files, err := pf.Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	abs, _ := filepath.Abs(dir)
	want := []string{
		filepath.Join(abs, "po", "app.pot"),
		filepath.Join(abs, "po", "de.po"),
		filepath.Join(abs, "po", "ru.po"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Fatalf("Resolve = %v, want %v", files, want)
	}
}

func TestProjectFileApply(t *testing.T) {
	p := &Project{Name: "detected", Version: "1.0"}
	pf := &ProjectFile{Project: "override", BugsEmail: "bugs@example.org"}
	pf.Apply(p)
	if p.Name != "override" || p.Version != "1.0" || p.BugsEmail != "bugs@example.org" {
		t.Fatalf("Apply result = %#v", p)
	}

	var none *ProjectFile
	none.Apply(p)
	if p.Name != "override" {
		t.Fatal("nil Apply must not change the project")
	}
}

func TestReadProjectFileMissing(t *testing.T) {
	_, err := ReadProjectFile(filepath.Join(t.TempDir(), "custom.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("ReadProjectFile(missing) error = %v, want os.ErrNotExist", err)
	}
}
