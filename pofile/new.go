package pofile

import (
	"fmt"
	"strings"
	"time"
)

// HeaderOptions describe a new catalog created by MakeCatalog.
type HeaderOptions struct {
	Package         string
	Version         string
	BugsEmail       string
	CopyrightHolder string
	Language        string
	// Now is the creation time; the current time when zero.
	Now time.Time
}

// MakeCatalog creates an empty catalog with a standard PO header for
// opts.Language, including its Plural-Forms rule.
func MakeCatalog(opts HeaderOptions) *Catalog {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	stamp := now.UTC().Format("2006-01-02 15:04+0000")
	project := opts.Package
	if opts.Version != "" {
		project += " " + opts.Version
	}

	c := NewCatalog()
	c.Comments = []string{
		fmt.Sprintf("%s translations for %s.", LangNameNative(opts.Language), opts.Package),
		fmt.Sprintf("Copyright (C) %d %s", now.Year(), opts.CopyrightHolder),
		fmt.Sprintf("This file is distributed under the same license as the %s package.", opts.Package),
	}
	c.SetHeader("Project-Id-Version", project)
	c.SetHeader("Report-Msgid-Bugs-To", opts.BugsEmail)
	c.SetHeader("POT-Creation-Date", stamp)
	c.SetHeader("PO-Revision-Date", stamp)
	c.SetHeader("Last-Translator", "")
	c.SetHeader("Language-Team", LangNameNative(opts.Language))
	c.SetHeader("Language", opts.Language)
	c.SetHeader("MIME-Version", "1.0")
	c.SetHeader("Content-Type", "text/plain; charset=UTF-8")
	c.SetHeader("Content-Transfer-Encoding", "8bit")
	c.SetHeader("Plural-Forms", PluralFormsForLang(opts.Language))
	return c
}

// LangNameNative returns the native name of a language.
func LangNameNative(lang string) string {
	names := map[string]string{
		"ar":    "العربية",
		"bg":    "Български",
		"cs":    "Čeština",
		"da":    "Dansk",
		"de":    "Deutsch",
		"el":    "Ελληνικά",
		"en":    "English",
		"es":    "Español",
		"fi":    "Suomi",
		"fr":    "Français",
		"he":    "עברית",
		"hi":    "हिन्दी",
		"hr":    "Hrvatski",
		"hu":    "Magyar",
		"id":    "Bahasa Indonesia",
		"it":    "Italiano",
		"ja":    "日本語",
		"ko":    "한국어",
		"lt":    "Lietuvių",
		"lv":    "Latviešu",
		"ms":    "Bahasa Melayu",
		"nl":    "Nederlands",
		"no":    "Norsk",
		"nb":    "Norsk bokmål",
		"nn":    "Norsk nynorsk",
		"pl":    "Polski",
		"pt":    "Português",
		"pt_BR": "Português (Brasil)",
		"ro":    "Română",
		"ru":    "Русский",
		"sk":    "Slovenčina",
		"sr":    "Српски",
		"sv":    "Svenska",
		"th":    "ไทย",
		"tr":    "Türkçe",
		"uk":    "Українська",
		"vi":    "Tiếng Việt",
		"zh":    "中文",
	}
	if name, ok := names[lang]; ok {
		return name
	}
	if idx := strings.IndexAny(lang, "_-"); idx > 0 {
		if name, ok := names[lang[:idx]]; ok {
			return name
		}
	}
	return lang
}
