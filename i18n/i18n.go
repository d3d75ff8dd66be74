// Package i18n provides internationalization support for pokit itself.
//
// Translations are embedded in the binary via //go:embed and read with the
// gotext library at startup by Init(). T() and N() look strings up in the
// loaded catalog; they never treat the message as a format string, so
// callers format the result themselves.
//
// Usage:
//
//	import "github.com/minios-linux/pokit/i18n"
//
//	func main() {
//	    i18n.Init("")  // auto-detect from LANGUAGE/LC_ALL/LC_MESSAGES/LANG
//	    fmt.Println(i18n.T("Hello, world!"))
//	    fmt.Printf(i18n.N("%d catalog", "%d catalogs", count)+"\n", count)
//	}
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
	"github.com/leonelquinteros/gotext/plurals"

	"github.com/minios-linux/pokit/pofile"
)

// locales embeds the translation files.
// Directory structure: locales/{lang}/LC_MESSAGES/pokit.po
//
//go:embed all:locales
var locales embed.FS

// domain is the gettext domain name for pokit.
const domain = "pokit"

// catalog is pokit's own message catalog for one language.
type catalog struct {
	lang         string
	translations map[string]*gotext.Translation
	plural       plurals.Expression // nil: germanic rule
}

// active is the catalog loaded by Init, nil before.
var active *catalog

// Init initializes the i18n system. If lang is empty, it auto-detects
// from the environment variables LANGUAGE, LC_ALL, LC_MESSAGES, LANG
// (in that order, matching GNU gettext behavior).
//
// Init should be called once at program startup, before any T() or N() calls.
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	active = load(lang)
}

func load(lang string) *catalog {
	c := &catalog{lang: lang}

	loc := gotext.NewLocaleFSWithPath(lang, locales, "locales")
	loc.AddDomain(domain)
	tr, ok := loc.Domains[domain]
	if !ok || tr == nil {
		return c
	}

	d := tr.GetDomain()
	c.translations = d.GetTranslations()
	if rule := pofile.ParsePluralForms(d.PluralForms).Plural; rule != "" {
		if expr, err := plurals.Compile(rule); err == nil {
			c.plural = expr
		}
	}
	return c
}

// form returns the plural form index for n.
func (c *catalog) form(n int) int {
	if c == nil || c.plural == nil {
		if n == 1 {
			return 0
		}
		return 1
	}
	return c.plural.Eval(uint32(n))
}

// T translates a string. If no translation is available, returns the
// original string unchanged (standard gettext passthrough behavior).
func T(msgid string) string {
	if active == nil {
		return msgid
	}
	if tr, ok := active.translations[msgid]; ok {
		return tr.Get()
	}
	return msgid
}

// N translates a string with plural forms. The form is picked by the
// catalog's Plural-Forms rule, or singular for n == 1 and plural otherwise
// when there is none.
func N(singular, plural string, n int) string {
	form := active.form(n)
	if active != nil {
		if tr, ok := active.translations[singular]; ok {
			return tr.GetN(form)
		}
	}
	if form == 0 {
		return singular
	}
	return plural
}

// Language returns the language the catalog was loaded for, or "" before
// Init.
func Language() string {
	if active == nil {
		return ""
	}
	return active.lang
}

// detectLanguage reads environment variables to determine the user's
// preferred language, following GNU gettext conventions.
func detectLanguage() string {
	// GNU gettext priority: LANGUAGE > LC_ALL > LC_MESSAGES > LANG
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		if val := os.Getenv(env); val != "" {
			// LANGUAGE can be a colon-separated list; take the first
			if env == "LANGUAGE" {
				parts := strings.SplitN(val, ":", 2)
				val = parts[0]
			}
			// Strip encoding suffix (e.g. "ru_RU.UTF-8" -> "ru_RU")
			if idx := strings.IndexByte(val, '.'); idx >= 0 {
				val = val[:idx]
			}
			// Skip "C" and "POSIX": these mean no translation
			if val == "C" || val == "POSIX" || val == "" {
				continue
			}
			return val
		}
	}
	return "en"
}
