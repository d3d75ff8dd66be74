// Package pofile implements reading and writing of PO/POT files
// following the GNU gettext format specification.
//
// Parse turns PO text into a Catalog and Catalog.String (or the lazy
// Catalog.Lines) turns it back into PO text. Neither step touches the
// filesystem; ReadFile and WriteFile are thin adapters around them.
package pofile

import (
	"sort"
	"strconv"
	"strings"
)

// DefaultHeaders lists the gettext headers every Catalog carries, in the
// order they are emitted when the source text never mentions them.
var DefaultHeaders = []string{
	"Project-Id-Version",
	"Report-Msgid-Bugs-To",
	"POT-Creation-Date",
	"PO-Revision-Date",
	"Last-Translator",
	"Language",
	"Language-Team",
	"Content-Type",
	"Content-Transfer-Encoding",
	"Plural-Forms",
}

// Entry represents a single translatable message in a PO file.
type Entry struct {
	// Comments are translator comments, lines starting with "# ".
	Comments []string
	// ExtractedComments are lines starting with "#.".
	ExtractedComments []string
	// References are source code locations, lines starting with "#:".
	References []string
	// Flags are format flags, lines starting with "#,".
	Flags FlagSet

	// PrevMsgCtxt, PrevMsgID and PrevMsgIDPlural hold the "#|" previous
	// strings GNU msgmerge leaves on fuzzy entries.
	PrevMsgCtxt     *string
	PrevMsgID       *string
	PrevMsgIDPlural *string

	// MsgCtxt is the message context, nil when absent.
	MsgCtxt *string
	// MsgID is the untranslated string.
	MsgID string
	// MsgIDPlural is the untranslated plural string, nil when absent.
	MsgIDPlural *string
	// MsgStr holds the translations indexed by plural form.
	MsgStr []string

	// Obsolete marks entries whose content lines were all prefixed with "#~".
	Obsolete bool
	// NPlurals is the catalog's plural count, used to expand empty plural
	// translations when rendering.
	NPlurals int
}

// NewEntry returns an empty entry for a catalog with nplurals plural forms.
func NewEntry(nplurals int) *Entry {
	return &Entry{NPlurals: nplurals}
}

// HasPlural reports whether the entry has a non-empty msgid_plural.
func (e *Entry) HasPlural() bool {
	return e.MsgIDPlural != nil && *e.MsgIDPlural != ""
}

// hasTranslation reports whether any msgstr is non-empty.
func (e *Entry) hasTranslation() bool {
	for _, s := range e.MsgStr {
		if s != "" {
			return true
		}
	}
	return false
}

// IsTranslated returns true if the entry has a non-empty translation in
// every populated form and is not fuzzy.
func (e *Entry) IsTranslated() bool {
	if e.MsgID == "" || e.IsFuzzy() || len(e.MsgStr) == 0 {
		return false
	}
	for _, s := range e.MsgStr {
		if s == "" {
			return false
		}
	}
	return true
}

// IsFuzzy returns true if the entry is marked fuzzy.
func (e *Entry) IsFuzzy() bool {
	return e.Flags.Has("fuzzy")
}

// SetMsgStr stores a translation at plural index i, growing MsgStr as needed.
func (e *Entry) SetMsgStr(i int, s string) {
	for len(e.MsgStr) <= i {
		e.MsgStr = append(e.MsgStr, "")
	}
	e.MsgStr[i] = s
}

// FlagSet is a set of flag names. It remembers the order names were first
// added so rendering is stable, but membership is all that matters.
type FlagSet struct {
	names []string
	on    map[string]bool
}

// Set switches a flag on or off. A switched-off flag is not rendered.
func (f *FlagSet) Set(name string, on bool) {
	if f.on == nil {
		f.on = make(map[string]bool)
	}
	if _, seen := f.on[name]; !seen {
		f.names = append(f.names, name)
	}
	f.on[name] = on
}

// Add switches the named flags on.
func (f *FlagSet) Add(names ...string) {
	for _, n := range names {
		f.Set(n, true)
	}
}

// Has reports whether the flag is set.
func (f FlagSet) Has(name string) bool {
	return f.on[name]
}

// Names returns the set flags in first-insertion order.
func (f FlagSet) Names() []string {
	var out []string
	for _, n := range f.names {
		if f.on[n] {
			out = append(out, n)
		}
	}
	return out
}

// Len returns the number of set flags.
func (f FlagSet) Len() int {
	return len(f.Names())
}

// Catalog represents a parsed PO/POT file.
type Catalog struct {
	// Comments are the free-text lines before the header block.
	Comments []string
	// ExtractedComments are the "#." lines attached to the header block.
	ExtractedComments []string
	// Headers maps header names to their values.
	Headers map[string]string
	// HeaderOrder records header names in the order they were first seen.
	HeaderOrder []string
	// Entries are the translatable message entries in file order.
	Entries []*Entry
}

// NewCatalog creates an empty catalog seeded with DefaultHeaders.
func NewCatalog() *Catalog {
	c := &Catalog{Headers: make(map[string]string, len(DefaultHeaders))}
	for _, name := range DefaultHeaders {
		c.Headers[name] = ""
	}
	return c
}

// Header returns a header value by name.
func (c *Catalog) Header(name string) string {
	return c.Headers[name]
}

// SetHeader sets a header value, recording the name in HeaderOrder if it
// has not been seen before.
func (c *Catalog) SetHeader(name, value string) {
	if c.Headers == nil {
		c.Headers = make(map[string]string)
	}
	c.Headers[name] = value
	for _, n := range c.HeaderOrder {
		if n == name {
			return
		}
	}
	c.HeaderOrder = append(c.HeaderOrder, name)
}

// PluralForms returns the parsed Plural-Forms header.
func (c *Catalog) PluralForms() PluralForms {
	return ParsePluralForms(c.Headers["Plural-Forms"])
}

// NPlurals returns the number of plural forms declared by the catalog.
func (c *Catalog) NPlurals() int {
	return c.PluralForms().Count()
}

// HeaderNames returns the header names in emission order: HeaderOrder
// first, then unseen defaults in DefaultHeaders order, then any other
// header sorted by name. Each name appears once.
func (c *Catalog) HeaderNames() []string {
	seen := make(map[string]bool, len(c.Headers))
	var names []string
	for _, n := range c.HeaderOrder {
		if _, ok := c.Headers[n]; ok && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, n := range DefaultHeaders {
		if _, ok := c.Headers[n]; ok && !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	var rest []string
	for n := range c.Headers {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// Find returns the first non-obsolete entry with the given context and
// msgid. A nil msgctxt matches only entries without context.
func (c *Catalog) Find(msgctxt *string, msgid string) *Entry {
	for _, e := range c.Entries {
		if e.Obsolete || e.MsgID != msgid {
			continue
		}
		if (msgctxt == nil) != (e.MsgCtxt == nil) {
			continue
		}
		if msgctxt != nil && *msgctxt != *e.MsgCtxt {
			continue
		}
		return e
	}
	return nil
}

// Stats holds translation statistics for a catalog.
type Stats struct {
	Total        int
	Translated   int
	Fuzzy        int
	Untranslated int
	Obsolete     int
}

// Percent returns the translated share of Total, 0..100.
func (s Stats) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Translated * 100 / s.Total
}

// Stats returns translation statistics. Obsolete entries are counted
// separately and excluded from Total.
func (c *Catalog) Stats() Stats {
	var s Stats
	for _, e := range c.Entries {
		if e.Obsolete {
			s.Obsolete++
			continue
		}
		s.Total++
		switch {
		case e.IsFuzzy():
			s.Fuzzy++
		case e.IsTranslated():
			s.Translated++
		default:
			s.Untranslated++
		}
	}
	return s
}

// String renders the stats on one line.
func (s Stats) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.Translated) + " translated")
	if s.Fuzzy > 0 {
		b.WriteString(", " + strconv.Itoa(s.Fuzzy) + " fuzzy")
	}
	if s.Untranslated > 0 {
		b.WriteString(", " + strconv.Itoa(s.Untranslated) + " untranslated")
	}
	if s.Obsolete > 0 {
		b.WriteString(", " + strconv.Itoa(s.Obsolete) + " obsolete")
	}
	return b.String()
}
