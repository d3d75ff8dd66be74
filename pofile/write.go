package pofile

import (
	"io"
	"iter"
	"strconv"
	"strings"
)

// keywordField is one of the four keyword fields in emission order.
// value reports the field's strings and whether the field is present;
// indexed is set for msgstr, whose values are per plural form.
type keywordField struct {
	keyword string
	indexed bool
	value   func(e *Entry) ([]string, bool)
}

var keywordFields = []keywordField{
	{keyword: "msgctxt", value: func(e *Entry) ([]string, bool) { return optional(e.MsgCtxt) }},
	{keyword: "msgid", value: func(e *Entry) ([]string, bool) { return []string{e.MsgID}, true }},
	{keyword: "msgid_plural", value: func(e *Entry) ([]string, bool) { return optional(e.MsgIDPlural) }},
	{keyword: "msgstr", indexed: true, value: func(e *Entry) ([]string, bool) { return e.MsgStr, true }},
}

var previousFields = []keywordField{
	{keyword: "msgctxt", value: func(e *Entry) ([]string, bool) { return optional(e.PrevMsgCtxt) }},
	{keyword: "msgid", value: func(e *Entry) ([]string, bool) { return optional(e.PrevMsgID) }},
	{keyword: "msgid_plural", value: func(e *Entry) ([]string, bool) { return optional(e.PrevMsgIDPlural) }},
}

func optional(s *string) ([]string, bool) {
	if s == nil {
		return nil, false
	}
	return []string{*s}, true
}

// Lines returns the PO lines of the catalog: header comments, the header
// entry, then every entry followed by a blank line. The sequence can be
// iterated any number of times.
func (c *Catalog) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, comment := range c.Comments {
			if !yield("# " + strings.TrimSpace(comment)) {
				return
			}
		}
		for _, comment := range c.ExtractedComments {
			if !yield("#. " + strings.TrimSpace(comment)) {
				return
			}
		}
		if !yield(`msgid ""`) || !yield(`msgstr ""`) {
			return
		}
		for _, name := range c.HeaderNames() {
			if !yield(`"` + name + ": " + c.Headers[name] + `\n"`) {
				return
			}
		}
		if !yield("") {
			return
		}
		for _, e := range c.Entries {
			for line := range e.Lines() {
				if !yield(line) {
					return
				}
			}
			if !yield("") {
				return
			}
		}
	}
}

// String renders the catalog as PO text.
func (c *Catalog) String() string {
	return joinLines(c.Lines())
}

// WriteTo writes the same text as String to w, one line at a time.
func (c *Catalog) WriteTo(w io.Writer) (int64, error) {
	var total int64
	first := true
	for line := range c.Lines() {
		if !first {
			line = "\n" + line
		}
		first = false
		n, err := io.WriteString(w, line)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Lines returns the PO lines of one entry, without the trailing blank line.
func (e *Entry) Lines() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, c := range e.Comments {
			if !yield("# " + c) {
				return
			}
		}
		for _, c := range e.ExtractedComments {
			if !yield("#. " + c) {
				return
			}
		}
		for _, ref := range e.References {
			if !yield("#: " + ref) {
				return
			}
		}
		if flags := e.Flags.Names(); len(flags) > 0 {
			if !yield("#, " + strings.Join(flags, ",")) {
				return
			}
		}

		prefix, prevPrefix := "", "#| "
		if e.Obsolete {
			prefix, prevPrefix = "#~ ", "#~| "
		}
		for _, f := range previousFields {
			if vals, ok := f.value(e); ok {
				for _, line := range literalLines(f.keyword, vals[0], -1) {
					if !yield(prevPrefix + line) {
						return
					}
				}
			}
		}
		for _, f := range keywordFields {
			vals, ok := f.value(e)
			if !ok {
				continue
			}
			for _, line := range e.fieldLines(f, vals) {
				if !yield(prefix + line) {
					return
				}
			}
		}
	}
}

// String renders the entry as PO text.
func (e *Entry) String() string {
	return joinLines(e.Lines())
}

// fieldLines renders one keyword field. Several translations become one
// msgstr[i] block each; a plural entry without any translation gets
// NPlurals empty msgstr[i] placeholders; everything else is one literal.
func (e *Entry) fieldLines(f keywordField, vals []string) []string {
	if len(vals) > 1 {
		var lines []string
		for i, v := range vals {
			lines = append(lines, literalLines(f.keyword, v, i)...)
		}
		return lines
	}
	if f.indexed && e.HasPlural() && !e.hasTranslation() {
		n := e.NPlurals
		if n <= 0 {
			n = DefaultNPlurals
		}
		n = min(n, maxPluralIndex+1)
		lines := make([]string, 0, n)
		for i := 0; i < n; i++ {
			lines = append(lines, f.keyword+"["+strconv.Itoa(i)+`] ""`)
		}
		return lines
	}

	index := -1
	if f.indexed && e.HasPlural() {
		index = 0
	}
	text := ""
	if len(vals) == 1 {
		text = vals[0]
	}
	return literalLines(f.keyword, text, index)
}

// literalLines renders keyword (with [index] when index >= 0) and a string
// value. Values containing newlines use the GNU multi-line layout: an empty
// first literal, then one quoted line per segment, each but the last ending
// in \n. A value ending in a newline keeps that \n on its last segment.
func literalLines(keyword, text string, index int) []string {
	if index >= 0 {
		keyword += "[" + strconv.Itoa(index) + "]"
	}
	parts := strings.Split(text, "\n")
	trailing := len(parts) > 1 && parts[len(parts)-1] == ""
	if trailing {
		parts = parts[:len(parts)-1]
	}

	if len(parts) == 1 {
		line := keyword + ` "` + Escape(parts[0])
		if trailing {
			line += `\n`
		}
		return []string{line + `"`}
	}

	lines := make([]string, 0, len(parts)+1)
	lines = append(lines, keyword+` ""`)
	for i, part := range parts {
		line := `"` + Escape(part)
		if i < len(parts)-1 || trailing {
			line += `\n`
		}
		lines = append(lines, line+`"`)
	}
	return lines
}

func joinLines(seq iter.Seq[string]) string {
	var b strings.Builder
	first := true
	for line := range seq {
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(line)
	}
	return b.String()
}
