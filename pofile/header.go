package pofile

import (
	"regexp"
	"strings"
)

var firstEntryRe = regexp.MustCompile(`msgid "[^"]`)

// splitHeader separates the header block from the entry text. Leading
// blank-line-delimited paragraphs are consumed until one holds the empty
// msgid of the header entry. If a real entry turns up first, a bare
// msgid "" is injected to terminate the header block and that paragraph
// is left for the entry parser.
func splitHeader(text string) (header []string, rest string) {
	sections := strings.Split(text, "\n\n")
	var block []string
	for len(sections) > 0 && sections[0] != "" {
		if len(block) > 0 && strings.Contains(block[len(block)-1], `msgid ""`) {
			break
		}
		if firstEntryRe.MatchString(sections[0]) {
			block = append(block, `msgid ""`)
			break
		}
		block = append(block, sections[0])
		sections = sections[1:]
	}
	return strings.Split(strings.Join(block, "\n"), "\n"), strings.Join(sections, "\n")
}

// mergeContinuations joins header values that GNU gettext wrapped over
// several physical lines. A fully quoted line that does not end in \n" is
// glued to the next line, dropping the quotes in between.
func mergeContinuations(lines []string) []string {
	out := make([]string, 0, len(lines))
	merge := false
	for _, line := range lines {
		if merge {
			prev := out[len(out)-1]
			out = out[:len(out)-1]
			line = prev[:len(prev)-1] + dropFirst(line)
			merge = false
		}
		if isQuoted(line) && !strings.HasSuffix(line, `\n"`) {
			merge = true
		}
		out = append(out, line)
	}
	return out
}

// parseHeaderBlock fills the catalog's comments and headers from the
// header block lines.
func (c *Catalog) parseHeaderBlock(lines []string) {
	for _, line := range mergeContinuations(lines) {
		switch {
		case strings.HasPrefix(line, "#."):
			c.ExtractedComments = append(c.ExtractedComments, strings.TrimLeft(line[2:], " \t"))
		case strings.HasPrefix(line, "#"):
			c.Comments = append(c.Comments, strings.TrimLeft(line[1:], " \t"))
		case strings.HasPrefix(line, `"`):
			field := strings.TrimSpace(line)[1:]
			if f, ok := strings.CutSuffix(field, `\n"`); ok {
				field = f
			} else {
				field = strings.TrimSuffix(field, `"`)
			}
			name, value, _ := strings.Cut(field, ":")
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			c.SetHeader(name, strings.TrimSpace(value))
		}
	}
}

// isQuoted reports whether line starts and ends with a double quote.
func isQuoted(line string) bool {
	return len(line) >= 2 && line[0] == '"' && line[len(line)-1] == '"'
}

func dropFirst(s string) string {
	if s == "" {
		return s
	}
	return s[1:]
}
