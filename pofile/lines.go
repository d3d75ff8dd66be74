package pofile

import "strings"

// lineKind is the class of one physical PO line.
type lineKind int

const (
	lineBlank lineKind = iota
	lineReference
	lineFlags
	lineComment
	lineExtracted
	linePrevMsgctxt
	linePrevMsgid
	linePrevMsgidPlural
	linePrevString
	lineMsgidPlural
	lineMsgid
	lineMsgstr
	lineMsgctxt
	lineString
)

// poLine is a classified line. text holds the comment remainder or the
// decoded string literal, index the msgstr plural index.
type poLine struct {
	kind     lineKind
	obsolete bool
	text     string
	index    int
}

// classify assigns a class to a raw line. Lines that match nothing are
// reported as blank.
func classify(raw string) poLine {
	s := strings.TrimSpace(raw)
	var l poLine
	if strings.HasPrefix(s, "#~") {
		l.obsolete = true
		s = s[2:]
		if strings.HasPrefix(s, "|") {
			s = "#" + s
		}
		s = strings.TrimSpace(s)
	}

	switch {
	case strings.HasPrefix(s, "#:"):
		l.kind, l.text = lineReference, strings.TrimSpace(s[2:])
	case strings.HasPrefix(s, "#,"):
		l.kind, l.text = lineFlags, strings.TrimSpace(s[2:])
	case s == "#" || strings.HasPrefix(s, "# ") || strings.HasPrefix(s, "#\t"):
		l.kind, l.text = lineComment, strings.TrimSpace(s[1:])
	case strings.HasPrefix(s, "#."):
		l.kind, l.text = lineExtracted, strings.TrimSpace(s[2:])
	case strings.HasPrefix(s, "#|"):
		inner := classify(s[2:])
		switch inner.kind {
		case lineMsgctxt:
			l.kind = linePrevMsgctxt
		case lineMsgid:
			l.kind = linePrevMsgid
		case lineMsgidPlural:
			l.kind = linePrevMsgidPlural
		case lineString:
			l.kind = linePrevString
		default:
			return l
		}
		l.text = inner.text
	case strings.HasPrefix(s, "msgid_plural"):
		l.kind, l.text = lineMsgidPlural, extract(s)
	case strings.HasPrefix(s, "msgid"):
		l.kind, l.text = lineMsgid, extract(s)
	case strings.HasPrefix(s, "msgstr"):
		l.index = msgstrIndex(s)
		if l.index < 0 {
			return l
		}
		l.kind, l.text = lineMsgstr, extract(s)
	case strings.HasPrefix(s, "msgctxt"):
		l.kind, l.text = lineMsgctxt, extract(s)
	case strings.HasPrefix(s, `"`):
		l.kind, l.text = lineString, extract(s)
	}
	return l
}

// maxPluralIndex bounds msgstr[N] so a corrupt index cannot force a huge
// allocation.
const maxPluralIndex = 255

// msgstrIndex returns N for a "msgstr[N]" line, 0 for a plain msgstr line
// or an index that is not a run of ASCII digits, and -1 when N is out of
// range.
func msgstrIndex(s string) int {
	rest, ok := strings.CutPrefix(s, "msgstr[")
	if !ok {
		return 0
	}
	end := strings.IndexByte(rest, ']')
	if end <= 0 {
		return 0
	}
	n := 0
	for _, c := range []byte(rest[:end]) {
		if c < '0' || c > '9' {
			return 0
		}
		if n <= maxPluralIndex {
			n = n*10 + int(c-'0')
		}
	}
	if n > maxPluralIndex {
		return -1
	}
	return n
}
