package pofile

import (
	"io"
	"strings"
)

// field identifies the entry field a keyword line opened. Continuation
// string lines are appended to the open field.
type field int

const (
	fieldNone field = iota
	fieldMsgctxt
	fieldMsgid
	fieldMsgidPlural
	fieldMsgstr
	fieldPrevMsgctxt
	fieldPrevMsgid
	fieldPrevMsgidPlural
)

// transition describes what a line class does to the assembler: whether it
// finalizes the pending entry first, which field it opens, and whether it
// counts as a content line for obsolete detection.
type transition struct {
	finish  bool
	opens   field
	content bool
}

var transitions = map[lineKind]transition{
	lineReference:       {finish: true},
	lineFlags:           {finish: true},
	lineComment:         {finish: true},
	lineExtracted:       {finish: true},
	linePrevMsgctxt:     {finish: true, opens: fieldPrevMsgctxt},
	linePrevMsgid:       {finish: true, opens: fieldPrevMsgid},
	linePrevMsgidPlural: {finish: true, opens: fieldPrevMsgidPlural},
	lineMsgidPlural:     {opens: fieldMsgidPlural, content: true},
	lineMsgid:           {finish: true, opens: fieldMsgid, content: true},
	lineMsgstr:          {opens: fieldMsgstr, content: true},
	lineMsgctxt:         {finish: true, opens: fieldMsgctxt, content: true},
	lineString:          {content: true},
}

// continues lists, per open field, the continuation line class that may
// extend it.
var continues = map[field]lineKind{
	fieldMsgctxt:         lineString,
	fieldMsgid:           lineString,
	fieldMsgidPlural:     lineString,
	fieldMsgstr:          lineString,
	fieldPrevMsgctxt:     linePrevString,
	fieldPrevMsgid:       linePrevString,
	fieldPrevMsgidPlural: linePrevString,
}

// pending is the entry being assembled together with its bookkeeping.
type pending struct {
	entry         *Entry
	open          field
	plural        int
	obsoleteLines int
	contentLines  int
}

// assembler turns classified lines into catalog entries.
type assembler struct {
	cat      *Catalog
	nplurals int
	cur      pending
}

func newAssembler(c *Catalog, nplurals int) *assembler {
	a := &assembler{cat: c, nplurals: nplurals}
	a.reset()
	return a
}

func (a *assembler) reset() {
	a.cur = pending{entry: NewEntry(a.nplurals)}
}

// finish appends the pending entry to the catalog if it has a msgid. An
// entry is obsolete when it has at least as many "#~" lines as content
// lines. Entries without msgid keep accumulating.
func (a *assembler) finish() {
	p := &a.cur
	if p.entry.MsgID == "" {
		return
	}
	p.entry.Obsolete = p.obsoleteLines >= p.contentLines
	a.cat.Entries = append(a.cat.Entries, p.entry)
	a.reset()
}

// feed processes one physical line.
func (a *assembler) feed(raw string) {
	l := classify(raw)
	t := transitions[l.kind]
	if t.finish {
		a.finish()
	}
	p := &a.cur
	e := p.entry
	if t.content {
		p.contentLines++
	}

	switch l.kind {
	case lineReference:
		e.References = append(e.References, l.text)
	case lineFlags:
		for _, f := range strings.Split(l.text, ",") {
			if f = strings.TrimSpace(f); f != "" {
				e.Flags.Add(f)
			}
		}
	case lineComment:
		e.Comments = append(e.Comments, l.text)
	case lineExtracted:
		e.ExtractedComments = append(e.ExtractedComments, l.text)
	case linePrevMsgctxt:
		e.PrevMsgCtxt = ptr(l.text)
	case linePrevMsgid:
		e.PrevMsgID = ptr(l.text)
	case linePrevMsgidPlural:
		e.PrevMsgIDPlural = ptr(l.text)
	case lineMsgidPlural:
		e.MsgIDPlural = ptr(l.text)
	case lineMsgid:
		e.MsgID = l.text
	case lineMsgstr:
		p.plural = l.index
		e.SetMsgStr(l.index, l.text)
	case lineMsgctxt:
		e.MsgCtxt = ptr(l.text)
	case lineString, linePrevString:
		if continues[p.open] == l.kind {
			a.appendOpen(l.text)
		}
	}

	if t.opens != fieldNone {
		p.open = t.opens
	}
	if l.obsolete {
		p.obsoleteLines++
	}
}

// appendOpen extends the open field with a continuation string.
func (a *assembler) appendOpen(s string) {
	p := &a.cur
	e := p.entry
	switch p.open {
	case fieldMsgctxt:
		appendTo(&e.MsgCtxt, s)
	case fieldMsgid:
		e.MsgID += s
	case fieldMsgidPlural:
		appendTo(&e.MsgIDPlural, s)
	case fieldMsgstr:
		e.SetMsgStr(p.plural, e.MsgStr[p.plural]+s)
	case fieldPrevMsgctxt:
		appendTo(&e.PrevMsgCtxt, s)
	case fieldPrevMsgid:
		appendTo(&e.PrevMsgID, s)
	case fieldPrevMsgidPlural:
		appendTo(&e.PrevMsgIDPlural, s)
	}
}

// Parse parses PO text into a Catalog. Unix and Windows line endings are
// both accepted. Parse never fails: lines it cannot make sense of are
// skipped.
func Parse(text string) *Catalog {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	c := NewCatalog()

	header, rest := splitHeader(text)
	c.parseHeaderBlock(header)

	a := newAssembler(c, c.NPlurals())
	for _, line := range strings.Split(rest, "\n") {
		a.feed(line)
	}
	a.finish()
	return c
}

// Read reads all of r and parses it. Read errors are reported as
// ErrUnreadable.
func Read(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, unreadable("reading catalog", err)
	}
	return Parse(string(data)), nil
}

func ptr(s string) *string { return &s }

func appendTo(p **string, s string) {
	if *p == nil {
		*p = ptr(s)
		return
	}
	v := **p + s
	*p = &v
}
