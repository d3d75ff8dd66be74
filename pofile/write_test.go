package pofile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const canonicalPO = `# Demo translations.
#. generated by hand
msgid ""
msgstr ""
"Project-Id-Version: demo 1.0\n"
"Report-Msgid-Bugs-To: bugs@example.com\n"
"POT-Creation-Date: 2024-01-01 00:00+0000\n"
"PO-Revision-Date: 2024-01-02 00:00+0000\n"
"Last-Translator: Jo <jo@example.com>\n"
"Language: fr\n"
"Language-Team: French\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Content-Transfer-Encoding: 8bit\n"
"Plural-Forms: nplurals=2; plural=(n > 1);\n"

#: main.go:10
msgid "Hello"
msgstr "Bonjour"

# greeting shown twice
#. keep it short
#: main.go:12
#, fuzzy,c-format
#| msgid "Hi %s"
msgctxt "toolbar"
msgid "Hello %s"
msgstr "Salut %s"

msgid "%d file"
msgid_plural "%d files"
msgstr[0] "%d fichier"
msgstr[1] "%d fichiers"

msgid ""
"Usage:\n"
"  demo [flags]\n"
msgstr ""
"Utilisation :\n"
"  demo [options]\n"

msgid "Tab\there \"quoted\" back\\slash"
msgstr "Tab\tici \"cité\" barre\\oblique"

#~ msgid "Gone"
#~ msgstr "Parti"
`

func TestRenderCanonicalIsStable(t *testing.T) {
	c := Parse(canonicalPO)
	if got := c.String(); got != canonicalPO {
		t.Fatalf("String() mismatch (-want +got):\n%s", cmp.Diff(canonicalPO, got))
	}
}

func TestRoundTrip(t *testing.T) {
	first := Parse(canonicalPO)
	second := Parse(first.String())

	if diff := cmp.Diff(first.Headers, second.Headers); diff != "" {
		t.Errorf("headers mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.HeaderOrder, second.HeaderOrder); diff != "" {
		t.Errorf("header order mismatch (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Entries, second.Entries, cmpOpts); diff != "" {
		t.Errorf("entries mismatch (-first +second):\n%s", diff)
	}
}

func TestRenderIsIdempotentForPartialHeaders(t *testing.T) {
	input := `msgid ""
msgstr ""
"Language: en\n"
"X-Generator: hand\n"

msgid "Hello"
msgstr "Bonjour"
`
	once := Parse(input).String()
	twice := Parse(once).String()
	if once != twice {
		t.Fatalf("render not idempotent (-once +twice):\n%s", cmp.Diff(once, twice))
	}

	want := `msgid ""
msgstr ""
"Language: en\n"
"X-Generator: hand\n"
"Project-Id-Version: \n"
"Report-Msgid-Bugs-To: \n"
"POT-Creation-Date: \n"
"PO-Revision-Date: \n"
"Last-Translator: \n"
"Language-Team: \n"
"Content-Type: \n"
"Content-Transfer-Encoding: \n"
"Plural-Forms: \n"

msgid "Hello"
msgstr "Bonjour"
`
	if once != want {
		t.Fatalf("String() mismatch (-want +got):\n%s", cmp.Diff(want, once))
	}
}

func TestRenderPluralPlaceholders(t *testing.T) {
	e := NewEntry(3)
	e.MsgID = "file"
	e.MsgIDPlural = ptr("files")

	want := `msgid "file"
msgid_plural "files"
msgstr[0] ""
msgstr[1] ""
msgstr[2] ""`
	if got := e.String(); got != want {
		t.Fatalf("String() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}

	e.MsgStr = []string{"", ""}
	if got := e.String(); !strings.HasSuffix(got, "msgstr[0] \"\"\nmsgstr[1] \"\"") {
		t.Fatalf("two explicit empty forms should be kept, got:\n%s", got)
	}

	e.MsgStr = []string{"fichier"}
	if got := e.String(); !strings.HasSuffix(got, `msgstr[0] "fichier"`) {
		t.Fatalf("single plural translation should use index 0, got:\n%s", got)
	}
}

func TestRenderMultilineLiteral(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "single line", text: "plain", want: []string{`msgid "plain"`}},
		{name: "empty", text: "", want: []string{`msgid ""`}},
		{name: "trailing newline", text: "Usage:\n", want: []string{`msgid "Usage:\n"`}},
		{name: "embedded newline", text: "line1\nline2", want: []string{`msgid ""`, `"line1\n"`, `"line2"`}},
		{name: "embedded and trailing", text: "a\nb\n", want: []string{`msgid ""`, `"a\n"`, `"b\n"`}},
		{name: "escaped segments", text: "\"q\"\n\tx", want: []string{`msgid ""`, `"\"q\"\n"`, `"\tx"`}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := literalLines("msgid", tc.text, -1)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("literalLines mismatch (-want +got):\n%s", diff)
			}
			back := Parse("msgid \"\"\nmsgstr \"\"\n\n" + strings.Join(got, "\n") + "\nmsgstr \"x\"\n")
			if tc.text == "" {
				if len(back.Entries) != 0 {
					t.Fatalf("empty msgid must not become an entry")
				}
				return
			}
			if back.Entries[0].MsgID != tc.text {
				t.Fatalf("reparsed msgid = %q, want %q", back.Entries[0].MsgID, tc.text)
			}
		})
	}
}

func TestRenderObsoleteEntry(t *testing.T) {
	e := &Entry{
		Comments: []string{"kept for reference"},
		Flags:    flags("fuzzy"),
		MsgCtxt:  ptr("ctx"),
		MsgID:    "one\ntwo",
		MsgStr:   []string{"uno"},
		Obsolete: true,
	}
	e.PrevMsgID = ptr("uno")

	want := `# kept for reference
#, fuzzy
#~| msgid "uno"
#~ msgctxt "ctx"
#~ msgid ""
#~ "one\n"
#~ "two"
#~ msgstr "uno"`
	if got := e.String(); got != want {
		t.Fatalf("String() mismatch (-want +got):\n%s", cmp.Diff(want, got))
	}

	back := Parse(want)
	if len(back.Entries) != 1 {
		t.Fatalf("entries len = %d, want 1", len(back.Entries))
	}
	if !back.Entries[0].Obsolete || back.Entries[0].MsgID != "one\ntwo" {
		t.Fatalf("reparsed entry = %#v", back.Entries[0])
	}
}

func TestRenderFlagsSet(t *testing.T) {
	e := &Entry{MsgID: "x", MsgStr: []string{"y"}}
	e.Flags.Add("fuzzy", "c-format")
	e.Flags.Set("fuzzy", false)
	e.Flags.Add("no-wrap")

	if got := e.String(); !strings.HasPrefix(got, "#, c-format,no-wrap\n") {
		t.Fatalf("flags line mismatch, got:\n%s", got)
	}
	if e.Flags.Has("fuzzy") || e.Flags.Len() != 2 {
		t.Fatalf("flags = %v", e.Flags.Names())
	}
}

func TestLinesRestartableAndStoppable(t *testing.T) {
	c := Parse(canonicalPO)

	var first, second []string
	for line := range c.Lines() {
		first = append(first, line)
	}
	for line := range c.Lines() {
		second = append(second, line)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("second iteration differs (-first +second):\n%s", diff)
	}

	var head []string
	for line := range c.Lines() {
		head = append(head, line)
		if len(head) == 3 {
			break
		}
	}
	if diff := cmp.Diff(first[:3], head); diff != "" {
		t.Fatalf("early stop mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteToMatchesString(t *testing.T) {
	c := Parse(canonicalPO)
	var buf bytes.Buffer
	n, err := c.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Fatalf("WriteTo returned %d, wrote %d", n, buf.Len())
	}
	if buf.String() != c.String() {
		t.Fatalf("WriteTo output differs from String()")
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	c := Parse(canonicalPO)
	before := Parse(canonicalPO)
	_ = c.String()
	if diff := cmp.Diff(before, c, cmpOpts); diff != "" {
		t.Fatalf("rendering mutated the catalog:\n%s", diff)
	}
}
