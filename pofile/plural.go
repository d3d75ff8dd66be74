package pofile

import (
	"strconv"
	"strings"
)

// DefaultNPlurals is used when Plural-Forms is missing or its nplurals
// clause is not a number.
const DefaultNPlurals = 2

// PluralForms is the parsed Plural-Forms header. Plural is the selection
// expression; it is kept verbatim and never evaluated.
type PluralForms struct {
	NPlurals string
	Plural   string
}

// ParsePluralForms splits a Plural-Forms value such as
// "nplurals=2; plural=(n != 1);" into its clauses.
func ParsePluralForms(value string) PluralForms {
	clauses := make(map[string]string)
	for _, clause := range strings.Split(value, ";") {
		clause = strings.TrimSpace(clause)
		key, val, _ := strings.Cut(clause, "=")
		clauses[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return PluralForms{
		NPlurals: clauses["nplurals"],
		Plural:   clauses["plural"],
	}
}

// Count returns NPlurals as an integer, DefaultNPlurals when it is absent
// or not numeric. Counts above the highest msgstr[N] index the parser
// accepts are clamped to it.
func (p PluralForms) Count() int {
	n, err := strconv.Atoi(p.NPlurals)
	if err != nil || n < 0 {
		return DefaultNPlurals
	}
	return min(n, maxPluralIndex+1)
}

// PluralFormsForLang returns the standard Plural-Forms header for a language code.
func PluralFormsForLang(lang string) string {
	base := lang
	if idx := strings.IndexAny(lang, "_-"); idx > 0 {
		base = lang[:idx]
	}

	switch base {
	case "ja", "ko", "zh", "vi", "th", "id", "ms":
		return "nplurals=1; plural=0;"
	case "fr", "pt":
		return "nplurals=2; plural=(n > 1);"
	case "ru", "uk", "be", "hr", "sr", "bs":
		return "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);"
	case "pl":
		return "nplurals=3; plural=(n==1 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);"
	case "cs", "sk":
		return "nplurals=3; plural=(n==1 ? 0 : n>=2 && n<=4 ? 1 : 2);"
	case "ro":
		return "nplurals=3; plural=(n==1 ? 0 : (n==0 || (n%100 > 0 && n%100 < 20)) ? 1 : 2);"
	case "lt":
		return "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && (n%100<10 || n%100>=20) ? 1 : 2);"
	case "lv":
		return "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n != 0 ? 1 : 2);"
	case "ar":
		return "nplurals=6; plural=(n==0 ? 0 : n==1 ? 1 : n==2 ? 2 : n%100>=3 && n%100<=10 ? 3 : n%100>=11 ? 4 : 5);"
	default:
		return "nplurals=2; plural=(n != 1);"
	}
}
