package pofile

import "testing"

func TestParsePluralForms(t *testing.T) {
	tests := []struct {
		value     string
		nplurals  string
		plural    string
		wantCount int
	}{
		{
			value:     "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : 1);",
			nplurals:  "3",
			plural:    "(n%10==1 && n%100!=11 ? 0 : 1)",
			wantCount: 3,
		},
		{value: " nplurals = 1 ; plural = 0 ", nplurals: "1", plural: "0", wantCount: 1},
		{value: "", wantCount: 2},
		{value: "plural=(n != 1);", plural: "(n != 1)", wantCount: 2},
		{value: "nplurals=many; plural=0;", nplurals: "many", plural: "0", wantCount: 2},
	}

	for _, tc := range tests {
		got := ParsePluralForms(tc.value)
		if got.NPlurals != tc.nplurals || got.Plural != tc.plural {
			t.Errorf("ParsePluralForms(%q) = %+v, want nplurals=%q plural=%q", tc.value, got, tc.nplurals, tc.plural)
		}
		if n := got.Count(); n != tc.wantCount {
			t.Errorf("ParsePluralForms(%q).Count() = %d, want %d", tc.value, n, tc.wantCount)
		}
	}
}

func TestPluralFormsForLang(t *testing.T) {
	pluralCases := []struct {
		lang string
		want string
	}{
		{lang: "ru", want: "nplurals=3; plural=(n%10==1 && n%100!=11 ? 0 : n%10>=2 && n%10<=4 && (n%100<10 || n%100>=20) ? 1 : 2);"},
		{lang: "pt-BR", want: "nplurals=2; plural=(n > 1);"},
		{lang: "ja", want: "nplurals=1; plural=0;"},
		{lang: "zz", want: "nplurals=2; plural=(n != 1);"},
	}
	for _, tc := range pluralCases {
		if got := PluralFormsForLang(tc.lang); got != tc.want {
			t.Fatalf("PluralFormsForLang(%q) = %q, want %q", tc.lang, got, tc.want)
		}
	}

	if got := ParsePluralForms(PluralFormsForLang("ar")).Count(); got != 6 {
		t.Fatalf("nplurals for ar = %d, want 6", got)
	}
}
