package token

import "testing"

func TestLookupIdentIsCaseInsensitive(t *testing.T) {
	cases := []struct {
		ident string
		want  Kind
	}{
		{"begin", BEGIN}, {"BEGIN", BEGIN}, {"Begin", BEGIN}, {"bEgIn", BEGIN},
		{"procedure", PROCEDURE}, {"PROCEDURE", PROCEDURE}, {"Procedure", PROCEDURE},
		{"xor", XOR}, {"XOR", XOR},
		{"myVariable", IDENT}, {"X", IDENT},
	}

	for _, c := range cases {
		if got := LookupIdent(c.ident); got != c.want {
			t.Errorf("LookupIdent(%q) = %v, want %v", c.ident, got, c.want)
		}
	}
}

func TestAllKeywordsRoundTripCaseFold(t *testing.T) {
	for kw, kind := range keywords {
		if got := LookupIdent(kw); got != kind {
			t.Errorf("LookupIdent(%q) = %v, want %v", kw, got, kind)
		}
	}
	if len(keywords) != 63 {
		t.Errorf("keyword table has %d entries, Ada 83 LRM 2.9 defines 63", len(keywords))
	}
}
