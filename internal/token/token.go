package token

// Token is a single lexical unit: its kind, the exact source slice it was
// scanned from (original casing preserved, so the lexer's round-trip
// property holds), its position, and a literal payload when Kind.IsLiteral.
//
// Only the field matching Kind is meaningful:
//   - INT:    Int
//   - REAL:   Float
//   - BASED:  Int/Float if the based literal has no fraction, else Num/Den
//     hold the numerator/denominator of the exact fractional value and
//     Float holds the rounded double used for code generation.
//   - CHAR:   Int holds the character code, Literal the original text.
//   - STRING, IDENT: Literal holds the (unescaped) text.
type Token struct {
	Kind    Kind
	Literal string
	Pos     Position

	Int   int64
	Float float64
	Num   int64
	Den   int64
}

// Is reports whether the token has kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsAny reports whether the token has any of the given kinds.
func (t Token) IsAny(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	if t.Kind.IsLiteral() || t.Kind == IDENT {
		return t.Literal
	}
	return t.Kind.String()
}
