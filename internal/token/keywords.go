package token

import (
	"golang.org/x/text/cases"
)

// folder performs the Unicode case fold used to make Ada identifiers and
// reserved words case-insensitive. Ada 83 identifiers are restricted to
// ASCII letters/digits/underscore, but folding through x/text keeps the
// same code path correct for any future encoding relaxation.
var folder = cases.Fold()

// Fold returns the case-folded form of s, the canonical key used for
// keyword lookup and for interning identifiers.
func Fold(s string) string {
	return folder.String(s)
}

var keywords = map[string]Kind{
	"abort": ABORT, "abs": ABS, "accept": ACCEPT, "access": ACCESS, "all": ALL,
	"and": AND, "array": ARRAY, "at": AT, "begin": BEGIN, "body": BODY,
	"case": CASE, "constant": CONSTANT, "declare": DECLARE, "delay": DELAY,
	"delta": DELTA, "digits": DIGITS, "do": DO, "else": ELSE, "elsif": ELSIF,
	"end": END, "entry": ENTRY, "exception": EXCEPTION, "exit": EXIT, "for": FOR,
	"function": FUNCTION, "generic": GENERIC, "goto": GOTO, "if": IF, "in": IN,
	"is": IS, "limited": LIMITED, "loop": LOOP, "mod": MOD, "new": NEW,
	"not": NOT, "null": NULL, "of": OF, "or": OR, "others": OTHERS, "out": OUT,
	"package": PACKAGE, "pragma": PRAGMA, "private": PRIVATE, "procedure": PROCEDURE,
	"raise": RAISE, "range": RANGE, "record": RECORD, "rem": REM, "renames": RENAMES,
	"return": RETURN, "reverse": REVERSE, "select": SELECT, "separate": SEPARATE,
	"subtype": SUBTYPE, "task": TASK, "terminate": TERMINATE, "then": THEN,
	"type": TYPE, "use": USE, "when": WHEN, "while": WHILE, "with": WITH, "xor": XOR,
}

// LookupIdent returns the keyword Kind for a case-folded identifier, or
// IDENT if ident is not a reserved word.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[Fold(ident)]; ok {
		return kind
	}
	return IDENT
}
