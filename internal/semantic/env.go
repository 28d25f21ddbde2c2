package semantic

import (
	"github.com/go-ada/adac/internal/symtab"
	"github.com/go-ada/adac/internal/types"
)

// predefinedExceptions lists the exception names Standard declares,
// every emitted program may raise, and §6.2 requires a `@.ex.<NAME>`
// global for.
var predefinedExceptions = []string{
	"CONSTRAINT_ERROR", "PROGRAM_ERROR", "STORAGE_ERROR", "NUMERIC_ERROR", "TASKING_ERROR",
}

// declarePredefined populates the library-level scope with the subset of
// package Standard this core supports: the scalar types, String, and the
// predefined exceptions. NUMERIC_ERROR is declared as a distinct symbol;
// the code generator folds it onto CONSTRAINT_ERROR when it lowers an
// exception name.
func declarePredefined(s *symtab.Scope) {
	declareType := func(name string, t *types.Type) {
		s.Declare(&symtab.Symbol{Name: name, Kind: symtab.KindType, Type: t})
	}
	declareType("Boolean", types.BooleanType)
	declareType("Character", types.CharacterType)
	declareType("Integer", types.IntegerType)
	declareType("Natural", types.NaturalType)
	declareType("Positive", types.PositiveType)
	declareType("Float", types.FloatType)
	declareType("String", types.StringType)

	for _, lit := range types.BooleanType.Literals {
		s.Declare(&symtab.Symbol{Name: lit.Name, Kind: symtab.KindEnumLiteral, Type: types.BooleanType})
	}

	for _, name := range predefinedExceptions {
		s.Declare(&symtab.Symbol{Name: name, Kind: symtab.KindException})
	}
}

// isConstraintErrorFamily reports whether name denotes CONSTRAINT_ERROR
// under Ada 83's identification of NUMERIC_ERROR with it (LRM 11.1).
func isConstraintErrorFamily(name string) bool {
	return name == "CONSTRAINT_ERROR" || name == "NUMERIC_ERROR"
}
