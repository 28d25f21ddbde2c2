package codegen

import (
	"fmt"

	"github.com/go-ada/adac/internal/types"
)

// llvmType maps a resolved Type to its textual LLVM representation,
// following spec.md 6.3: i64 for discrete types, double (or float for
// 32-bit precision) for reals, opaque ptr for access values and
// aggregates (arrays and records are always addressed, never passed by
// value).
func llvmType(t *types.Type) string {
	if t == nil {
		return "void"
	}
	switch t.Root().Kind {
	case types.Boolean:
		return "i1"
	case types.Character:
		return "i8"
	case types.Integer, types.UnsignedInteger, types.Enumeration, types.UniversalInteger:
		return "i64"
	case types.Float, types.UniversalFloat:
		if t.Digits > 0 && t.Digits <= 6 {
			return "float"
		}
		return "double"
	case types.FixedPoint:
		// Real fixed-point (scaled-integer) arithmetic is out of scope;
		// fixed-point values are carried as doubles.
		return "double"
	case types.Access:
		return "ptr"
	case types.Array, types.Record, types.String, types.FatPointer:
		return "ptr"
	case types.Procedure, types.Function:
		return "ptr"
	default:
		return "i64"
	}
}

// valueKind reports which family of cast/arithmetic helpers a type's
// values require.
func valueKind(t *types.Type) Kind {
	if t == nil {
		return KInteger
	}
	switch t.Root().Kind {
	case types.Float, types.UniversalFloat, types.FixedPoint:
		return KFloat
	case types.Access:
		return KPointer
	case types.Array, types.Record, types.String, types.FatPointer:
		if t.Unconstrained {
			return KFatPointer
		}
		return KPointer
	default:
		return KInteger
	}
}

// arraySize returns the element count of a fully constrained one- or
// multi-dimensional array type, the product of each dimension's length.
func arraySize(t *types.Type) int64 {
	size := int64(1)
	for _, idx := range t.IndexTypes {
		if !idx.Constrained {
			return 0
		}
		size *= idx.High - idx.Low + 1
	}
	return size
}

// llvmSizeOf returns the in-memory byte size of one value of llvmType(t),
// the handful of scalar widths this core ever lays out: i1/i8 as one
// byte, i64/double/ptr as eight, float as four.
func llvmSizeOf(t *types.Type) int64 {
	switch llvmType(t) {
	case "i1", "i8":
		return 1
	case "float":
		return 4
	default:
		return 8
	}
}

func llvmArrayType(t *types.Type) string {
	n := arraySize(t)
	return fmt.Sprintf("[%d x %s]", n, llvmType(t.Element))
}

func llvmRecordType(t *types.Type) string {
	s := "{ "
	for i, f := range t.Fields {
		if i > 0 {
			s += ", "
		}
		s += llvmType(f.Type)
	}
	return s + " }"
}
