package types

import "testing"

func TestCoversSameRoot(t *testing.T) {
	if !IntegerType.Covers(IntegerType) {
		t.Error("a type must cover itself")
	}
	if !NaturalType.Covers(IntegerType) {
		t.Error("Natural and Integer share a root and must be compatible")
	}
}

func TestCoversRejectsUnrelatedTypes(t *testing.T) {
	if IntegerType.Covers(BooleanType) {
		t.Error("Integer must not cover Boolean")
	}
}

func TestUniversalIntegerCoversAnyIntegerType(t *testing.T) {
	if !IntegerType.Covers(UniversalIntegerType) {
		t.Error("a concrete integer type must accept a universal_integer literal")
	}
}

func TestInRange(t *testing.T) {
	sub := &Type{Kind: Integer, Base: IntegerType, Constrained: true, Low: 1, High: 10}
	if !sub.InRange(5) {
		t.Error("5 should be in range 1..10")
	}
	if sub.InRange(11) {
		t.Error("11 should not be in range 1..10")
	}
}

func TestFreezeRecordComputesOffsets(t *testing.T) {
	rec := &Type{
		Kind: Record,
		Fields: []Field{
			{Name: "Flag", Type: BooleanType},
			{Name: "Count", Type: IntegerType},
		},
	}
	Freeze(rec)
	if rec.Fields[0].Offset != 0 {
		t.Errorf("Flag offset = %d, want 0", rec.Fields[0].Offset)
	}
	if rec.Fields[1].Offset != 4 {
		t.Errorf("Count offset = %d, want 4 (aligned)", rec.Fields[1].Offset)
	}
	if rec.Size != 8 {
		t.Errorf("record size = %d, want 8", rec.Size)
	}
}

func TestFreezeArraySize(t *testing.T) {
	arr := &Type{
		Kind:       Array,
		IndexTypes: []*Type{{Kind: Integer, Constrained: true, Low: 1, High: 10}},
		Element:    IntegerType,
	}
	Freeze(arr)
	if arr.Size != 40 {
		t.Errorf("array size = %d, want 40", arr.Size)
	}
}

func TestEnumerationLiteralLookup(t *testing.T) {
	if !BooleanType.Frozen {
		Freeze(BooleanType)
	}
	lit, ok := BooleanType.LiteralByName("True")
	if !ok || lit.Pos != 1 {
		t.Errorf("LiteralByName(True) = %+v, %v", lit, ok)
	}
}
