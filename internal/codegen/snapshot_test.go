package codegen

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestEmittedIRSnapshots pins the full textual IR for a handful of
// representative programs, the way the fixture-driven interpreter
// tests snapshot their own output: a diff here is either an intended
// codegen change (update the snapshot) or a regression worth looking
// at closely, rather than something a field-by-field assertion would
// catch cheaply.
func TestEmittedIRSnapshots(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{
			name: "empty procedure",
			src: `procedure P is
begin
  null;
end P;`,
		},
		{
			name: "range constrained assignment",
			src: `procedure P is
  type Digit is range 0 .. 9;
  D : Digit;
  I : Integer := 5;
begin
  D := Digit(I);
end P;`,
		},
		{
			name: "array index check",
			src: `procedure P is
  type Vec is array (1 .. 10) of Integer;
  V : Vec;
  I : Integer := 3;
begin
  V(I) := 42;
end P;`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ir := mustEmit(t, tc.src)
			snaps.MatchSnapshot(t, ir)
		})
	}
}
