package arena

import "testing"

func TestArenaStablePointers(t *testing.T) {
	var a Arena[int]

	ptrs := make([]*int, 0, 1000)
	for i := 0; i < 1000; i++ {
		p := a.NewValue(i)
		ptrs = append(ptrs, p)
	}

	for i, p := range ptrs {
		if *p != i {
			t.Fatalf("pointer %d: got %d, want %d (arena reallocated a stable pointer)", i, *p, i)
		}
	}

	if a.Count() != 1000 {
		t.Fatalf("Count() = %d, want 1000", a.Count())
	}
}

func TestArenaNewSlice(t *testing.T) {
	var a Arena[string]

	s := a.NewSlice(4)
	if len(s) != 4 {
		t.Fatalf("len(slice) = %d, want 4", len(s))
	}
	s[0] = "first"
	s[3] = "last"

	if s[0] != "first" || s[3] != "last" {
		t.Fatalf("slice contents corrupted: %#v", s)
	}
}

func TestArenaReset(t *testing.T) {
	var a Arena[int]
	a.NewValue(1)
	a.NewValue(2)
	a.Reset()

	if a.Count() != 0 {
		t.Fatalf("Count() after Reset = %d, want 0", a.Count())
	}

	p := a.NewValue(42)
	if *p != 42 {
		t.Fatalf("NewValue after Reset = %d, want 42", *p)
	}
}
