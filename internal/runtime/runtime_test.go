package runtime

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSourceContainsEveryDeclaredSymbol(t *testing.T) {
	want := []string{
		"__ada_ss_init",
		"__ada_ss_allocate",
		"__ada_ss_mark",
		"__ada_ss_release",
		"__ada_push_handler",
		"__ada_pop_handler",
		"__ada_setjmp",
		"__ada_raise",
		"__ada_check_range",
		"__ada_powi",
		"__ada_image_int",
		"__ada_image_enum",
		"__ada_value_int",
	}
	src := Source()
	for _, sym := range want {
		if !strings.Contains(src, sym) {
			t.Errorf("expected bundled runtime source to define %s", sym)
		}
	}
}

func TestWriteToCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ada_runtime.c")
	if err := WriteTo(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
	if string(data) != Source() {
		t.Error("expected the written file to match Source() exactly")
	}
}
