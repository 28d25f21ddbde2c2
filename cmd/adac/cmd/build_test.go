package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunBuildWritesLLFileNextToSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "hello.adb")
	if err := os.WriteFile(src, []byte(`procedure Hello is
begin
  null;
end Hello;`), 0o644); err != nil {
		t.Fatalf("unexpected error writing source: %v", err)
	}

	oldOut, oldVerbose := outputFile, buildVerbose
	outputFile, buildVerbose = "", false
	defer func() { outputFile, buildVerbose = oldOut, oldVerbose }()

	if err := runBuild(buildCmd, []string{src}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := strings.TrimSuffix(src, ".adb") + ".ll"
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", out, err)
	}
	if !strings.Contains(string(data), "define") {
		t.Fatalf("expected emitted IR to contain a function definition, got:\n%s", data)
	}
}

func TestRunBuildReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.adb")
	if err := os.WriteFile(src, []byte(`procedure Bad is
begin
  this is not ada;
end Bad;`), 0o644); err != nil {
		t.Fatalf("unexpected error writing source: %v", err)
	}

	oldOut, oldVerbose := outputFile, buildVerbose
	outputFile, buildVerbose = "", false
	defer func() { outputFile, buildVerbose = oldOut, oldVerbose }()

	if err := runBuild(buildCmd, []string{src}); err == nil {
		t.Fatal("expected an error for a file with a parse error")
	}
}
