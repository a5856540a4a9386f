package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"minijs/pkg/engine"
)

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.mjs")
	if err := os.WriteFile(path, []byte("var x = 40 + 2; x"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stderr bytes.Buffer
	code := Run([]string{path}, nil, nil, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr = %s", code, stderr.String())
	}
}

func TestRunFileThrows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.mjs")
	if err := os.WriteFile(path, []byte(`throw "nope"`), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stderr bytes.Buffer
	code := Run([]string{path}, nil, nil, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stderr.String() != "nope\n" {
		t.Fatalf("stderr = %q, want %q", stderr.String(), "nope\n")
	}
}

func TestRunFileThrowsFromNestedCallIncludesTrace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script.mjs")
	src := `function inner(){ throw "boom"; } function outer(){ inner(); } outer()`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var stderr bytes.Buffer
	code := Run([]string{path}, nil, nil, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !bytes.Contains(stderr.Bytes(), []byte("boom")) {
		t.Fatalf("stderr = %q, want it to contain the thrown message", stderr.String())
	}
	if !bytes.Contains(stderr.Bytes(), []byte("inner")) || !bytes.Contains(stderr.Bytes(), []byte("outer")) {
		t.Fatalf("stderr = %q, want a trace naming both inner and outer", stderr.String())
	}
}

func TestRunFileMissing(t *testing.T) {
	var stderr bytes.Buffer
	code := Run([]string{"/nonexistent/path.mjs"}, nil, nil, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestRunStdin(t *testing.T) {
	stdin := bytes.NewBufferString(`"x" + (1 + 2)`)
	var stdout, stderr bytes.Buffer
	code := Run(nil, stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr = %s", code, stderr.String())
	}
}

func TestRunREPLEchoesResults(t *testing.T) {
	stdin := bytes.NewBufferString("1 + 1\n")
	var stdout, stderr bytes.Buffer
	code := runREPL(engine.New(), stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !bytes.Contains(stdout.Bytes(), []byte("2")) {
		t.Fatalf("stdout = %q, want it to contain \"2\"", stdout.String())
	}
}

func TestRunREPLPromptsForContinuation(t *testing.T) {
	stdin := bytes.NewBufferString("function f() {\nreturn 1;\n}\nf()\n")
	var stdout, stderr bytes.Buffer
	code := runREPL(engine.New(), stdin, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr = %s", code, stderr.String())
	}
	if !bytes.Contains(stdout.Bytes(), []byte("...")) {
		t.Fatalf("stdout = %q, want a continuation prompt", stdout.String())
	}
}
