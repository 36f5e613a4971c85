package cmd

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunBuildWritesAssemblyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.mc")
	if err := os.WriteFile(src, []byte("int x; x = 2 + 3 * 4; print(x);"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	outFile := filepath.Join(dir, "prog.s")
	buildOutput = outFile
	buildShowTokens, buildShowAST, buildShowIR, buildShowAsm = false, false, false, false
	buildNoOptimize = false
	buildFormat = "text"
	defer func() { buildOutput = "" }()

	if err := runBuild(buildCmd, []string{src}); err != nil {
		t.Fatalf("runBuild: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", outFile, err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty assembly output")
	}
}

func TestRunBuildReportsSemanticError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.mc")
	if err := os.WriteFile(src, []byte("int x; int x;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	buildOutput = filepath.Join(dir, "bad.s")
	buildShowTokens, buildShowAST, buildShowIR, buildShowAsm = false, false, false, false
	buildNoOptimize = false
	buildFormat = "text"
	defer func() { buildOutput = "" }()

	if err := runBuild(buildCmd, []string{src}); err == nil {
		t.Fatal("expected runBuild to report the redeclaration error")
	}
}

func TestRunBuildPrintsSpecFormattedErrorByDefault(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.mc")
	if err := os.WriteFile(src, []byte("int x; int x;"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	buildOutput = filepath.Join(dir, "bad.s")
	buildShowTokens, buildShowAST, buildShowIR, buildShowAsm = false, false, false, false
	buildNoOptimize = false
	buildFormat = "text"
	buildColor = false
	defer func() { buildOutput = ""; buildColor = false }()

	stderr := captureStderr(t, func() {
		if err := runBuild(buildCmd, []string{src}); err == nil {
			t.Fatal("expected runBuild to report the redeclaration error")
		}
	})

	firstLine, _, _ := strings.Cut(stderr, "\n")
	if !strings.HasPrefix(firstLine, "SemanticError: at line ") {
		t.Fatalf("expected first stderr line to match %q, got %q", `SemanticError: at line L, col C: <message>`, firstLine)
	}
	if strings.Contains(stderr, "|") {
		t.Fatalf("expected no caret-pointing display without --color, got %q", stderr)
	}
}

// captureStderr redirects os.Stderr for the duration of fn and returns
// everything written to it.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	orig := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	if err := w.Close(); err != nil {
		t.Fatalf("close pipe writer: %v", err)
	}

	var sb strings.Builder
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		sb.WriteString(scanner.Text())
		sb.WriteString("\n")
	}
	return sb.String()
}
