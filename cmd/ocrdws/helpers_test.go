package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/ocrdws/internal/testutil"
)

// run executes the CLI with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := execute(t, args...)
	return out, err
}

// execute runs the CLI with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

// mustRun is run that fails the test on error.
func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("ocrdws %v failed: %v", args, err)
	}
	return out
}

// setupSources writes n source files outside the workspace and returns a
// workspace whose INPUT group references them by file:// URL.
func setupSources(t *testing.T, n int) (wsDir string, srcDir string) {
	t.Helper()
	srcDir = t.TempDir()
	files := make([]testutil.FixtureFile, 0, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%c.png", 'a'+i)
		p := filepath.Join(srcDir, name)
		if err := os.WriteFile(p, []byte("image "+name), 0644); err != nil { //nolint:gosec // test file
			t.Fatal(err)
		}
		files = append(files, testutil.FixtureFile{
			Group: "INPUT",
			ID:    fmt.Sprintf("INPUT_%04d", i+1),
			URL:   "file://" + p,
		})
	}
	return testutil.WriteMets(t, files...), srcDir
}
