package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/ocrdws/internal/xmllint"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "ocrdws.yaml"), []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

func TestRunDoctor_healthyWithoutXmllint(t *testing.T) {
	dir, _ := setupSources(t, 2)
	writeConfig(t, dir, "xmllint:\n  path: /nonexistent/xmllint\n")

	out := mustRun(t, "-d", dir, "doctor")
	for _, want := range []string{"not found (only needed for --pretty)", "1 group(s), 2 file(s)", "All checks passed."} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRunDoctor_prettyRequiresXmllint(t *testing.T) {
	dir, _ := setupSources(t, 1)
	writeConfig(t, dir, "pretty: true\nxmllint:\n  path: /nonexistent/xmllint\n")

	out, err := run(t, "-d", dir, "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	if !strings.Contains(out, "NOT FOUND (required by pretty: true)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunDoctor_invalidManifestAndConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "jobs: 0\n")
	if err := os.WriteFile(filepath.Join(dir, "mets.xml"), []byte("<unclosed"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}

	out, err := run(t, "-d", dir, "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	if strings.Count(out, "INVALID") != 2 {
		t.Errorf("expected config and manifest to be reported invalid:\n%s", out)
	}
}

func TestRunDoctor_noManifest(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "xmllint:\n  path: /nonexistent/xmllint\n")

	out := mustRun(t, "-d", dir, "doctor")
	if !strings.Contains(out, "not found (run ocrdws init)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunDoctor_checksSerializedManifest(t *testing.T) {
	if !xmllint.New("").IsInstalled() {
		t.Skip("xmllint not installed")
	}
	dir, _ := setupSources(t, 1)

	out := mustRun(t, "-d", dir, "doctor")
	if !strings.Contains(out, "Checking serialized manifest with xmllint... OK") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
