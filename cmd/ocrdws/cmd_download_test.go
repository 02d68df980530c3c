package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunDownload(t *testing.T) {
	dir, _ := setupSources(t, 3)

	out := mustRun(t, "-d", dir, "download", "INPUT", "--jobs", "2")
	if !strings.Contains(out, "Downloaded 3 file(s)") {
		t.Errorf("unexpected output: %s", out)
	}

	m := loadMets(t, dir)
	for _, f := range m.FilesInGroup("INPUT") {
		if f.LocalFilename() == "" {
			t.Errorf("%s has no local filename after download", f.ID())
			continue
		}
		if _, err := os.Stat(f.LocalFilename()); err != nil {
			t.Errorf("%s: %v", f.ID(), err)
		}
	}
	abs, _ := filepath.Abs(filepath.Join(dir, "INPUT", "a.png"))
	if f, _ := m.FindFile("INPUT_0001"); f.LocalFilename() != abs {
		t.Errorf("INPUT_0001 local = %q, want %q", f.LocalFilename(), abs)
	}

	again := mustRun(t, "-d", dir, "download", "INPUT")
	if strings.Count(again, "(already local)") != 3 {
		t.Errorf("second download should not refetch:\n%s", again)
	}
}

func TestRunDownload_failureRecordsEarlierFiles(t *testing.T) {
	dir, src := setupSources(t, 3)
	if err := os.Remove(filepath.Join(src, "b.png")); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "-d", dir, "download", "INPUT"); err == nil {
		t.Fatal("expected error for missing source")
	}

	m := loadMets(t, dir)
	first, _ := m.FindFile("INPUT_0001")
	second, _ := m.FindFile("INPUT_0002")
	if first.LocalFilename() == "" {
		t.Error("file downloaded before the failure should be recorded")
	}
	if second.LocalFilename() != "" {
		t.Error("failed file must stay remote-only")
	}
}

func TestRunDownload_emptyGroup(t *testing.T) {
	dir, _ := setupSources(t, 1)
	out := mustRun(t, "-d", dir, "download", "NOPE")
	if !strings.Contains(out, "No files in group NOPE") {
		t.Errorf("unexpected output: %s", out)
	}
}
