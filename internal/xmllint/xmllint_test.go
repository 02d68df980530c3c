package xmllint

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func requireXmllint(t *testing.T) *Formatter {
	t.Helper()
	f := New("")
	if !f.IsInstalled() {
		t.Skip("xmllint not installed")
	}
	return f
}

func TestFormat(t *testing.T) {
	f := requireXmllint(t)

	out, err := f.Format(context.Background(), []byte(`<root><child a="1"/></root>`))
	if err != nil {
		t.Fatalf("Format() error: %v", err)
	}
	if !strings.Contains(string(out), "  <child a=\"1\"/>") {
		t.Errorf("expected indented child, got:\n%s", out)
	}
}

func TestCheck_malformed(t *testing.T) {
	f := requireXmllint(t)

	if err := f.Check(context.Background(), []byte(`<root>`)); err == nil {
		t.Fatal("expected error for malformed XML")
	}
	if err := f.Check(context.Background(), []byte(`<root/>`)); err != nil {
		t.Fatalf("Check() on well-formed XML: %v", err)
	}
}

func TestFormat_missingBinary(t *testing.T) {
	f := New(filepath.Join(t.TempDir(), "no-such-xmllint"))
	if f.IsInstalled() {
		t.Fatal("binary in an empty temp dir should not be installed")
	}
	if _, err := f.Format(context.Background(), []byte(`<root/>`)); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestBinary_default(t *testing.T) {
	var f *Formatter
	if got := f.binary(); got != DefaultBinary {
		t.Errorf("binary() = %q, want %q", got, DefaultBinary)
	}
}
