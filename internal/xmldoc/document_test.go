package xmldoc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<mets:mets xmlns:mets="http://www.loc.gov/METS/" xmlns:xlink="http://www.w3.org/1999/xlink">
  <mets:fileSec>
    <mets:fileGrp USE="INPUT">
      <mets:file ID="INPUT_0001" MIMETYPE="image/png">
        <mets:FLocat LOCTYPE="URL" xlink:href="http://example.com/a.png"/>
      </mets:file>
    </mets:fileGrp>
  </mets:fileSec>
</mets:mets>
`

func TestParse_valid(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if d.Root().Tag != "mets" || d.Root().Space != "mets" {
		t.Errorf("root = %s:%s, want mets:mets", d.Root().Space, d.Root().Tag)
	}
	if d.Path() != "" {
		t.Errorf("Path() = %q, want empty for parsed content", d.Path())
	}
}

func TestParse_invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "<unclosed"},
		{"no root", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("Parse(%q) error = %v, want ErrInvalidArgument", tt.content, err)
			}
		})
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "mets.xml"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_stripsFileScheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mets.xml")
	if err := os.WriteFile(path, []byte(sample), 0600); err != nil {
		t.Fatal(err)
	}

	d, err := Load("file://" + path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if d.Path() != path {
		t.Errorf("Path() = %q, want %q", d.Path(), path)
	}
}

func TestNew_requiresSource(t *testing.T) {
	_, err := New("", nil)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("New() error = %v, want ErrInvalidArgument", err)
	}
}

func TestNew_contentWinsOverPath(t *testing.T) {
	d, err := New(filepath.Join(t.TempDir(), "missing.xml"), []byte(sample))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if d.Root() == nil {
		t.Fatal("expected a root element")
	}
}

func TestSerialize_roundTrip(t *testing.T) {
	d, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	first, err := d.Serialize(context.Background(), false)
	if err != nil {
		t.Fatalf("Serialize() error: %v", err)
	}
	if !strings.HasPrefix(string(first), "<?xml") {
		t.Errorf("missing XML declaration: %s", first)
	}
	if !strings.Contains(string(first), `xlink:href="http://example.com/a.png"`) {
		t.Errorf("href lost in serialization: %s", first)
	}

	again, err := Parse(first)
	if err != nil {
		t.Fatal(err)
	}
	second, err := again.Serialize(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Errorf("serialization is not stable:\n%s\n---\n%s", first, second)
	}
}

func TestSerialize_addsDeclarationOnce(t *testing.T) {
	d, err := Parse([]byte(`<root><child/></root>`))
	if err != nil {
		t.Fatal(err)
	}
	out, err := d.Serialize(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(out), "<?xml"); n != 1 {
		t.Errorf("declaration count = %d, want 1:\n%s", n, out)
	}

	again, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := again.Serialize(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(out2), "<?xml"); n != 1 {
		t.Errorf("declaration count after reload = %d, want 1:\n%s", n, out2)
	}
}

func TestSerialize_pretty(t *testing.T) {
	upper := FormatterFunc(func(_ context.Context, in []byte) ([]byte, error) {
		return []byte(strings.ReplaceAll(string(in), "child", "CHILD")), nil
	})
	d, err := Parse([]byte(`<root><child/></root>`), WithFormatter(upper))
	if err != nil {
		t.Fatal(err)
	}

	plain, err := d.Serialize(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(plain), "CHILD") {
		t.Error("formatter must not run without pretty")
	}

	pretty, err := d.Serialize(context.Background(), true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pretty), "<CHILD/>") {
		t.Errorf("formatter output not used: %s", pretty)
	}
}

func TestSerialize_formatterFailureKeepsContent(t *testing.T) {
	broken := FormatterFunc(func(context.Context, []byte) ([]byte, error) {
		return nil, errors.New("xmllint: not found")
	})
	d, err := Parse([]byte(`<root><child/></root>`), WithFormatter(broken))
	if err != nil {
		t.Fatal(err)
	}

	out, err := d.Serialize(context.Background(), true)
	if !errors.Is(err, ErrFormat) {
		t.Fatalf("Serialize() error = %v, want ErrFormat", err)
	}
	if !strings.Contains(string(out), "<child/>") {
		t.Errorf("unformatted content dropped: %q", out)
	}
}

func TestRegisterNamespaces_idempotent(t *testing.T) {
	d, err := Parse([]byte(`<mets:mets xmlns:mets="http://www.loc.gov/METS/"/>`))
	if err != nil {
		t.Fatal(err)
	}
	RegisterNamespaces(d.Root())
	RegisterNamespaces(d.Root())

	for prefix, uri := range Namespaces {
		attrs := 0
		for _, a := range d.Root().Attr {
			if a.Space == "xmlns" && a.Key == prefix {
				attrs++
				if a.Value != uri {
					t.Errorf("xmlns:%s = %q, want %q", prefix, a.Value, uri)
				}
			}
		}
		if attrs != 1 {
			t.Errorf("xmlns:%s declared %d times, want 1", prefix, attrs)
		}
	}
}
