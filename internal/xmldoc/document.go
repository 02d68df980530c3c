package xmldoc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/beevik/etree"
)

const declaration = `version="1.0" encoding="UTF-8"`

// Document is an in-memory XML tree together with the file it was read from,
// if any.
type Document struct {
	tree      *etree.Document
	path      string
	formatter Formatter
}

// Option configures a Document.
type Option func(*Document)

// WithFormatter sets the Formatter used by Serialize when pretty output is
// requested. A nil Formatter leaves the default NopFormatter in place.
func WithFormatter(f Formatter) Option {
	return func(d *Document) {
		if f != nil {
			d.formatter = f
		}
	}
}

// New builds a Document from content when it is non-empty, otherwise from the
// file at path. Supplying neither is an error.
func New(path string, content []byte, opts ...Option) (*Document, error) {
	switch {
	case len(content) > 0:
		return Parse(content, opts...)
	case path != "":
		return Load(path, opts...)
	default:
		return nil, fmt.Errorf("%w: must pass a path or content to build a document", ErrInvalidArgument)
	}
}

// Load reads and parses the XML file at path. A leading file:// is stripped.
func Load(path string, opts ...Option) (*Document, error) {
	path = strings.TrimPrefix(path, "file://")
	if path == "" {
		return nil, fmt.Errorf("%w: empty document path", ErrInvalidArgument)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is the workspace manifest path
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file does not exist: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: reading %s: %v", ErrIO, path, err)
	}
	d, err := Parse(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	d.path = path
	return d, nil
}

// Parse builds a Document from in-memory XML content.
func Parse(content []byte, opts ...Option) (*Document, error) {
	tree := etree.NewDocument()
	if err := tree.ReadFromBytes(content); err != nil {
		return nil, fmt.Errorf("%w: parsing XML: %v", ErrInvalidArgument, err)
	}
	if tree.Root() == nil {
		return nil, fmt.Errorf("%w: XML content has no root element", ErrInvalidArgument)
	}
	return newDocument(tree, opts), nil
}

// FromRoot wraps a freshly built root element in a Document.
func FromRoot(root *etree.Element, opts ...Option) *Document {
	tree := etree.NewDocument()
	tree.SetRoot(root)
	return newDocument(tree, opts)
}

func newDocument(tree *etree.Document, opts []Option) *Document {
	d := &Document{tree: tree, formatter: NopFormatter{}}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Root returns the document element.
func (d *Document) Root() *etree.Element {
	return d.tree.Root()
}

// Path returns the file the document was loaded from, or "" for parsed content.
func (d *Document) Path() string {
	return d.path
}

// Serialize renders the tree as indented XML with a declaration. The tree
// itself is not modified. When pretty is set the bytes are passed through the
// document's Formatter; if that fails, the unformatted bytes are returned
// together with an error wrapping ErrFormat.
func (d *Document) Serialize(ctx context.Context, pretty bool) ([]byte, error) {
	out := d.tree.Copy()
	if out.Root() == nil {
		return nil, fmt.Errorf("%w: document has no root element", ErrInvalidArgument)
	}
	if !hasDeclaration(out) {
		out.InsertChildAt(0, etree.NewProcInst("xml", declaration))
	}
	out.Indent(2)

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: writing XML: %v", ErrIO, err)
	}
	raw := buf.Bytes()
	if !pretty {
		return raw, nil
	}

	formatted, err := d.formatter.Format(ctx, raw)
	if err != nil {
		return raw, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if len(bytes.TrimSpace(formatted)) == 0 {
		return raw, fmt.Errorf("%w: formatter returned no output", ErrFormat)
	}
	return formatted, nil
}

func hasDeclaration(doc *etree.Document) bool {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return true
		}
	}
	return false
}
