package mets

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"github.com/fbkclanna/ocrdws/internal/xmldoc"
)

// Mets is the file registry of a workspace manifest. It is safe for
// concurrent use; registry mutations and serialization are serialized by a
// single lock so the tree is never observed half-updated.
type Mets struct {
	mu     sync.RWMutex
	doc    *xmldoc.Document
	files  map[string]*File // ID -> handle
	seq    map[string]int   // USE -> last generated sequence number
	logger *slog.Logger
}

// Option configures a Mets.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	docOpts []xmldoc.Option
}

// WithLogger sets the logger used for registry events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFormatter sets the formatter used for pretty serialization.
func WithFormatter(f xmldoc.Formatter) Option {
	return func(o *options) { o.docOpts = append(o.docOpts, xmldoc.WithFormatter(f)) }
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Empty returns a registry backed by a fresh METS skeleton with no files.
func Empty(opts ...Option) *Mets {
	o := buildOptions(opts)
	root := etree.NewElement("mets:mets")
	xmldoc.RegisterNamespaces(root)
	root.CreateElement("mets:fileSec")
	m, _ := newMets(xmldoc.FromRoot(root, o.docOpts...), o.logger)
	return m
}

// Load reads the METS document at path.
func Load(path string, opts ...Option) (*Mets, error) {
	o := buildOptions(opts)
	doc, err := xmldoc.Load(path, o.docOpts...)
	if err != nil {
		return nil, err
	}
	return newMets(doc, o.logger)
}

// Parse builds a registry from in-memory METS content.
func Parse(content []byte, opts ...Option) (*Mets, error) {
	o := buildOptions(opts)
	doc, err := xmldoc.Parse(content, o.docOpts...)
	if err != nil {
		return nil, err
	}
	return newMets(doc, o.logger)
}

func newMets(doc *xmldoc.Document, logger *slog.Logger) (*Mets, error) {
	m := &Mets{
		doc:    doc,
		files:  make(map[string]*File),
		seq:    make(map[string]int),
		logger: logger,
	}
	if err := m.index(); err != nil {
		return nil, err
	}
	return m, nil
}

// index builds the ID lookup from the tree and validates it.
func (m *Mets) index() error {
	root := m.doc.Root()
	if !isMets(root, "mets") {
		return fmt.Errorf("%w: root element is %s, expected mets:mets", ErrInvalidArgument, root.FullTag())
	}
	for _, grp := range m.fileGrps() {
		use := grp.SelectAttrValue("USE", "")
		if use == "" {
			return fmt.Errorf("%w: mets:fileGrp without USE", ErrInvalidArgument)
		}
		for _, el := range childElements(grp, "file") {
			if err := validateFile(el, m.files); err != nil {
				return fmt.Errorf("fileGrp %s: %w", use, err)
			}
			m.files[el.SelectAttrValue("ID", "")] = &File{el: el, mets: m}
		}
	}
	return nil
}

// Path returns the file the manifest was loaded from, if any.
func (m *Mets) Path() string {
	return m.doc.Path()
}

// FileGroups returns the USE of every file group in document order.
func (m *Mets) FileGroups() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	seen := make(map[string]bool)
	var groups []string
	for _, grp := range m.fileGrps() {
		use := grp.SelectAttrValue("USE", "")
		if !seen[use] {
			seen[use] = true
			groups = append(groups, use)
		}
	}
	return groups
}

// FilesInGroup returns the files of the group in insertion order. An unknown
// group yields an empty slice.
func (m *Mets) FilesInGroup(use string) []*File {
	m.mu.RLock()
	defer m.mu.RUnlock()
	files := []*File{}
	for _, grp := range m.fileGrps() {
		if grp.SelectAttrValue("USE", "") != use {
			continue
		}
		for _, el := range childElements(grp, "file") {
			files = append(files, m.files[el.SelectAttrValue("ID", "")])
		}
	}
	return files
}

// Files returns every file, group by group.
func (m *Mets) Files() []*File {
	var files []*File
	for _, use := range m.FileGroups() {
		files = append(files, m.FilesInGroup(use)...)
	}
	return files
}

// FindFile looks a file up by ID.
func (m *Mets) FindFile(id string) (*File, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[id]
	return f, ok
}

// Snapshot returns value copies of every file, group by group.
func (m *Mets) Snapshot() []FileInfo {
	files := m.Files()
	infos := make([]FileInfo, 0, len(files))
	for _, f := range files {
		infos = append(infos, f.Info())
	}
	return infos
}

// AddFile registers a new file in group use, creating the group when needed.
func (m *Mets) AddFile(use string, opts FileOpts) (*File, error) {
	if use == "" {
		return nil, fmt.Errorf("%w: file group is required", ErrInvalidArgument)
	}
	if opts.URL == "" && opts.LocalFilename == "" {
		return nil, fmt.Errorf("%w: file in group %s needs a url or a local filename", ErrInvalidArgument, use)
	}
	for k := range opts.Attrs {
		if k == "ID" || k == "MIMETYPE" {
			return nil, fmt.Errorf("%w: attribute %s cannot be set through Attrs", ErrInvalidArgument, k)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := opts.ID
	if id == "" {
		id = m.nextID(use)
	} else if _, taken := m.files[id]; taken {
		return nil, fmt.Errorf("%w: file ID %q already exists", ErrDuplicate, id)
	}

	mimetype := opts.Mimetype
	if mimetype == "" {
		mimetype = guessMimetype(opts.LocalFilename, opts.URL)
	}

	xmldoc.RegisterNamespaces(m.doc.Root())
	el := m.fileGrp(use).CreateElement("mets:file")
	el.CreateAttr("ID", id)
	el.CreateAttr("MIMETYPE", mimetype)
	keys := make([]string, 0, len(opts.Attrs))
	for k := range opts.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		el.CreateAttr(k, opts.Attrs[k])
	}
	setLoc(el, locTypeURL, opts.URL)
	setLoc(el, locTypeOther, opts.LocalFilename)

	f := &File{el: el, mets: m}
	m.files[id] = f
	m.logger.Debug("added file", "id", id, "group", use, "url", opts.URL, "local_filename", opts.LocalFilename)
	return f, nil
}

// Serialize renders the manifest; see xmldoc.Document.Serialize.
func (m *Mets) Serialize(ctx context.Context, pretty bool) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.doc.Serialize(ctx, pretty)
}

// nextID returns <USE>_<NNNN> for the lowest counter value not yet taken.
// Caller holds m.mu.
func (m *Mets) nextID(use string) string {
	prefix := idPrefix(use)
	for {
		m.seq[use]++
		id := fmt.Sprintf("%s_%04d", prefix, m.seq[use])
		if _, taken := m.files[id]; !taken {
			return id
		}
	}
}

// fileSec returns mets:fileSec, creating it when absent. Caller holds m.mu
// for writing if the element may need to be created.
func (m *Mets) fileSec() *etree.Element {
	root := m.doc.Root()
	if secs := childElements(root, "fileSec"); len(secs) > 0 {
		return secs[0]
	}
	return root.CreateElement("mets:fileSec")
}

func (m *Mets) fileGrps() []*etree.Element {
	secs := childElements(m.doc.Root(), "fileSec")
	if len(secs) == 0 {
		return nil
	}
	return childElements(secs[0], "fileGrp")
}

// fileGrp returns the first group with the given USE, creating it when
// absent. Caller holds m.mu.
func (m *Mets) fileGrp(use string) *etree.Element {
	for _, grp := range m.fileGrps() {
		if grp.SelectAttrValue("USE", "") == use {
			return grp
		}
	}
	grp := m.fileSec().CreateElement("mets:fileGrp")
	grp.CreateAttr("USE", use)
	return grp
}

// idPrefix turns a group name into a valid XML ID prefix.
func idPrefix(use string) string {
	var b strings.Builder
	for i, r := range use {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9', r == '-', r == '.':
			if i == 0 {
				b.WriteString("FILE_")
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

func guessMimetype(candidates ...string) string {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		ext := path.Ext(strings.SplitN(c, "?", 2)[0])
		if ext == "" {
			continue
		}
		if t := mime.TypeByExtension(ext); t != "" {
			if mt, _, err := mime.ParseMediaType(t); err == nil {
				return mt
			}
			return t
		}
	}
	return "application/octet-stream"
}
