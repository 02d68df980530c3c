package workspace

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fbkclanna/ocrdws/internal/mets"
	"github.com/fbkclanna/ocrdws/internal/resolver"
	"github.com/fbkclanna/ocrdws/internal/xmldoc"
)

// MetsFileName is the manifest file in the workspace root.
const MetsFileName = "mets.xml"

// Re-exported error taxonomy.
var (
	ErrNotFound        = xmldoc.ErrNotFound
	ErrInvalidArgument = xmldoc.ErrInvalidArgument
	ErrIO              = xmldoc.ErrIO
	ErrNetwork         = xmldoc.ErrNetwork
	ErrFormat          = xmldoc.ErrFormat
	ErrDuplicate       = xmldoc.ErrDuplicate
)

// Workspace is a directory plus the manifest describing its files. One
// Workspace may be shared between goroutines: the manifest serializes its
// own mutations, downloads of the same file are serialized per file, and
// saves are serialized against each other.
type Workspace struct {
	dir      string
	metsPath string
	mets     *mets.Mets
	resolver resolver.Resolver

	logger    *slog.Logger
	formatter xmldoc.Formatter
	pretty    bool
	jobs      int
	observer  Observer

	emptyManifest bool

	saveMu   sync.Mutex
	lockMu   sync.Mutex
	fileLock map[string]*sync.Mutex
}

// Open loads <directory>/mets.xml, or starts from an empty manifest when the
// file does not exist yet or WithEmptyManifest is given. The directory itself
// is not created.
func Open(directory string, r resolver.Resolver, opts ...Option) (*Workspace, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: a resolver is required", ErrInvalidArgument)
	}
	dir, err := filepath.Abs(directory)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace directory: %w", err)
	}

	w := &Workspace{
		dir:      dir,
		metsPath: filepath.Join(dir, MetsFileName),
		resolver: r,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		jobs:     1,
		fileLock: make(map[string]*sync.Mutex),
	}
	for _, o := range opts {
		o(w)
	}

	metsOpts := []mets.Option{mets.WithLogger(w.logger)}
	if w.formatter != nil {
		metsOpts = append(metsOpts, mets.WithFormatter(w.formatter))
	}
	if w.emptyManifest {
		w.mets = mets.Empty(metsOpts...)
		return w, nil
	}
	m, err := mets.Load(w.metsPath, metsOpts...)
	switch {
	case errors.Is(err, ErrNotFound):
		w.logger.Debug("no manifest yet, starting empty", "path", w.metsPath)
		m = mets.Empty(metsOpts...)
	case err != nil:
		return nil, fmt.Errorf("opening workspace %s: %w", dir, err)
	}
	w.mets = m
	return w, nil
}

// Directory returns the absolute workspace directory.
func (w *Workspace) Directory() string { return w.dir }

// MetsPath returns the absolute path of the manifest file.
func (w *Workspace) MetsPath() string { return w.metsPath }

// Pretty reports whether SaveManifest formats the manifest.
func (w *Workspace) Pretty() bool { return w.pretty }

// Mets returns the workspace's manifest registry.
func (w *Workspace) Mets() *mets.Mets { return w.mets }

func (w *Workspace) String() string {
	files := w.mets.Files()
	ids := make([]string, 0, len(files))
	for _, f := range files {
		ids = append(ids, f.String())
	}
	return fmt.Sprintf("Workspace[directory=%s, file_groups=%v, files=%v]", w.dir, w.mets.FileGroups(), ids)
}

// lockFile returns the mutex guarding downloads of the file with the given ID.
func (w *Workspace) lockFile(id string) *sync.Mutex {
	w.lockMu.Lock()
	defer w.lockMu.Unlock()
	mu, ok := w.fileLock[id]
	if !ok {
		mu = &sync.Mutex{}
		w.fileLock[id] = mu
	}
	return mu
}
