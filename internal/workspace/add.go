package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/ocrdws/internal/fsutil"
	"github.com/fbkclanna/ocrdws/internal/mets"
)

// AddFileOpts describes an output file for AddFile.
type AddFileOpts struct {
	// Basename places the file at <dir>/<group>/<Basename>.
	Basename string
	// LocalFilename is used when Basename is empty. Relative paths are taken
	// relative to the workspace directory.
	LocalFilename string
	// URL defaults to file://<local filename>.
	URL      string
	ID       string
	Mimetype string
	Attrs    map[string]string
	// Content, when non-nil, is written to the local filename after the file
	// has been registered.
	Content []byte
}

// AddFile registers an output file in group use and optionally writes its
// content. The manifest entry is created before the content is written, so a
// write failure (ErrIO) leaves the entry registered with its final path.
func (w *Workspace) AddFile(use string, opts AddFileOpts) (*mets.File, error) {
	w.logger.Debug("add file", "group", use, "basename", opts.Basename,
		"local_filename", opts.LocalFilename, "content", opts.Content != nil)

	local, err := w.outputPath(use, opts)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil { //nolint:gosec // output dirs need to be world-readable
		return nil, fmt.Errorf("%w: creating %s: %v", ErrIO, filepath.Dir(local), err)
	}

	url := opts.URL
	if url == "" {
		url = "file://" + filepath.ToSlash(local)
	}
	f, err := w.mets.AddFile(use, mets.FileOpts{
		ID:            opts.ID,
		URL:           url,
		LocalFilename: local,
		Mimetype:      opts.Mimetype,
		Attrs:         opts.Attrs,
	})
	if err != nil {
		return nil, err
	}

	if opts.Content != nil {
		if err := fsutil.WriteAtomic(local, bytes.NewReader(opts.Content), 0o644); err != nil {
			return f, fmt.Errorf("%w: writing %s: %v", ErrIO, local, err)
		}
	}
	return f, nil
}

// outputPath derives the absolute local filename for an output file and
// checks that it stays inside the workspace.
func (w *Workspace) outputPath(use string, opts AddFileOpts) (string, error) {
	var local string
	switch {
	case opts.Basename != "":
		local = filepath.Join(w.dir, use, opts.Basename)
	case opts.LocalFilename != "":
		local = opts.LocalFilename
		if !filepath.IsAbs(local) {
			local = filepath.Join(w.dir, local)
		}
	default:
		return "", fmt.Errorf("%w: file in group %s needs a basename or a local filename", ErrInvalidArgument, use)
	}
	local = filepath.Clean(local)
	if local == w.dir || !fsutil.Within(w.dir, local) {
		return "", fmt.Errorf("%w: %s is not inside workspace %s", ErrInvalidArgument, local, w.dir)
	}
	return local, nil
}
