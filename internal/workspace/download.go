package workspace

import (
	"context"
	"fmt"
	"net/url"
	"path"

	"github.com/fbkclanna/ocrdws/internal/fsutil"
	"github.com/fbkclanna/ocrdws/internal/mets"
	"github.com/fbkclanna/ocrdws/internal/resolver"
	"golang.org/x/sync/errgroup"
)

// DownloadURL fetches rawURL into the workspace directory through the resolver.
func (w *Workspace) DownloadURL(ctx context.Context, rawURL string, opts resolver.Options) (string, error) {
	return w.resolver.DownloadToDirectory(ctx, w.dir, rawURL, opts)
}

// DownloadFile makes sure f has a local copy. A file that already has a
// local filename is returned untouched; otherwise its URL is fetched and the
// resulting path is recorded on f. On failure f is left unchanged.
func (w *Workspace) DownloadFile(ctx context.Context, f *mets.File, opts resolver.Options) (*mets.File, error) {
	_, err := w.downloadFile(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (w *Workspace) downloadFile(ctx context.Context, f *mets.File, opts resolver.Options) (cached bool, err error) {
	mu := w.lockFile(f.ID())
	mu.Lock()
	defer mu.Unlock()

	if local := f.LocalFilename(); local != "" {
		w.logger.Debug("already downloaded", "id", f.ID(), "local_filename", local)
		return true, nil
	}

	local, err := w.DownloadURL(ctx, f.URL(), opts)
	if err != nil {
		return false, fmt.Errorf("downloading %s: %w", f.ID(), err)
	}
	if !fsutil.Within(w.dir, local) {
		return false, fmt.Errorf("%w: resolver placed %s outside workspace %s", ErrInvalidArgument, local, w.dir)
	}
	if err := f.SetLocalFilename(local); err != nil {
		return false, fmt.Errorf("recording download of %s: %w", f.ID(), err)
	}
	w.logger.Info("downloaded", "id", f.ID(), "url", f.URL(), "local_filename", local)
	return false, nil
}

// DownloadFilesInGroup downloads every file of group use into <dir>/<use>.
// The first failure stops the batch and is returned; files fetched before
// it keep their local filenames. Files whose URLs end in the same name are
// stored as <ID><ext> so they do not overwrite each other.
func (w *Workspace) DownloadFilesInGroup(ctx context.Context, use string) error {
	files := w.mets.FilesInGroup(use)
	basenames := uniqueBasenames(files)
	optsFor := func(f *mets.File) resolver.Options {
		return resolver.Options{Subdir: use, Basename: basenames[f.ID()]}
	}

	if w.jobs <= 1 {
		for _, f := range files {
			if err := w.downloadOne(ctx, f, optsFor(f)); err != nil {
				return err
			}
		}
		return ctx.Err()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.jobs)
	for _, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return w.downloadOne(gctx, f, optsFor(f))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// A batch cut short by the caller is a failure even when no download
	// got far enough to report it.
	return ctx.Err()
}

func (w *Workspace) downloadOne(ctx context.Context, f *mets.File, opts resolver.Options) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cached, err := w.downloadFile(ctx, f, opts)
	if err != nil {
		return err
	}
	if w.observer != nil {
		w.observer.FileDownloaded(f, cached)
	}
	return nil
}

// uniqueBasenames returns a basename override, keyed by file ID, for every
// file whose URL basename is shared with another file of the same group.
func uniqueBasenames(files []*mets.File) map[string]string {
	byName := make(map[string][]*mets.File)
	for _, f := range files {
		if name := urlBasename(f.URL()); name != "" {
			byName[name] = append(byName[name], f)
		}
	}
	overrides := make(map[string]string)
	for name, shared := range byName {
		if len(shared) < 2 {
			continue
		}
		for _, f := range shared {
			overrides[f.ID()] = f.ID() + path.Ext(name)
		}
	}
	return overrides
}

func urlBasename(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	return name
}
