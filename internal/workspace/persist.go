package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/fbkclanna/ocrdws/internal/fsutil"
)

// Persist writes the manifest back to disk. Files that only exist locally
// keep their file:// URLs; uploading them is not supported.
func (w *Workspace) Persist(ctx context.Context) error {
	return w.SaveManifest(ctx)
}

// SaveManifest serializes the manifest and replaces mets.xml atomically.
// When pretty output was requested but the formatter fails, the unformatted
// manifest is written and the failure is logged.
func (w *Workspace) SaveManifest(ctx context.Context) error {
	w.saveMu.Lock()
	defer w.saveMu.Unlock()

	data, err := w.mets.Serialize(ctx, w.pretty)
	if err != nil {
		if !errors.Is(err, ErrFormat) || len(data) == 0 {
			return fmt.Errorf("serializing manifest: %w", err)
		}
		w.logger.Warn("formatting manifest failed, writing unformatted", "error", err)
	}

	if err := fsutil.WriteAtomic(w.metsPath, bytes.NewReader(data), 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, w.metsPath, err)
	}
	w.logger.Debug("saved manifest", "path", w.metsPath, "bytes", len(data))
	return nil
}
