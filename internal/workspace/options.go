package workspace

import (
	"log/slog"

	"github.com/fbkclanna/ocrdws/internal/mets"
	"github.com/fbkclanna/ocrdws/internal/xmldoc"
)

// Observer is notified about per-file download progress.
type Observer interface {
	// FileDownloaded is called once per file handled by DownloadFilesInGroup.
	// cached is true when the file already had a local filename.
	FileDownloaded(f *mets.File, cached bool)
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLogger sets the logger for workspace and manifest events.
func WithLogger(l *slog.Logger) Option {
	return func(w *Workspace) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithFormatter sets the formatter used when saving with pretty output.
func WithFormatter(f xmldoc.Formatter) Option {
	return func(w *Workspace) { w.formatter = f }
}

// WithPretty makes SaveManifest pass the manifest through the formatter.
func WithPretty(pretty bool) Option {
	return func(w *Workspace) { w.pretty = pretty }
}

// WithJobs sets how many files DownloadFilesInGroup fetches in parallel.
func WithJobs(n int) Option {
	return func(w *Workspace) {
		if n > 0 {
			w.jobs = n
		}
	}
}

// WithObserver registers an Observer for group downloads.
func WithObserver(o Observer) Option {
	return func(w *Workspace) { w.observer = o }
}

// WithEmptyManifest makes Open start from an empty manifest even when
// mets.xml exists. The file is only replaced by the next save.
func WithEmptyManifest() Option {
	return func(w *Workspace) { w.emptyManifest = true }
}
