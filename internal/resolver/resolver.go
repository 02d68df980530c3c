package resolver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"sync"
	"time"

	"github.com/fbkclanna/ocrdws/internal/fsutil"
	"github.com/fbkclanna/ocrdws/internal/xmldoc"
	"github.com/hashicorp/go-retryablehttp"
)

// Re-exported error taxonomy.
var (
	ErrNotFound        = xmldoc.ErrNotFound
	ErrInvalidArgument = xmldoc.ErrInvalidArgument
	ErrIO              = xmldoc.ErrIO
	ErrNetwork         = xmldoc.ErrNetwork
)

// Resolver fetches a URL into a directory and returns the local path.
type Resolver interface {
	DownloadToDirectory(ctx context.Context, directory, rawURL string, opts Options) (string, error)
}

// Options controls where a download lands.
type Options struct {
	// Subdir nests the file under directory/Subdir.
	Subdir string
	// Basename overrides the file name taken from the URL.
	Basename string
}

// Config configures the Default resolver.
type Config struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	S3Region       string
	S3Endpoint     string
	S3UsePathStyle bool

	Logger *slog.Logger
}

// Default is the Resolver used by workspaces unless another is injected.
type Default struct {
	http   *retryablehttp.Client
	cfg    Config
	logger *slog.Logger

	s3Once sync.Once
	s3     S3API
	s3Err  error
}

// New builds a Default resolver.
func New(cfg Config) *Default {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := retryablehttp.NewClient()
	c.Logger = logger
	c.RetryMax = cfg.RetryMax
	if cfg.RetryWaitMin > 0 {
		c.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		c.RetryWaitMax = cfg.RetryWaitMax
	}
	if cfg.Timeout > 0 {
		c.HTTPClient.Timeout = cfg.Timeout
	}
	return &Default{http: c, cfg: cfg, logger: logger}
}

// WithS3Client makes the resolver use client for s3:// URLs instead of one
// built from the default AWS configuration.
func (d *Default) WithS3Client(client S3API) *Default {
	d.s3Once.Do(func() { d.s3 = client })
	return d
}

// DownloadToDirectory implements Resolver.
func (d *Default) DownloadToDirectory(ctx context.Context, directory, rawURL string, opts Options) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("%w: empty url", ErrInvalidArgument)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: parsing url %q: %v", ErrInvalidArgument, rawURL, err)
	}

	dir, err := filepath.Abs(directory)
	if err != nil {
		return "", fmt.Errorf("%w: resolving directory %s: %v", ErrIO, directory, err)
	}

	var fetch func(ctx context.Context, u *url.URL, dst string) error
	switch u.Scheme {
	case "", "file":
		fetch = func(_ context.Context, u *url.URL, dst string) error {
			return d.copyLocal(localPath(dir, u), dst)
		}
	case "http", "https":
		fetch = d.fetchHTTP
	case "s3":
		fetch = d.fetchS3
	default:
		return "", fmt.Errorf("%w: unsupported url scheme %q in %s", ErrInvalidArgument, u.Scheme, rawURL)
	}

	dst, err := destination(dir, u, opts)
	if err != nil {
		return "", err
	}

	d.logger.Debug("downloading", "url", rawURL, "dest", dst)
	if err := fetch(ctx, u, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// destination computes <dir>/<subdir>/<basename> and refuses paths that
// escape dir.
func destination(dir string, u *url.URL, opts Options) (string, error) {
	base := opts.Basename
	if base == "" {
		p := u.Path
		if p == "" {
			p = u.Opaque
		}
		base = path.Base(p)
	}
	if base == "" || base == "." || base == "/" || base == ".." {
		return "", fmt.Errorf("%w: cannot derive a file name from %s", ErrInvalidArgument, u.String())
	}

	dst := filepath.Join(dir, opts.Subdir, filepath.Base(filepath.FromSlash(base)))
	if !fsutil.Within(dir, dst) {
		return "", fmt.Errorf("%w: destination %s escapes %s", ErrInvalidArgument, dst, dir)
	}
	return dst, nil
}

// localPath resolves a file:// URL or a bare path. Relative paths are taken
// relative to the workspace directory.
func localPath(dir string, u *url.URL) string {
	p := u.Path
	if u.Scheme == "" && u.Opaque != "" {
		p = u.Opaque
	}
	if u.Scheme == "file" && u.Host != "" && u.Host != "localhost" {
		// file://relative/path parses the first segment as host.
		p = u.Host + p
	}
	p = filepath.FromSlash(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	return filepath.Clean(p)
}
