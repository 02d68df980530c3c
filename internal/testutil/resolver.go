package testutil

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sync"

	"github.com/fbkclanna/ocrdws/internal/resolver"
)

// FakeResolver writes "content of <url>" for every download and records the
// URLs it was asked for. URLs listed in Fail return ErrNetwork instead.
type FakeResolver struct {
	Fail map[string]bool

	mu    sync.Mutex
	calls []string
}

// NewFakeResolver returns a FakeResolver failing for the given URLs.
func NewFakeResolver(fail ...string) *FakeResolver {
	r := &FakeResolver{Fail: make(map[string]bool)}
	for _, u := range fail {
		r.Fail[u] = true
	}
	return r
}

// DownloadToDirectory implements resolver.Resolver.
func (r *FakeResolver) DownloadToDirectory(ctx context.Context, directory, rawURL string, opts resolver.Options) (string, error) {
	r.mu.Lock()
	r.calls = append(r.calls, rawURL)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if r.Fail[rawURL] {
		return "", fmt.Errorf("%w: fake failure for %s", resolver.ErrNetwork, rawURL)
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	base := opts.Basename
	if base == "" {
		base = path.Base(u.Path)
	}
	if base == "" || base == "/" || base == "." {
		return "", errors.New("fake resolver: no basename")
	}
	dst := filepath.Join(directory, opts.Subdir, base)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil { //nolint:gosec // test dir
		return "", err
	}
	if err := os.WriteFile(dst, []byte("content of "+rawURL), 0644); err != nil { //nolint:gosec // test file
		return "", err
	}
	return dst, nil
}

// Calls returns the URLs requested so far, in order.
func (r *FakeResolver) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

// CallCount returns how often rawURL was requested.
func (r *FakeResolver) CallCount(rawURL string) int {
	n := 0
	for _, c := range r.Calls() {
		if c == rawURL {
			n++
		}
	}
	return n
}
