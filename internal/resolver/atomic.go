package resolver

import (
	"fmt"
	"io"

	"github.com/fbkclanna/ocrdws/internal/fsutil"
)

// writeAtomic streams r into path, see fsutil.WriteAtomic.
func writeAtomic(path string, r io.Reader) error {
	if err := fsutil.WriteAtomic(path, r, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrIO, path, err)
	}
	return nil
}

// readTracker remembers the first read error so transport failures can be
// told apart from local write failures.
type readTracker struct {
	r   io.Reader
	err error
}

func (t *readTracker) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if err != nil && err != io.EOF && t.err == nil {
		t.err = err
	}
	return n, err
}
