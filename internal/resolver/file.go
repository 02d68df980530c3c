package resolver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// copyLocal copies src to dst. Copying a file onto itself is a no-op.
func (d *Default) copyLocal(src, dst string) error {
	if src == dst {
		if _, err := os.Stat(src); err != nil {
			return statError(src, err)
		}
		return nil
	}
	f, err := os.Open(src) //nolint:gosec // src is a manifest-declared location
	if err != nil {
		return statError(src, err)
	}
	defer func() { _ = f.Close() }()

	d.logger.Debug("copying local file", "src", src, "dst", dst)
	return writeAtomic(dst, f)
}

func statError(p string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: file does not exist: %s", ErrNotFound, p)
	}
	return fmt.Errorf("%w: opening %s: %v", ErrIO, p, err)
}
