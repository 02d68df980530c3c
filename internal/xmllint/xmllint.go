package xmllint

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBinary is looked up on PATH when Formatter.Binary is empty.
const DefaultBinary = "xmllint"

// Formatter pipes XML through `xmllint --format -`.
type Formatter struct {
	// Binary is the xmllint executable; DefaultBinary when empty.
	Binary string
}

// New returns a Formatter for the given executable path.
func New(binary string) *Formatter {
	return &Formatter{Binary: binary}
}

// Format returns the canonicalized form of in.
func (f *Formatter) Format(ctx context.Context, in []byte) ([]byte, error) {
	return f.pipe(ctx, in, "--format", "--encode", "UTF-8", "-")
}

// Check reports whether in is well-formed according to xmllint.
func (f *Formatter) Check(ctx context.Context, in []byte) error {
	_, err := f.pipe(ctx, in, "--noout", "-")
	return err
}

// IsInstalled returns true if the configured binary can be found.
func (f *Formatter) IsInstalled() bool {
	_, err := exec.LookPath(f.binary())
	return err == nil
}

func (f *Formatter) binary() string {
	if f == nil || f.Binary == "" {
		return DefaultBinary
	}
	return f.Binary
}

// pipe feeds in to xmllint on stdin and returns its stdout. Stderr is
// captured and included in the error message on failure.
func (f *Formatter) pipe(ctx context.Context, in []byte, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, f.binary(), args...) //nolint:gosec // binary comes from workspace config
	cmd.Stdin = bytes.NewReader(in)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %w: %s", f.binary(), strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
