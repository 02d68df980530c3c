package xmldoc

import "context"

// Formatter canonicalizes serialized XML, e.g. by piping it through xmllint.
type Formatter interface {
	Format(ctx context.Context, in []byte) ([]byte, error)
}

// NopFormatter returns its input unchanged.
type NopFormatter struct{}

// Format implements Formatter.
func (NopFormatter) Format(_ context.Context, in []byte) ([]byte, error) {
	return in, nil
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc func(ctx context.Context, in []byte) ([]byte, error)

// Format implements Formatter.
func (f FormatterFunc) Format(ctx context.Context, in []byte) ([]byte, error) {
	return f(ctx, in)
}
