package mets

import "github.com/fbkclanna/ocrdws/internal/xmldoc"

// Re-exported so callers of this package need not import xmldoc.
var (
	ErrNotFound        = xmldoc.ErrNotFound
	ErrInvalidArgument = xmldoc.ErrInvalidArgument
	ErrDuplicate       = xmldoc.ErrDuplicate
)
