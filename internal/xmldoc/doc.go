// Package xmldoc loads, holds and serializes the XML tree behind a workspace
// manifest. It knows nothing about METS semantics; it only guarantees that a
// document read from disk or memory can be written back without losing
// content, optionally through an external Formatter.
package xmldoc
