// Package mets maintains the file registry of a workspace manifest: named
// file groups, each holding file records with an ID, mimetype, remote URL
// and local path. Every registry operation is applied directly to the
// underlying xmldoc tree, so a serialization always reflects the registry.
package mets
