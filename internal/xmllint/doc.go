// Package xmllint wraps the xmllint command line tool used to canonicalize
// serialized manifests. It does not depend on other internal packages; the
// Formatter type satisfies xmldoc.Formatter structurally.
package xmllint
