package xmldoc

import (
	"sort"

	"github.com/beevik/etree"
)

// Namespaces maps the prefixes used in workspace manifests to their URIs.
// The table is fixed for the lifetime of the process.
var Namespaces = map[string]string{
	"mets":  "http://www.loc.gov/METS/",
	"mods":  "http://www.loc.gov/mods/v3",
	"xlink": "http://www.w3.org/1999/xlink",
	"page":  "http://schema.primaresearch.org/PAGE/gts/pagecontent/2017-07-15",
}

// RegisterNamespaces declares every known prefix on root that is not already
// declared there. Calling it again is a no-op.
func RegisterNamespaces(root *etree.Element) {
	if root == nil {
		return
	}
	prefixes := make([]string, 0, len(Namespaces))
	for p := range Namespaces {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	for _, p := range prefixes {
		if root.SelectAttr("xmlns:"+p) != nil {
			continue
		}
		root.CreateAttr("xmlns:"+p, Namespaces[p])
	}
}
