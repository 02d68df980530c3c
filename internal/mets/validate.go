package mets

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/fbkclanna/ocrdws/internal/xmldoc"
)

// validateFile checks one mets:file entry read from an existing document.
func validateFile(el *etree.Element, seen map[string]*File) error {
	id := el.SelectAttrValue("ID", "")
	if id == "" {
		return fmt.Errorf("%w: mets:file without ID", ErrInvalidArgument)
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("%w: file ID %q appears more than once", ErrDuplicate, id)
	}
	if findLoc(el, locTypeURL) == nil && findLoc(el, locTypeOther) == nil {
		return fmt.Errorf("%w: file %s has neither url nor local filename", ErrInvalidArgument, id)
	}
	return nil
}

// isMets reports whether el is the METS element named tag, either through
// the conventional mets: prefix or through its resolved namespace.
func isMets(el *etree.Element, tag string) bool {
	if el == nil || el.Tag != tag {
		return false
	}
	return el.Space == "mets" || el.NamespaceURI() == xmldoc.Namespaces["mets"]
}

func childElements(parent *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range parent.ChildElements() {
		if isMets(c, tag) {
			out = append(out, c)
		}
	}
	return out
}
