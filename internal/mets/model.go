package mets

import (
	"fmt"

	"github.com/beevik/etree"
)

// Location types used on mets:FLocat elements.
const (
	locTypeURL   = "URL"
	locTypeOther = "OTHER"
	locTypeFile  = "FILE"
)

// File is a handle onto one mets:file entry. Handles stay valid for the
// lifetime of the Mets that returned them; setters write through to the tree.
type File struct {
	el   *etree.Element
	mets *Mets
}

// FileOpts describes a file to register with AddFile.
type FileOpts struct {
	// ID is generated as <GROUP>_<NNNN> when empty.
	ID            string
	URL           string
	LocalFilename string
	// Mimetype is guessed from the file extension when empty.
	Mimetype string
	// Attrs are extra attributes stored on the mets:file element verbatim.
	Attrs map[string]string
}

// FileInfo is an immutable snapshot of a File.
type FileInfo struct {
	ID            string `json:"id"`
	Group         string `json:"group"`
	URL           string `json:"url,omitempty"`
	LocalFilename string `json:"local_filename,omitempty"`
	Mimetype      string `json:"mimetype,omitempty"`
}

// ID returns the file identifier, unique within the manifest.
func (f *File) ID() string {
	f.mets.mu.RLock()
	defer f.mets.mu.RUnlock()
	return f.el.SelectAttrValue("ID", "")
}

// Group returns the USE of the file group the file belongs to.
func (f *File) Group() string {
	f.mets.mu.RLock()
	defer f.mets.mu.RUnlock()
	return groupOf(f.el)
}

// Mimetype returns the MIMETYPE attribute.
func (f *File) Mimetype() string {
	f.mets.mu.RLock()
	defer f.mets.mu.RUnlock()
	return f.el.SelectAttrValue("MIMETYPE", "")
}

// URL returns the remote location, or "" when the file has none.
func (f *File) URL() string {
	f.mets.mu.RLock()
	defer f.mets.mu.RUnlock()
	return href(findLoc(f.el, locTypeURL))
}

// LocalFilename returns the local path, or "" when the file has not been
// downloaded yet.
func (f *File) LocalFilename() string {
	f.mets.mu.RLock()
	defer f.mets.mu.RUnlock()
	return href(findLoc(f.el, locTypeOther))
}

// Attr returns an extra attribute stored on the file entry.
func (f *File) Attr(key string) string {
	f.mets.mu.RLock()
	defer f.mets.mu.RUnlock()
	return f.el.SelectAttrValue(key, "")
}

// SetLocalFilename records where the file's content lives on disk. Clearing
// it is only allowed while the file still has a URL.
func (f *File) SetLocalFilename(path string) error {
	f.mets.mu.Lock()
	defer f.mets.mu.Unlock()
	if path == "" && findLoc(f.el, locTypeURL) == nil {
		return fmt.Errorf("%w: file %s would have neither url nor local filename", ErrInvalidArgument, f.el.SelectAttrValue("ID", ""))
	}
	setLoc(f.el, locTypeOther, path)
	return nil
}

// Info returns a snapshot of the file's fields.
func (f *File) Info() FileInfo {
	f.mets.mu.RLock()
	defer f.mets.mu.RUnlock()
	return infoOf(f.el)
}

func (f *File) String() string {
	i := f.Info()
	return fmt.Sprintf("File[id=%s, group=%s, url=%s, local_filename=%s, mimetype=%s]",
		i.ID, i.Group, i.URL, i.LocalFilename, i.Mimetype)
}

func infoOf(el *etree.Element) FileInfo {
	return FileInfo{
		ID:            el.SelectAttrValue("ID", ""),
		Group:         groupOf(el),
		URL:           href(findLoc(el, locTypeURL)),
		LocalFilename: href(findLoc(el, locTypeOther)),
		Mimetype:      el.SelectAttrValue("MIMETYPE", ""),
	}
}

func groupOf(el *etree.Element) string {
	if p := el.Parent(); p != nil {
		return p.SelectAttrValue("USE", "")
	}
	return ""
}

// findLoc returns the first mets:FLocat of the given LOCTYPE. For OTHER only
// entries with OTHERLOCTYPE=FILE count as local paths.
func findLoc(file *etree.Element, locType string) *etree.Element {
	for _, loc := range childElements(file, "FLocat") {
		if loc.SelectAttrValue("LOCTYPE", "") != locType {
			continue
		}
		if locType == locTypeOther && loc.SelectAttrValue("OTHERLOCTYPE", "") != locTypeFile {
			continue
		}
		return loc
	}
	return nil
}

// setLoc creates, updates or (for an empty value) removes a location.
func setLoc(file *etree.Element, locType, value string) {
	loc := findLoc(file, locType)
	if value == "" {
		if loc != nil {
			file.RemoveChild(loc)
		}
		return
	}
	if loc == nil {
		loc = file.CreateElement("mets:FLocat")
		loc.CreateAttr("LOCTYPE", locType)
		if locType == locTypeOther {
			loc.CreateAttr("OTHERLOCTYPE", locTypeFile)
		}
	}
	loc.CreateAttr("xlink:href", value)
}

func href(loc *etree.Element) string {
	if loc == nil {
		return ""
	}
	return loc.SelectAttrValue("xlink:href", "")
}
