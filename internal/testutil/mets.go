package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
)

// FixtureFile is one mets:file entry written by WriteMets.
type FixtureFile struct {
	Group         string
	ID            string
	URL           string
	LocalFilename string
	Mimetype      string
}

// MetsXML renders a minimal METS document holding files, grouped in order of
// first appearance.
func MetsXML(files ...FixtureFile) string {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("mets:mets")
	root.CreateAttr("xmlns:mets", "http://www.loc.gov/METS/")
	root.CreateAttr("xmlns:xlink", "http://www.w3.org/1999/xlink")
	sec := root.CreateElement("mets:fileSec")

	groups := make(map[string]*etree.Element)
	for _, f := range files {
		grp, ok := groups[f.Group]
		if !ok {
			grp = sec.CreateElement("mets:fileGrp")
			grp.CreateAttr("USE", f.Group)
			groups[f.Group] = grp
		}
		mt := f.Mimetype
		if mt == "" {
			mt = "image/png"
		}
		el := grp.CreateElement("mets:file")
		el.CreateAttr("ID", f.ID)
		el.CreateAttr("MIMETYPE", mt)
		if f.URL != "" {
			loc := el.CreateElement("mets:FLocat")
			loc.CreateAttr("LOCTYPE", "URL")
			loc.CreateAttr("xlink:href", f.URL)
		}
		if f.LocalFilename != "" {
			loc := el.CreateElement("mets:FLocat")
			loc.CreateAttr("LOCTYPE", "OTHER")
			loc.CreateAttr("OTHERLOCTYPE", "FILE")
			loc.CreateAttr("xlink:href", f.LocalFilename)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToString()
	if err != nil {
		panic(err)
	}
	return out
}

// WriteMets creates a temp workspace directory whose mets.xml holds files.
// Returns the directory.
func WriteMets(t *testing.T, files ...FixtureFile) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "mets.xml"), []byte(MetsXML(files...)), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	return dir
}
