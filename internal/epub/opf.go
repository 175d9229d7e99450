package epub

import (
	"archive/zip"
	"fmt"
	"time"

	"github.com/beevik/etree"
)

// now is swapped in tests to pin dcterms:modified.
var now = time.Now

// writeOPF writes the package document: metadata, manifest, spine.
func (b *Builder) writeOPF(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	pkg := doc.CreateElement("package")
	pkg.CreateAttr("xmlns", "http://www.idpf.org/2007/opf")
	pkg.CreateAttr("version", "3.0")
	pkg.CreateAttr("unique-identifier", "BookId")

	metadata := pkg.CreateElement("metadata")
	metadata.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")

	identifier := metadata.CreateElement("dc:identifier")
	identifier.CreateAttr("id", "BookId")
	identifier.SetText(b.identifier)

	title := metadata.CreateElement("dc:title")
	title.SetText(b.title)

	lang := metadata.CreateElement("dc:language")
	lang.SetText(b.language)

	for _, author := range b.authors {
		creator := metadata.CreateElement("dc:creator")
		creator.SetText(author)
	}
	for _, desc := range b.descriptions {
		description := metadata.CreateElement("dc:description")
		description.SetText(desc)
	}

	modified := metadata.CreateElement("meta")
	modified.CreateAttr("property", "dcterms:modified")
	modified.SetText(now().UTC().Format("2006-01-02T15:04:05Z"))

	if b.generator != "" {
		gen := metadata.CreateElement("meta")
		gen.CreateAttr("name", "generator")
		gen.CreateAttr("content", b.generator)
	}
	if b.cover != nil {
		cover := metadata.CreateElement("meta")
		cover.CreateAttr("name", "cover")
		cover.CreateAttr("content", coverImageID)
	}

	manifest := pkg.CreateElement("manifest")

	nav := manifest.CreateElement("item")
	nav.CreateAttr("id", "nav")
	nav.CreateAttr("href", "nav.xhtml")
	nav.CreateAttr("media-type", "application/xhtml+xml")
	nav.CreateAttr("properties", "nav")

	ncx := manifest.CreateElement("item")
	ncx.CreateAttr("id", "ncx")
	ncx.CreateAttr("href", "toc.ncx")
	ncx.CreateAttr("media-type", "application/x-dtbncx+xml")

	if b.hasStyles {
		css := manifest.CreateElement("item")
		css.CreateAttr("id", "stylesheet")
		css.CreateAttr("href", stylesheetName)
		css.CreateAttr("media-type", "text/css")
	}

	for i, c := range b.contents {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", contentID(i))
		item.CreateAttr("href", c.Path)
		item.CreateAttr("media-type", "application/xhtml+xml")
	}

	if b.cover != nil {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", coverImageID)
		item.CreateAttr("href", b.cover.name)
		item.CreateAttr("media-type", b.cover.mime)
		item.CreateAttr("properties", "cover-image")
	}

	for i, res := range b.resources {
		item := manifest.CreateElement("item")
		item.CreateAttr("id", fmt.Sprintf("res-%d", i))
		item.CreateAttr("href", res.name)
		item.CreateAttr("media-type", res.mime)
	}

	spine := pkg.CreateElement("spine")
	spine.CreateAttr("toc", "ncx")
	for i := range b.contents {
		itemref := spine.CreateElement("itemref")
		itemref.CreateAttr("idref", contentID(i))
	}

	return writeXMLToZip(zw, oebpsDir+"/content.opf", doc)
}

func contentID(i int) string {
	return fmt.Sprintf("item-%d", i)
}
