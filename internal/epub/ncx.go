package epub

import (
	"archive/zip"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
)

// writeNCX writes the EPUB 2 navigation file. EPUB 3 readers use nav.xhtml;
// older readers still expect toc.ncx, so both are emitted.
func (b *Builder) writeNCX(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateDirective(`DOCTYPE ncx PUBLIC "-//NISO//DTD ncx 2005-1//EN" "http://www.daisy.org/z3986/2005/ncx-2005-1.dtd"`)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", "http://www.daisy.org/z3986/2005/ncx/")
	ncx.CreateAttr("version", "2005-1")

	tree := buildTocTree(b.contents)

	head := ncx.CreateElement("head")
	headMeta(head, "dtb:uid", b.identifier)
	headMeta(head, "dtb:depth", strconv.Itoa(maxDepth(tree)))
	headMeta(head, "dtb:totalPageCount", "0")
	headMeta(head, "dtb:maxPageNumber", "0")

	docTitle := ncx.CreateElement("docTitle")
	docTitle.CreateElement("text").SetText(b.title)

	navMap := ncx.CreateElement("navMap")
	playOrder := 0
	addNavPoints(navMap, tree, &playOrder)

	return writeXMLToZip(zw, oebpsDir+"/toc.ncx", doc)
}

func headMeta(head *etree.Element, name, content string) {
	meta := head.CreateElement("meta")
	meta.CreateAttr("name", name)
	meta.CreateAttr("content", content)
}

func addNavPoints(parent *etree.Element, entries []*tocEntry, playOrder *int) {
	for _, e := range entries {
		*playOrder++

		navPoint := parent.CreateElement("navPoint")
		navPoint.CreateAttr("id", fmt.Sprintf("navpoint-%d", *playOrder))
		navPoint.CreateAttr("playOrder", strconv.Itoa(*playOrder))

		navLabel := navPoint.CreateElement("navLabel")
		navLabel.CreateElement("text").SetText(e.title)

		content := navPoint.CreateElement("content")
		content.CreateAttr("src", e.href)

		addNavPoints(navPoint, e.children, playOrder)
	}
}
