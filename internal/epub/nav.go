package epub

import (
	"archive/zip"

	"github.com/beevik/etree"
)

// writeNav writes the EPUB 3 navigation document.
func (b *Builder) writeNav(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", "http://www.w3.org/1999/xhtml")
	html.CreateAttr("xmlns:epub", "http://www.idpf.org/2007/ops")

	head := html.CreateElement("head")
	head.CreateElement("title").SetText(b.title)

	body := html.CreateElement("body")
	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	nav.CreateAttr("id", "toc")
	nav.CreateElement("h1").SetText("Table of Contents")

	addNavList(nav, buildTocTree(b.contents))

	return writeXMLToZip(zw, oebpsDir+"/nav.xhtml", doc)
}

func addNavList(parent *etree.Element, entries []*tocEntry) {
	if len(entries) == 0 {
		return
	}

	ol := parent.CreateElement("ol")
	for _, e := range entries {
		li := ol.CreateElement("li")
		a := li.CreateElement("a")
		a.CreateAttr("href", e.href)
		a.SetText(e.title)

		addNavList(li, e.children)
	}
}
