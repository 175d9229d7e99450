// Package epub writes EPUB 3 containers incrementally.
//
// A Builder accumulates metadata, ordered content documents, a stylesheet,
// an optional cover image, and generic resources, then serializes everything
// in one Generate call: the mimetype entry (stored, first), the OCF container
// descriptor, the package document (content.opf), both navigation documents
// (toc.ncx for EPUB 2 readers, nav.xhtml for EPUB 3), and the payload
// entries under OEBPS/.
//
// Content registration order defines the spine and the table of contents;
// nesting in the navigation documents is derived from each entry's zero-based
// level. A Builder is single-use: after Generate, every mutator and a second
// Generate fail with ErrFinalized.
package epub
