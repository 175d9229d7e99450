package epub

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

const (
	mimetypeContent = "application/epub+zip"
	oebpsDir        = "OEBPS"
	stylesheetName  = "stylesheet.css"
	coverImageID    = "cover-image"
)

// Sentinel errors for builder operations.
var (
	ErrFinalized       = errors.New("builder already finalized")
	ErrUnknownMetadata = errors.New("unknown metadata key")
	ErrEmptyName       = errors.New("resource name cannot be empty")
)

// Content is one document in the book's reading order.
type Content struct {
	Path  string // archive path under OEBPS/, slash-separated
	Title string // table-of-contents label
	Level int    // zero-based nesting depth in the table of contents
	Data  []byte // rendered document bytes
}

type resource struct {
	name string
	mime string
	data []byte
}

// Builder accumulates book parts and serializes them as an EPUB container.
// Not safe for concurrent use; one generation run per instance.
type Builder struct {
	identifier   string
	title        string
	language     string
	generator    string
	authors      []string
	descriptions []string

	contents   []Content
	resources  []resource
	cover      *resource
	stylesheet []byte
	hasStyles  bool

	finalized bool
}

// New creates an empty Builder with a fresh urn:uuid identifier and the
// language preset to "en".
func New() *Builder {
	return &Builder{
		identifier: "urn:uuid:" + uuid.NewString(),
		language:   "en",
	}
}

// Metadata sets or appends one metadata value. Single-valued keys (title,
// lang, generator, identifier) overwrite on repeat; author and description
// accumulate. Unknown keys fail with ErrUnknownMetadata.
func (b *Builder) Metadata(key, value string) error {
	if b.finalized {
		return ErrFinalized
	}

	switch key {
	case "title":
		b.title = value
	case "lang":
		b.language = value
	case "generator":
		b.generator = value
	case "identifier":
		b.identifier = value
	case "author":
		b.authors = append(b.authors, value)
	case "description":
		b.descriptions = append(b.descriptions, value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMetadata, key)
	}
	return nil
}

// AddContent appends one document to the spine and the table of contents.
func (b *Builder) AddContent(c Content) error {
	if b.finalized {
		return ErrFinalized
	}
	if c.Path == "" {
		return fmt.Errorf("%w: content path", ErrEmptyName)
	}
	if c.Level < 0 {
		c.Level = 0
	}
	b.contents = append(b.contents, c)
	return nil
}

// Stylesheet registers the single shared stylesheet, reading r fully.
func (b *Builder) Stylesheet(r io.Reader) error {
	if b.finalized {
		return ErrFinalized
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading stylesheet: %w", err)
	}
	b.stylesheet = data
	b.hasStyles = true
	return nil
}

// AddCoverImage registers the designated cover resource, reading r fully.
func (b *Builder) AddCoverImage(name string, r io.Reader, mime string) error {
	if b.finalized {
		return ErrFinalized
	}
	if name == "" {
		return fmt.Errorf("%w: cover image", ErrEmptyName)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading cover image %q: %w", name, err)
	}
	b.cover = &resource{name: name, mime: mime, data: data}
	return nil
}

// AddResource registers a generic embedded resource, reading r fully.
func (b *Builder) AddResource(name string, r io.Reader, mime string) error {
	if b.finalized {
		return ErrFinalized
	}
	if name == "" {
		return fmt.Errorf("%w: resource", ErrEmptyName)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading resource %q: %w", name, err)
	}
	b.resources = append(b.resources, resource{name: name, mime: mime, data: data})
	return nil
}

// Generate serializes the complete container to w and finalizes the builder.
func (b *Builder) Generate(w io.Writer) error {
	if b.finalized {
		return ErrFinalized
	}
	b.finalized = true

	zw := zip.NewWriter(w)

	if err := writeMimetype(zw); err != nil {
		return err
	}
	if err := b.writeContainer(zw); err != nil {
		return err
	}
	if err := b.writeOPF(zw); err != nil {
		return err
	}
	if err := b.writeNCX(zw); err != nil {
		return err
	}
	if err := b.writeNav(zw); err != nil {
		return err
	}
	if b.hasStyles {
		if err := writeDataToZip(zw, oebpsDir+"/"+stylesheetName, b.stylesheet); err != nil {
			return err
		}
	}
	for _, c := range b.contents {
		if err := writeDataToZip(zw, oebpsDir+"/"+c.Path, c.Data); err != nil {
			return err
		}
	}
	if b.cover != nil {
		if err := writeDataToZip(zw, oebpsDir+"/"+b.cover.name, b.cover.data); err != nil {
			return err
		}
	}
	for _, res := range b.resources {
		if err := writeDataToZip(zw, oebpsDir+"/"+res.name, res.data); err != nil {
			return err
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing container: %w", err)
	}
	return nil
}

// writeMimetype writes the mimetype entry. The OCF spec requires it first in
// the archive and uncompressed so readers can sniff it at a fixed offset.
func writeMimetype(zw *zip.Writer) error {
	header := &zip.FileHeader{
		Name:   "mimetype",
		Method: zip.Store,
	}
	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("creating mimetype entry: %w", err)
	}
	if _, err := w.Write([]byte(mimetypeContent)); err != nil {
		return fmt.Errorf("writing mimetype entry: %w", err)
	}
	return nil
}

func (b *Builder) writeContainer(zw *zip.Writer) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)

	container := doc.CreateElement("container")
	container.CreateAttr("version", "1.0")
	container.CreateAttr("xmlns", "urn:oasis:names:tc:opendocument:xmlns:container")

	rootfiles := container.CreateElement("rootfiles")
	rootfile := rootfiles.CreateElement("rootfile")
	rootfile.CreateAttr("full-path", oebpsDir+"/content.opf")
	rootfile.CreateAttr("media-type", "application/oebps-package+xml")

	return writeXMLToZip(zw, "META-INF/container.xml", doc)
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	doc.Indent(2)

	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializing %s: %w", name, err)
	}
	return writeDataToZip(zw, name, data)
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("creating entry %s: %w", name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing entry %s: %w", name, err)
	}
	return nil
}
