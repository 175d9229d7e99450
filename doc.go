// Package md2epub converts a markdown book into a packaged EPUB file.
//
// # Quick Start
//
// Decode a render context, create a generator, and write the book:
//
//	ctx, err := md2epub.ParseRenderContext(os.Stdin)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	gen, err := md2epub.NewGenerator(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	f, _ := os.Create("book.epub")
//	defer f.Close()
//	if err := gen.Generate(f); err != nil {
//	    log.Fatal(err)
//	}
//
// The render context is the JSON payload a book build tool pipes to its
// renderer plugins: the chapter tree, book metadata, the output.epub
// configuration table, and the destination directory. Books without a host
// build tool load from a source directory instead:
//
//	ctx, err := md2epub.LoadBook("/path/to/book")
//
// which reads book.yaml for metadata and src/SUMMARY.md for the chapter
// tree, and produces the same render context shape.
//
// # Generation Pipeline
//
// One Generate call runs these stages in order:
//
//  1. Package metadata (title, authors, description, language, generator)
//  2. Chapter rendering in depth-first pre-order (goldmark XHTML, optional
//     curly-quote conversion, handlebars page template)
//  3. Cover image, stylesheet, and referenced assets (images found in
//     markdown and raw HTML, plus configured extra files)
//  4. Container serialization (mimetype, OPF, NCX, nav, content entries)
//
// A Generator is single-use: after Generate the underlying builder is
// finalized and further calls fail.
//
// # Configuration
//
// The output.epub table (JSON in plugin mode, book.yaml in standalone
// mode) recognizes:
//
//	use-default-css        embed the built-in stylesheet (default true)
//	curly-quotes           straight quotes become typographic ones
//	no-section-label       drop "2.1" numbering prefixes from titles
//	cover-image            path to the cover, relative to the book root
//	additional-css         extra stylesheets appended in order
//	additional-resources   extra files embedded under their filenames
//	index-template         custom handlebars page template
//	code-theme             chroma style for syntax highlighting
//
// Diagnostics go to a zap logger supplied with an option:
//
//	gen, err := md2epub.NewGenerator(ctx, md2epub.WithLogger(logger))
package md2epub
