package md2epub

import "errors"

// Sentinel errors for library operations.
var (
	// Structural errors.
	ErrNoChapterPath = errors.New("chapter has no source path")

	// Template errors.
	ErrTemplateParse  = errors.New("could not parse the chapter template")
	ErrTemplateRender = errors.New("chapter template rendering failed")

	// Asset errors.
	ErrNoFileName       = errors.New("cannot determine file name")
	ErrAssetOutsideBook = errors.New("asset reference escapes the book source directory")

	// Document source errors.
	ErrInvalidRenderContext = errors.New("invalid render context")
	ErrNoSummary            = errors.New("SUMMARY.md not found")
	ErrNoManifest           = errors.New("book.yaml not found")
)
