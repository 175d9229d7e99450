package main

import (
	"errors"
	"os"

	md2epub "github.com/alnah/go-md2epub"
)

// Exit codes for the md2epub CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, 3=I/O.
const (
	ExitSuccess = 0 // Book generated
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, configuration, or book structure
	ExitIO      = 3 // File not found, permission denied, write failure
)

// exitCodeFor returns the exit code for an error. It relies on errors.Is,
// so every error on the path must be wrapped with %w.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, md2epub.ErrInvalidRenderContext) ||
		errors.Is(err, md2epub.ErrNoManifest) ||
		errors.Is(err, md2epub.ErrNoSummary) ||
		errors.Is(err, md2epub.ErrNoChapterPath) ||
		errors.Is(err, md2epub.ErrNoFileName) ||
		errors.Is(err, md2epub.ErrAssetOutsideBook) ||
		errors.Is(err, md2epub.ErrTemplateParse) {
		return ExitUsage
	}

	return ExitGeneral
}
