package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	md2epub "github.com/alnah/go-md2epub"
)

// ErrWriteOutput marks failures creating or writing the output file.
var ErrWriteOutput = errors.New("cannot write output file")

// run executes one generation: load the book from stdin or from a
// standalone directory, pick the output path, and write the package.
func run(flags *cliFlags, stdin io.Reader) error {
	log, err := newLogger(flags.verbose, flags.quiet)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, err := loadContext(flags, stdin)
	if err != nil {
		return err
	}

	gen, err := md2epub.NewGenerator(ctx, md2epub.WithLogger(log))
	if err != nil {
		return err
	}

	outPath := flags.output
	if outPath == "" {
		outPath = defaultOutputPath(ctx)
	}
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}

	f, err := os.Create(outPath) // #nosec G304 -- user-chosen output path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if err := gen.Generate(f); err != nil {
		f.Close()
		os.Remove(outPath) // a partial package is useless
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	log.Info("book written", zap.String("path", outPath))
	return nil
}

func loadContext(flags *cliFlags, stdin io.Reader) (*md2epub.RenderContext, error) {
	if flags.standalone != "" {
		return md2epub.LoadBook(flags.standalone)
	}
	return md2epub.ParseRenderContext(stdin)
}

// defaultOutputPath is <destination>/<title>.epub, the title sanitized for
// the filesystem; "book.epub" when the book has no title.
func defaultOutputPath(ctx *md2epub.RenderContext) string {
	name := sanitizeFilename(ctx.Config.Book.Title)
	if name == "" {
		name = "book"
	}
	return filepath.Join(ctx.Destination, name+".epub")
}

// sanitizeFilename drops path separators, characters Windows refuses, and
// control characters, then trims the spaces and dots no filesystem wants at
// the edges.
func sanitizeFilename(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 || strings.ContainsRune(`/\:*?"<>|`, r) {
			return -1
		}
		return r
	}, name)
	return strings.Trim(cleaned, " .")
}

// newLogger builds a console logger on stderr. Default level is info;
// verbose lowers it to debug, quiet raises it to error.
func newLogger(verbose, quiet bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	switch {
	case quiet:
		level = zapcore.ErrorLevel
	case verbose:
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true
	return cfg.Build()
}
