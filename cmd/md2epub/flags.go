package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	md2epub "github.com/alnah/go-md2epub"
)

// cliFlags holds the command line options.
type cliFlags struct {
	standalone string
	output     string
	quiet      bool
	verbose    bool
	version    bool
}

// parseFlags parses the command line, program name excluded.
func parseFlags(args []string) (*cliFlags, error) {
	fs := flag.NewFlagSet("md2epub", flag.ContinueOnError)
	f := &cliFlags{}

	fs.StringVarP(&f.standalone, "standalone", "s", "", "build the book in this directory instead of reading stdin")
	fs.StringVarP(&f.output, "output", "o", "", "output file path (default: <destination>/<title>.epub)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-step progress")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	fs.Usage = func() { printUsage(os.Stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `md2epub %s - package a markdown book as EPUB

Usage:
  as a book build tool plugin (default):  md2epub < context.json
  standalone:                             md2epub --standalone <dir> [-o book.epub]

Flags:
%s`, md2epub.Version, fs.FlagUsages())
}
