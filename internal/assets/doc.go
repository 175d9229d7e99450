// Package assets provides the built-in stylesheet and chapter template
// embedded at compile time, plus generated syntax-highlight CSS.
//
// The default stylesheet (styles/epub.css) targets e-reader engines: no
// JavaScript, conservative selectors, print-like typography. The default
// chapter template (templates/index.hbs) is a handlebars document with three
// placeholders: title, body, stylesheet.
//
// Syntax-highlight CSS is generated from a chroma style at build time because
// e-readers cannot run a client-side highlighter; HighlightCSS emits
// class-based rules matching the markup the highlighting renderer produces.
package assets
