// Package web embeds the HTML templates of the vacation planner.
// Serving them from the binary means the pages and the running code are
// always in sync.
package web

import "embed"

// Templates holds templates/*.html. layout.html defines the page chrome and
// every other file defines the "content" block rendered inside it.
//
//go:embed templates/*.html
var Templates embed.FS
