// Package render converts Markdown to HTML in-process.
//
// Renderers are registered by name from init functions in files guarded by
// build tags, so a binary can be built without any of them:
//
//	go build -tags nogoldmark,noblackfriday ./...
//
// Callers resolve a renderer once with Load and keep the error: a missing
// renderer is reported when HTML is actually requested, not at start-up.
//
// Every renderer shares the same pre/post-processing:
//   - line ending normalization
//   - math spans ($...$, $$...$$, \(...\), \[...\]) swapped for placeholders
//     so the Markdown parser cannot mangle them, then restored verbatim
//     (HTML-escaped) for MathJax
package render
