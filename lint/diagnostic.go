// Package lint is TidySQL's rule dispatcher: a single preorder walk
// over a syntax.Tree that hands each node or token to every registered
// rule whose matcher accepts it (§4.3).
package lint

import (
	"github.com/tidysql/tidysql/config"
	"github.com/tidysql/tidysql/syntax"
)

// TextEdit replaces the bytes in Range with Replacement. An insert is
// a zero-length Range; a delete is an empty Replacement.
type TextEdit struct {
	Range       syntax.Range
	Replacement string
}

// Fix is a named, ordered group of edits a rule offers as a remedy.
type Fix struct {
	Title string
	Edits []TextEdit
}

// SingleFix builds a Fix with exactly one edit, the common case.
func SingleFix(title string, edit TextEdit) Fix {
	return Fix{Title: title, Edits: []TextEdit{edit}}
}

// Diagnostic is one rule finding: a code, message, severity, the byte
// range it applies to, and an optional fix.
type Diagnostic struct {
	Code     string
	Message  string
	Severity config.Severity
	Range    syntax.Range
	Fix      *Fix
}

// WithFix returns d with Fix attached, for fluent construction at the
// call site (mirrors the teacher's builder-style diagnostic helpers).
func (d Diagnostic) WithFix(f Fix) Diagnostic {
	d.Fix = &f
	return d
}
