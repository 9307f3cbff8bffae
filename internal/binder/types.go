// Package binder parses the project binder: a markdown file whose list of
// links to node files fixes the reading order of a book.
package binder

// Entry is one node referenced from the binder, in document order.
type Entry struct {
	// Title is the link text.
	Title string `json:"title"`
	// Target is the percent-decoded path relative to the binder directory.
	Target string `json:"target"`
	// Depth is the list nesting level, 0 for top-level items.
	Depth int `json:"depth"`
	// Line is the 1-based source line of the list item.
	Line int `json:"-"`
}

// Diagnostic is a structured error or warning emitted during parsing.
type Diagnostic struct {
	Severity string `json:"severity"` // "error" | "warning"
	Code     string `json:"code"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"` // 0 if no source location
}

// ParseResult is the structured output of parsing a binder file.
type ParseResult struct {
	Version   string  `json:"version"` // always "1"
	HasPragma bool    `json:"-"`
	HasBOM    bool    `json:"-"`
	Entries   []Entry `json:"entries"`
}

// Parse errors.
const (
	CodeIllegalPathChars = "BNDE001"
	CodePathEscapesRoot  = "BNDE002"
)

// Parse warnings.
const (
	CodeMissingPragma       = "BNDW001"
	CodeDuplicateFileRef    = "BNDW003"
	CodeLinkInCodeFence     = "BNDW005"
	CodeLinkOutsideList     = "BNDW006"
	CodeNonMarkdownTarget   = "BNDW007"
	CodeSelfReferentialLink = "BNDW008"
	CodeBOMPresence         = "BNDW010"
)

// Pragma is the first line of a binder file.
const Pragma = "<!-- prosemark-binder:v1 -->"

// FileName is the conventional binder file name.
const FileName = "_binder.md"
