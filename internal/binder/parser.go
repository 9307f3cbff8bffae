package binder

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"
)

const utf8BOM = "\xef\xbb\xbf"

var (
	pragmaRE       = regexp.MustCompile(`<!--\s*prosemark-binder:v1\s*-->`)
	listItemRE     = regexp.MustCompile(`^(\s*)([-*+]|\d+[.)])\s+(.+)`)
	inlineLinkRE   = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s"]+)(?:\s+"[^"]*")?\s*\)`)
	checkboxRE     = regexp.MustCompile(`^\[[xX ]\]\s+`)
	mdInlineLinkRE = regexp.MustCompile(`\[[^\]]*\]\([^)]*\.md[^)]*\)`)
)

// Parse reads a binder and returns its entries in reading order. Items
// whose link cannot name a node file inside the project are skipped with a
// diagnostic. A non-nil error means the input is not a binder at all.
func Parse(ctx context.Context, src []byte) (*ParseResult, []Diagnostic, error) {
	_ = ctx

	result := &ParseResult{Version: "1", Entries: []Entry{}}
	var diags []Diagnostic

	if !utf8.Valid(src) {
		return result, nil, fmt.Errorf("binder file contains invalid UTF-8 content")
	}
	if bytes.HasPrefix(src, []byte(utf8BOM)) {
		result.HasBOM = true
		src = src[len(utf8BOM):]
		diags = append(diags, warning(CodeBOMPresence, 0, "UTF-8 BOM detected"))
	}

	lines := strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")

	var indents []int
	seen := make(map[string]bool)
	fence := ""

	for i, line := range lines {
		lineNum := i + 1

		if fence != "" {
			if strings.HasPrefix(strings.TrimSpace(line), fence) {
				fence = ""
			} else if inlineLinkRE.MatchString(line) {
				diags = append(diags, warning(CodeLinkInCodeFence, lineNum, "link inside fenced code block is ignored"))
			}
			continue
		}
		if marker := openFenceMarker(line); marker != "" {
			fence = marker
			continue
		}
		if !result.HasPragma && pragmaRE.MatchString(line) {
			result.HasPragma = true
			continue
		}

		m := listItemRE.FindStringSubmatch(line)
		if m == nil {
			if mdInlineLinkRE.MatchString(line) {
				diags = append(diags, warning(CodeLinkOutsideList, lineNum, "markdown link to .md file found outside list item"))
			}
			continue
		}

		indent := len(m[1])
		content := checkboxRE.ReplaceAllString(strings.TrimSpace(m[3]), "")
		link := inlineLinkRE.FindStringSubmatch(content)
		if link == nil {
			continue
		}
		title, target := link[1], link[2]

		decoded, err := url.PathUnescape(target)
		if err != nil {
			diags = append(diags, errorDiag(CodeIllegalPathChars, lineNum, fmt.Sprintf("illegal path characters in link target: %s", target)))
			continue
		}
		target = decoded

		switch {
		case escapesRoot(target):
			diags = append(diags, errorDiag(CodePathEscapesRoot, lineNum, fmt.Sprintf("link target escapes project directory: %s", target)))
			continue
		case !strings.HasSuffix(strings.ToLower(target), ".md"):
			diags = append(diags, warning(CodeNonMarkdownTarget, lineNum, fmt.Sprintf("link target is not a .md file: %s", target)))
			continue
		case path.Clean(target) == FileName:
			diags = append(diags, warning(CodeSelfReferentialLink, lineNum, "link targets the binder file itself"))
			continue
		}
		target = path.Clean(target)

		if seen[target] {
			diags = append(diags, warning(CodeDuplicateFileRef, lineNum, fmt.Sprintf("duplicate file reference: %s", target)))
			continue
		}
		seen[target] = true

		for len(indents) > 0 && indents[len(indents)-1] >= indent {
			indents = indents[:len(indents)-1]
		}
		result.Entries = append(result.Entries, Entry{
			Title:  strings.TrimSpace(title),
			Target: target,
			Depth:  len(indents),
			Line:   lineNum,
		})
		indents = append(indents, indent)
	}

	if !result.HasPragma && strings.TrimSpace(string(src)) != "" {
		diags = append([]Diagnostic{warning(CodeMissingPragma, 0,
			"missing binder pragma: file has content but does not begin with "+Pragma)}, diags...)
	}

	return result, diags, nil
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == "error" {
			return true
		}
	}
	return false
}

func openFenceMarker(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return ""
	}
	for _, marker := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, marker) {
			return marker
		}
	}
	return ""
}

func escapesRoot(target string) bool {
	if strings.HasPrefix(target, "/") || strings.Contains(target, `\`) {
		return true
	}
	clean := path.Clean(target)
	return clean == ".." || strings.HasPrefix(clean, "../")
}

func warning(code string, line int, msg string) Diagnostic {
	return Diagnostic{Severity: "warning", Code: code, Message: msg, Line: line}
}

func errorDiag(code string, line int, msg string) Diagnostic {
	return Diagnostic{Severity: "error", Code: code, Message: msg, Line: line}
}
