package core

import (
	"regexp"
	"strings"

	"github.com/codecity/codecity/schema"
)

// functionStart matches the opening line of a function in the common
// curly-brace and Python-style languages the adapters report on. It is a
// boundary heuristic, not a parser: good enough to bucket issues by
// enclosing function.
var functionStart = regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?` +
	`(?:func|function|def|fn|(?:public|private|protected|static|final)\s+[\w<>\[\]]+)\s+\w+\s*\(`)

// funcSpan is one function's line extent, 1-based and inclusive.
type funcSpan struct {
	start int
	end   int
}

// functionSpansFor returns the function spans of a path when its contents
// were supplied.
func functionSpansFor(path string, contents map[string]string) ([]funcSpan, bool) {
	if contents == nil {
		return nil, false
	}
	src, ok := contents[path]
	if !ok {
		return nil, false
	}
	return scanFunctionSpans(src), true
}

// scanFunctionSpans walks the source line by line. A span opens at a line
// matching functionStart and closes when brace depth returns to its opening
// level, or at the next function start for brace-less languages.
func scanFunctionSpans(src string) []funcSpan {
	lines := strings.Split(src, "\n")
	var spans []funcSpan
	openIdx := -1
	depth := 0
	inBody := false

	closeSpan := func(endLine int) {
		if openIdx >= 0 {
			spans = append(spans, funcSpan{start: openIdx + 1, end: endLine})
			openIdx = -1
			inBody = false
		}
	}

	for i, line := range lines {
		if functionStart.MatchString(line) && (!inBody || depth == 0) {
			closeSpan(i)
			openIdx = i
			depth = 0
			inBody = false
		}
		if openIdx < 0 {
			continue
		}
		for _, r := range line {
			switch r {
			case '{':
				depth++
				inBody = true
			case '}':
				depth--
			}
		}
		if inBody && depth <= 0 {
			closeSpan(i + 1)
		}
	}
	closeSpan(len(lines))
	return spans
}

// clusterByFunction buckets issues by the span containing their line.
// Issues outside every span fall back to window clustering among themselves.
func clusterByFunction(sorted []schema.UnifiedIssue, spans []funcSpan, window int) [][]schema.UnifiedIssue {
	bySpan := make(map[int][]schema.UnifiedIssue)
	var outside []schema.UnifiedIssue

	for i := range sorted {
		idx := spanIndexFor(spans, sorted[i].Line)
		if idx < 0 {
			outside = append(outside, sorted[i])
			continue
		}
		bySpan[idx] = append(bySpan[idx], sorted[i])
	}

	var clusters [][]schema.UnifiedIssue
	for idx := range spans {
		if members, ok := bySpan[idx]; ok {
			clusters = append(clusters, members)
		}
	}
	clusters = append(clusters, clusterByWindow(outside, window)...)
	return clusters
}

// spanIndexFor finds the span containing a line, or -1.
func spanIndexFor(spans []funcSpan, line int) int {
	for i, s := range spans {
		if line >= s.start && line <= s.end {
			return i
		}
	}
	return -1
}
