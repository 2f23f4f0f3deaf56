package classifier

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxStemLines = 3
	maxStemChars = 600
)

var (
	interrogativeRe = regexp.MustCompile(`(?i)^(which|what|who|whom|whose|when|where|why|how|does|do|did|is|are|was|were|will|would|can|could|should)\b`)
	listMarkerRe    = regexp.MustCompile(`^\(?([IVXivx]+|\d+)[.)]\s`)
	javaKeywordRe   = regexp.MustCompile(`\b(public|private|void|int)\b`)

	// A trailing question that starts a line (or follows a closing brace)
	// and runs to the end of the text without any braces or semicolons.
	trailingQuestionRe = regexp.MustCompile(`(?s)(?:^|[\n}])[ \t]*((?:Which|What|Does|Will|Would)\b[^{};]*\?)\s*$`)
)

// IsStemOnly reports whether text is nothing more than a question sentence and
// so carries no reference material worth showing on its own.
func IsStemOnly(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if IsSVG(text) || IsHTMLTable(text) || IsTextTable(text) {
		return false
	}
	lines := nonEmptyLines(text)
	if len(lines) > maxStemLines || utf8.RuneCountInString(text) >= maxStemChars {
		return false
	}
	markers := 0
	for _, line := range lines {
		if listMarkerRe.MatchString(line) {
			markers++
		}
	}
	if markers >= 2 {
		return false
	}
	return strings.HasSuffix(text, "?") || interrogativeRe.MatchString(text)
}

// IsCodeLike reports whether text looks like Java source: a keyword from a
// short list and at least one brace.
func IsCodeLike(text string) bool {
	return javaKeywordRe.MatchString(text) && strings.ContainsAny(text, "{}")
}

// SplitTrailingQuestion separates a question sentence from the code it
// follows. It returns ok=false when no split leaves both parts non-empty.
func SplitTrailingQuestion(text string) (code, stem string, ok bool) {
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)
	if trimmed == "" {
		return "", "", false
	}

	if m := trailingQuestionRe.FindStringSubmatchIndex(trimmed); m != nil {
		code = strings.TrimRightFunc(trimmed[:m[2]], unicode.IsSpace)
		stem = strings.TrimSpace(trimmed[m[2]:m[3]])
		if code != "" && stem != "" {
			return code, stem, true
		}
	}

	// Fall back to a final line ending in "?".
	i := strings.LastIndex(trimmed, "\n")
	if i < 0 {
		return "", "", false
	}
	last := strings.TrimSpace(trimmed[i+1:])
	code = strings.TrimRightFunc(trimmed[:i], unicode.IsSpace)
	if !strings.HasSuffix(last, "?") || code == "" {
		return "", "", false
	}
	return code, last, true
}
