package classifier

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	svgOpenRe   = regexp.MustCompile(`(?i)<svg[\s>/]`)
	tableOpenRe = regexp.MustCompile(`(?i)<table[\s>]`)
	tableEndRe  = regexp.MustCompile(`(?i)</table\s*>`)
)

// tablePolicy allows bare table markup only. Attributes, comments and every
// other tag are dropped; script and style go with their content.
var tablePolicy = bluemonday.NewPolicy().
	AllowElements("table", "thead", "tbody", "tr", "th", "td").
	SkipElementsContent("script", "style")

// IsSVG reports whether text carries an <svg> opening tag.
func IsSVG(text string) bool {
	return svgOpenRe.MatchString(strings.TrimSpace(text))
}

// IsHTMLTable reports whether text has both an opening and a closing table tag.
func IsHTMLTable(text string) bool {
	return tableOpenRe.MatchString(text) && tableEndRe.MatchString(text)
}

// SanitizeTableHTML keeps only table, thead, tbody, tr, th and td tags, with
// every attribute removed. Text is re-escaped.
func SanitizeTableHTML(markup string) string {
	if markup == "" {
		return ""
	}
	return tablePolicy.Sanitize(markup)
}

// EscapeCell escapes the characters that are significant inside table markup,
// the same way the sanitizer writes text back out.
func EscapeCell(s string) string {
	return html.EscapeString(s)
}
