// Package classifier decides what a block of extracted text is: SVG markup,
// an HTML table, a plain-text table, a bare question stem, Java code or plain
// text. Every function is pure and treats empty input as "no match".
package classifier

import "strings"

type Kind string

const (
	KindNone      Kind = "none"
	KindSVG       Kind = "svg"
	KindHTMLTable Kind = "html_table"
	KindTextTable Kind = "text_table"
	KindStem      Kind = "stem"
	KindCode      Kind = "code"
	KindText      Kind = "text"
)

// Result is the outcome of Classify. HTML holds safe table markup for the two
// table kinds and is empty otherwise.
type Result struct {
	Kind Kind
	HTML string
}

// Rule is one classification step. Match reports whether the rule applies
// and, for table rules, the markup to render.
type Rule struct {
	Kind  Kind
	Match func(text string) (html string, ok bool)
}

// Rules is evaluated in order and the first match wins. Later rules rely on
// the earlier ones having failed: a table is never a stem, and markup is
// never treated as code.
var Rules = []Rule{
	{KindNone, func(text string) (string, bool) {
		return "", strings.TrimSpace(text) == ""
	}},
	{KindSVG, func(text string) (string, bool) {
		return "", IsSVG(text)
	}},
	{KindHTMLTable, func(text string) (string, bool) {
		if !IsHTMLTable(text) {
			return "", false
		}
		return SanitizeTableHTML(text), true
	}},
	{KindTextTable, TextTableToHTML},
	{KindStem, func(text string) (string, bool) {
		return "", IsStemOnly(text)
	}},
	{KindCode, func(text string) (string, bool) {
		return "", IsCodeLike(text)
	}},
	{KindText, func(string) (string, bool) {
		return "", true
	}},
}

// Classify runs Rules against text.
func Classify(text string) Result {
	for _, r := range Rules {
		if html, ok := r.Match(text); ok {
			return Result{Kind: r.Kind, HTML: html}
		}
	}
	return Result{Kind: KindText}
}

// ClassifyOptional is Classify for nullable text.
func ClassifyOptional(text *string) Result {
	if text == nil {
		return Result{Kind: KindNone}
	}
	return Classify(*text)
}

// HasPanel reports whether the result is worth rendering beside the question.
func (r Result) HasPanel() bool {
	return r.Kind != KindNone && r.Kind != KindStem
}
