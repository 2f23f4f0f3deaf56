package classifier

import (
	"strings"
	"testing"
)

func TestIsSVG(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{`<svg viewBox="0 0 10 10"><line/></svg>`, true},
		{"  <SVG>\n</SVG>", true},
		{"Figure:\n<svg width=\"4\"></svg>", true},
		{"an svg-like word", false},
		{"<svgfoo>", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSVG(tt.text); got != tt.want {
			t.Errorf("IsSVG(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestIsHTMLTable(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"<table><tr><td>1</td></tr></table>", true},
		{`<TABLE border="1"><tr><td>1</td></tr></TABLE >`, true},
		{"<table><tr><td>1</td></tr>", false},
		{"</table>", false},
		{"a table of values", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsHTMLTable(tt.text); got != tt.want {
			t.Errorf("IsHTMLTable(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSanitizeTableHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "attributes stripped",
			in:   `<table class="x" onclick="evil()"><tr style="color:red"><td colspan="2">1</td></tr></table>`,
			want: "<table><tr><td>1</td></tr></table>",
		},
		{
			name: "script removed with content",
			in:   "<table><tr><td>1<script>alert(1)</script></td></tr></table>",
			want: "<table><tr><td>1</td></tr></table>",
		},
		{
			name: "nested disallowed tags dropped",
			in:   `<table><tr><td><div><b>bold</b><img src=x onerror=alert(1)></div></td></tr></table>`,
			want: "<table><tr><td>bold</td></tr></table>",
		},
		{
			name: "comments dropped",
			in:   "<table><!-- <td>hidden</td> --><tr><th>h</th></tr></table>",
			want: "<table><tr><th>h</th></tr></table>",
		},
		{
			name: "stray brackets escaped",
			in:   "<table><tr><td>1 < 2 and 3 > 2</td></tr></table>",
			want: "<table><tr><td>1 &lt; 2 and 3 &gt; 2</td></tr></table>",
		},
		{
			name: "uppercase tags normalized",
			in:   "<TABLE><THEAD><TR><TH>a</TH></TR></THEAD><TBODY></TBODY></TABLE>",
			want: "<table><thead><tr><th>a</th></tr></thead><tbody></tbody></table>",
		},
		{
			name: "style removed with content",
			in:   "<style>td{color:red}</style><table><tr><TD ONCLICK=x>2</TD></tr></table>",
			want: "<table><tr><td>2</td></tr></table>",
		},
		{
			name: "links and quotes",
			in:   `<table><tr><td><a href="javascript:x()">it's "here"</a></td></tr></table>`,
			want: "<table><tr><td>it&#39;s &#34;here&#34;</td></tr></table>",
		},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTableHTML(tt.in); got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestIsStemOnly(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"question mark", "What is the value of x after the loop?", true},
		{"interrogative without mark", "Which of the following best describes the graph", true},
		{"statement", "The graph below shows supply and demand.", false},
		{"empty", "", false},
		{"too many lines", "What is x?\nline two\nline three\nline four?", false},
		{"too long", "Which " + strings.Repeat("word ", 130) + "?", false},
		{"roman list", "Which are true?\nI. x > 0\nII. y > 0", false},
		{"arabic list", "Which are true?\n1. x > 0\n2) y > 0", false},
		{"pipe table", "a | b\n1 | 2", false},
		{"svg", "<svg></svg> What?", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStemOnly(tt.text); got != tt.want {
				t.Errorf("IsStemOnly(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsCodeLike(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"public void run() { x++; }", true},
		{"int x = 3;\n}", true},
		{"int x = 3;", false},
		{"{ a set }", false},
		{"printing", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsCodeLike(tt.text); got != tt.want {
			t.Errorf("IsCodeLike(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestSplitTrailingQuestion(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantCode string
		wantStem string
		wantOK   bool
	}{
		{
			name:     "question after class",
			text:     "public class Foo { ... }\nWhich of the following is true?",
			wantCode: "public class Foo { ... }",
			wantStem: "Which of the following is true?",
			wantOK:   true,
		},
		{
			name:     "multi-line question",
			text:     "int x = 0;\nfor (int i = 0; i < 3; i++) {\n  x += i;\n}\n\nWhat is the value of x\nafter the loop executes?\n",
			wantCode: "int x = 0;\nfor (int i = 0; i < 3; i++) {\n  x += i;\n}",
			wantStem: "What is the value of x\nafter the loop executes?",
			wantOK:   true,
		},
		{
			name:     "inline after brace",
			text:     "void f() { g(); } Would the call compile?",
			wantCode: "void f() { g(); }",
			wantStem: "Would the call compile?",
			wantOK:   true,
		},
		{
			name:     "final line fallback",
			text:     "x = y;\nAssuming x is positive, is y positive?",
			wantCode: "x = y;",
			wantStem: "Assuming x is positive, is y positive?",
			wantOK:   true,
		},
		{name: "no question", text: "public class Foo { }", wantOK: false},
		{name: "question only", text: "Which of the following is true?", wantOK: false},
		{name: "empty", text: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stem, ok := SplitTrailingQuestion(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if code != tt.wantCode || stem != tt.wantStem {
				t.Errorf("got (%q, %q), want (%q, %q)", code, stem, tt.wantCode, tt.wantStem)
			}
		})
	}
}

func TestClassifyOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Kind
	}{
		{"empty", "   ", KindNone},
		{"svg wins over table", "<svg><foreignObject><table><tr><td>1</td></tr></table></foreignObject></svg>", KindSVG},
		{"html table wins over pipes", "<table><tr><td>a | b</td></tr><tr><td>c | d</td></tr></table>", KindHTMLTable},
		{"text table", "Price | Quantity\n10 | 5\n20 | 3", KindTextTable},
		{"stem", "Which of the following is true?", KindStem},
		{"code", "public int size() {\n  return n;\n}", KindCode},
		{"text", "The following excerpt is from a 1787 speech.", KindText},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got.Kind != tt.want {
				t.Errorf("Kind = %q, want %q", got.Kind, tt.want)
			}
		})
	}
}

func TestClassifyTableHTML(t *testing.T) {
	got := Classify(`<table onload="x()"><tr><td>1</td></tr></table>`)
	if got.HTML != "<table><tr><td>1</td></tr></table>" {
		t.Errorf("HTML = %q", got.HTML)
	}
	if !got.HasPanel() {
		t.Error("a table should be shown in the panel")
	}

	if ClassifyOptional(nil).Kind != KindNone {
		t.Error("nil text should classify as none")
	}
	stem := "What is printed?"
	if ClassifyOptional(&stem).HasPanel() {
		t.Error("a bare stem should not get a panel")
	}
}
