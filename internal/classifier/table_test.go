package classifier

import (
	"reflect"
	"regexp"
	"strings"
	"testing"
)

func TestParseTextTable(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantOK    bool
		wantDelim Delimiter
		wantRows  [][]string
	}{
		{
			name:      "pipe",
			text:      "Price | Quantity\n10 | 5\n20 | 3",
			wantOK:    true,
			wantDelim: DelimiterPipe,
			wantRows:  [][]string{{"Price", "Quantity"}, {"10", "5"}, {"20", "3"}},
		},
		{
			name:      "markdown pipe with separator",
			text:      "| x | f(x) |\n|---|:---:|\n| 1 | 2 |\n| 2 | 4 |",
			wantOK:    true,
			wantDelim: DelimiterPipe,
			wantRows:  [][]string{{"x", "f(x)"}, {"1", "2"}, {"2", "4"}},
		},
		{
			name:      "tab",
			text:      "Year\tGDP\n2019\t21.4\n2020\t20.9",
			wantOK:    true,
			wantDelim: DelimiterTab,
			wantRows:  [][]string{{"Year", "GDP"}, {"2019", "21.4"}, {"2020", "20.9"}},
		},
		{
			name:      "double space keeps multi-word cells",
			text:      "Interest rate  Investment\nLow rate  High spending\nHigh rate  Low spending",
			wantOK:    true,
			wantDelim: DelimiterDoubleSpace,
			wantRows:  [][]string{{"Interest rate", "Investment"}, {"Low rate", "High spending"}, {"High rate", "Low spending"}},
		},
		{
			name:      "single space",
			text:      "x y\n1 2\n3 4",
			wantOK:    true,
			wantDelim: DelimiterSpace,
			wantRows:  [][]string{{"x", "y"}, {"1", "2"}, {"3", "4"}},
		},
		{name: "one row", text: "a | b | c", wantOK: false},
		{name: "ragged", text: "a b c\n1 2", wantOK: false},
		{name: "single column", text: "alpha\nbeta", wantOK: false},
		{name: "empty", text: "", wantOK: false},
		{name: "blank lines only", text: "\n  \n", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTextTable(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Delimiter != tt.wantDelim {
				t.Errorf("delimiter = %q, want %q", got.Delimiter, tt.wantDelim)
			}
			if !reflect.DeepEqual(got.Rows, tt.wantRows) {
				t.Errorf("rows = %q, want %q", got.Rows, tt.wantRows)
			}
		})
	}
}

func TestPipeTableScenario(t *testing.T) {
	text := "Price | Quantity\n10 | 5\n20 | 3"

	if d := DetectDelimiter(text); d != DelimiterPipe {
		t.Fatalf("delimiter = %q, want pipe", d)
	}
	table, ok := ParseTextTable(text)
	if !ok {
		t.Fatal("table not confirmed")
	}
	if body := len(table.Rows) - 1; body != 2 {
		t.Errorf("data rows = %d, want 2", body)
	}
	want := "<table><thead><tr><th>Price</th><th>Quantity</th></tr></thead>" +
		"<tbody><tr><td>10</td><td>5</td></tr><tr><td>20</td><td>3</td></tr></tbody></table>"
	if got := table.HTML(); got != want {
		t.Errorf("html =\n%s\nwant\n%s", got, want)
	}
}

func TestTextTableToHTMLEscapesCells(t *testing.T) {
	got, ok := TextTableToHTML("a<b | \"q\"\nx & y | 1>0")
	if !ok {
		t.Fatal("expected a table")
	}
	for _, w := range []string{"<th>a&lt;b</th>", "<th>&#34;q&#34;</th>", "<td>x &amp; y</td>", "<td>1&gt;0</td>"} {
		if !strings.Contains(got, w) {
			t.Errorf("missing %q in %s", w, got)
		}
	}
}

var cellRe = regexp.MustCompile(`<t[hd]>(.*?)</t[hd]>`)

func TestConvertThenSanitizeRoundTrip(t *testing.T) {
	inputs := []string{
		"Price | Quantity\n10 | 5\n20 | 3",
		"Year\tGDP\n2019\t<21.4>\n2020\t20 & 9",
		"Rate  Spending \"real\"\nLow  High\nHigh  Low",
		"x y\n1 2\n3 4",
	}
	for _, in := range inputs {
		table, ok := ParseTextTable(in)
		if !ok {
			t.Fatalf("%q: not a table", in)
		}
		html := table.HTML()
		sanitized := SanitizeTableHTML(html)
		if sanitized != html {
			t.Errorf("sanitizer changed converter output:\n%s\n%s", html, sanitized)
		}

		var want []string
		for _, row := range table.Rows {
			for _, cell := range row {
				want = append(want, EscapeCell(cell))
			}
		}
		var got []string
		for _, m := range cellRe.FindAllStringSubmatch(sanitized, -1) {
			got = append(got, m[1])
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("cells = %q, want %q", got, want)
		}
	}
}
