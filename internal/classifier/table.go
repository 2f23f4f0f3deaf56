package classifier

import (
	"regexp"
	"strings"
)

// Delimiter is how the cells of a plain-text table are separated.
type Delimiter string

const (
	DelimiterPipe        Delimiter = "pipe"
	DelimiterTab         Delimiter = "tab"
	DelimiterDoubleSpace Delimiter = "double_space"
	DelimiterSpace       Delimiter = "space"
)

// TextTable is a plain-text table split into cells. Rows[0] is the header.
type TextTable struct {
	Delimiter Delimiter
	Rows      [][]string
}

var (
	separatorRowRe = regexp.MustCompile(`^[\s|:\-]+$`)
	spaceRunRe     = regexp.MustCompile(` {2,}`)
)

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func isSeparatorRow(line string) bool {
	return strings.Contains(line, "-") && separatorRowRe.MatchString(line)
}

func splitRow(line string, d Delimiter) []string {
	var cells []string
	switch d {
	case DelimiterPipe:
		line = strings.TrimSuffix(strings.TrimPrefix(line, "|"), "|")
		cells = strings.Split(line, "|")
	case DelimiterTab:
		cells = strings.Split(line, "\t")
	case DelimiterDoubleSpace:
		cells = spaceRunRe.Split(line, -1)
	default:
		return strings.Fields(line)
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

// pipeRows returns the data rows of a pipe table, or nil when there is not
// enough pipe evidence: at least two non-separator rows with pipes that all
// split into the same number of columns, two or more.
func pipeRows(lines []string) [][]string {
	var rows [][]string
	pipes := 0
	for _, line := range lines {
		if isSeparatorRow(line) {
			continue
		}
		n := strings.Count(line, "|")
		if n == 0 {
			return nil
		}
		pipes += n
		rows = append(rows, splitRow(line, DelimiterPipe))
	}
	if len(rows) < 2 || pipes < 2 || !uniformWidth(rows) {
		return nil
	}
	return rows
}

func uniformWidth(rows [][]string) bool {
	if len(rows) == 0 || len(rows[0]) < 2 {
		return false
	}
	for _, r := range rows[1:] {
		if len(r) != len(rows[0]) {
			return false
		}
	}
	return true
}

// DetectDelimiter picks the delimiter mode for text: pipe when the pipe rows
// are consistent, else tab if any line has one, else double-space runs if any
// line has them, else single spaces.
func DetectDelimiter(text string) Delimiter {
	lines := nonEmptyLines(text)
	if pipeRows(lines) != nil {
		return DelimiterPipe
	}
	for _, line := range lines {
		if strings.Contains(line, "\t") {
			return DelimiterTab
		}
	}
	for _, line := range lines {
		if spaceRunRe.MatchString(line) {
			return DelimiterDoubleSpace
		}
	}
	return DelimiterSpace
}

// ParseTextTable splits text with the detected delimiter. The table is
// confirmed only when there are at least two rows and every row has the same
// number of columns, two or more.
func ParseTextTable(text string) (TextTable, bool) {
	lines := nonEmptyLines(text)
	if len(lines) < 2 {
		return TextTable{}, false
	}
	d := DetectDelimiter(text)
	var rows [][]string
	if d == DelimiterPipe {
		rows = pipeRows(lines)
	} else {
		for _, line := range lines {
			rows = append(rows, splitRow(line, d))
		}
	}
	if len(rows) < 2 || !uniformWidth(rows) {
		return TextTable{}, false
	}
	return TextTable{Delimiter: d, Rows: rows}, true
}

// IsTextTable reports whether text is a plain-text table.
func IsTextTable(text string) bool {
	_, ok := ParseTextTable(text)
	return ok
}

// HTML renders the table with the first row as header. Cells are escaped.
func (t TextTable) HTML() string {
	if len(t.Rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<table><thead><tr>")
	for _, cell := range t.Rows[0] {
		b.WriteString("<th>" + EscapeCell(cell) + "</th>")
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range t.Rows[1:] {
		b.WriteString("<tr>")
		for _, cell := range row {
			b.WriteString("<td>" + EscapeCell(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

// TextTableToHTML converts a plain-text table to HTML. It returns false when
// text is not a table.
func TextTableToHTML(text string) (string, bool) {
	t, ok := ParseTextTable(text)
	if !ok {
		return "", false
	}
	return t.HTML(), true
}
