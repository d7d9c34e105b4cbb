package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// table is a header plus string cells. Right-aligned columns hold numbers.
type table struct {
	headers []string
	right   []bool
	rows    [][]string
}

func (t *table) widths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}
	return widths
}

// plainColumnGap matches the padding tabwriter puts between plain columns.
var plainColumnGap = regexp.MustCompile(`\s{2,}`)

var pipeEscaper = strings.NewReplacer(`\`, `\\`, `|`, `\|`)

func (t *table) render(format Format) (string, error) {
	switch format {
	case FormatGitHub, FormatPipe:
		return t.escaped().renderPipe(format == FormatPipe), nil
	case FormatGrid:
		return t.escaped().renderGrid(), nil
	case FormatPlain:
		return t.renderPlain()
	case FormatCSV:
		return t.renderCSV()
	default:
		return "", fmt.Errorf("format %s is not a text table", format)
	}
}

// escaped returns a copy whose cells have backslashes and pipes escaped,
// so pipe-delimited rows split back into the same cells.
func (t *table) escaped() *table {
	escape := func(cells []string) []string {
		out := make([]string, len(cells))
		for i, cell := range cells {
			out[i] = pipeEscaper.Replace(cell)
		}
		return out
	}

	out := &table{headers: escape(t.headers), right: t.right, rows: make([][]string, 0, len(t.rows))}
	for _, row := range t.rows {
		out.rows = append(out.rows, escape(row))
	}
	return out
}

func pad(cell string, width int, right bool) string {
	gap := strings.Repeat(" ", width-utf8.RuneCountInString(cell))
	if right {
		return gap + cell
	}
	return cell + gap
}

func (t *table) line(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("|")
	for i, cell := range cells {
		b.WriteString(" " + pad(cell, widths[i], t.right[i]) + " |")
	}
	b.WriteString("\n")
}

// renderPipe writes a markdown table; aligned adds colon markers to the separator.
func (t *table) renderPipe(aligned bool) string {
	widths := t.widths()

	var b strings.Builder
	t.line(&b, t.headers, widths)

	b.WriteString("|")
	for i, w := range widths {
		switch {
		case !aligned:
			b.WriteString(strings.Repeat("-", w+2))
		case t.right[i]:
			b.WriteString(strings.Repeat("-", w+1) + ":")
		default:
			b.WriteString(":" + strings.Repeat("-", w+1))
		}
		b.WriteString("|")
	}
	b.WriteString("\n")

	for _, row := range t.rows {
		t.line(&b, row, widths)
	}
	return b.String()
}

func (t *table) renderGrid() string {
	widths := t.widths()

	border := func(b *strings.Builder, fill string) {
		b.WriteString("+")
		for _, w := range widths {
			b.WriteString(strings.Repeat(fill, w+2) + "+")
		}
		b.WriteString("\n")
	}

	var b strings.Builder
	border(&b, "-")
	t.line(&b, t.headers, widths)
	border(&b, "=")
	for _, row := range t.rows {
		t.line(&b, row, widths)
		border(&b, "-")
	}
	if len(t.rows) == 0 {
		border(&b, "-")
	}
	return b.String()
}

func (t *table) renderPlain() (string, error) {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(t.headers, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("render plain table: %w", err)
	}
	return buf.String(), nil
}

func (t *table) renderCSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.headers); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}
	if err := w.WriteAll(t.rows); err != nil {
		return "", fmt.Errorf("render csv: %w", err)
	}
	return buf.String(), nil
}

// parseText reads a text table back into its header and cells.
func parseText(text string, format Format) ([]string, [][]string, error) {
	switch format {
	case FormatCSV:
		records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
		if err != nil {
			return nil, nil, fmt.Errorf("parse csv: %w", err)
		}
		if len(records) == 0 {
			return nil, nil, fmt.Errorf("parse csv: missing header")
		}
		return records[0], records[1:], nil

	case FormatPlain:
		var lines [][]string
		for _, line := range strings.Split(text, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				lines = append(lines, plainColumnGap.Split(line, -1))
			}
		}
		if len(lines) == 0 {
			return nil, nil, fmt.Errorf("parse plain table: missing header")
		}
		return lines[0], lines[1:], nil

	case FormatGitHub, FormatPipe, FormatGrid:
		var lines [][]string
		separatorSeen := false
		for _, raw := range strings.Split(text, "\n") {
			line := strings.TrimSpace(raw)
			if !strings.HasPrefix(line, "|") {
				continue // grid borders and blank lines
			}
			if isSeparator(line) {
				separatorSeen = true
				continue
			}
			lines = append(lines, splitPipeRow(line))
		}
		if len(lines) == 0 {
			return nil, nil, fmt.Errorf("parse %s table: missing header", format)
		}
		if format != FormatGrid && !separatorSeen {
			return nil, nil, fmt.Errorf("parse %s table: missing header separator", format)
		}
		return lines[0], lines[1:], nil

	default:
		return nil, nil, fmt.Errorf("format %s is not a text table", format)
	}
}

func isSeparator(line string) bool {
	return strings.Trim(line, "|-: ") == ""
}

// splitPipeRow splits a row on unescaped pipes and unescapes each cell.
func splitPipeRow(line string) []string {
	line = strings.TrimPrefix(line, "|")

	var (
		cells []string
		cell  strings.Builder
	)
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '\\' && i+1 < len(line) && (line[i+1] == '\\' || line[i+1] == '|'):
			i++
			cell.WriteByte(line[i])
		case c == '|':
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
		default:
			cell.WriteByte(c)
		}
	}
	if rest := strings.TrimSpace(cell.String()); rest != "" {
		cells = append(cells, rest)
	}
	return cells
}
