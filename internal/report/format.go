// Package report renders benchmark results as tables and reads them back.
package report

import (
	"fmt"
	"strings"
)

// Format selects the table layout.
type Format string

const (
	FormatGitHub Format = "github"
	FormatPipe   Format = "pipe"
	FormatGrid   Format = "grid"
	FormatPlain  Format = "plain"
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatGitHub, FormatPipe, FormatGrid, FormatPlain, FormatCSV, FormatJSON}
}

// ParseFormat converts user input into a Format. Empty means github.
func ParseFormat(s string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(s)))
	if normalized == "" {
		return FormatGitHub, nil
	}

	for _, f := range Formats() {
		if f == normalized {
			return f, nil
		}
	}

	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unknown table format %q (want one of %s)", s, strings.Join(names, ", "))
}
