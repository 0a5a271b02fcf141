// Package cli renders search results and filtered entity lists for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hyperjump/tafuta/internal/models"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one line per result, suited to grep and fzf.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates s; empty means text.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return OutputText, nil
	case OutputText, OutputCompact, OutputJSON:
		return f, nil
	}
	return "", fmt.Errorf("invalid output format %q (use text, compact or json)", s)
}

// SearchReport is one search invocation as printed by the search command.
type SearchReport struct {
	Query   string                `json:"query"`
	TookMS  int64                 `json:"took_ms"`
	Count   int                   `json:"count"`
	Results []models.SearchResult `json:"results"`
}

// NewSearchReport wraps results for output.
func NewSearchReport(query string, results []models.SearchResult, took time.Duration) *SearchReport {
	return &SearchReport{Query: query, TookMS: took.Milliseconds(), Count: len(results), Results: results}
}

// WriteSearchResults writes report to w in the given format.
func WriteSearchResults(w io.Writer, report *SearchReport, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, report)
	case OutputCompact:
		for _, r := range report.Results {
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", r.Type, r.RelevanceScore, r.Title(), r.Subtitle())
		}
		return nil
	default:
		writeSearchResultsText(w, report)
		return nil
	}
}

func writeSearchResultsText(w io.Writer, report *SearchReport) {
	if report.Count == 0 {
		fmt.Fprintf(w, "\nNo results found for %q\n", report.Query)
		return
	}
	fmt.Fprintf(w, "\nFound %d results for %q in %dms\n\n", report.Count, report.Query, report.TookMS)
	for i, r := range report.Results {
		fmt.Fprintf(w, "─────────────────────────────────────────────────────────\n")
		fmt.Fprintf(w, "%d. [%s] %s  (score %d)\n", i+1, r.Type, r.Title(), r.RelevanceScore)
		if sub := r.Subtitle(); sub != "" && sub != string(r.Type) {
			fmt.Fprintf(w, "   %s\n", Truncate(sub, 120))
		}
		fmt.Fprintf(w, "   matched: %s\n", strings.Join(r.MatchedFields, ", "))
	}
	fmt.Fprintln(w)
}

type itemsReport struct {
	Type  models.EntityType `json:"type"`
	Count int               `json:"count"`
	Items []models.Item     `json:"items"`
}

// WriteItems writes a filtered list of items of type t.
func WriteItems(w io.Writer, t models.EntityType, items []models.Item, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, itemsReport{Type: t, Count: len(items), Items: items})
	case OutputCompact:
		for _, it := range items {
			fmt.Fprintln(w, strings.Join(itemColumns(it), "\t"))
		}
		return nil
	default:
		fmt.Fprintf(w, "\n%d %s records match\n\n", len(items), t)
		for _, it := range items {
			cols := itemColumns(it)
			fmt.Fprintf(w, "  %-10s %-32s", cols[0], Truncate(cols[1], 32))
			for _, c := range cols[2:] {
				if c != "" {
					fmt.Fprintf(w, "  %s", c)
				}
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
		return nil
	}
}

// itemColumns returns id, title, date, price, status and categories.
func itemColumns(it models.Item) []string {
	return []string{
		it.ItemID(),
		models.Title(it),
		it.DateText(),
		it.PriceText(),
		it.Status(),
		strings.Join(it.Categories(), ","),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Truncate truncates s to maxLen runes and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
