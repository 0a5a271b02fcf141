package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hyperjump/tafuta/internal/models"
)

func sampleReport() *SearchReport {
	return NewSearchReport("sarah", []models.SearchResult{
		{
			Type:           models.EntityCustomer,
			Item:           &models.Customer{ID: 1, Name: "Sarah Johnson", Email: "sarah@example.com"},
			RelevanceScore: 18,
			MatchedFields:  []string{"name", "email"},
		},
		{
			Type:           models.EntityOrder,
			Item:           &models.Order{ID: "ORD-001", Customer: "Sarah Johnson", Amount: "234.99"},
			RelevanceScore: 8,
			MatchedFields:  []string{"customer"},
		},
	}, 42*time.Millisecond)
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleReport(), OutputJSON); err != nil {
		t.Fatalf("WriteSearchResults(json): %v", err)
	}
	var decoded SearchReport
	if err := json.NewDecoder(&buf).Decode(&decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Query != "sarah" || decoded.TookMS != 42 || decoded.Count != 2 {
		t.Errorf("decoded: %+v", decoded)
	}
	o, ok := decoded.Results[1].Item.(*models.Order)
	if !ok || o.ID != "ORD-001" {
		t.Errorf("second result: %+v", decoded.Results[1])
	}
}

func TestWriteSearchResults_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleReport(), OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"Found 2 results",
		"1. [customer] Sarah Johnson  (score 18)",
		"sarah@example.com",
		"Sarah Johnson • 234.99",
		"matched: name, email",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	_ = WriteSearchResults(&buf, NewSearchReport("zzz", nil, 0), OutputText)
	if !strings.Contains(buf.String(), `No results found for "zzz"`) {
		t.Errorf("empty output: %q", buf.String())
	}
}

func TestWriteSearchResults_Compact(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, sampleReport(), OutputCompact); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	if lines[0] != "customer\t18\tSarah Johnson\tsarah@example.com" {
		t.Errorf("first line: %q", lines[0])
	}
}

func TestWriteItems(t *testing.T) {
	items := []models.Item{
		&models.Product{ID: 7, Name: "Desk Lamp", CategoryName: "Home", Price: "45.50", CreatedAt: "2024-03-01"},
	}

	var buf bytes.Buffer
	if err := WriteItems(&buf, models.EntityProduct, items, OutputCompact); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "7\tDesk Lamp\t2024-03-01\t45.50\t\tHome" {
		t.Errorf("compact: %q", got)
	}

	buf.Reset()
	if err := WriteItems(&buf, models.EntityProduct, items, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "1 product records match") || !strings.Contains(buf.String(), "Desk Lamp") {
		t.Errorf("text: %s", buf.String())
	}

	buf.Reset()
	if err := WriteItems(&buf, models.EntityProduct, items, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var out struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil || out.Count != 1 {
		t.Errorf("json: %v %s", err, buf.String())
	}
}

func TestParseOutputFormat(t *testing.T) {
	for in, want := range map[string]OutputFormat{"": OutputText, "JSON": OutputJSON, " compact ": OutputCompact} {
		got, err := ParseOutputFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseOutputFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseOutputFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("héllo world", 5); got != "héllo..." {
		t.Errorf("Truncate: %q", got)
	}
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate: %q", got)
	}
}
