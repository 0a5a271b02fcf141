package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseEntityType(t *testing.T) {
	for in, want := range map[string]EntityType{
		"customer": EntityCustomer, "Products": EntityProduct, "sales": EntityOrder, " page ": EntityPage,
	} {
		got, err := ParseEntityType(in)
		if err != nil || got != want {
			t.Errorf("ParseEntityType(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseEntityType("supplier"); !errors.Is(err, ErrUnknownEntityType) {
		t.Errorf("expected ErrUnknownEntityType, got %v", err)
	}
}

func TestProductFields_omitsAbsent(t *testing.T) {
	p := &Product{Name: "Wireless Headphones", SKU: "WH-001", Tags: []string{"audio", "wireless"}}
	keys := map[string]Field{}
	for _, f := range p.Fields() {
		keys[f.Key] = f
	}
	if _, ok := keys["id"]; ok {
		t.Error("zero id should be omitted")
	}
	if _, ok := keys["description"]; ok {
		t.Error("empty description should be omitted")
	}
	if got := keys["tags"].String(); got != "audio,wireless" {
		t.Errorf("tags string form: got %q", got)
	}
}

func TestCapabilities(t *testing.T) {
	o := &Order{ID: "ORD-001", Customer: "Sarah Johnson", CreatedAt: "2024-10-01", Amount: "KSh 234.99"}
	if o.DisplayName() != "Sarah Johnson" || o.DateText() != "2024-10-01" || o.PriceText() != "KSh 234.99" {
		t.Errorf("order capabilities: %q %q %q", o.DisplayName(), o.DateText(), o.PriceText())
	}
	o.Date = "2024-11-01"
	if o.DateText() != "2024-11-01" {
		t.Errorf("date should take precedence over created_at, got %q", o.DateText())
	}
	p := &Product{CategoryName: "Electronics", Category: "1"}
	if cats := p.Categories(); len(cats) != 2 || cats[0] != "Electronics" || cats[1] != "1" {
		t.Errorf("categories: %v", cats)
	}
	c := &Customer{ID: 7, IsActive: true}
	if c.Status() != "Active" {
		t.Errorf("derived status: %q", c.Status())
	}
	if Title(c) != "7" {
		t.Errorf("title should fall back to id, got %q", Title(c))
	}
}

func TestSearchResult_JSON(t *testing.T) {
	in := SearchResult{
		Type:           EntityProduct,
		Item:           &Product{ID: 1, Name: "Wireless Headphones", CategoryName: "Electronics", Price: "KSh 129"},
		RelevanceScore: 10,
		MatchedFields:  []string{"name"},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"title":"Wireless Headphones"`) {
		t.Errorf("encoded result lacks title: %s", data)
	}
	var out SearchResult
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	p, ok := out.Item.(*Product)
	if !ok {
		t.Fatalf("expected *Product, got %T", out.Item)
	}
	if p.Name != "Wireless Headphones" || out.RelevanceScore != 10 {
		t.Errorf("decoded: %+v %+v", out, p)
	}
	if out.Subtitle() != "Electronics • KSh 129" {
		t.Errorf("subtitle: %q", out.Subtitle())
	}
}

func TestDecodeItemsJSON_envelope(t *testing.T) {
	items, err := DecodeItemsJSON(EntityCustomer, []byte(`{"count":1,"results":[{"id":1,"name":"Sarah Johnson"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].DisplayName() != "Sarah Johnson" {
		t.Errorf("items: %+v", items)
	}
	items, err = DecodeItemsJSON(EntityOrder, []byte(`[{"id":"ORD-001","customer":"Sarah"},null]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 {
		t.Errorf("null entries should be dropped, got %d", len(items))
	}
}

func TestSearchFilters_Clone(t *testing.T) {
	f := DefaultFilters()
	f.Categories = []string{"Electronics"}
	f.PriceRange = &PriceRange{Min: 1, Max: 10}
	c := f.Clone()
	c.Categories[0] = "Audio"
	c.PriceRange.Max = 99
	if f.Categories[0] != "Electronics" || f.PriceRange.Max != 10 {
		t.Errorf("clone shares memory with original: %+v", f)
	}
	n := SearchFilters{}.Normalized()
	if n.SortBy != SortByRelevance || n.SortOrder != SortDesc {
		t.Errorf("normalized zero filters: %+v", n)
	}
}
