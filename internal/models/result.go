package models

import (
	"encoding/json"
	"fmt"
)

// SearchResult is one ranked hit. RelevanceScore is always positive in a published list.
type SearchResult struct {
	Type           EntityType `json:"type"`
	Item           Item       `json:"item"`
	RelevanceScore int        `json:"relevance_score"`
	MatchedFields  []string   `json:"matched_fields"`
}

// Title returns the result heading.
func (r SearchResult) Title() string {
	return Title(r.Item)
}

// Subtitle returns a one-line summary that depends on the entity type.
func (r SearchResult) Subtitle() string {
	switch it := r.Item.(type) {
	case *Customer:
		return it.Email
	case *Product:
		return joinNonEmpty(" • ", it.CategoryName, it.Price)
	case *Order:
		return joinNonEmpty(" • ", it.Customer, it.Amount)
	}
	return string(r.Type)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range nonEmpty(parts...) {
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

// MarshalJSON adds the rendered title and subtitle to the encoded result.
func (r SearchResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type           EntityType `json:"type"`
		Title          string     `json:"title"`
		Subtitle       string     `json:"subtitle"`
		Item           Item       `json:"item"`
		RelevanceScore int        `json:"relevance_score"`
		MatchedFields  []string   `json:"matched_fields"`
	}{r.Type, r.Title(), r.Subtitle(), r.Item, r.RelevanceScore, r.MatchedFields})
}

func (r *SearchResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type           EntityType      `json:"type"`
		Item           json.RawMessage `json:"item"`
		RelevanceScore int             `json:"relevance_score"`
		MatchedFields  []string        `json:"matched_fields"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	item, err := NewItem(raw.Type)
	if err != nil {
		return err
	}
	if len(raw.Item) > 0 {
		if err := json.Unmarshal(raw.Item, item); err != nil {
			return fmt.Errorf("decode %s item: %w", raw.Type, err)
		}
	}
	r.Type = raw.Type
	r.Item = item
	r.RelevanceScore = raw.RelevanceScore
	r.MatchedFields = raw.MatchedFields
	return nil
}
