package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// NewItem returns an empty item of the given type, ready for decoding.
func NewItem(t EntityType) (Item, error) {
	switch t {
	case EntityCustomer:
		return &Customer{}, nil
	case EntityProduct:
		return &Product{}, nil
	case EntityOrder:
		return &Order{}, nil
	case EntityPage:
		return &Page{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, t)
}

// DecodeItemsJSON decodes a JSON list of entities of type t. Besides a bare array it accepts
// the paginated envelopes {"results": [...]} and {"data": [...]} returned by the REST API.
func DecodeItemsJSON(t EntityType, data []byte) ([]Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var env struct {
			Results json.RawMessage `json:"results"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, fmt.Errorf("decode %s envelope: %w", t, err)
		}
		switch {
		case len(env.Results) > 0:
			data = env.Results
		case len(env.Data) > 0:
			data = env.Data
		default:
			return nil, nil
		}
	}
	return decodeList(t, func(v any) error { return json.Unmarshal(data, v) })
}

// DecodeItemsYAML decodes a YAML (or JSON) list of entities of type t.
func DecodeItemsYAML(t EntityType, data []byte) ([]Item, error) {
	return decodeList(t, func(v any) error { return yaml.Unmarshal(data, v) })
}

func decodeList(t EntityType, unmarshal func(any) error) ([]Item, error) {
	switch t {
	case EntityCustomer:
		var list []*Customer
		if err := unmarshal(&list); err != nil {
			return nil, fmt.Errorf("decode customers: %w", err)
		}
		return toItems(list), nil
	case EntityProduct:
		var list []*Product
		if err := unmarshal(&list); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
		return toItems(list), nil
	case EntityOrder:
		var list []*Order
		if err := unmarshal(&list); err != nil {
			return nil, fmt.Errorf("decode orders: %w", err)
		}
		return toItems(list), nil
	case EntityPage:
		var list []*Page
		if err := unmarshal(&list); err != nil {
			return nil, fmt.Errorf("decode pages: %w", err)
		}
		return toItems(list), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEntityType, t)
}

// toItems widens a typed entity slice to []Item, dropping nil entries.
func toItems[E any, P interface {
	*E
	Item
}](list []P) []Item {
	out := make([]Item, 0, len(list))
	for _, v := range list {
		if v == nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
