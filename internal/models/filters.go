package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// SortBy selects the primary ordering of search results.
type SortBy string

const (
	SortByRelevance SortBy = "relevance"
	SortByDate      SortBy = "date"
	SortByName      SortBy = "name"
	SortByPrice     SortBy = "price"
)

// SortOrder selects ascending or descending order.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// DateRange is an inclusive date window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses start and end bounds. A date-only end bound covers that whole day.
func NewDateRange(start, end string) (*DateRange, error) {
	s, ok := ParseDate(start)
	if !ok {
		return nil, fmt.Errorf("invalid start date %q", start)
	}
	e, ok := ParseDate(end)
	if !ok {
		return nil, fmt.Errorf("invalid end date %q", end)
	}
	if isDateOnly(end) {
		e = e.Add(24*time.Hour - time.Nanosecond)
	}
	if e.Before(s) {
		return nil, fmt.Errorf("end date %q is before start date %q", end, start)
	}
	return &DateRange{Start: s, End: e}, nil
}

// Contains reports whether t falls within the range, bounds included.
func (r *DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

type dateRangeJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateRangeJSON{
		Start: r.Start.Format(time.RFC3339Nano),
		End:   r.End.Format(time.RFC3339Nano),
	})
}

func (r *DateRange) UnmarshalJSON(data []byte) error {
	var raw dateRangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewDateRange(raw.Start, raw.End)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// PriceRange is an inclusive price window.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls within the range, bounds included.
func (r *PriceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// SearchFilters is the active filter and sort selection. A nil or empty predicate field is
// inactive. Values are replaced wholesale; use Clone before handing a copy out.
type SearchFilters struct {
	DateRange  *DateRange  `json:"date_range,omitempty"`
	Categories []string    `json:"categories,omitempty"`
	Status     []string    `json:"status,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
	SortBy     SortBy      `json:"sort_by"`
	SortOrder  SortOrder   `json:"sort_order"`
}

// DefaultFilters returns no predicates, sorted by relevance descending.
func DefaultFilters() SearchFilters {
	return SearchFilters{SortBy: SortByRelevance, SortOrder: SortDesc}
}

// Normalized fills an unset sort key or order with the defaults.
func (f SearchFilters) Normalized() SearchFilters {
	if f.SortBy == "" {
		f.SortBy = SortByRelevance
	}
	if f.SortOrder == "" {
		f.SortOrder = SortDesc
	}
	return f
}

// Clone returns a deep copy that shares no memory with f.
func (f SearchFilters) Clone() SearchFilters {
	out := f
	if f.DateRange != nil {
		dr := *f.DateRange
		out.DateRange = &dr
	}
	if f.PriceRange != nil {
		pr := *f.PriceRange
		out.PriceRange = &pr
	}
	out.Categories = slices.Clone(f.Categories)
	out.Status = slices.Clone(f.Status)
	return out
}

// Active reports whether any predicate is configured.
func (f SearchFilters) Active() bool {
	return f.DateRange != nil || len(f.Categories) > 0 || len(f.Status) > 0 || f.PriceRange != nil
}
