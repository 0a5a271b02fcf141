package models

import (
	"testing"
	"time"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"KSh 129", 129, true},
		{"$129.50", 129.5, true},
		{"KSh 2,340", 2340, true},
		{"1,234.50 KES", 1234.5, true},
		{"234.99", 234.99, true},
		{"€.5", 0.5, true},
		{"-12", -12, true},
		{"", 0, false},
		{"free", 0, false},
		{"KSh", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePrice(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got, ok := ParseDate("2024-11-01")
	if !ok || !got.Equal(time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date only: got %v, %v", got, ok)
	}
	got, ok = ParseDate("2024-11-01T10:30:00+03:00")
	if !ok || got.UTC().Hour() != 7 {
		t.Errorf("rfc3339: got %v, %v", got, ok)
	}
	if _, ok := ParseDate("yesterday"); ok {
		t.Error("expected failure for unparsable date")
	}
	if _, ok := ParseDate("  "); ok {
		t.Error("expected failure for blank date")
	}
}

func TestNewDateRange_endOfDay(t *testing.T) {
	r, err := NewDateRange("2024-11-01", "2024-11-30")
	if err != nil {
		t.Fatal(err)
	}
	late := time.Date(2024, 11, 30, 23, 59, 0, 0, time.UTC)
	if !r.Contains(late) {
		t.Errorf("expected %v within %v..%v", late, r.Start, r.End)
	}
	if r.Contains(time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("next day should be outside the range")
	}
	if !r.Contains(r.Start) {
		t.Error("start bound should be inclusive")
	}
	if _, err := NewDateRange("2024-12-01", "2024-11-01"); err == nil {
		t.Error("expected error for inverted range")
	}
	if _, err := NewDateRange("nope", "2024-11-01"); err == nil {
		t.Error("expected error for invalid start")
	}
}
