package store_test

import (
	"testing"
	"time"

	"shopfront/internal/store"
)

func TestReviveDates(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		isTime bool
	}{
		{"UTC timestamp", "2026-08-29T10:15:00Z", true},
		{"fractional seconds", "2026-08-29T10:15:00.123Z", true},
		{"zone offset", "2026-08-29T10:15:00+05:00", true},
		{"plain date", "2026-08-29", false},
		{"order ID", "ONL-001", false},
		{"almost a timestamp", "2026-08-29T10:15", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := store.ReviveDates(tt.in)
			_, isTime := out.(time.Time)
			if isTime != tt.isTime {
				t.Errorf("ReviveDates(%q) revived = %v, want %v", tt.in, isTime, tt.isTime)
			}
		})
	}
}

func TestReviveDates_WalksNestedStructures(t *testing.T) {
	in := map[string]any{
		"placed_at": "2026-08-29T10:15:00Z",
		"items": []any{
			map[string]any{"name": "Runner Pro", "created_at": "2026-01-02T03:04:05Z"},
		},
		"total": 2500.0,
	}

	out := store.ReviveDates(in).(map[string]any)
	if _, ok := out["placed_at"].(time.Time); !ok {
		t.Errorf("top-level timestamp not revived: %v", out["placed_at"])
	}
	item := out["items"].([]any)[0].(map[string]any)
	if _, ok := item["created_at"].(time.Time); !ok {
		t.Errorf("nested timestamp not revived: %v", item["created_at"])
	}
	if item["name"] != "Runner Pro" {
		t.Errorf("non-date string changed: %v", item["name"])
	}
	if out["total"] != 2500.0 {
		t.Errorf("number changed: %v", out["total"])
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	type record struct {
		ID       string    `json:"id"`
		PlacedAt time.Time `json:"placed_at"`
	}
	placed := time.Date(2026, 8, 29, 10, 15, 0, 0, time.UTC)

	data, err := store.Encode([]record{{ID: "ONL-001", PlacedAt: placed}})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var out []record
	if err := store.Decode(data, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].ID != "ONL-001" || !out[0].PlacedAt.Equal(placed) {
		t.Errorf("round trip = %+v", out)
	}
}
