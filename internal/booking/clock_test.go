package booking

import (
	"encoding/json"
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
		wantErr bool
	}{
		{"08:00", 480, false},
		{"13:30", 810, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"8am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got.Minutes != tt.minutes {
			t.Errorf("ParseClock(%q) = %d minutes, want %d", tt.in, got.Minutes, tt.minutes)
		}
		if got.String() != tt.in {
			t.Errorf("ParseClock(%q).String() = %q", tt.in, got.String())
		}
	}
}

func TestClockAdd(t *testing.T) {
	start, _ := ParseClock("09:15")
	if got := start.Add(30).String(); got != "09:45" {
		t.Errorf("09:15 + 30m = %s, want 09:45", got)
	}
	if got := start.Add(60).String(); got != "10:15" {
		t.Errorf("09:15 + 60m = %s, want 10:15", got)
	}
}

func TestDateAddDays(t *testing.T) {
	d, err := ParseDate("2024-12-30")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := d.AddDays(3).String(); got != "2025-01-02" {
		t.Errorf("AddDays(3) = %s, want 2025-01-02", got)
	}
}

func TestClockJSONRoundTrip(t *testing.T) {
	type payload struct {
		Date Date      `json:"date"`
		Time ClockTime `json:"time"`
	}

	in := []byte(`{"date":"2025-03-01","time":"14:30"}`)
	var p payload
	if err := json.Unmarshal(in, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Date.String() != "2025-03-01" || p.Time.String() != "14:30" {
		t.Fatalf("unexpected parse result: %s %s", p.Date, p.Time)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"date":"2025-03-01","time":"14:30"}` {
		t.Fatalf("unexpected marshal result: %s", out)
	}
}
