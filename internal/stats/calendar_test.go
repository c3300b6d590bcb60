package stats

import (
	"testing"
	"time"
)

func TestStartOfWeek_Monday(t *testing.T) {
	// 2026-08-26 is a Wednesday.
	got := startOfWeek(time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC))
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("startOfWeek(Wed) = %v, want %v", got, want)
	}
}

func TestStartOfWeek_SundayBelongsToPreviousMonday(t *testing.T) {
	// 2026-08-30 is a Sunday; its week started Monday the 24th.
	got := startOfWeek(time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("startOfWeek(Sun) = %v, want %v", got, want)
	}
}

func TestStartOfWeek_MondayIsItsOwnStart(t *testing.T) {
	got := startOfWeek(time.Date(2026, 8, 24, 23, 59, 0, 0, time.UTC))
	want := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("startOfWeek(Mon) = %v, want %v", got, want)
	}
}

func TestEndOfWeek_Exclusive(t *testing.T) {
	got := endOfWeek(time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC))
	want := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("endOfWeek() = %v, want next Monday %v", got, want)
	}
}

func TestDateRange_Inclusive(t *testing.T) {
	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC)

	days := dateRange(start, end)
	if len(days) != 3 {
		t.Fatalf("dateRange() returned %d days, want 3", len(days))
	}
	if days[0].Format(dayLayout) != "2026-08-24" || days[2].Format(dayLayout) != "2026-08-26" {
		t.Errorf("dateRange() bounds = %v .. %v", days[0], days[2])
	}
}

func TestParseSessionTime_Formats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2026-08-24T10:00:00Z", time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)},
		{"2026-08-24T10:00:00+02:00", time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)},
		{"2026-08-24T10:00:00", time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)},
		{"2026-08-24", time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)},
		{"garbage", time.Time{}},
	}

	for _, tt := range tests {
		if got := parseSessionTime(tt.in); !got.Equal(tt.want) {
			t.Errorf("parseSessionTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLaterDate(t *testing.T) {
	a, b := "2026-08-24T10:00:00Z", "2026-08-25T09:00:00Z"
	if got := laterDate(a, b); got != b {
		t.Errorf("laterDate() = %q, want %q", got, b)
	}
	if got := laterDate(b, a); got != b {
		t.Errorf("laterDate() = %q, want %q", got, b)
	}
}
