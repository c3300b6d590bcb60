package output

import (
	"strings"
	"testing"

	"github.com/deckstats/playtime/internal/stats"
	"github.com/deckstats/playtime/internal/store"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m 0s"},
		{90, "1m 30s"},
		{3600, "1h 0m"},
		{5400, "1h 30m"},
		{360000, "100h 0m"},
		{-90, "-1m 30s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 12, "short"},
		{"exactly12chr", 12, "exactly12chr"},
		{"a much longer string", 12, "a much lo..."},
		{"abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}

func TestFormatSessionDate(t *testing.T) {
	if got := formatSessionDate(""); got != "never" {
		t.Errorf("formatSessionDate(\"\") = %q, want never", got)
	}
	if got := formatSessionDate("2026-08-20T10:30:00Z"); got != "2026-08-20 10:30" {
		t.Errorf("formatSessionDate() = %q", got)
	}
	// Unparseable input passes through untouched.
	if got := formatSessionDate("whenever"); got != "whenever" {
		t.Errorf("formatSessionDate() = %q", got)
	}
}

func TestRenderOverallTable(t *testing.T) {
	if got := RenderOverallTable(nil); !strings.Contains(got, "No playtime") {
		t.Errorf("empty table = %q", got)
	}

	last := store.Session{Date: "2026-08-21T10:00:00Z", Duration: 1800}
	entries := []stats.GamePlaytimeDetails{
		{
			Game:      stats.Game{ID: "100", Name: "Alpha"},
			TotalTime: 5400,
			Sessions: []store.Session{
				last,
				{Date: "2026-08-20T10:00:00Z", Duration: 3600},
			},
			LastSession: &last,
		},
	}

	got := RenderOverallTable(entries)
	for _, want := range []string{"100", "Alpha", "1h 30m", "2026-08-21 10:00"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderOverallTable() missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderRecentTable(t *testing.T) {
	if got := RenderRecentTable(nil); !strings.Contains(got, "No playtime") {
		t.Errorf("empty table = %q", got)
	}

	reports := []stats.GamePlaytimeReport{
		{
			Game:           stats.Game{ID: "100", Name: "Alpha"},
			TotalTime:      900,
			LastPlayedDate: "2026-08-21T10:00:00Z",
			AliasesID:      "200,300",
		},
	}

	got := RenderRecentTable(reports)
	for _, want := range []string{"Alpha", "15m 0s", "200,300"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderRecentTable() missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderDailyReport(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	paged := &stats.PagedDayStatistics{
		Data: []stats.DayStatistics{
			{
				Date: "2026-08-20",
				Games: []stats.GamePlaytimeDetails{
					{
						Game:      stats.Game{ID: "100", Name: "Alpha"},
						TotalTime: 600,
						Sessions:  []store.Session{{Date: "2026-08-20T10:00:00Z", Duration: 600}},
					},
				},
				Total: 600,
			},
			{Date: "2026-08-21"},
		},
		HasPrev: true,
		HasNext: false,
	}

	got := RenderDailyReport(paged)
	for _, want := range []string{"2026-08-20", "10m 0s", "2026-08-21", "no playtime", "older data available"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderDailyReport() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "newer data available") {
		t.Error("RenderDailyReport() shows a next hint without next data")
	}
}

func TestRenderAssociationTable(t *testing.T) {
	if got := RenderAssociationTable(nil); !strings.Contains(got, "No associations") {
		t.Errorf("empty table = %q", got)
	}

	rows := []store.AssociationRow{
		{ParentGameID: "100", ParentGameName: "Alpha", ChildGameID: "200", ChildGameName: "Alpha Shortcut", CreatedAt: "2026-08-20 10:00:00"},
	}
	got := RenderAssociationTable(rows)
	for _, want := range []string{"100", "Alpha Shortcut", "2026-08-20"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderAssociationTable() missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderGamesTable(t *testing.T) {
	if got := RenderGamesTable(nil); !strings.Contains(got, "No games") {
		t.Errorf("empty table = %q", got)
	}

	entries := []store.GameDictEntry{
		{
			ID: "100", Name: "Alpha", Seconds: 1800,
			Checksums: []store.ChecksumRow{
				{GameID: "100", Checksum: "9f2c41aa", Algorithm: "sha256"},
			},
		},
		{ID: "200", Name: "Beta"},
	}

	got := RenderGamesTable(entries)
	for _, want := range []string{"Alpha", "30m 0s", "sha256", "9f2c41aa", "Beta", "0s"} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderGamesTable() missing %q in:\n%s", want, got)
		}
	}
}

func TestRenderChecksumTable_UnknownName(t *testing.T) {
	rows := []store.ChecksumRow{
		{GameID: "100", Checksum: "9f2c41aa", Algorithm: "sha256"},
	}
	got := RenderChecksumTable(rows)
	if !strings.Contains(got, "[Unknown]") {
		t.Errorf("RenderChecksumTable() should fill unknown names:\n%s", got)
	}
	if !strings.Contains(got, "9f2c41aa") {
		t.Errorf("RenderChecksumTable() missing checksum:\n%s", got)
	}
}

func TestRenderTrackingTable(t *testing.T) {
	if got := RenderTrackingTable(nil); !strings.Contains(got, "default tracking status") {
		t.Errorf("empty table = %q", got)
	}

	rows := []store.TrackingRow{
		{GameID: "100", GameName: "Alpha", Status: "pause"},
	}
	got := RenderTrackingTable(rows)
	if !strings.Contains(got, "pause") || !strings.Contains(got, "Alpha") {
		t.Errorf("RenderTrackingTable() output:\n%s", got)
	}
}
