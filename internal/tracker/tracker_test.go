package tracker

import (
	"testing"
	"time"

	"github.com/deckstats/playtime/internal/store"
	"github.com/deckstats/playtime/internal/tracking"
)

func newTestTracker(t *testing.T) *Tracker {
	t.Helper()
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("store.New() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.CreateSchema(); err != nil {
		t.Fatalf("CreateSchema() failed: %v", err)
	}
	return New(s, nil)
}

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return parsed
}

func TestSaveTime_RecordsSessionAndGame(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.SaveTime("100", "Alpha", ts(t, "2026-08-20T10:00:00Z"), 1800, ""); err != nil {
		t.Fatalf("SaveTime() failed: %v", err)
	}

	total, err := tr.Store().OverallTotal("100")
	if err != nil {
		t.Fatalf("OverallTotal() failed: %v", err)
	}
	if total != 1800 {
		t.Errorf("OverallTotal() = %v, want 1800", total)
	}

	name, err := tr.Store().GetGameName("100")
	if err != nil {
		t.Fatalf("GetGameName() failed: %v", err)
	}
	if name != "Alpha" {
		t.Errorf("GetGameName() = %q, want Alpha", name)
	}
}

func TestSaveTime_ValidatesInput(t *testing.T) {
	tr := newTestTracker(t)
	start := ts(t, "2026-08-20T10:00:00Z")

	if err := tr.SaveTime("100", "Alpha", start, 0, ""); err == nil {
		t.Error("SaveTime() accepted a zero duration")
	}
	if err := tr.SaveTime("100", "Alpha", start, -5, ""); err == nil {
		t.Error("SaveTime() accepted a negative duration")
	}
	if err := tr.SaveTime("100", "", start, 60, ""); err == nil {
		t.Error("SaveTime() accepted an empty game name")
	}
	if err := tr.SaveTime("", "Alpha", start, 60, ""); err == nil {
		t.Error("SaveTime() accepted an empty game id")
	}
}

// TestSaveTime_PausedGameSkippedSilently checks the tracking gate: a paused
// game's session is dropped without an error and without touching the log.
func TestSaveTime_PausedGameSkippedSilently(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.SetTrackingStatus("100", tracking.StatusPause); err != nil {
		t.Fatalf("SetTrackingStatus() failed: %v", err)
	}

	if err := tr.SaveTime("100", "Alpha", ts(t, "2026-08-20T10:00:00Z"), 1800, ""); err != nil {
		t.Fatalf("SaveTime() on a paused game returned error: %v", err)
	}

	total, err := tr.Store().OverallTotal("100")
	if err != nil {
		t.Fatalf("OverallTotal() failed: %v", err)
	}
	if total != 0 {
		t.Errorf("paused game accumulated %v seconds, want 0", total)
	}

	sessions, err := tr.Store().AllSessions()
	if err != nil {
		t.Fatalf("AllSessions() failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("paused game recorded %d session(s)", len(sessions))
	}
}

func TestSaveTime_HiddenGameStillTracked(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.SetTrackingStatus("100", tracking.StatusHidden); err != nil {
		t.Fatalf("SetTrackingStatus() failed: %v", err)
	}
	if err := tr.SaveTime("100", "Alpha", ts(t, "2026-08-20T10:00:00Z"), 600, ""); err != nil {
		t.Fatalf("SaveTime() failed: %v", err)
	}

	total, err := tr.Store().OverallTotal("100")
	if err != nil {
		t.Fatalf("OverallTotal() failed: %v", err)
	}
	if total != 600 {
		t.Errorf("hidden game total = %v, want sessions still recorded", total)
	}

	// But it stays out of the overall report.
	entries, err := tr.PerGameOverallStatistic()
	if err != nil {
		t.Fatalf("PerGameOverallStatistic() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("hidden game appears in the overall report: %+v", entries)
	}
}

func TestAddTime_UsesInterval(t *testing.T) {
	tr := newTestTracker(t)

	start := ts(t, "2026-08-20T10:00:00Z")
	end := ts(t, "2026-08-20T10:45:00Z")
	if err := tr.AddTime(start, end, "100", "Alpha"); err != nil {
		t.Fatalf("AddTime() failed: %v", err)
	}

	total, err := tr.Store().OverallTotal("100")
	if err != nil {
		t.Fatalf("OverallTotal() failed: %v", err)
	}
	if total != 2700 {
		t.Errorf("OverallTotal() = %v, want 2700", total)
	}
}

func TestApplyManualTimeForGame(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.SaveTime("100", "Alpha", ts(t, "2026-08-20T10:00:00Z"), 3600, ""); err != nil {
		t.Fatalf("SaveTime() failed: %v", err)
	}
	if err := tr.ApplyManualTimeForGame(ts(t, "2026-08-25T09:00:00Z"), "100", "Alpha", 7600, "manually-changed"); err != nil {
		t.Fatalf("ApplyManualTimeForGame() failed: %v", err)
	}

	total, err := tr.Store().OverallTotal("100")
	if err != nil {
		t.Fatalf("OverallTotal() failed: %v", err)
	}
	if total != 7600 {
		t.Errorf("OverallTotal() = %v, want 7600", total)
	}
}

func TestApplyManualTimeForGame_RequiresName(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.ApplyManualTimeForGame(ts(t, "2026-08-25T09:00:00Z"), "100", "", 100, "x"); err == nil {
		t.Error("ApplyManualTimeForGame() accepted an empty name")
	}
}

func TestCreateAssociation_ViaFacade(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.SaveTime("100", "Alpha", ts(t, "2026-08-20T10:00:00Z"), 600, ""); err != nil {
		t.Fatalf("SaveTime() failed: %v", err)
	}
	if err := tr.SaveTime("200", "Beta", ts(t, "2026-08-20T11:00:00Z"), 300, ""); err != nil {
		t.Fatalf("SaveTime() failed: %v", err)
	}

	if err := tr.CreateAssociation("100", "200"); err != nil {
		t.Fatalf("CreateAssociation() failed: %v", err)
	}

	entries, err := tr.PerGameOverallStatistic()
	if err != nil {
		t.Fatalf("PerGameOverallStatistic() failed: %v", err)
	}
	if len(entries) != 1 || entries[0].TotalTime != 900 {
		t.Errorf("entries = %+v, want one merged entry with 900s", entries)
	}

	if err := tr.RemoveAssociation("200"); err != nil {
		t.Fatalf("RemoveAssociation() failed: %v", err)
	}
	entries, err = tr.PerGameOverallStatistic()
	if err != nil {
		t.Fatalf("PerGameOverallStatistic() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("after unlinking got %d entries, want 2", len(entries))
	}
}

func TestGetBulkVisibility(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.SetTrackingStatus("200", tracking.StatusIgnore); err != nil {
		t.Fatalf("SetTrackingStatus() failed: %v", err)
	}

	vis, err := tr.GetBulkVisibility([]string{"100", "200"})
	if err != nil {
		t.Fatalf("GetBulkVisibility() failed: %v", err)
	}
	if !vis["100"] || vis["200"] {
		t.Errorf("visibility = %v", vis)
	}
}

func TestFetchOverallPlaytime_RawRows(t *testing.T) {
	tr := newTestTracker(t)

	if err := tr.SaveTime("100", "Alpha", ts(t, "2026-08-20T10:00:00Z"), 1800, ""); err != nil {
		t.Fatalf("SaveTime() failed: %v", err)
	}
	if err := tr.SaveTime("200", "Beta", ts(t, "2026-08-20T11:00:00Z"), 600, ""); err != nil {
		t.Fatalf("SaveTime() failed: %v", err)
	}

	rows, err := tr.FetchOverallPlaytime()
	if err != nil {
		t.Fatalf("FetchOverallPlaytime() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].GameID != "100" || rows[0].Seconds != 1800 {
		t.Errorf("rows[0] = %+v", rows[0])
	}
}
