package store

import "testing"

func TestTrackingStatus_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	status, err := s.GetTrackingStatus("100")
	if err != nil {
		t.Fatalf("GetTrackingStatus() failed: %v", err)
	}
	if status != "" {
		t.Errorf("GetTrackingStatus() = %q for a game with no row, want empty", status)
	}

	if err := s.UpsertTrackingStatus("100", "pause"); err != nil {
		t.Fatalf("UpsertTrackingStatus() failed: %v", err)
	}
	status, err = s.GetTrackingStatus("100")
	if err != nil {
		t.Fatalf("GetTrackingStatus() failed: %v", err)
	}
	if status != "pause" {
		t.Errorf("GetTrackingStatus() = %q, want pause", status)
	}

	// Upserting again replaces rather than duplicates.
	if err := s.UpsertTrackingStatus("100", "hidden"); err != nil {
		t.Fatalf("UpsertTrackingStatus() failed: %v", err)
	}
	all, err := s.AllTrackingStatuses()
	if err != nil {
		t.Fatalf("AllTrackingStatuses() failed: %v", err)
	}
	if len(all) != 1 || all[0].Status != "hidden" {
		t.Errorf("AllTrackingStatuses() = %+v, want one hidden row", all)
	}

	if err := s.DeleteTrackingStatus("100"); err != nil {
		t.Fatalf("DeleteTrackingStatus() failed: %v", err)
	}
	all, err = s.AllTrackingStatuses()
	if err != nil {
		t.Fatalf("AllTrackingStatuses() failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("AllTrackingStatuses() has %d rows after delete, want 0", len(all))
	}
}

func TestAllTrackingStatuses_JoinsNames(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveGame("100", "Alpha"); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if err := s.UpsertTrackingStatus("100", "ignore"); err != nil {
		t.Fatalf("UpsertTrackingStatus() failed: %v", err)
	}

	all, err := s.AllTrackingStatuses()
	if err != nil {
		t.Fatalf("AllTrackingStatuses() failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("AllTrackingStatuses() returned %d rows, want 1", len(all))
	}
	if all[0].GameName != "Alpha" || all[0].Status != "ignore" {
		t.Errorf("row = %+v", all[0])
	}
}
