package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestSpinner_NonTTYPrintsMessageOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Recomputing totals")
	s.SetWriter(buf)

	s.Start()
	s.Stop()

	output := buf.String()
	if output != "Recomputing totals...\n" {
		t.Errorf("non-TTY spinner output = %q", output)
	}
}

func TestSpinner_StartIsIdempotent(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Working")
	s.SetWriter(buf)

	s.Start()
	s.Start()
	s.Stop()

	if got := strings.Count(buf.String(), "Working..."); got != 1 {
		t.Errorf("message printed %d times, want 1", got)
	}
}

func TestSpinner_MultipleStops(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Test")
	s.SetWriter(buf)

	s.Start()

	// Repeated stops must not panic or double-close the done channel.
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Never started")
	s.SetWriter(buf)

	s.Stop()

	if buf.Len() != 0 {
		t.Errorf("stopping an unstarted spinner wrote %q", buf.String())
	}
}

func TestSpinner_StopWithMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	s := NewSpinner("Working")
	s.SetWriter(buf)

	s.Start()
	s.StopWithMessage("Done: 3 totals repaired")

	output := buf.String()
	if !strings.Contains(output, "Done: 3 totals repaired") {
		t.Errorf("StopWithMessage() output = %q", output)
	}
}
