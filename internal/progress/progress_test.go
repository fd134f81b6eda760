package progress

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSingleFileRunHasNoBar(t *testing.T) {
	var buf bytes.Buffer
	tracker := newTracker(&buf, "Analyzing...", 1)

	tracker.Tick()
	tracker.FinishSuccess()

	if buf.Len() != 0 {
		t.Errorf("single-file run wrote %q, want no output", buf.String())
	}
}

func TestTickShowsCount(t *testing.T) {
	var buf bytes.Buffer
	tracker := newTracker(&buf, "Analyzing...", 3)

	tracker.Tick()
	tracker.Tick()
	tracker.Tick()
	tracker.FinishSuccess()

	out := buf.String()
	if !strings.Contains(out, "Analyzing...") {
		t.Errorf("output = %q, want the label", out)
	}
	if !strings.Contains(out, "3/3") {
		t.Errorf("output = %q, want the final count", out)
	}
}

func TestFinishError(t *testing.T) {
	var buf bytes.Buffer
	tracker := newTracker(&buf, "Scanning", 2)

	tracker.Tick()
	tracker.FinishError(errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "Scanning failed: boom") {
		t.Errorf("output = %q, want the failure line", out)
	}
}

func TestFinishErrorWithoutBar(t *testing.T) {
	var buf bytes.Buffer
	tracker := newTracker(&buf, "Scanning", 1)

	tracker.FinishError(errors.New("boom"))

	if !strings.Contains(buf.String(), "Scanning failed: boom") {
		t.Errorf("output = %q, want the failure line", buf.String())
	}
}
