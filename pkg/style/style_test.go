package style

import (
	"strings"
	"testing"
)

func TestRenderWithoutTerminal(t *testing.T) {
	// Test binaries never run with a tty on stderr, so rendering must pass
	// text through unchanged.
	if got := Error("boom"); got != "boom" {
		t.Errorf("Error() = %q, want plain text without a terminal", got)
	}
	if got := Warning("careful"); got != "careful" {
		t.Errorf("Warning() = %q, want plain text without a terminal", got)
	}
}

func TestBadgeContainsStatus(t *testing.T) {
	for _, status := range []Status{StatusSuccess, StatusSkipped, StatusPreview, StatusError} {
		badge := Badge(status)
		if !strings.Contains(badge, string(status)) {
			t.Errorf("Badge(%s) = %q, should contain the status name", status, badge)
		}
	}
}
