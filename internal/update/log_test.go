package update

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestEventLogGrammar(t *testing.T) {
	var buf bytes.Buffer
	l := NewEventLog(&buf)
	l.now = func() time.Time {
		return time.Date(2025, 12, 10, 12, 39, 35, 0, time.UTC)
	}

	l.skip("MyTool", SkipAlreadyCurrent, "content fingerprint unchanged")
	l.updated("MyTool", "updated to v1.3.0")
	l.failed("Other App", "download: connection refused")

	want := "2025-12-10T12:39:35Z [SKIP] MyTool: content fingerprint unchanged\n" +
		"2025-12-10T12:39:35Z [UPDATED] MyTool: updated to v1.3.0\n" +
		"2025-12-10T12:39:35Z [FAILED] Other App: download: connection refused\n"
	if buf.String() != want {
		t.Errorf("log output:\n%swant:\n%s", buf.String(), want)
	}
}

func TestEventLogSkipDefaultsToReason(t *testing.T) {
	var buf bytes.Buffer
	l := NewEventLog(&buf)
	l.skip("MyTool", SkipNoUpdateURL, "")
	if !strings.Contains(buf.String(), ": "+string(SkipNoUpdateURL)+"\n") {
		t.Errorf("line = %q, want reason as detail", buf.String())
	}
}

func TestEventLogNilWriter(t *testing.T) {
	l := NewEventLog(nil)
	l.updated("MyTool", "no panic expected")
}
