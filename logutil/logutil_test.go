package logutil

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// withCapturedLogger swaps L for one writing to a buffer at DebugLevel,
// runs fn, and restores the original L and level afterward.
func withCapturedLogger(t *testing.T, fn func(buf *bytes.Buffer)) {
	t.Helper()
	origL := L
	var buf bytes.Buffer
	L = log.NewWithOptions(&buf, log.Options{ReportTimestamp: false, Level: log.DebugLevel})
	defer func() { L = origL }()
	fn(&buf)
}

func TestCallbackErrorLogsKindAndErr(t *testing.T) {
	withCapturedLogger(t, func(buf *bytes.Buffer) {
		CallbackError("connectedCallback", errors.New("boom"), "element", "x-widget")
		out := buf.String()
		if !strings.Contains(out, "callback error") {
			t.Fatalf("expected output to mention the callback-error message, got %q", out)
		}
		if !strings.Contains(out, "connectedCallback") {
			t.Fatalf("expected output to include kind=connectedCallback, got %q", out)
		}
		if !strings.Contains(out, "boom") {
			t.Fatalf("expected output to include the underlying error, got %q", out)
		}
		if !strings.Contains(out, "x-widget") {
			t.Fatalf("expected output to include caller-supplied fields, got %q", out)
		}
	})
}

func TestDebugfRespectsLevel(t *testing.T) {
	withCapturedLogger(t, func(buf *bytes.Buffer) {
		Debugf("reaction dequeued", "kind", "upgrade")
		if !strings.Contains(buf.String(), "reaction dequeued") {
			t.Fatalf("expected debug line at DebugLevel, got %q", buf.String())
		}
	})

	withCapturedLogger(t, func(buf *bytes.Buffer) {
		L.SetLevel(log.WarnLevel)
		Debugf("reaction dequeued", "kind", "upgrade")
		if buf.Len() != 0 {
			t.Fatalf("expected Debugf to be silent above DebugLevel, got %q", buf.String())
		}
	})
}

func TestDefaultLoggerIsInitialized(t *testing.T) {
	if L == nil {
		t.Fatal("package-level L must be initialized")
	}
	_ = os.Stderr // the zero-value L writes here unless an embedder replaces it
}
