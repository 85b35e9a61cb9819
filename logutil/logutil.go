// Package logutil is the ambient logging sink for the core. Per the
// [CEReactions]/event/observer callback contract, callback errors are
// caught here and logged, never propagated to the caller that triggered
// the callback — this package is where that "caught and logged" half of
// the contract lives.
package logutil

import (
	"os"

	"github.com/charmbracelet/log"
)

// L is the shared structured logger. Replaceable by an embedder that
// wants its own sink (tests redirect it to a buffer).
var L = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Level:           log.WarnLevel,
})

// CallbackError logs an error raised by a host-provided callback
// (custom-element lifecycle, event listener, mutation observer delivery)
// that must not propagate to the mutating caller.
func CallbackError(kind string, err error, fields ...any) {
	args := append([]any{"kind", kind, "err", err}, fields...)
	L.Error("callback error", args...)
}

// Debugf logs a low-volume structured trace line (its only callers are
// the ceactions scope push/pop). Silent unless the embedder raises the
// logger's level.
func Debugf(msg string, fields ...any) {
	L.Debug(msg, fields...)
}
