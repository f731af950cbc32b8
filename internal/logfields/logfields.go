// Package logfields holds canonical log field name constants to avoid drift
// across packages.
package logfields

import "log/slog"

const (
	KeyRunID      = "run_id"
	KeyCheck      = "check"
	KeyTrigger    = "trigger"
	KeyDurationMS = "duration_ms"
	KeySource     = "source"
	KeyPDF        = "pdf"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Check(name string) slog.Attr     { return slog.String(KeyCheck, name) }
func Trigger(t string) slog.Attr      { return slog.String(KeyTrigger, t) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Source(path string) slog.Attr    { return slog.String(KeySource, path) }
func PDF(path string) slog.Attr       { return slog.String(KeyPDF, path) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
