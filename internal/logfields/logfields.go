package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBatchID    = "batch_id"
	KeyPath       = "path"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyDocuments  = "documents"
	KeyWave       = "wave"
	KeyWaveSize   = "wave_size"
	KeyFailed     = "failed"
	KeySkipped    = "skipped"
	KeyField      = "field"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BatchID(id string) slog.Attr     { return slog.String(KeyBatchID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Documents(n int) slog.Attr       { return slog.Int(KeyDocuments, n) }
func Wave(n int) slog.Attr            { return slog.Int(KeyWave, n) }
func WaveSize(n int) slog.Attr        { return slog.Int(KeyWaveSize, n) }
func Failed(n int) slog.Attr          { return slog.Int(KeyFailed, n) }
func Skipped(n int) slog.Attr         { return slog.Int(KeySkipped, n) }
func Field(f string) slog.Attr        { return slog.String(KeyField, f) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
