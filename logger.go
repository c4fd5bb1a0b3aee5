package rt

import (
	"log/slog"

	"github.com/vecrt/rt/internal/rtlog"
)

// SetLogger configures the logger used by rt and every sub-package
// (solver, scheduler, shader, dispatch, frame). By default, rt produces
// no log output. Pass nil to restore that default silent behavior.
//
// SetLogger is safe for concurrent use.
//
// Log levels used across the module:
//   - [slog.LevelDebug]: per-surface solver skips, scheduler flush counts.
//   - [slog.LevelInfo]: frame start/end, chosen SIMD width.
//   - [slog.LevelWarn]: arena depth exhaustion, clamped color channels,
//     non-bijective axis maps.
func SetLogger(l *slog.Logger) {
	rtlog.SetLogger(l)
}

// Logger returns the current logger used by rt and its sub-packages.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return rtlog.Logger()
}
