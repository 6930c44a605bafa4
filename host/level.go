package host

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// MapLevel maps a guest level string to a zap level. known is false when the
// string is not recognized and Info was substituted.
func MapLevel(level string) (lvl zapcore.Level, fatal bool, known bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug":
		return zapcore.DebugLevel, false, true
	case "info", "log":
		return zapcore.InfoLevel, false, true
	case "warn", "warning":
		return zapcore.WarnLevel, false, true
	case "error":
		return zapcore.ErrorLevel, false, true
	case "fatal", "critical":
		return zapcore.ErrorLevel, true, true
	default:
		return zapcore.InfoLevel, false, false
	}
}
