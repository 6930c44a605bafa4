package host

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestMapLevel(t *testing.T) {
	tests := []struct {
		in    string
		want  zapcore.Level
		fatal bool
		known bool
	}{
		{"trace", zapcore.DebugLevel, false, true},
		{"debug", zapcore.DebugLevel, false, true},
		{"info", zapcore.InfoLevel, false, true},
		{"log", zapcore.InfoLevel, false, true},
		{"warn", zapcore.WarnLevel, false, true},
		{" WARNING ", zapcore.WarnLevel, false, true},
		{"error", zapcore.ErrorLevel, false, true},
		{"fatal", zapcore.ErrorLevel, true, true},
		{"Critical", zapcore.ErrorLevel, true, true},
		{"notice", zapcore.InfoLevel, false, false},
		{"", zapcore.InfoLevel, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lvl, fatal, known := MapLevel(tt.in)
			if lvl != tt.want || fatal != tt.fatal || known != tt.known {
				t.Errorf("MapLevel(%q) = (%v, %v, %v), want (%v, %v, %v)",
					tt.in, lvl, fatal, known, tt.want, tt.fatal, tt.known)
			}
		})
	}
}
