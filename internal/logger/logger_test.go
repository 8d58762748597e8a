package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"github.com/aliskhannn/lingvo-bot/internal/config"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		name      string
		env       string
		level     string
		wantDebug bool
		wantErr   bool
	}{
		{"development defaults to debug", "local", "", true, false},
		{"production defaults to info", "production", "", false, false},
		{"level override", "local", "warn", false, false},
		{"production debug override", "production", "debug", true, false},
		{"invalid level", "local", "loud", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Env: tc.env, LogLevel: tc.level}

			lg, err := New(cfg)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if got := lg.Core().Enabled(zapcore.DebugLevel); got != tc.wantDebug {
				t.Errorf("debug enabled = %v, want %v", got, tc.wantDebug)
			}
		})
	}
}
