package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewSetsLevel(t *testing.T) {
	logger := New(Config{Level: "error", Format: "json"})

	if logger.GetLevel() != zerolog.ErrorLevel {
		t.Fatalf("expected error level, got %v", logger.GetLevel())
	}
}

func TestNewConsoleFormat(t *testing.T) {
	// Console format only swaps the writer; the logger must still be usable.
	logger := New(Config{Level: "debug", Format: "console"})

	if logger.GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", logger.GetLevel())
	}

	logger.Debug().Msg("console smoke test")
}
