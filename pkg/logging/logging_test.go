package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetupLoggerLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{3, zerolog.TraceLevel},
		{7, zerolog.TraceLevel},
	}

	for _, tt := range tests {
		SetupLogger(tt.verbosity)
		if got := zerolog.GlobalLevel(); got != tt.want {
			t.Errorf("SetupLogger(%d) level = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}

func TestGetLoggerComponent(t *testing.T) {
	logger := GetLogger("probe")
	// The returned logger must be usable without further setup.
	logger.Debug().Msg("component logger smoke test")
}
