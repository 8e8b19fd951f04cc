package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pefman/alpha-counter/internal/config"
)

func TestJSONLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Config{LogLevel: "warn", LogFormat: "json"}, &buf)
	log.Info().Msg("hidden")
	log.Warn().Str("component", "test").Msg("shown")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "shown" || line["level"] != "warn" || line["component"] != "test" {
		t.Fatalf("line = %v", line)
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Config{LogLevel: "chatty", LogFormat: "json"}, &buf)
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug logged at fallback level: %q", buf.String())
	}
	log.Info().Msg("shown")
	if buf.Len() == 0 {
		t.Fatal("info not logged")
	}
}
