package config

import "testing"

func TestParseDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GAME_PORT", "")
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	if got := cfg.ListenAddr(); got != ":8081" {
		t.Fatalf("ListenAddr() = %q, want :8081", got)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" || cfg.SendBuffer != 16 {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestPortOverridesGamePort(t *testing.T) {
	t.Setenv("GAME_PORT", "9000")
	t.Setenv("PORT", "8080")
	cfg, err := Parse()
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.ListenAddr(); got != ":8080" {
		t.Fatalf("ListenAddr() = %q, want :8080", got)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"WS_SEND_BUFFER", "0"},
		{"WS_SEND_BUFFER", "lots"},
		{"LOG_FORMAT", "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Parse(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
