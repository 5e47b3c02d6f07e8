package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warning ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"", slog.LevelInfo, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Format: FormatJSON, Output: &buf})
	logger.Info("dropped")
	logger.Warn("kept", "subject", "genetics")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if rec["msg"] != "kept" || rec["subject"] != "genetics" {
		t.Fatalf("record = %v", rec)
	}
}

func TestNew_NilOutputDiscards(t *testing.T) {
	if New(Config{}).Enabled(t.Context(), slog.LevelError) {
		t.Fatal("nil output should discard")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MENTORLY_LOG_LEVEL", "debug")
	t.Setenv("MENTORLY_LOG_FORMAT", "json")
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level != slog.LevelDebug || cfg.Format != FormatJSON {
		t.Fatalf("cfg = %+v", cfg)
	}

	t.Setenv("MENTORLY_LOG_FORMAT", "xml")
	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mentorly.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	New(Config{Level: slog.LevelInfo, Format: FormatText, Output: f}).Info("hello")
	if _, err := OpenFile(filepath.Join(path, "nested")); err == nil {
		t.Fatal("expected error opening under a file")
	}
}
