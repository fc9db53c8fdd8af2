package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("exbuild", "info", &buf)

	log.Debug("hidden")
	log.Info("shown", "stage", "Building Project")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at info level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "exbuild") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestLevelFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "")
	if got := Level(); got != "warn" {
		t.Errorf("Level() = %q, want warn", got)
	}

	t.Setenv(LevelEnv, "debug")
	if got := Level(); got != "debug" {
		t.Errorf("Level() = %q, want debug", got)
	}

	t.Setenv(LevelEnv, "loud")
	if got := Level(); got != "warn" {
		t.Errorf("Level() with bad value = %q, want warn", got)
	}
}

func TestNewFallsBackToEnv(t *testing.T) {
	t.Setenv(LevelEnv, "error")
	var buf bytes.Buffer
	log := New("exbuild", "", &buf)

	log.Warn("quiet")
	if buf.Len() != 0 {
		t.Errorf("warn logged at error level: %q", buf.String())
	}
	if !log.IsError() {
		t.Error("logger not at error level")
	}
}
