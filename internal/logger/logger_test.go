package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitConsoleOnly(t *testing.T) {
	if err := InitWithFileConfig("debug", FileConfig{}, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	Info("hello")
	Sugar.Debugf("formatted %d", 1)
}

func TestInitWithFile(t *testing.T) {
	tempDir := t.TempDir()
	logFile := filepath.Join(tempDir, "decimate.log")

	cfg := DefaultFileConfig(logFile)
	if err := InitWithFileConfig("info", cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	Info("mesh loaded")
	Warn("decimation stopped short of target")
	Sync()

	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		t.Error("expected log file to be created")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]bool{
		"debug": true,
		"warn":  true,
		"error": true,
		"info":  true,
		"":      true,
	}
	for level := range cases {
		if err := InitWithFileConfig(level, FileConfig{}, false); err != nil {
			t.Errorf("level %q: unexpected error %v", level, err)
		}
	}
}
