package logging

import (
	"bytes"
	"os"
	"strings"
	"sync/atomic"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	saved := GetLevel()
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		atomic.StoreInt32(&currentLevel, int32(saved))
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	if err := SetLevel("warn"); err != nil {
		t.Fatal(err)
	}

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %s", out)
	}
	if !strings.Contains(out, "[WARN] shown 2") {
		t.Errorf("missing warn message: %s", out)
	}
}

func TestPercentVerb(t *testing.T) {
	buf := capture(t)
	SetLevel("debug")

	Debugf("grew markers by %d%% this frame", 150)
	if !strings.Contains(buf.String(), "[DEBUG] grew markers by 150% this frame") {
		t.Errorf("message mangled: %s", buf.String())
	}
}

func TestSetLevel_Unknown(t *testing.T) {
	capture(t)
	SetLevel("error")
	if err := SetLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
	if GetLevel() != LevelError {
		t.Errorf("level changed on bad input: %v", GetLevel())
	}
}
