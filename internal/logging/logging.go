// Package logging is a small leveled logger for the streams3d CLI.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var levelTags = map[Level]struct {
	name  string
	style lipgloss.Style
}{
	LevelDebug: {"DEBUG", lipgloss.NewStyle().Foreground(lipgloss.Color("242"))},
	LevelInfo:  {"INFO", lipgloss.NewStyle().Foreground(lipgloss.Color("86"))},
	LevelWarn:  {"WARN", lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)},
	LevelError: {"ERROR", lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)},
}

var (
	currentLevel int32 = int32(LevelInfo)
	colored      atomic.Bool
	baseLogger   = log.New(os.Stderr, "", log.Ltime)
)

// SetLevel parses and sets the global level. Unknown names are rejected and
// leave the level unchanged.
func SetLevel(s string) error {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return fmt.Errorf("unknown log level %q", s)
	}
	atomic.StoreInt32(&currentLevel, int32(l))
	return nil
}

func GetLevel() Level { return Level(atomic.LoadInt32(&currentLevel)) }

// SetColor toggles lipgloss styling of level tags.
func SetColor(on bool) { colored.Store(on) }

// SetOutput redirects log output.
func SetOutput(w io.Writer) { baseLogger.SetOutput(w) }

func logf(l Level, format string, args ...any) {
	if GetLevel() > l {
		return
	}
	tag := levelTags[l].name
	if colored.Load() {
		tag = levelTags[l].style.Render(tag)
	}
	baseLogger.Printf("[%s] %s", tag, fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...any) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...any)  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...any)  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...any) { logf(LevelError, format, a...) }

// TimeTrack logs the time elapsed since start at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start).Round(time.Microsecond))
}
