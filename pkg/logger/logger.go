package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled logger shared by the notes service.
// Level is set once at startup via Init (LOG_LEVEL env: debug|info|warn|error|fatal)
// and defaults to info.

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu     sync.RWMutex
	out    *log.Logger = log.New(os.Stdout, "", 0)
	active Level       = LevelInfo
)

// Init sets the global log level. Unknown values fall back to info.
func Init(level string) {
	mu.Lock()
	defer mu.Unlock()
	active = parseLevel(level)
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= active
}

func prefix(tag string) string {
	return fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(tag))
}

func Debugf(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		out.Printf(prefix("debug")+format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		out.Printf(prefix("info")+format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		out.Printf(prefix("warn")+format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if enabled(LevelError) {
		out.Printf(prefix("error")+format, v...)
	}
}

func Fatalf(format string, v ...interface{}) {
	out.Printf(prefix("fatal")+format, v...)
	os.Exit(1)
}

// Single-string convenience variants.
func Debug(msg string) { Debugf("%s", msg) }
func Info(msg string)  { Infof("%s", msg) }
func Warn(msg string)  { Warnf("%s", msg) }
func Error(msg string) { Errorf("%s", msg) }

// LevelString reports the currently active level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch active {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "info"
	}
}
