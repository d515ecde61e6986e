// Package logger is the process-wide printf-style logging facade.
//
// Messages carry a bracketed module prefix by convention, e.g.
// logger.Info("[MCP] serving %d tools", n). Output never goes to stdout:
// the stdio transport owns it.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu   sync.Mutex
	std  = newStd()
	sink io.Closer
)

func newStd() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return l
}

// InitLog configures the global logger. An empty path keeps stderr; a
// non-empty path is created (with parent directories) and appended to.
func InitLog(path, level, format string) error {
	mu.Lock()
	defer mu.Unlock()

	lvl := logrus.InfoLevel
	if level != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}
	std.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", FormatText:
		std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	case FormatJSON:
		std.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q, must be %q or %q", format, FormatText, FormatJSON)
	}

	if path == "" {
		std.SetOutput(os.Stderr)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file %q: %w", path, err)
	}
	if sink != nil {
		_ = sink.Close()
	}
	sink = f
	std.SetOutput(f)
	return nil
}

// FlushLog closes the file sink, if any, and reverts to stderr.
func FlushLog() {
	mu.Lock()
	defer mu.Unlock()
	if sink != nil {
		_ = sink.Close()
		sink = nil
	}
	std.SetOutput(os.Stderr)
}

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	std.SetOutput(w)
}

func Debug(format string, args ...interface{}) { std.Debugf(format, args...) }
func Info(format string, args ...interface{})  { std.Infof(format, args...) }
func Warn(format string, args ...interface{})  { std.Warnf(format, args...) }
func Error(format string, args ...interface{}) { std.Errorf(format, args...) }
