package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const prefix = "[keepnotes] "

// Logger is created once and never reassigned. Initialize, SetVerbose and
// Close only swap its output, which log.Logger synchronizes, so background
// goroutines such as the file watcher may log at any time.
var Logger = log.New(io.Discard, prefix, log.LstdFlags|log.Lshortfile)

var (
	logFile *os.File
	verbose bool
	mu      sync.Mutex
)

// output picks the writer for the current state. Callers hold mu.
func output() io.Writer {
	switch {
	case logFile != nil && verbose:
		return io.MultiWriter(logFile, os.Stderr)
	case logFile != nil:
		return logFile
	case verbose:
		return os.Stderr
	}
	return io.Discard
}

// SetVerbose mirrors log output to stderr.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	Logger.SetOutput(output())
}

// Initialize points the logger at debug.log in logDir. Nothing is written
// before that, so tests and one-shot CLI calls don't litter the working
// directory.
func Initialize(logDir string) error {
	mu.Lock()
	defer mu.Unlock()

	if logDir == "" {
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, "debug.log")

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		Logger.Printf("Failed to open log file at %s: %v", logPath, err)
		return err
	}

	old := logFile
	logFile = f
	Logger.SetOutput(output())
	if old != nil {
		old.Close()
	}

	Logger.Printf("Logger initialized at: %s", logPath)

	return nil
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	f := logFile
	logFile = nil
	Logger.SetOutput(output())
	return f.Close()
}
