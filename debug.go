package stripehelper

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DebugLogger provides debug logging for export runs. When enabled, it logs
// list-endpoint pagination, enrichment SQL, and per-stage timings.
type DebugLogger struct {
	mu      sync.Mutex
	enabled bool
	writer  io.Writer
}

// NewDebugLogger creates a new debug logger.
// If logPath is empty, logs to stderr.
func NewDebugLogger(enabled bool, logPath string) (*DebugLogger, error) {
	var writer io.Writer = os.Stderr

	if enabled && logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open debug log: %w", err)
		}
		writer = f
	}

	return &DebugLogger{
		enabled: enabled,
		writer:  writer,
	}, nil
}

// Close closes the debug logger if it's writing to a file.
func (l *DebugLogger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if closer, ok := l.writer.(io.Closer); ok && l.writer != os.Stderr {
		return closer.Close()
	}
	return nil
}

// Log writes a debug message if logging is enabled.
func (l *DebugLogger) Log(format string, args ...any) {
	if l == nil || !l.enabled {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(l.writer, "[%s] [STRIPEHELPER DEBUG] %s\n", timestamp, msg)
}

// LogFetch logs cumulative fetch progress from the list endpoint.
func (l *DebugLogger) LogFetch(plan string, fetched int, truncated bool) {
	if l == nil || !l.enabled {
		return
	}
	if truncated {
		l.Log("FETCH [%s]: %d records (truncated at cap)", plan, fetched)
		return
	}
	l.Log("FETCH [%s]: %d records", plan, fetched)
}

// LogQuery logs an enrichment store query.
func (l *DebugLogger) LogQuery(driver string, keys int) {
	if l == nil || !l.enabled {
		return
	}
	l.Log("QUERY [%s]: lookup for %d subscription ids", driver, keys)
}

// LogStage logs a completed pipeline stage with its duration.
func (l *DebugLogger) LogStage(stage string, d time.Duration) {
	if l == nil || !l.enabled {
		return
	}
	l.Log("STAGE [%s]: %s", stage, d.Round(time.Millisecond))
}

// LogError logs an error with full details.
func (l *DebugLogger) LogError(operation string, err error) {
	if l == nil || !l.enabled {
		return
	}
	l.Log("ERROR [%s]: %v", operation, err)
}
