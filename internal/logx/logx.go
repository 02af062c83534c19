// Package logx provides timestamped file loggers so batch runs leave an
// inspectable trail without cluttering the terminal.
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// New creates a logger writing to a timestamped file inside dir. The
// returned closer should be closed when logging is no longer needed.
func New(dir, command string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + "-" + command + ".log"
	filePath := filepath.Join(dir, filename)
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	logger := log.New(file, "", log.LstdFlags|log.Lmicroseconds)
	return logger, file, nil
}

// NewGlobal creates a logger under the user-level ~/.themegen/logs
// directory. Errors are returned rather than fatal: callers typically
// degrade to no logging.
func NewGlobal(command string) (*log.Logger, io.Closer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, nil, fmt.Errorf("detect user home: %w", err)
	}
	return New(filepath.Join(home, ".themegen", "logs"), command)
}
