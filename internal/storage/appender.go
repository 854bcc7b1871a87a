package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Appender writes JSON values as lines to a file opened in append mode.
// The file and its parent directory are created on the first Write, and
// every line is flushed before Write returns.
type Appender struct {
	path string

	mu     sync.Mutex
	file   *os.File
	writer *bufio.Writer
}

func NewAppender(path string) *Appender {
	return &Appender{path: path}
}

func (a *Appender) Path() string {
	return a.path
}

func (a *Appender) Write(value interface{}) error {
	line, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s line: %w", a.path, err)
	}
	line = append(line, '\n')

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		if err := a.openLocked(); err != nil {
			return err
		}
	}
	if _, err := a.writer.Write(line); err != nil {
		return fmt.Errorf("append %s: %w", a.path, err)
	}
	if err := a.writer.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", a.path, err)
	}
	return nil
}

func (a *Appender) openLocked() error {
	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create dir for %s: %w", a.path, err)
		}
	}
	file, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", a.path, err)
	}
	a.file = file
	a.writer = bufio.NewWriter(file)
	return nil
}

// Close flushes and closes the file. A closed Appender reopens on the next
// Write.
func (a *Appender) Close() error {
	if a == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		return nil
	}
	flushErr := a.writer.Flush()
	closeErr := a.file.Close()
	a.file, a.writer = nil, nil
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
