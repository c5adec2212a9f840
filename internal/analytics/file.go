package analytics

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-json"

	"github.com/rgehrsitz/zusim/internal/domain"
)

// FileSink appends entries to a JSON Lines file
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink creates a sink writing to path; the file is created on first write
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Path returns the file the sink writes to
func (f *FileSink) Path() string { return f.path }

func (f *FileSink) Record(_ context.Context, entry domain.AnalyticsEntry) error {
	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode analytics entry: %w", err)
	}
	line = append(line, '\n')

	f.mu.Lock()
	defer f.mu.Unlock()

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open analytics file %s: %w", f.path, err)
	}
	defer file.Close()

	if _, err := file.Write(line); err != nil {
		return fmt.Errorf("failed to append to analytics file %s: %w", f.path, err)
	}
	return nil
}

// Entries reads the file back; a file that does not exist yet holds no entries
func (f *FileSink) Entries(_ context.Context) ([]domain.AnalyticsEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := os.Stat(f.path); os.IsNotExist(err) {
		return nil, nil
	}
	return ReadFile(f.path)
}

// ReadFile parses a JSON Lines analytics file. Blank lines are skipped.
func ReadFile(path string) ([]domain.AnalyticsEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read analytics file %s: %w", path, err)
	}

	var entries []domain.AnalyticsEntry
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var entry domain.AnalyticsEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, lineNo, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan analytics file %s: %w", path, err)
	}
	return entries, nil
}
