package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"mintindexer/internal/model"
)

// JsonlStorage appends mint records to a JSONL journal. Replaying the journal
// with LoadMints gives last-write-wins per ID.
type JsonlStorage struct {
	journal *Appender
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{journal: NewAppender(path)}
}

// SaveMint appends one record and flushes it before returning.
func (s *JsonlStorage) SaveMint(ctx context.Context, record model.MintRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.journal.Write(record); err != nil {
		return fmt.Errorf("save mint %s: %w", record.ID, err)
	}
	return nil
}

// Close flushes and closes the journal file.
func (s *JsonlStorage) Close() error {
	return s.journal.Close()
}

// LoadMints replays a journal into a map keyed by record ID.
func LoadMints(path string) (map[string]model.MintRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	out := make(map[string]model.MintRecord)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var record model.MintRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return nil, fmt.Errorf("parse mint record: %w", err)
		}
		out[record.ID] = record
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan journal: %w", err)
	}
	return out, nil
}
