package storage

import (
	"context"
	"math/big"
	"sync"

	"mintindexer/internal/model"
)

// MemoryStorage keeps mint records in a map keyed by ID.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[string]model.MintRecord
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[string]model.MintRecord)}
}

func (s *MemoryStorage) SaveMint(ctx context.Context, record model.MintRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.TokenID != nil {
		record.TokenID = new(big.Int).Set(record.TokenID)
	}

	s.mu.Lock()
	s.records[record.ID] = record
	s.mu.Unlock()
	return nil
}

// GetMint returns the record stored at id.
func (s *MemoryStorage) GetMint(id string) (model.MintRecord, bool) {
	s.mu.RLock()
	record, ok := s.records[id]
	s.mu.RUnlock()
	return record, ok
}

// Len returns the number of distinct records.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
