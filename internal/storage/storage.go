package storage

import (
	"context"

	"mintindexer/internal/model"
)

// MintSink persists mint records. SaveMint upserts by record ID and returns
// only after the write is acknowledged.
type MintSink interface {
	SaveMint(ctx context.Context, record model.MintRecord) error
}
