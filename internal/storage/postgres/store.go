package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mintindexer/internal/model"
)

// Store provides Postgres persistence for mint records. The mints table is
// provisioned outside this package:
//
//	CREATE TABLE mints (
//		id         TEXT PRIMARY KEY,
//		network    TEXT,
//		token_id   NUMERIC(78, 0) NOT NULL,
//		timestamp  BIGINT NOT NULL,
//		"from"     TEXT NOT NULL,
//		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveMint inserts or overwrites the record at its ID.
func (s *Store) SaveMint(ctx context.Context, record model.MintRecord) error {
	if record.ID == "" {
		return fmt.Errorf("mint id required")
	}
	tokenID, err := numericFromBigInt(record.TokenID)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO mints (id, network, token_id, timestamp, "from", created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			network = EXCLUDED.network,
			token_id = EXCLUDED.token_id,
			timestamp = EXCLUDED.timestamp,
			"from" = EXCLUDED."from",
			updated_at = now()
	`,
		record.ID,
		nullableText(record.Network),
		tokenID,
		int64(record.Timestamp),
		record.From,
	)
	return err
}

// GetMint loads the record stored at id.
func (s *Store) GetMint(ctx context.Context, id string) (model.MintRecord, bool, error) {
	row := s.pool.QueryRow(ctx, `SELECT id, network, token_id, timestamp, "from" FROM mints WHERE id=$1`, id)

	var dbRow mintRow
	if err := row.Scan(&dbRow.ID, &dbRow.Network, &dbRow.TokenID, &dbRow.Timestamp, &dbRow.From); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MintRecord{}, false, nil
		}
		return model.MintRecord{}, false, err
	}

	record, err := mapMintRowToRecord(dbRow)
	if err != nil {
		return model.MintRecord{}, false, err
	}
	return record, true, nil
}
