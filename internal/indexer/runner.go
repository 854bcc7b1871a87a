package indexer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"mintindexer/internal/contract"
	"mintindexer/internal/metrics"
	"mintindexer/internal/mint"
	"mintindexer/internal/model"
	"mintindexer/internal/network"
)

const (
	failureKindDecode  = "decode failure"
	failureKindChainID = "chain id mismatch"
)

// RunConfig holds runtime settings for the ingest loop.
type RunConfig struct {
	Network network.Network
	// ChainID, when non-zero, must match the chain_id of every log.
	ChainID    uint64
	Contracts  []common.Address
	StartBlock uint64
	OnError    ErrorPolicy
}

// FailureSink receives one entry per log dropped under PolicySkip.
type FailureSink interface {
	Write(value interface{}) error
}

// Stats summarizes one ingest run.
type Stats struct {
	Total   int
	Minted  int
	Skipped int
	Failed  int
}

// Runner reads raw logs, decodes TokenMinted events and hands them to the mapper.
type Runner struct {
	cfg       RunConfig
	decoder   *contract.Decoder
	mapper    *mint.Mapper
	failures  FailureSink
	metrics   *metrics.Metrics
	logger    *zap.Logger
	contracts map[common.Address]struct{}
}

// NewRunner builds a Runner with its dependencies. failures and m may be nil.
func NewRunner(cfg RunConfig, decoder *contract.Decoder, mapper *mint.Mapper, failures FailureSink, m *metrics.Metrics, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.OnError == "" {
		cfg.OnError = PolicyHalt
	}

	contracts := make(map[common.Address]struct{}, len(cfg.Contracts))
	for _, addr := range cfg.Contracts {
		contracts[addr] = struct{}{}
	}

	return &Runner{
		cfg:       cfg,
		decoder:   decoder,
		mapper:    mapper,
		failures:  failures,
		metrics:   m,
		logger:    logger,
		contracts: contracts,
	}
}

// Run ingests JSONL log records from r in order.
func (r *Runner) Run(ctx context.Context, in io.Reader) (Stats, error) {
	var stats Stats
	if r.decoder == nil {
		return stats, fmt.Errorf("decoder is nil")
	}
	if r.mapper == nil {
		return stats, fmt.Errorf("mapper is nil")
	}

	scanner := bufio.NewScanner(in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Total++

		var record model.LogRecord
		if err := json.Unmarshal(line, &record); err != nil {
			if err := r.fail(&stats, record, failureKindDecode, fmt.Errorf("parse log record: %w", err)); err != nil {
				return stats, err
			}
			continue
		}

		if !r.shouldIndex(record) {
			stats.Skipped++
			r.metrics.ObserveEvent(r.cfg.Network.String(), metrics.StatusSkipped)
			continue
		}

		if err := r.ingest(ctx, record); err != nil {
			if err := r.fail(&stats, record, failureKind(err), err); err != nil {
				return stats, err
			}
			continue
		}
		stats.Minted++
		r.metrics.ObserveEvent(r.cfg.Network.String(), metrics.StatusMinted)
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}
	return stats, nil
}

func (r *Runner) shouldIndex(record model.LogRecord) bool {
	if record.Removed || !r.decoder.CanDecode(record.Topic0()) {
		return false
	}
	if record.BlockNumber < r.cfg.StartBlock {
		return false
	}
	if len(r.contracts) > 0 {
		if !common.IsHexAddress(record.Address) {
			return false
		}
		if _, ok := r.contracts[common.HexToAddress(record.Address)]; !ok {
			return false
		}
	}
	return true
}

func (r *Runner) ingest(ctx context.Context, record model.LogRecord) error {
	if r.cfg.ChainID != 0 && record.ChainID != 0 && record.ChainID != r.cfg.ChainID {
		return &chainIDError{want: r.cfg.ChainID, got: record.ChainID}
	}

	decoded, err := r.decoder.Decode(record)
	if err != nil {
		return &decodeError{err: err}
	}

	start := time.Now()
	_, err = r.mapper.MapAndPersist(ctx, decoded, r.cfg.Network)
	r.metrics.ObserveSave(r.cfg.Network.String(), time.Since(start))
	return err
}

func (r *Runner) fail(stats *Stats, record model.LogRecord, kind string, cause error) error {
	stats.Failed++
	r.metrics.ObserveEvent(r.cfg.Network.String(), metrics.StatusFailed)

	if r.cfg.OnError != PolicySkip {
		return fmt.Errorf("block %d tx %s log %d: %w", record.BlockNumber, record.TxHash, record.LogIndex, cause)
	}

	r.logger.Warn("skip log",
		zap.Error(cause),
		zap.String("kind", kind),
		zap.Uint64("block_number", record.BlockNumber),
		zap.String("tx_hash", record.TxHash),
		zap.Uint64("log_index", record.LogIndex),
	)

	if r.failures == nil {
		return nil
	}
	if err := r.failures.Write(model.IngestError{
		ChainID:     record.ChainID,
		Network:     r.cfg.Network.String(),
		BlockNumber: record.BlockNumber,
		TxHash:      record.TxHash,
		LogIndex:    record.LogIndex,
		Address:     record.Address,
		Topic0:      record.Topic0(),
		Kind:        kind,
		Error:       cause.Error(),
	}); err != nil {
		return fmt.Errorf("write ingest error: %w", err)
	}
	return nil
}

type decodeError struct {
	err error
}

func (e *decodeError) Error() string { return "decode TokenMinted: " + e.err.Error() }
func (e *decodeError) Unwrap() error { return e.err }

type chainIDError struct {
	want uint64
	got  uint64
}

func (e *chainIDError) Error() string {
	return fmt.Sprintf("chain id %d does not match network chain id %d", e.got, e.want)
}

func failureKind(err error) string {
	switch err.(type) {
	case *decodeError:
		return failureKindDecode
	case *chainIDError:
		return failureKindChainID
	}
	if kind := mint.KindOf(err); kind != "" {
		return string(kind)
	}
	return "unknown"
}
