package mint

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"mintindexer/internal/model"
	"mintindexer/internal/network"
	"mintindexer/internal/storage"
)

// Mapper turns decoded TokenMinted logs into mint records and saves them.
// It holds no per-event state and is safe for concurrent use if its sink is.
type Mapper struct {
	sink   storage.MintSink
	logger *zap.Logger
}

func NewMapper(sink storage.MintSink, logger *zap.Logger) *Mapper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mapper{sink: sink, logger: logger}
}

// MapAndPersist builds the record for log and saves it through the sink.
// Nothing is written unless every field validates.
func (m *Mapper) MapAndPersist(ctx context.Context, log model.TokenMintedLog, net network.Network) (model.MintRecord, error) {
	m.logger.Info("new token minted transaction log", zap.Uint64("block_number", log.BlockNumber))

	record, err := BuildRecord(log, net)
	if err != nil {
		return model.MintRecord{}, err
	}

	if err := m.sink.SaveMint(ctx, record); err != nil {
		return model.MintRecord{}, &Error{Kind: PersistenceFailure, Err: err}
	}
	return record, nil
}

// BuildRecord derives the mint record for log without persisting it.
func BuildRecord(log model.TokenMintedLog, net network.Network) (model.MintRecord, error) {
	if net != network.None && !net.IsSupported() {
		return model.MintRecord{}, &Error{Kind: ValidationFailure, Field: "network", Err: fmt.Errorf("%w: %s", ErrUnsupportedNetwork, net)}
	}
	if log.TransactionHash == "" {
		return model.MintRecord{}, &Error{Kind: ValidationFailure, Field: "transactionHash", Err: ErrTransactionHashMissing}
	}

	tokenID, err := tokenIDFromArgs(log.Args)
	if err != nil {
		return model.MintRecord{}, err
	}

	record := model.MintRecord{
		ID:        RecordID(net, log.TransactionHash),
		Network:   net.String(),
		TokenID:   tokenID,
		Timestamp: log.Block.Timestamp,
		From:      log.Args.To,
	}
	if record.From == "" {
		return model.MintRecord{}, &Error{Kind: ValidationFailure, Field: "from", Err: ErrAccountNotDefined}
	}
	return record, nil
}

// RecordID is "{network}-{txHash}", or txHash alone when no network is given.
// Transaction hashes only repeat across chains, so the prefix keeps IDs unique.
func RecordID(net network.Network, txHash string) string {
	if net == network.None {
		return txHash
	}
	return net.String() + "-" + txHash
}

func tokenIDFromArgs(args *model.TokenMintedArgs) (*big.Int, error) {
	if args == nil {
		return nil, &Error{Kind: ConversionFailure, Field: "args", Err: ErrArgsMissing}
	}
	if args.Amount == nil {
		return nil, &Error{Kind: ConversionFailure, Field: "amount", Err: ErrAmountMissing}
	}
	if args.Amount.Sign() < 0 {
		return nil, &Error{Kind: ConversionFailure, Field: "amount", Err: fmt.Errorf("%w: %s", ErrAmountNegative, args.Amount)}
	}
	return new(big.Int).Set(args.Amount), nil
}
