package contract

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"mintindexer/internal/model"
)

// Decoder decodes TokenMinted logs.
type Decoder struct {
	event  abi.Event
	topic0 string
}

func NewDecoder() (*Decoder, error) {
	parsed, err := MintableABI()
	if err != nil {
		return nil, fmt.Errorf("parse mintable abi: %w", err)
	}
	event, ok := parsed.Events["TokenMinted"]
	if !ok {
		return nil, fmt.Errorf("TokenMinted event missing from abi")
	}
	return &Decoder{
		event:  event,
		topic0: strings.ToLower(event.ID.Hex()),
	}, nil
}

// Topic0 returns the lowercase hex signature hash of TokenMinted.
func (d *Decoder) Topic0() string {
	return d.topic0
}

// CanDecode checks if the topic0 is TokenMinted.
func (d *Decoder) CanDecode(topic0 string) bool {
	return topic0 != "" && strings.ToLower(topic0) == d.topic0
}

// Decode converts a raw LogRecord into a TokenMintedLog.
func (d *Decoder) Decode(log model.LogRecord) (model.TokenMintedLog, error) {
	if !d.CanDecode(log.Topic0()) {
		return model.TokenMintedLog{}, fmt.Errorf("unsupported topic0: %s", log.Topic0())
	}

	indexedTopics, err := parseIndexedTopics(d.event, log.Topics)
	if err != nil {
		return model.TokenMintedLog{}, err
	}

	var indexed struct {
		To common.Address
	}
	if err := abi.ParseTopics(&indexed, indexedArguments(d.event.Inputs), indexedTopics); err != nil {
		return model.TokenMintedLog{}, fmt.Errorf("parse topics: %w", err)
	}

	values, err := unpackNonIndexed(d.event, log.Data)
	if err != nil {
		return model.TokenMintedLog{}, err
	}
	if len(values) != 1 {
		return model.TokenMintedLog{}, fmt.Errorf("unexpected TokenMinted values: %d", len(values))
	}
	amount, err := asBigInt(values[0])
	if err != nil {
		return model.TokenMintedLog{}, err
	}

	return model.TokenMintedLog{
		BlockNumber:     log.BlockNumber,
		TransactionHash: log.TxHash,
		LogIndex:        log.LogIndex,
		Address:         log.Address,
		Block: model.BlockRef{
			Hash:      log.BlockHash,
			Timestamp: log.Timestamp,
		},
		Args: &model.TokenMintedArgs{
			To:     indexed.To.Hex(),
			Amount: amount,
		},
	}, nil
}

func parseIndexedTopics(event abi.Event, topics []string) ([]common.Hash, error) {
	indexedCount := len(indexedArguments(event.Inputs))
	if len(topics) != indexedCount+1 {
		return nil, fmt.Errorf("expected %d topics, got %d", indexedCount+1, len(topics))
	}

	out := make([]common.Hash, 0, indexedCount)
	for _, topic := range topics[1:] {
		data, err := hexutil.Decode(topic)
		if err != nil {
			return nil, fmt.Errorf("invalid topic: %w", err)
		}
		if len(data) > 32 {
			return nil, fmt.Errorf("topic length %d", len(data))
		}
		out = append(out, common.BytesToHash(data))
	}
	return out, nil
}

func indexedArguments(args abi.Arguments) abi.Arguments {
	indexed := make(abi.Arguments, 0, len(args))
	for _, arg := range args {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	return indexed
}

func unpackNonIndexed(event abi.Event, dataHex string) ([]interface{}, error) {
	data, err := hexutil.Decode(dataHex)
	if err != nil {
		return nil, fmt.Errorf("invalid data: %w", err)
	}
	values, err := event.Inputs.NonIndexed().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", event.Name, err)
	}
	return values, nil
}

func asBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case *big.Int:
		return new(big.Int).Set(v), nil
	case big.Int:
		return new(big.Int).Set(&v), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	default:
		return nil, fmt.Errorf("unsupported int type %T", value)
	}
}
