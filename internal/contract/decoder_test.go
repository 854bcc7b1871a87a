package contract

import (
	"math/big"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"mintindexer/internal/model"
)

func TestTokenMintedTopic0(t *testing.T) {
	decoder, err := NewDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	want := strings.ToLower(crypto.Keccak256Hash([]byte(TokenMintedSignature)).Hex())
	if decoder.Topic0() != want {
		t.Fatalf("topic0 mismatch: %s != %s", decoder.Topic0(), want)
	}
	if !decoder.CanDecode("0x" + strings.ToUpper(want[2:])) {
		t.Fatalf("topic0 match should be case-insensitive")
	}
	if decoder.CanDecode("") || decoder.CanDecode("0x1234") {
		t.Fatalf("unexpected topic0 match")
	}
}

func TestDecodeTokenMinted(t *testing.T) {
	decoder, err := NewDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}

	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	amount := new(big.Int).Lsh(big.NewInt(1), 200)
	record := buildMintLogRecord(t, decoder, to, amount)

	decoded, err := decoder.Decode(record)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if decoded.Args == nil {
		t.Fatalf("args missing")
	}
	if decoded.Args.To != to.Hex() {
		t.Fatalf("to mismatch: %s", decoded.Args.To)
	}
	if decoded.Args.Amount.Cmp(amount) != 0 {
		t.Fatalf("amount mismatch: %s", decoded.Args.Amount)
	}
	if decoded.BlockNumber != 45460100 || decoded.TransactionHash != "0xdeadbeef" {
		t.Fatalf("log fields mismatch: %+v", decoded)
	}
	if decoded.Block.Timestamp != 1700000000 || decoded.Block.Hash != "0xabc" {
		t.Fatalf("block fields mismatch: %+v", decoded.Block)
	}
}

func TestDecodeTokenMintedErrors(t *testing.T) {
	decoder, err := NewDecoder()
	if err != nil {
		t.Fatalf("decoder: %v", err)
	}
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")

	missingTopic := buildMintLogRecord(t, decoder, to, big.NewInt(1))
	missingTopic.Topics = missingTopic.Topics[:1]
	if _, err := decoder.Decode(missingTopic); err == nil {
		t.Fatalf("expected error for missing indexed topic")
	}

	badData := buildMintLogRecord(t, decoder, to, big.NewInt(1))
	badData.Data = "0x"
	if _, err := decoder.Decode(badData); err == nil {
		t.Fatalf("expected error for empty data")
	}

	otherEvent := buildMintLogRecord(t, decoder, to, big.NewInt(1))
	otherEvent.Topics[0] = common.HexToHash("0x01").Hex()
	if _, err := decoder.Decode(otherEvent); err == nil {
		t.Fatalf("expected error for unsupported topic0")
	}
}

func buildMintLogRecord(t *testing.T, decoder *Decoder, to common.Address, amount *big.Int) model.LogRecord {
	t.Helper()

	data, err := decoder.event.Inputs.NonIndexed().Pack(amount)
	if err != nil {
		t.Fatalf("pack TokenMinted: %v", err)
	}

	return model.LogRecord{
		ChainID:     11155111,
		BlockNumber: 45460100,
		BlockHash:   "0xabc",
		TxHash:      "0xdeadbeef",
		LogIndex:    3,
		Address:     "0x5644AE06901dd1d9cB5082685702B84B0B2d4Da6",
		Topics: []string{
			decoder.event.ID.Hex(),
			common.BytesToHash(to.Bytes()).Hex(),
		},
		Data:      hexutil.Encode(data),
		Timestamp: 1700000000,
	}
}
