package model

// IngestError records a log that could not be turned into a MintRecord.
type IngestError struct {
	ChainID     uint64 `json:"chain_id"`
	Network     string `json:"network,omitempty"`
	BlockNumber uint64 `json:"block_number"`
	TxHash      string `json:"tx_hash"`
	LogIndex    uint64 `json:"log_index"`
	Address     string `json:"address"`
	Topic0      string `json:"topic0"`
	Kind        string `json:"kind,omitempty"`
	Error       string `json:"error"`
}
