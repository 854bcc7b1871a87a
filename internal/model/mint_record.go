package model

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// MintRecord is the persisted entity for one observed TokenMinted event.
type MintRecord struct {
	ID        string
	Network   string
	TokenID   *big.Int
	Timestamp uint64
	// From holds the event's `to` argument, the mint recipient.
	From string
}

type mintRecordJSON struct {
	ID        string `json:"id"`
	Network   string `json:"network,omitempty"`
	TokenID   string `json:"token_id"`
	Timestamp uint64 `json:"timestamp"`
	From      string `json:"from"`
}

// MarshalJSON encodes TokenID as a decimal string.
func (m MintRecord) MarshalJSON() ([]byte, error) {
	tokenID := ""
	if m.TokenID != nil {
		tokenID = m.TokenID.String()
	}
	return json.Marshal(mintRecordJSON{
		ID:        m.ID,
		Network:   m.Network,
		TokenID:   tokenID,
		Timestamp: m.Timestamp,
		From:      m.From,
	})
}

// UnmarshalJSON decodes a MintRecord from JSON.
func (m *MintRecord) UnmarshalJSON(data []byte) error {
	var raw mintRecordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var tokenID *big.Int
	if raw.TokenID != "" {
		v, ok := new(big.Int).SetString(raw.TokenID, 10)
		if !ok {
			return fmt.Errorf("invalid token_id: %s", raw.TokenID)
		}
		tokenID = v
	}

	*m = MintRecord{
		ID:        raw.ID,
		Network:   raw.Network,
		TokenID:   tokenID,
		Timestamp: raw.Timestamp,
		From:      raw.From,
	}
	return nil
}
