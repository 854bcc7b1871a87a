package postgres

import (
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"

	"mintindexer/internal/model"
)

type mintRow struct {
	ID        string
	Network   pgtype.Text
	TokenID   pgtype.Numeric
	Timestamp int64
	From      string
}

func mapMintRowToRecord(row mintRow) (model.MintRecord, error) {
	tokenID, err := bigIntFromNumeric(row.TokenID)
	if err != nil {
		return model.MintRecord{}, fmt.Errorf("token_id of %s: %w", row.ID, err)
	}
	if row.Timestamp < 0 {
		return model.MintRecord{}, fmt.Errorf("negative timestamp for %s", row.ID)
	}
	return model.MintRecord{
		ID:        row.ID,
		Network:   row.Network.String,
		TokenID:   tokenID,
		Timestamp: uint64(row.Timestamp),
		From:      row.From,
	}, nil
}

func numericFromBigInt(v *big.Int) (pgtype.Numeric, error) {
	if v == nil {
		return pgtype.Numeric{}, fmt.Errorf("token id is nil")
	}
	if v.Sign() < 0 {
		return pgtype.Numeric{}, fmt.Errorf("token id is negative: %s", v)
	}
	return pgtype.Numeric{Int: new(big.Int).Set(v), Exp: 0, Valid: true}, nil
}

func bigIntFromNumeric(n pgtype.Numeric) (*big.Int, error) {
	if !n.Valid {
		return nil, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return nil, fmt.Errorf("numeric is not finite")
	}
	if n.Int == nil {
		return new(big.Int), nil
	}

	out := new(big.Int).Set(n.Int)
	switch {
	case n.Exp > 0:
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil)
		out.Mul(out, scale)
	case n.Exp < 0:
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(-n.Exp)), nil)
		quo, rem := new(big.Int).QuoRem(out, scale, new(big.Int))
		if rem.Sign() != 0 {
			return nil, fmt.Errorf("numeric has fractional part")
		}
		out = quo
	}
	return out, nil
}

func nullableText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
