package model

import "math/big"

// TokenMintedLog is a decoded TokenMinted(address indexed to, uint256 amount) log.
type TokenMintedLog struct {
	BlockNumber     uint64
	TransactionHash string
	LogIndex        uint64
	Address         string
	Block           BlockRef
	// Args is nil when the decoder could not populate the event arguments.
	Args *TokenMintedArgs
}

// BlockRef carries the block fields a handler reads.
type BlockRef struct {
	Hash      string
	Timestamp uint64
}

// TokenMintedArgs are the decoded event arguments.
type TokenMintedArgs struct {
	To     string
	Amount *big.Int
}
