package contract

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// TokenMintedSignature is the event the indexer subscribes to.
const TokenMintedSignature = "TokenMinted(address,uint256)"

const mintableABIJSON = `[
  {
    "anonymous": false,
    "inputs": [
      {"indexed": true, "internalType": "address", "name": "to", "type": "address"},
      {"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"}
    ],
    "name": "TokenMinted",
    "type": "event"
  }
]`

var (
	mintableABI     abi.ABI
	mintableABIOnce sync.Once
	mintableABIErr  error
)

// MintableABI returns the parsed ABI of the minting contract.
func MintableABI() (abi.ABI, error) {
	mintableABIOnce.Do(func() {
		mintableABI, mintableABIErr = abi.JSON(strings.NewReader(mintableABIJSON))
	})
	return mintableABI, mintableABIErr
}
