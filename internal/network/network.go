package network

import (
	"fmt"
	"strings"
)

// Network tags the chain a mint was observed on. The zero value means the
// source is single-chain and records carry no network prefix.
type Network string

const (
	None    Network = ""
	Mumbai  Network = "mumbai"
	Sepolia Network = "sepolia"
)

// Source holds the per-network indexing defaults.
type Source struct {
	ChainID    uint64
	Contract   string
	StartBlock uint64
}

var sources = map[Network]Source{
	Mumbai: {
		ChainID:    80001,
		Contract:   "0x5644AE06901dd1d9cB5082685702B84B0B2d4Da6",
		StartBlock: 45460081,
	},
	Sepolia: {
		ChainID: 11155111,
	},
}

// Parse converts a user-supplied tag into a Network. An empty input yields None.
func Parse(input string) (Network, error) {
	n := Network(strings.ToLower(strings.TrimSpace(input)))
	if n == None {
		return None, nil
	}
	if !n.IsSupported() {
		return None, fmt.Errorf("unsupported network: %s", input)
	}
	return n, nil
}

// All returns the supported networks in a stable order.
func All() []Network {
	return []Network{Mumbai, Sepolia}
}

func (n Network) IsSupported() bool {
	_, ok := sources[n]
	return ok
}

// Source returns the defaults for n. ok is false for None and unknown tags.
func (n Network) Source() (Source, bool) {
	src, ok := sources[n]
	return src, ok
}

func (n Network) String() string {
	return string(n)
}
