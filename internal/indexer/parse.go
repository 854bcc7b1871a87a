package indexer

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseAddresses converts string addresses into common.Address.
func ParseAddresses(inputs []string) ([]common.Address, error) {
	addresses := make([]common.Address, 0, len(inputs))
	for _, input := range inputs {
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !common.IsHexAddress(input) {
			return nil, fmt.Errorf("invalid address: %s", input)
		}
		addresses = append(addresses, common.HexToAddress(input))
	}
	return addresses, nil
}

// ErrorPolicy decides what the ingest loop does with a log it cannot index.
type ErrorPolicy string

const (
	// PolicyHalt stops at the first failing log and returns its error.
	PolicyHalt ErrorPolicy = "halt"
	// PolicySkip records the failure and moves on to the next log.
	PolicySkip ErrorPolicy = "skip"
)

// ParseErrorPolicy accepts "halt" or "skip"; empty means halt.
func ParseErrorPolicy(input string) (ErrorPolicy, error) {
	switch ErrorPolicy(strings.ToLower(strings.TrimSpace(input))) {
	case "", PolicyHalt:
		return PolicyHalt, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("invalid error policy: %s", input)
	}
}
