package mint

import (
	"context"

	"mintindexer/internal/model"
	"mintindexer/internal/network"
)

// HandleMinted indexes a single-chain source; record IDs are the bare
// transaction hash.
func (m *Mapper) HandleMinted(ctx context.Context, log model.TokenMintedLog) error {
	_, err := m.MapAndPersist(ctx, log, network.None)
	return err
}

// HandleMintedMumbai indexes the Mumbai source; record IDs are prefixed with
// "mumbai-".
func (m *Mapper) HandleMintedMumbai(ctx context.Context, log model.TokenMintedLog) error {
	_, err := m.MapAndPersist(ctx, log, network.Mumbai)
	return err
}

// HandleMintedSepolia indexes the Sepolia source; record IDs are prefixed with
// "sepolia-".
func (m *Mapper) HandleMintedSepolia(ctx context.Context, log model.TokenMintedLog) error {
	_, err := m.MapAndPersist(ctx, log, network.Sepolia)
	return err
}
