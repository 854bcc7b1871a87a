package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"mintindexer/internal/config"
	"mintindexer/internal/indexer"
	"mintindexer/internal/network"
	"mintindexer/internal/storage"
)

func TestBuildRunConfigNetworkDefaults(t *testing.T) {
	runCfg, err := buildRunConfig(config.Config{}, network.Mumbai, indexer.PolicyHalt)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if runCfg.ChainID != 80001 || runCfg.StartBlock != 45460081 {
		t.Fatalf("defaults mismatch: %+v", runCfg)
	}
	if len(runCfg.Contracts) != 1 || !strings.EqualFold(runCfg.Contracts[0].Hex(), "0x5644AE06901dd1d9cB5082685702B84B0B2d4Da6") {
		t.Fatalf("contract default mismatch: %v", runCfg.Contracts)
	}
}

func TestBuildRunConfigOverrides(t *testing.T) {
	cfg := config.Config{
		Contracts:  []string{"0x2222222222222222222222222222222222222222"},
		StartBlock: 10,
	}
	runCfg, err := buildRunConfig(cfg, network.Mumbai, indexer.PolicySkip)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if runCfg.StartBlock != 10 || runCfg.OnError != indexer.PolicySkip {
		t.Fatalf("overrides mismatch: %+v", runCfg)
	}
	if runCfg.Contracts[0].Hex() != "0x2222222222222222222222222222222222222222" {
		t.Fatalf("contract override mismatch: %v", runCfg.Contracts)
	}
}

func TestBuildRunConfigSingleChain(t *testing.T) {
	runCfg, err := buildRunConfig(config.Config{}, network.None, indexer.PolicyHalt)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if runCfg.ChainID != 0 || runCfg.StartBlock != 0 || len(runCfg.Contracts) != 0 {
		t.Fatalf("single-chain config should carry no defaults: %+v", runCfg)
	}

	if _, err := buildRunConfig(config.Config{Contracts: []string{"nope"}}, network.None, indexer.PolicyHalt); err == nil {
		t.Fatalf("expected error for invalid contract")
	}
}

func TestOpenSink(t *testing.T) {
	sink, closeSink, err := openSink(context.Background(), config.Config{Sink: "memory"})
	if err != nil {
		t.Fatalf("open memory sink: %v", err)
	}
	defer closeSink()
	if _, ok := sink.(*storage.MemoryStorage); !ok {
		t.Fatalf("expected memory sink, got %T", sink)
	}

	if _, _, err := openSink(context.Background(), config.Config{Sink: "kafka"}); err == nil {
		t.Fatalf("expected error for unsupported sink")
	}
	if _, _, err := openSink(context.Background(), config.Config{Sink: "postgres"}); err == nil {
		t.Fatalf("expected error for missing dsn")
	}
}

func TestPrintNetworks(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	if err := printNetworks(cmd); err != nil {
		t.Fatalf("print: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "mumbai\tchain_id=80001") || !strings.HasPrefix(lines[1], "sepolia\tchain_id=11155111") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
