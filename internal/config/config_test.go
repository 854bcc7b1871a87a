package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/pflag"
)

func testFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("ingest", pflag.ContinueOnError)
	flags.String("in", "", "")
	flags.String("network", "", "")
	flags.StringSlice("contract", nil, "")
	flags.Uint64("start-block", 0, "")
	flags.String("sink", "jsonl", "")
	flags.String("on-error", "halt", "")
	return flags
}

func TestLoadFlags(t *testing.T) {

	flags := testFlags()
	if err := flags.Parse([]string{
		"--in", "logs.jsonl",
		"--network", "sepolia",
		"--contract", "0xaaa, 0xbbb",
		"--start-block", "45460081",
		"--sink", "MEMORY",
	}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.In != "logs.jsonl" || cfg.Network != "sepolia" || cfg.StartBlock != 45460081 {
		t.Fatalf("config mismatch: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Contracts, []string{"0xaaa", "0xbbb"}) {
		t.Fatalf("contracts mismatch: %v", cfg.Contracts)
	}
	if cfg.Sink != "memory" {
		t.Fatalf("sink should be normalized: %q", cfg.Sink)
	}
	if cfg.Out != "./data/mints.jsonl" || cfg.OnError != "halt" || cfg.LogLevel != "info" {
		t.Fatalf("defaults mismatch: %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "indexer.yaml")
	content := []byte("network: mumbai\ncontract:\n  - 0x5644AE06901dd1d9cB5082685702B84B0B2d4Da6\non-error: skip\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Network != "mumbai" || cfg.OnError != "skip" {
		t.Fatalf("config mismatch: %+v", cfg)
	}
	if len(cfg.Contracts) != 1 {
		t.Fatalf("contracts mismatch: %v", cfg.Contracts)
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("INDEXER_PG_DSN", "postgres://localhost/mints")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PGDSN != "postgres://localhost/mints" {
		t.Fatalf("pg dsn mismatch: %q", cfg.PGDSN)
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
