package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"mintindexer/internal/network"
)

func main() {
	root := &cobra.Command{
		Use:          "indexer",
		Short:        "TokenMinted event indexer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	ingestCmd := &cobra.Command{
		Use:   "ingest",
		Short: "Index TokenMinted logs from a raw logs JSONL file",
		RunE:  runIngest,
	}

	ingestCmd.Flags().String("in", "", "input raw logs JSONL (- for stdin)")
	ingestCmd.Flags().String("network", "", "network tag (mumbai, sepolia); empty for single-chain ids")
	ingestCmd.Flags().StringSlice("contract", nil, "contract addresses (comma-separated), defaults to the network's contract")
	ingestCmd.Flags().Uint64("start-block", 0, "skip logs below this block, defaults to the network's start block")
	ingestCmd.Flags().String("sink", "jsonl", "record sink (jsonl, postgres, memory)")
	ingestCmd.Flags().String("out", "./data/mints.jsonl", "output mints JSONL path for the jsonl sink")
	ingestCmd.Flags().String("pg-dsn", "", "Postgres DSN for the postgres sink")
	ingestCmd.Flags().String("errors", "./data/ingest_errors.jsonl", "failed logs JSONL when --on-error=skip")
	ingestCmd.Flags().String("on-error", "halt", "what to do with a failing log (halt, skip)")
	ingestCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9102)")
	ingestCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(ingestCmd)

	networksCmd := &cobra.Command{
		Use:   "networks",
		Short: "List supported networks and their defaults",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printNetworks(cmd)
		},
	}

	root.AddCommand(networksCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func printNetworks(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	for _, n := range network.All() {
		src, _ := n.Source()
		contract := src.Contract
		if contract == "" {
			contract = "-"
		}
		if _, err := fmt.Fprintf(out, "%s\tchain_id=%d\tcontract=%s\tstart_block=%d\n", n, src.ChainID, contract, src.StartBlock); err != nil {
			return err
		}
	}
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
