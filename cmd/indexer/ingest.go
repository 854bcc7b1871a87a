package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mintindexer/internal/config"
	"mintindexer/internal/contract"
	"mintindexer/internal/indexer"
	"mintindexer/internal/metrics"
	"mintindexer/internal/mint"
	"mintindexer/internal/network"
	"mintindexer/internal/storage"
	"mintindexer/internal/storage/postgres"
)

func runIngest(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}

	net, err := network.Parse(cfg.Network)
	if err != nil {
		return err
	}
	policy, err := indexer.ParseErrorPolicy(cfg.OnError)
	if err != nil {
		return err
	}

	runCfg, err := buildRunConfig(cfg, net, policy)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, closeSink, err := openSink(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSink()

	var failureSink indexer.FailureSink
	if policy == indexer.PolicySkip {
		if cfg.Errors == "" {
			return fmt.Errorf("errors path is required with --on-error=skip")
		}
		failures := storage.NewAppender(cfg.Errors)
		defer failures.Close()
		failureSink = failures
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if cfg.MetricsAddr != "" {
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Handler(reg)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	input, closeInput, err := openInput(cfg.In)
	if err != nil {
		return err
	}
	defer closeInput()

	decoder, err := contract.NewDecoder()
	if err != nil {
		return err
	}
	mapper := mint.NewMapper(sink, logger)

	runner := indexer.NewRunner(runCfg, decoder, mapper, failureSink, m, logger)

	logger.Info("ingest start",
		zap.String("in", cfg.In),
		zap.String("network", net.String()),
		zap.Uint64("chain_id", runCfg.ChainID),
		zap.Int("contracts", len(runCfg.Contracts)),
		zap.Uint64("start_block", runCfg.StartBlock),
		zap.String("sink", cfg.Sink),
		zap.String("on_error", string(policy)),
		zap.String("topic0", decoder.Topic0()),
	)

	stats, err := runner.Run(ctx, input)
	logger.Info("ingest complete",
		zap.Int("total", stats.Total),
		zap.Int("minted", stats.Minted),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	if err != nil {
		return fmt.Errorf("ingest: %w", err)
	}
	if mem, ok := sink.(*storage.MemoryStorage); ok {
		logger.Info("memory sink", zap.Int("records", mem.Len()))
	}
	return nil
}

func buildRunConfig(cfg config.Config, net network.Network, policy indexer.ErrorPolicy) (indexer.RunConfig, error) {
	runCfg := indexer.RunConfig{
		Network:    net,
		StartBlock: cfg.StartBlock,
		OnError:    policy,
	}

	contracts := cfg.Contracts
	if src, ok := net.Source(); ok {
		runCfg.ChainID = src.ChainID
		if len(contracts) == 0 && src.Contract != "" {
			contracts = []string{src.Contract}
		}
		if runCfg.StartBlock == 0 {
			runCfg.StartBlock = src.StartBlock
		}
	}

	addresses, err := indexer.ParseAddresses(contracts)
	if err != nil {
		return indexer.RunConfig{}, err
	}
	runCfg.Contracts = addresses
	return runCfg, nil
}

func openSink(ctx context.Context, cfg config.Config) (storage.MintSink, func(), error) {
	switch cfg.Sink {
	case "", "jsonl":
		if cfg.Out == "" {
			return nil, nil, fmt.Errorf("output path is required")
		}
		store := storage.NewJsonlStorage(cfg.Out)
		return store, func() { _ = store.Close() }, nil
	case "postgres":
		if cfg.PGDSN == "" {
			return nil, nil, fmt.Errorf("pg dsn is required")
		}
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return store, store.Close, nil
	case "memory":
		return storage.NewMemoryStorage(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported sink: %s", cfg.Sink)
	}
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return file, func() { file.Close() }, nil
}
