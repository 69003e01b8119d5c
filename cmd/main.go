// Package main provides the CLI entrypoint for the VeggiePlan service.
// It wires subcommands (serve, analyze), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"veggieplan/internal/analyzer"
	"veggieplan/internal/config"
	"veggieplan/pkg/logger"
	"veggieplan/pkg/textsource"
	"veggieplan/pkg/textsource/remote"
	"veggieplan/pkg/textsource/static"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// getRecognizer builds the text source selected in the configuration.
func getRecognizer(ctx context.Context, cfg *config.Config) textsource.Recognizer {
	if cfg.TextSource.Kind == config.TextSourceRemote {
		logger.Info(ctx, "using remote text source", zap.String("endpoint", cfg.TextSource.Endpoint))

		return remote.New(&http.Client{Timeout: cfg.TextSource.Timeout}, remote.Options{
			Endpoint:      cfg.TextSource.Endpoint,
			Token:         cfg.TextSource.Token,
			Languages:     cfg.TextSource.Languages,
			MaxConcurrent: cfg.TextSource.MaxConcurrent,
		})
	}

	logger.Warn(ctx, "using static text source, recognition results are canned")

	return static.New()
}

// getAnalyzer creates the analyzer backed by the configured text source.
func getAnalyzer(ctx context.Context, cfg *config.Config, mp metric.MeterProvider) analyzer.Analyzer {
	a, err := analyzer.New(getRecognizer(ctx, cfg), mp)
	if err != nil {
		logger.Fatal(ctx, "could not create analyzer", zap.Error(err))
	}

	return a
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "veggieplan",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	configPath := flag.String("c", "config.yml", "The config file path")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	if err := logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal("could not setup logger: ", err)
	}

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		analyzeCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
