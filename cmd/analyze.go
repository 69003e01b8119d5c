package main

import (
	"context"
	"fmt"
	"os"
	"veggieplan/internal/api/handler/v1handler"
	"veggieplan/internal/config"
	"veggieplan/pkg/logger"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
)

// analyzeCommand constructs the 'analyze' subcommand that runs a local label
// image through the configured text source and prints the analysis as JSON.
func analyzeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyzes a label image file for animal-derived ingredients",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			path, _ := cmd.Flags().GetString("file")

			image, err := os.ReadFile(path)
			if err != nil {
				logger.Fatal(ctx, "could not read image", zap.String("path", path), zap.Error(err))
			}

			res, err := getAnalyzer(ctx, cfg, noop.NewMeterProvider()).Analyze(ctx, image)
			if err != nil {
				logger.Fatal(ctx, "could not analyze image", zap.Error(err))
			}

			var e jx.Encoder
			v1handler.EncodeAnalysis(&e, res)
			fmt.Println(e.String()) //nolint: forbidigo
		},
	}

	cmd.Flags().String("file", "", "Path to the label image")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
