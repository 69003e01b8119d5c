// Package analyzer runs label images through text recognition and ingredient
// classification.
package analyzer

import (
	"context"
	"fmt"
	"time"
	"veggieplan/pkg/domain"
	"veggieplan/pkg/ingredient"
	"veggieplan/pkg/logger"
	"veggieplan/pkg/metrics"
	"veggieplan/pkg/textsource"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "veggieplan/internal/analyzer"

// analyzer is the concrete implementation of the Analyzer interface.
type analyzer struct {
	recognizer textsource.Recognizer

	analyses          metric.Int64Counter
	failures          metric.Int64Counter
	recognizeDuration metric.Float64Histogram
}

// Analyze recognizes the text on image and classifies the fragments. Errors
// from the recognizer keep their semantic kind so callers can map them.
func (a *analyzer) Analyze(ctx context.Context, image []byte) (*domain.IngredientAnalysis, error) {
	start := time.Now()
	fragments, err := a.recognizer.Recognize(ctx, image)
	a.recognizeDuration.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		a.failures.Add(ctx, 1)

		return nil, fmt.Errorf("could not recognize text: %w", err)
	}

	res := ingredient.Classify(fragments)
	a.analyses.Add(ctx, 1, metric.WithAttributes(attribute.Bool("vegan", res.IsVegan)))

	logger.Debug(ctx, "label analyzed",
		zap.Int("fragments", len(res.DetectedText)),
		zap.Strings("animalIngredients", res.AnimalIngredients),
		zap.Bool("vegan", res.IsVegan))

	return res, nil
}

// New creates an Analyzer that reads text with recognizer and reports its
// metrics through mp.
func New(recognizer textsource.Recognizer, mp metric.MeterProvider) (Analyzer, error) {
	meter := mp.Meter(meterName)

	analyses, err := meter.Int64Counter("veggieplan.analyses",
		metric.WithDescription("Number of completed label analyses."))
	if err != nil {
		return nil, fmt.Errorf("could not create analyses counter: %w", err)
	}

	failures, err := meter.Int64Counter("veggieplan.recognition.failures",
		metric.WithDescription("Number of failed text recognitions."))
	if err != nil {
		return nil, fmt.Errorf("could not create failures counter: %w", err)
	}

	duration, err := meter.Float64Histogram("veggieplan.recognition.duration",
		metric.WithDescription("Time spent recognizing text on a label."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create recognition histogram: %w", err)
	}

	return &analyzer{
		recognizer:        recognizer,
		analyses:          analyses,
		failures:          failures,
		recognizeDuration: duration,
	}, nil
}
