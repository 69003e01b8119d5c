package analyzer_test

import (
	"context"
	"errors"
	"testing"

	"veggieplan/internal/analyzer"
	"veggieplan/pkg/serrors"
	"veggieplan/pkg/textsource"
	mocktextsource "veggieplan/pkg/textsource/mock"
	"veggieplan/pkg/textsource/static"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/mock/gomock"
)

func TestAnalyzer_StaticSource(t *testing.T) {
	a, err := analyzer.New(static.New(), noop.NewMeterProvider())
	require.NoError(t, err)

	for _, img := range [][]byte{nil, []byte("anything at all")} {
		res, err := a.Analyze(context.Background(), img)
		require.NoError(t, err)
		require.False(t, res.IsVegan)
		require.Equal(t, []string{"Gelatin"}, res.AnimalIngredients)
		require.Len(t, res.DetectedText, 7)
	}
}

func TestAnalyzer_ClassifiesRecognizedText(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mocktextsource.NewMockRecognizer(ctrl)
	a, err := analyzer.New(rec, noop.NewMeterProvider())
	require.NoError(t, err)

	img := []byte("img")
	rec.EXPECT().Recognize(gomock.Any(), img).Return([]string{"HONEY", "  Whey  ", "Oats"}, nil)

	res, err := a.Analyze(context.Background(), img)
	require.NoError(t, err)
	require.False(t, res.IsVegan)
	require.Equal(t, []string{"HONEY", "  Whey  "}, res.AnimalIngredients)
	require.Equal(t, []string{"HONEY", "  Whey  ", "Oats"}, res.DetectedText)
}

func TestAnalyzer_EmptyRecognition(t *testing.T) {
	ctrl := gomock.NewController(t)
	rec := mocktextsource.NewMockRecognizer(ctrl)
	a, err := analyzer.New(rec, noop.NewMeterProvider())
	require.NoError(t, err)

	rec.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return(nil, nil)

	res, err := a.Analyze(context.Background(), []byte("img"))
	require.NoError(t, err)
	require.True(t, res.IsVegan)
	require.Empty(t, res.AnimalIngredients)
	require.Empty(t, res.DetectedText)
}

func TestAnalyzer_KeepsErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind serrors.Kind
	}{
		{
			name: "image decode",
			err:  serrors.With(textsource.ErrImageDecode, "not an image"),
			kind: textsource.ErrImageDecode,
		},
		{
			name: "recognition failure",
			err:  serrors.Wrap(textsource.ErrRecognitionFailure, errors.New("dial tcp"), "engine down"),
			kind: textsource.ErrRecognitionFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			rec := mocktextsource.NewMockRecognizer(ctrl)
			a, err := analyzer.New(rec, noop.NewMeterProvider())
			require.NoError(t, err)

			rec.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			res, err := a.Analyze(context.Background(), []byte("img"))
			require.Nil(t, res)
			require.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestAnalyzer_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	ctrl := gomock.NewController(t)
	rec := mocktextsource.NewMockRecognizer(ctrl)
	a, err := analyzer.New(rec, mp)
	require.NoError(t, err)

	gomock.InOrder(
		rec.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return([]string{"Sugar"}, nil),
		rec.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return([]string{"Lard"}, nil),
		rec.EXPECT().Recognize(gomock.Any(), gomock.Any()).Return(nil, textsource.ErrRecognitionFailure),
	)
	for range 3 {
		_, _ = a.Analyze(context.Background(), []byte("img"))
	}

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := map[string]metricdata.Metrics{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	analyses, ok := byName["veggieplan.analyses"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, analyses.DataPoints, 2, "one point per vegan attribute value")
	var total int64
	for _, dp := range analyses.DataPoints {
		total += dp.Value
	}
	require.Equal(t, int64(2), total)

	failures, ok := byName["veggieplan.recognition.failures"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, failures.DataPoints, 1)
	require.Equal(t, int64(1), failures.DataPoints[0].Value)

	duration, ok := byName["veggieplan.recognition.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, duration.DataPoints, 1)
	require.Equal(t, uint64(3), duration.DataPoints[0].Count)
}
