package analyzer

import (
	"context"
	"veggieplan/pkg/domain"
)

//go:generate mockgen -package mockanalyzer -source=interface.go -destination=mock/mockanalyzer.go *
type Analyzer interface {
	Analyze(ctx context.Context, image []byte) (*domain.IngredientAnalysis, error)
}
