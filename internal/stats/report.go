package stats

import (
	"context"

	"github.com/verte-zerg/tuiquiz/internal/model"
	"github.com/verte-zerg/tuiquiz/internal/store"
)

// Report contains precomputed data for stats rendering.
type Report struct {
	Attempts  []model.Attempt
	Aggregate model.AttemptAggregate
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	attempts, err := st.ListAttempts(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	agg, err := st.AggregateAttempts(ctx, cfg.Bank)
	if err != nil {
		return Report{}, err
	}
	return Report{Attempts: attempts, Aggregate: agg}, nil
}
