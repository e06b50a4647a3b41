package rag

import (
	"context"

	"github.com/oic-analytics/adeidex/internal/domain"
)

// DatasetReader loads observations from the relational store.
type DatasetReader interface {
	Observations(ctx context.Context) ([]domain.Observation, error)
}

// FeedbackWriter appends user feedback to persistent storage.
type FeedbackWriter interface {
	Append(ctx context.Context, fb domain.Feedback) error
}

// AnswerCache caches rendered responses keyed by (query, k).
type AnswerCache interface {
	Get(ctx context.Context, query string, k int) ([]byte, bool)
	Set(ctx context.Context, query string, k int, payload []byte)
}
