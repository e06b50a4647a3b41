// Package rag implements the question-answering core: a document indexer
// flattening dataset observations into searchable records, and a query
// engine scoring, ranking, and templating answers over them.
package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/oic-analytics/adeidex/internal/domain"
	"github.com/oic-analytics/adeidex/internal/metrics"
)

// Response is one answered question with its supporting documents.
type Response struct {
	Question string        `json:"question"`
	Intent   domain.Intent `json:"intent"`
	Answer   string        `json:"answer"`
	Sources  []SourceDoc   `json:"sources,omitempty"`
}

// SourceDoc is one retrieved document annotated for display.
type SourceDoc struct {
	Text       string  `json:"text"`
	Country    string  `json:"country"`
	Year       int     `json:"year"`
	Score      float64 `json:"adei_score"`
	Similarity float64 `json:"similarity"`
}

// Service owns the in-memory index and serves queries against it. The
// index is built once per dataset load and replaced wholesale on Reload;
// records are never mutated, so concurrent reads only need the lock for
// the slice swap.
type Service struct {
	data     DatasetReader
	feedback FeedbackWriter
	cache    AnswerCache

	defaultK, minK, maxK int

	mu      sync.RWMutex
	records []domain.IndexedRecord

	logger *zap.Logger
}

// New creates a RAG service. feedback and cache may be nil.
func New(data DatasetReader, feedback FeedbackWriter, cache AnswerCache, logger *zap.Logger) *Service {
	return &Service{
		data:     data,
		feedback: feedback,
		cache:    cache,
		defaultK: 5,
		minK:     3,
		maxK:     10,
		logger:   logger,
	}
}

// WithDepth overrides the default/min/max retrieval depth.
func (s *Service) WithDepth(def, min, max int) *Service {
	s.defaultK = def
	s.minK = min
	s.maxK = max
	return s
}

// Reload fetches the dataset and rebuilds the index from scratch.
func (s *Service) Reload(ctx context.Context) error {
	observations, err := s.data.Observations(ctx)
	if err != nil {
		return fmt.Errorf("load observations: %w", err)
	}

	records := BuildIndex(observations)

	s.mu.Lock()
	s.records = records
	s.mu.Unlock()

	metrics.IndexedRecords.Set(float64(len(records)))
	s.logger.Info("index rebuilt",
		zap.Int("observations", len(observations)),
		zap.Int("records", len(records)),
	)
	return nil
}

// DocumentCount reports how many records the index currently holds.
func (s *Service) DocumentCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Ask answers a free-text question. k <= 0 selects the configured default;
// out-of-range values are clamped. A question that matches nothing still
// produces a templated response, never an error.
func (s *Service) Ask(ctx context.Context, question string, k int) (Response, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Response{}, domain.ErrInvalidQuery
	}
	k = s.clamp(k)

	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx, question, k); ok {
			var resp Response
			if err := json.Unmarshal(payload, &resp); err == nil {
				metrics.AnswerCacheTotal.WithLabelValues("hit").Inc()
				return resp, nil
			}
			// Stale or corrupt entry; fall through and recompute.
		}
		metrics.AnswerCacheTotal.WithLabelValues("miss").Inc()
	}

	records := s.snapshot()
	answer, intent := Answer(question, records, k)

	resp := Response{
		Question: question,
		Intent:   intent,
		Answer:   answer,
		Sources:  toSourceDocs(Retrieve(question, records, k)),
	}
	metrics.QueriesTotal.WithLabelValues(string(intent)).Inc()

	if s.cache != nil {
		if payload, err := json.Marshal(resp); err == nil {
			s.cache.Set(ctx, question, k, payload)
		}
	}
	return resp, nil
}

// Sources retrieves the top-k documents with similarity scores, without
// generating an answer.
func (s *Service) Sources(_ context.Context, query string, k int) ([]SourceDoc, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidQuery
	}
	return toSourceDocs(Retrieve(query, s.snapshot(), s.clamp(k))), nil
}

// SaveFeedback validates and persists one feedback entry.
func (s *Service) SaveFeedback(ctx context.Context, fb domain.Feedback) error {
	if err := fb.Validate(); err != nil {
		return err
	}
	if s.feedback == nil {
		return nil
	}
	if err := s.feedback.Append(ctx, fb); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	return nil
}

func (s *Service) snapshot() []domain.IndexedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

func (s *Service) clamp(k int) int {
	switch {
	case k <= 0:
		return s.defaultK
	case k < s.minK:
		return s.minK
	case k > s.maxK:
		return s.maxK
	default:
		return k
	}
}

func toSourceDocs(docs []domain.RetrievedDocument) []SourceDoc {
	if len(docs) == 0 {
		return nil
	}
	out := make([]SourceDoc, len(docs))
	for i, d := range docs {
		out[i] = SourceDoc{
			Text:       d.Record.Text,
			Country:    d.Record.Country,
			Year:       d.Record.Year,
			Score:      d.Record.Score,
			Similarity: d.Similarity,
		}
	}
	return out
}
