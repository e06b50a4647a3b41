package rag

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/oic-analytics/adeidex/internal/domain"
)

// --- Mocks ---

type mockDataset struct {
	observations []domain.Observation
	err          error
	calls        int
}

func (m *mockDataset) Observations(_ context.Context) ([]domain.Observation, error) {
	m.calls++
	return m.observations, m.err
}

type mockFeedback struct {
	appended []domain.Feedback
	err      error
}

func (m *mockFeedback) Append(_ context.Context, fb domain.Feedback) error {
	if m.err != nil {
		return m.err
	}
	m.appended = append(m.appended, fb)
	return nil
}

type mockCache struct {
	entries map[string][]byte
	sets    int
}

func cacheKey(query string, k int) string { return query + "|" + string(rune('0'+k)) }

func (m *mockCache) Get(_ context.Context, query string, k int) ([]byte, bool) {
	data, ok := m.entries[cacheKey(query, k)]
	return data, ok
}

func (m *mockCache) Set(_ context.Context, query string, k int, payload []byte) {
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[cacheKey(query, k)] = payload
	m.sets++
}

func newTestService(t *testing.T, observations []domain.Observation) (*Service, *mockFeedback, *mockCache) {
	t.Helper()
	fb := &mockFeedback{}
	cache := &mockCache{}
	svc := New(&mockDataset{observations: observations}, fb, cache, zap.NewNop())
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return svc, fb, cache
}

// --- Tests ---

func TestService_AskAnswersAndCaches(t *testing.T) {
	svc, _, cache := newTestService(t, []domain.Observation{
		{Country: "Qatar", Year: 2023, Score: 0.82},
		{Country: "Yemen", Year: 2023, Score: 0.31},
	})

	resp, err := svc.Ask(context.Background(), "highest ADEI scores", 5)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if resp.Intent != domain.IntentTopPerformers {
		t.Errorf("intent = %s, want top_performers", resp.Intent)
	}
	if len(resp.Sources) == 0 {
		t.Error("expected source documents")
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}

	// Second ask must be served from cache and be identical.
	again, err := svc.Ask(context.Background(), "highest ADEI scores", 5)
	if err != nil {
		t.Fatalf("Ask (cached): %v", err)
	}
	if again.Answer != resp.Answer || cache.sets != 1 {
		t.Error("second ask should hit the cache with an identical answer")
	}
}

func TestService_AskEmptyQuestion(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	if _, err := svc.Ask(context.Background(), "   ", 5); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("err = %v, want ErrInvalidQuery", err)
	}
}

func TestService_AskEmptyIndex(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	resp, err := svc.Ask(context.Background(), "highest scores", 5)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if resp.Answer == "" {
		t.Error("empty index must still yield a templated answer")
	}
	if len(resp.Sources) != 0 {
		t.Errorf("expected no sources, got %d", len(resp.Sources))
	}
}

func TestService_AskClampsK(t *testing.T) {
	var observations []domain.Observation
	for year := 2010; year <= 2025; year++ {
		observations = append(observations, domain.Observation{Country: "Malaysia", Year: year, Score: 0.6})
	}
	svc, _, _ := newTestService(t, observations)

	resp, err := svc.Ask(context.Background(), "malaysia", 50)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if len(resp.Sources) > 10 {
		t.Errorf("k should clamp to 10, got %d sources", len(resp.Sources))
	}
}

func TestService_AskIgnoresCorruptCacheEntry(t *testing.T) {
	svc, _, cache := newTestService(t, []domain.Observation{
		{Country: "Qatar", Year: 2023, Score: 0.82},
	})
	cache.Set(context.Background(), "qatar", 5, []byte("{not json"))
	setsBefore := cache.sets

	resp, err := svc.Ask(context.Background(), "qatar", 5)
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if resp.Answer == "" {
		t.Error("corrupt cache entry should be recomputed")
	}
	if cache.sets != setsBefore+1 {
		t.Error("recomputed answer should be written back")
	}

	var round Response
	if err := json.Unmarshal(cache.entries[cacheKey("qatar", 5)], &round); err != nil {
		t.Fatalf("cached payload is not valid JSON: %v", err)
	}
}

func TestService_ReloadReplacesIndex(t *testing.T) {
	data := &mockDataset{observations: []domain.Observation{
		{Country: "Qatar", Year: 2023, Score: 0.82},
	}}
	svc := New(data, nil, nil, zap.NewNop())

	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if svc.DocumentCount() != 1 {
		t.Fatalf("DocumentCount = %d, want 1", svc.DocumentCount())
	}

	data.observations = append(data.observations,
		domain.Observation{Country: "Yemen", Year: 2023, Score: 0.31})
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if svc.DocumentCount() != 2 {
		t.Errorf("DocumentCount = %d, want 2 after reload", svc.DocumentCount())
	}
}

func TestService_ReloadPropagatesError(t *testing.T) {
	svc := New(&mockDataset{err: errors.New("connection refused")}, nil, nil, zap.NewNop())

	if err := svc.Reload(context.Background()); err == nil {
		t.Fatal("expected error from dataset reader")
	}
}

func TestService_SaveFeedback(t *testing.T) {
	svc, fb, _ := newTestService(t, nil)

	entry := domain.Feedback{Question: "q", Answer: "a", Rating: 5}
	if err := svc.SaveFeedback(context.Background(), entry); err != nil {
		t.Fatalf("SaveFeedback: %v", err)
	}
	if len(fb.appended) != 1 {
		t.Fatalf("appended = %d, want 1", len(fb.appended))
	}

	bad := domain.Feedback{Question: "q", Rating: 9}
	if err := svc.SaveFeedback(context.Background(), bad); !errors.Is(err, domain.ErrInvalidFeedback) {
		t.Errorf("err = %v, want ErrInvalidFeedback", err)
	}
}

func TestService_SourcesEmptyQuery(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	if _, err := svc.Sources(context.Background(), "", 5); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Errorf("err = %v, want ErrInvalidQuery", err)
	}
}
