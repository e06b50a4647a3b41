package answercache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/oic-analytics/adeidex/internal/db"
)

type fakeKV struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) SetWithTTL(_ context.Context, key string, value []byte, _ time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestCache_RoundTrip(t *testing.T) {
	kv := newFakeKV()
	c := New(kv, "adeidex:", time.Hour, zap.NewNop())

	ctx := context.Background()
	c.Set(ctx, "top countries", 5, []byte(`{"answer":"x"}`))

	got, ok := c.Get(ctx, "top countries", 5)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(got) != `{"answer":"x"}` {
		t.Errorf("payload = %s", got)
	}
}

func TestCache_KeyIncludesDepth(t *testing.T) {
	kv := newFakeKV()
	c := New(kv, "adeidex:", time.Hour, zap.NewNop())

	ctx := context.Background()
	c.Set(ctx, "top countries", 5, []byte("five"))

	if _, ok := c.Get(ctx, "top countries", 3); ok {
		t.Error("k=3 must not hit the k=5 entry")
	}
}

func TestCache_Miss(t *testing.T) {
	c := New(newFakeKV(), "adeidex:", time.Hour, zap.NewNop())

	if _, ok := c.Get(context.Background(), "never stored", 5); ok {
		t.Error("expected miss")
	}
}

func TestCache_BackendFailuresSwallowed(t *testing.T) {
	kv := newFakeKV()
	kv.getErr = errors.New("conn reset")
	kv.setErr = errors.New("conn reset")
	c := New(kv, "adeidex:", time.Hour, zap.NewNop())

	ctx := context.Background()
	c.Set(ctx, "q", 5, []byte("x"))
	if _, ok := c.Get(ctx, "q", 5); ok {
		t.Error("backend error must read as a miss")
	}
}
