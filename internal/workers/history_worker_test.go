package workers

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/metrics"
	gormModels "trippilot/skyview/internal/models/gorm"
)

type memoryStore struct {
	mu       sync.Mutex
	searches []gormModels.SearchRecord
	chats    []gormModels.ChatQuery
	err      error
	block    chan struct{}
}

func (s *memoryStore) SaveSearch(ctx context.Context, rec *gormModels.SearchRecord) error {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.searches = append(s.searches, *rec)
	return nil
}

func (s *memoryStore) SaveChat(ctx context.Context, rec *gormModels.ChatQuery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.chats = append(s.chats, *rec)
	return nil
}

func newTestWorker(store HistoryStore, buffer int) (*HistoryWorker, *metrics.MetricsRegistry) {
	logging.SetLogger(zap.NewNop())
	m := metrics.NewMetricsRegistry(prometheus.NewRegistry())
	return NewHistoryWorker(store, buffer, m), m
}

func TestHistoryWorker_WritesRecords(t *testing.T) {
	store := &memoryStore{}
	w, m := newTestWorker(store, 10)
	w.Start(2)

	if !w.RecordSearch(gormModels.SearchRecord{ViewID: "v", Query: "del"}) {
		t.Error("Expected search accepted")
	}
	if !w.RecordChat(gormModels.ChatQuery{ViewID: "v", Message: "hi"}) {
		t.Error("Expected chat accepted")
	}
	w.Stop()

	if len(store.searches) != 1 || store.searches[0].Query != "del" {
		t.Errorf("Unexpected searches %+v", store.searches)
	}
	if len(store.chats) != 1 || store.chats[0].Message != "hi" {
		t.Errorf("Unexpected chats %+v", store.chats)
	}
	if v := testutil.ToFloat64(m.HistoryWritesTotal.WithLabelValues("search", "success")); v != 1 {
		t.Errorf("Expected 1 search success, got %v", v)
	}
}

func TestHistoryWorker_FailuresAreCounted(t *testing.T) {
	store := &memoryStore{err: errors.New("db down")}
	w, m := newTestWorker(store, 10)
	w.Start(1)

	w.RecordChat(gormModels.ChatQuery{ViewID: "v", Message: "hi"})
	w.Stop()

	if v := testutil.ToFloat64(m.HistoryWritesTotal.WithLabelValues("chat", "failure")); v != 1 {
		t.Errorf("Expected 1 chat failure, got %v", v)
	}
}

func TestHistoryWorker_DropsWhenFull(t *testing.T) {
	store := &memoryStore{block: make(chan struct{})}
	w, m := newTestWorker(store, 1)

	// No consumers yet: the first record fills the buffer.
	if !w.RecordSearch(gormModels.SearchRecord{Query: "a"}) {
		t.Fatal("Expected first record accepted")
	}
	if w.RecordSearch(gormModels.SearchRecord{Query: "b"}) {
		t.Error("Expected second record dropped")
	}
	if v := testutil.ToFloat64(m.HistoryWritesTotal.WithLabelValues("search", "dropped")); v != 1 {
		t.Errorf("Expected 1 drop, got %v", v)
	}

	w.Start(1)
	close(store.block)
	w.Stop()

	if len(store.searches) != 1 {
		t.Errorf("Expected 1 written search, got %d", len(store.searches))
	}
	if w.RecordSearch(gormModels.SearchRecord{Query: "c"}) {
		t.Error("Expected records after Stop to be dropped")
	}
}
