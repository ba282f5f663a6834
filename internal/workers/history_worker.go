package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"trippilot/skyview/internal/logging"
	"trippilot/skyview/internal/metrics"
	gormModels "trippilot/skyview/internal/models/gorm"
)

// HistoryStore persists history records.
type HistoryStore interface {
	SaveSearch(ctx context.Context, rec *gormModels.SearchRecord) error
	SaveChat(ctx context.Context, rec *gormModels.ChatQuery) error
}

type historyJob struct {
	search *gormModels.SearchRecord
	chat   *gormModels.ChatQuery
}

// HistoryWorker writes searches and chat exchanges in the background.
// Enqueueing never blocks the request path: when the buffer is full the
// record is dropped and counted.
type HistoryWorker struct {
	store        HistoryStore
	queue        chan historyJob
	metrics      *metrics.MetricsRegistry
	log          *zap.SugaredLogger
	writeTimeout time.Duration

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

func NewHistoryWorker(store HistoryStore, buffer int, m *metrics.MetricsRegistry) *HistoryWorker {
	if buffer <= 0 {
		buffer = 100
	}
	return &HistoryWorker{
		store:        store,
		queue:        make(chan historyJob, buffer),
		metrics:      m,
		log:          logging.GetLogger().With("worker", "history"),
		writeTimeout: 5 * time.Second,
	}
}

// Start launches numWorkers consumers. They exit once Stop has been called
// and the queue is drained.
func (w *HistoryWorker) Start(numWorkers int) {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	w.log.Infow("Starting history workers", "count", numWorkers)
	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for job := range w.queue {
				w.process(job)
			}
		}()
	}
}

// Stop closes the queue and waits for pending writes.
func (w *HistoryWorker) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	close(w.queue)
	w.mu.Unlock()

	w.wg.Wait()
	w.log.Infow("History workers stopped")
}

// RecordSearch queues rec. It reports whether the record was accepted.
func (w *HistoryWorker) RecordSearch(rec gormModels.SearchRecord) bool {
	return w.enqueue(historyJob{search: &rec}, "search")
}

// RecordChat queues rec. It reports whether the record was accepted.
func (w *HistoryWorker) RecordChat(rec gormModels.ChatQuery) bool {
	return w.enqueue(historyJob{chat: &rec}, "chat")
}

func (w *HistoryWorker) enqueue(job historyJob, record string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		w.count(record, "dropped")
		return false
	}

	select {
	case w.queue <- job:
		return true
	default:
		w.count(record, "dropped")
		w.log.Warnw("History queue full, dropping record", "record", record)
		return false
	}
}

func (w *HistoryWorker) process(job historyJob) {
	ctx, cancel := context.WithTimeout(context.Background(), w.writeTimeout)
	defer cancel()

	var (
		record string
		err    error
	)
	switch {
	case job.search != nil:
		record = "search"
		err = w.store.SaveSearch(ctx, job.search)
	case job.chat != nil:
		record = "chat"
		err = w.store.SaveChat(ctx, job.chat)
	default:
		return
	}

	if err != nil {
		w.count(record, "failure")
		w.log.Warnw("History write failed", "record", record, "error", err.Error())
		return
	}
	w.count(record, "success")
}

func (w *HistoryWorker) count(record, result string) {
	if w.metrics != nil {
		w.metrics.HistoryWritesTotal.WithLabelValues(record, result).Inc()
	}
}
