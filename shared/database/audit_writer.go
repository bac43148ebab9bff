package database

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"contaia-backend/shared/database/models/audit"
	"contaia-backend/shared/tenancy"
)

const maxBatch = 100

// AuditWriter persists tenancy events asynchronously so registry writes never
// wait on the database. Events that arrive while the queue is full are
// dropped and logged.
type AuditWriter struct {
	db     *gorm.DB
	logger *zap.Logger
	queue  chan audit.AuditLog
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewAuditWriter(db *gorm.DB, logger *zap.Logger, buffer int) *AuditWriter {
	if buffer <= 0 {
		buffer = 1024
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditWriter{
		db:     db,
		logger: logger,
		queue:  make(chan audit.AuditLog, buffer),
		done:   make(chan struct{}),
	}
}

// Start launches the background writer.
func (w *AuditWriter) Start() {
	go w.run()
}

// Record is a tenancy listener.
func (w *AuditWriter) Record(ev tenancy.Event) {
	entry := audit.AuditLog{
		ID:             uuid.New(),
		EventType:      string(ev.Type),
		EntityType:     ev.EntityType,
		EntityID:       ev.EntityID,
		OrganizationID: ev.OrganizationID,
		Data:           ev.Data,
		OccurredAt:     ev.At,
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.queue <- entry:
	default:
		w.logger.Warn("Audit queue full, dropping event",
			zap.String("event", entry.EventType),
			zap.String("entity_id", entry.EntityID))
	}
}

func (w *AuditWriter) run() {
	defer close(w.done)
	for entry := range w.queue {
		batch := []audit.AuditLog{entry}
	drain:
		for len(batch) < maxBatch {
			select {
			case next, ok := <-w.queue:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}
		if err := w.db.CreateInBatches(batch, maxBatch).Error; err != nil {
			w.logger.Error("Failed to write audit entries", zap.Int("count", len(batch)), zap.Error(err))
		}
	}
}

// Close stops accepting events and waits until queued entries are written
// or ctx expires.
func (w *AuditWriter) Close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("audit writer shutdown: %w", ctx.Err())
	}
}

// AuditFilter narrows List. Zero fields match everything.
type AuditFilter struct {
	OrganizationID string
	EntityID       string
	EventType      string
	Limit          int
}

// List returns the newest entries matching f first.
func (w *AuditWriter) List(ctx context.Context, f AuditFilter) ([]audit.AuditLog, error) {
	q := w.db.WithContext(ctx).Model(&audit.AuditLog{})
	if f.OrganizationID != "" {
		q = q.Where("organization_id = ?", f.OrganizationID)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.EventType != "" {
		q = q.Where("event_type = ?", f.EventType)
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var out []audit.AuditLog
	if err := q.Order("occurred_at DESC").Order("created_at DESC").Limit(limit).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return out, nil
}
