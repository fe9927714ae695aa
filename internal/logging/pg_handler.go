package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/selatcheck/dashboard/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	sinkBatchSize     = 50
	sinkFlushInterval = 5 * time.Second
)

// PGHandler is an slog.Handler that persists ERROR+ records as
// SystemLog rows. Writes are buffered and flushed in batches so a
// burst of gateway failures does not turn into a burst of inserts.
type PGHandler struct {
	db *gorm.DB

	mu      sync.Mutex
	pending []models.SystemLog

	kick chan struct{}
	done chan struct{}
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	h := &PGHandler{
		db:      db,
		pending: make([]models.SystemLog, 0, sinkBatchSize),
		kick:    make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *PGHandler) run() {
	ticker := time.NewTicker(sinkFlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.flush()
		case <-h.kick:
			h.flush()
		case <-h.done:
			h.flush()
			return
		}
	}
}

func (h *PGHandler) flush() {
	h.mu.Lock()
	if len(h.pending) == 0 {
		h.mu.Unlock()
		return
	}
	batch := h.pending
	h.pending = make([]models.SystemLog, 0, sinkBatchSize)
	h.mu.Unlock()

	// Logged below ERROR so a failing sink cannot feed itself.
	if err := h.db.CreateInBatches(batch, sinkBatchSize).Error; err != nil {
		slog.Warn("system log flush failed", "error", err, "dropped", len(batch))
	}
}

// Stop flushes whatever is buffered and ends the background loop.
func (h *PGHandler) Stop() {
	close(h.done)
}

func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	row := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}

	extra := make(map[string]any)
	record.Attrs(func(a slog.Attr) bool {
		switch a.Key {
		case "request_id":
			row.RequestID = a.Value.String()
		case "session_id":
			row.SessionID = a.Value.String()
		case "email", "user_email":
			row.UserEmail = a.Value.String()
		case "error":
			row.Error = a.Value.String()
		default:
			extra[a.Key] = a.Value.Any()
		}
		return true
	})
	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			row.Extra = datatypes.JSON(b)
		}
	}

	h.mu.Lock()
	h.pending = append(h.pending, row)
	full := len(h.pending) >= sinkBatchSize
	h.mu.Unlock()

	if full {
		select {
		case h.kick <- struct{}{}:
		default:
		}
	}
	return nil
}

// Attr/group scoping is not tracked per row; everything lands in the
// flat column set above.
func (h *PGHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *PGHandler) WithGroup(string) slog.Handler      { return h }
