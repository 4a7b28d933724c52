package audit

import (
	"encoding/json"
	"sync"
	"time"

	"cafe-backend/internal/models"
)

type LogOptions struct {
	Actor       string
	ActorRole   models.StaffRole
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// Trail is an append-only, in-memory record of back-office changes.
type Trail struct {
	mu     sync.Mutex
	logs   []models.AuditLog
	nextID uint64
	clock  func() time.Time
}

func NewTrail(clock func() time.Time) *Trail {
	if clock == nil {
		clock = time.Now
	}
	return &Trail{clock: clock}
}

func (t *Trail) WriteLog(opts LogOptions) models.AuditLog {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	entry := models.AuditLog{
		ID:          t.nextID,
		CreatedAt:   t.clock(),
		Actor:       opts.Actor,
		ActorRole:   opts.ActorRole,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  toJSON(opts.Before),
		AfterData:   toJSON(opts.After),
	}
	t.logs = append(t.logs, entry)
	return entry
}

type Filter struct {
	EntityType string
	EntityID   string
	Actor      string
	Limit      int
}

// List returns matching entries, newest first.
func (t *Trail) List(f Filter) []models.AuditLog {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]models.AuditLog, 0)
	for i := len(t.logs) - 1; i >= 0; i-- {
		l := t.logs[i]
		if f.EntityType != "" && l.EntityType != f.EntityType {
			continue
		}
		if f.EntityID != "" && l.EntityID != f.EntityID {
			continue
		}
		if f.Actor != "" && l.Actor != f.Actor {
			continue
		}
		out = append(out, l)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

// "null" when v is absent or cannot be encoded
func toJSON(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
