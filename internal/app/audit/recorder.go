// Package audit writes the activity log. The write path is best effort: a
// failed insert is logged to the operator console and swallowed, so the
// business operation that triggered it never aborts because of it.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
)

// Notifier receives successfully persisted entries, for the live admin
// feed. Implementations must not block.
type Notifier interface {
	Publish(entry domain.ActivityLog)
}

type Entry struct {
	Action       domain.Action
	PerformedBy  string
	EntityType   string
	EntityID     string
	Changes      map[string]domain.FieldChange
	Status       domain.ActivityStatus
	ErrorMessage string
	Meta         domain.RequestMeta
}

type Recorder struct {
	logs     ports.ActivityLogRepository
	notifier Notifier
	now      func() time.Time
}

func NewRecorder(logs ports.ActivityLogRepository, notifier Notifier) *Recorder {
	return &Recorder{logs: logs, notifier: notifier, now: time.Now}
}

// Record persists an entry and returns it, or nil when persistence failed.
// Callers discard the return value; the nil case makes the best-effort
// contract visible without forcing error handling on the primary path.
func (r *Recorder) Record(ctx context.Context, e Entry) *domain.ActivityLog {
	status := e.Status
	if status == "" {
		status = domain.ActivitySuccess
	}
	entry := &domain.ActivityLog{
		ID:          uuid.NewString(),
		Action:      e.Action,
		PerformedBy: e.PerformedBy,
		Changes:     e.Changes,
		IPAddress:   e.Meta.IPAddress,
		UserAgent:   e.Meta.UserAgent,
		Status:      status,
		CreatedAt:   r.now(),
	}
	if e.EntityType != "" {
		entry.EntityType = &e.EntityType
	}
	if e.EntityID != "" {
		entry.EntityID = &e.EntityID
	}
	if e.ErrorMessage != "" {
		entry.ErrorMessage = &e.ErrorMessage
	}

	if err := r.logs.Insert(ctx, entry); err != nil {
		zap.L().Error("activity log write failed",
			zap.String("action", string(e.Action)),
			zap.String("performed_by", e.PerformedBy),
			zap.Error(err))
		return nil
	}

	if r.notifier != nil {
		r.notifier.Publish(*entry)
	}
	return entry
}
