package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
)

const activityColumns = `id, action, performed_by, entity_type, entity_id, changes,
ip_address, user_agent, status, error_message, created_at`

// ActivityLogRepository only ever inserts and reads: the log is append-only.
type ActivityLogRepository struct {
	db *sqlx.DB
}

type activityRow struct {
	ID           string         `db:"id"`
	Action       string         `db:"action"`
	PerformedBy  string         `db:"performed_by"`
	EntityType   sql.NullString `db:"entity_type"`
	EntityID     sql.NullString `db:"entity_id"`
	Changes      sql.NullString `db:"changes"`
	IPAddress    string         `db:"ip_address"`
	UserAgent    string         `db:"user_agent"`
	Status       string         `db:"status"`
	ErrorMessage sql.NullString `db:"error_message"`
	CreatedAt    time.Time      `db:"created_at"`
}

var _ ports.ActivityLogRepository = (*ActivityLogRepository)(nil)

func NewActivityLogRepository(db *sqlx.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

func (r *ActivityLogRepository) Insert(ctx context.Context, entry *domain.ActivityLog) error {
	row := activityRow{
		ID:          entry.ID,
		Action:      string(entry.Action),
		PerformedBy: entry.PerformedBy,
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		Status:      string(entry.Status),
		CreatedAt:   entry.CreatedAt,
	}
	if entry.EntityType != nil {
		row.EntityType = sql.NullString{String: *entry.EntityType, Valid: true}
	}
	if entry.EntityID != nil {
		row.EntityID = sql.NullString{String: *entry.EntityID, Valid: true}
	}
	if entry.ErrorMessage != nil {
		row.ErrorMessage = sql.NullString{String: *entry.ErrorMessage, Valid: true}
	}
	if len(entry.Changes) > 0 {
		encoded, err := json.Marshal(entry.Changes)
		if err != nil {
			return err
		}
		row.Changes = sql.NullString{String: string(encoded), Valid: true}
	}

	query := r.db.Rebind(`INSERT INTO activity_logs (` + activityColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.Action, row.PerformedBy, row.EntityType, row.EntityID,
		row.Changes, row.IPAddress, row.UserAgent, row.Status,
		row.ErrorMessage, row.CreatedAt)
	return err
}

func (r *ActivityLogRepository) List(ctx context.Context, filter domain.ActivityFilter) ([]domain.ActivityLog, int, error) {
	var clauses []string
	var args []any
	if filter.Action != nil {
		clauses = append(clauses, `action = ?`)
		args = append(args, string(*filter.Action))
	}
	if filter.PerformedBy != nil {
		clauses = append(clauses, `performed_by = ?`)
		args = append(args, *filter.PerformedBy)
	}
	if filter.Status != nil {
		clauses = append(clauses, `status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.Start != nil {
		clauses = append(clauses, `created_at >= ?`)
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		clauses = append(clauses, `created_at <= ?`)
		args = append(args, *filter.End)
	}

	where := ""
	if len(clauses) > 0 {
		where = ` WHERE ` + strings.Join(clauses, ` AND `)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM activity_logs`+where), args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + activityColumns + ` FROM activity_logs` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	var rows []activityRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, 0, err
	}

	entries := make([]domain.ActivityLog, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToActivity(row))
	}
	return entries, total, nil
}

func rowToActivity(row activityRow) domain.ActivityLog {
	entry := domain.ActivityLog{
		ID:          row.ID,
		Action:      domain.Action(row.Action),
		PerformedBy: row.PerformedBy,
		IPAddress:   row.IPAddress,
		UserAgent:   row.UserAgent,
		Status:      domain.ActivityStatus(row.Status),
		CreatedAt:   row.CreatedAt,
	}
	if row.EntityType.Valid {
		value := row.EntityType.String
		entry.EntityType = &value
	}
	if row.EntityID.Valid {
		value := row.EntityID.String
		entry.EntityID = &value
	}
	if row.ErrorMessage.Valid {
		value := row.ErrorMessage.String
		entry.ErrorMessage = &value
	}
	if row.Changes.Valid && row.Changes.String != "" {
		_ = json.Unmarshal([]byte(row.Changes.String), &entry.Changes)
	}
	return entry
}
