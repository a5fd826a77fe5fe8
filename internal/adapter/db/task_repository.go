package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
)

const taskColumns = `id, title, description, status, priority, start_date, due_date,
assignment_type, assigned_to, assigned_to_team, created_by, completed_at, tags,
created_at, updated_at`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID             string         `db:"id"`
	Title          string         `db:"title"`
	Description    sql.NullString `db:"description"`
	Status         string         `db:"status"`
	Priority       string         `db:"priority"`
	StartDate      sql.NullTime   `db:"start_date"`
	DueDate        sql.NullTime   `db:"due_date"`
	AssignmentType string         `db:"assignment_type"`
	AssignedTo     sql.NullString `db:"assigned_to"`
	AssignedToTeam sql.NullString `db:"assigned_to_team"`
	CreatedBy      string         `db:"created_by"`
	CompletedAt    sql.NullTime   `db:"completed_at"`
	Tags           sql.NullString `db:"tags"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	row, err := taskToRow(task)
	if err != nil {
		return err
	}
	query := r.db.Rebind(`INSERT INTO tasks (` + taskColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.Title, row.Description, row.Status, row.Priority,
		row.StartDate, row.DueDate, row.AssignmentType, row.AssignedTo,
		row.AssignedToTeam, row.CreatedBy, row.CompletedAt, row.Tags,
		row.CreatedAt, row.UpdatedAt)
	return err
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var row taskRow
	query := r.db.Rebind(`SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`)
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	task := rowToTask(row)
	return &task, nil
}

// List applies the visibility scope and the optional filters in the WHERE
// clause; for a plain user the scope expands to the three-way OR over
// assignee, team membership and self-created tasks.
func (r *TaskRepository) List(ctx context.Context, scope domain.TaskScope, filter domain.TaskFilter) ([]domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var clauses []string
	var args []any

	if !scope.All {
		scopeClause := `(assigned_to = ? OR (created_by = ? AND assignment_type = ?)`
		args = append(args, scope.UserID, scope.UserID, string(domain.AssignmentSelf))
		if len(scope.TeamIDs) > 0 {
			in, inArgs, err := sqlx.In(` OR assigned_to_team IN (?)`, scope.TeamIDs)
			if err != nil {
				return nil, err
			}
			scopeClause += in
			args = append(args, inArgs...)
		}
		scopeClause += `)`
		clauses = append(clauses, scopeClause)
	}
	if filter.Status != nil {
		clauses = append(clauses, `status = ?`)
		args = append(args, string(*filter.Status))
	}
	if filter.Priority != nil {
		clauses = append(clauses, `priority = ?`)
		args = append(args, string(*filter.Priority))
	}
	if filter.AssignedTo != nil {
		clauses = append(clauses, `assigned_to = ?`)
		args = append(args, *filter.AssignedTo)
	}

	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, ` AND `)
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, rowToTask(row))
	}
	return tasks, nil
}

// Update writes the whole row in one statement: status and completed_at
// always travel together, and the last writer wins.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	row, err := taskToRow(task)
	if err != nil {
		return err
	}
	query := r.db.Rebind(`UPDATE tasks SET
title = ?, description = ?, status = ?, priority = ?, start_date = ?,
due_date = ?, assignment_type = ?, assigned_to = ?, assigned_to_team = ?,
completed_at = ?, tags = ?, updated_at = ?
WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		row.Title, row.Description, row.Status, row.Priority, row.StartDate,
		row.DueDate, row.AssignmentType, row.AssignedTo, row.AssignedToTeam,
		row.CompletedAt, row.Tags, row.UpdatedAt, row.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tasks WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM tasks`); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *TaskRepository) DeleteByAssignee(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM tasks WHERE assigned_to = ?`), userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *TaskRepository) ReassignAssignee(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	query := r.db.Rebind(`UPDATE tasks SET assigned_to = ?, assignment_type = ? WHERE assigned_to = ?`)
	res, err := r.db.ExecContext(ctx, query, toUserID, string(domain.AssignmentIndividual), fromUserID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *TaskRepository) ClearTeamAssignment(ctx context.Context, teamID string) error {
	// Orphaned team references become individual assignments back to the
	// task creator.
	query := r.db.Rebind(`UPDATE tasks
SET assigned_to = created_by, assigned_to_team = NULL, assignment_type = ?
WHERE assigned_to_team = ?`)
	_, err := r.db.ExecContext(ctx, query, string(domain.AssignmentIndividual), teamID)
	return err
}

func taskToRow(task *domain.Task) (taskRow, error) {
	row := taskRow{
		ID:             task.ID,
		Title:          task.Title,
		Status:         string(task.Status),
		Priority:       string(task.Priority),
		AssignmentType: string(task.Assignment.Type),
		CreatedBy:      task.CreatedBy,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}
	if task.Description != nil {
		row.Description = sql.NullString{String: *task.Description, Valid: true}
	}
	if task.StartDate != nil {
		row.StartDate = sql.NullTime{Time: *task.StartDate, Valid: true}
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	if task.Assignment.UserID != "" {
		row.AssignedTo = sql.NullString{String: task.Assignment.UserID, Valid: true}
	}
	if task.Assignment.TeamID != "" {
		row.AssignedToTeam = sql.NullString{String: task.Assignment.TeamID, Valid: true}
	}
	if task.CompletedAt != nil {
		row.CompletedAt = sql.NullTime{Time: *task.CompletedAt, Valid: true}
	}
	if len(task.Tags) > 0 {
		encoded, err := json.Marshal(task.Tags)
		if err != nil {
			return taskRow{}, err
		}
		row.Tags = sql.NullString{String: string(encoded), Valid: true}
	}
	return row, nil
}

func rowToTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:       row.ID,
		Title:    row.Title,
		Status:   domain.TaskStatus(row.Status),
		Priority: domain.TaskPriority(row.Priority),
		Assignment: domain.Assignment{
			Type:   domain.AssignmentType(row.AssignmentType),
			UserID: row.AssignedTo.String,
			TeamID: row.AssignedToTeam.String,
		},
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}
	if row.StartDate.Valid {
		value := row.StartDate.Time
		task.StartDate = &value
	}
	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}
	if row.CompletedAt.Valid {
		value := row.CompletedAt.Time
		task.CompletedAt = &value
	}
	if row.Tags.Valid && row.Tags.String != "" {
		// Tags were written by us; a decode failure means a corrupt row and
		// an empty tag list is the safer read.
		_ = json.Unmarshal([]byte(row.Tags.String), &task.Tags)
	}
	return task
}
