package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
)

const userColumns = `id, name, email, password_hash, role, is_active, account_status,
failed_login_attempts, lockout_until, last_login, last_password_change,
reset_password_token, reset_password_expire, created_at, updated_at`

type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID                  string         `db:"id"`
	Name                string         `db:"name"`
	Email               string         `db:"email"`
	PasswordHash        string         `db:"password_hash"`
	Role                string         `db:"role"`
	IsActive            bool           `db:"is_active"`
	AccountStatus       string         `db:"account_status"`
	FailedLoginAttempts int            `db:"failed_login_attempts"`
	LockoutUntil        sql.NullTime   `db:"lockout_until"`
	LastLogin           sql.NullTime   `db:"last_login"`
	LastPasswordChange  sql.NullTime   `db:"last_password_change"`
	ResetPasswordToken  sql.NullString `db:"reset_password_token"`
	ResetPasswordExpire sql.NullTime   `db:"reset_password_expire"`
	CreatedAt           time.Time      `db:"created_at"`
	UpdatedAt           time.Time      `db:"updated_at"`
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	row := userToRow(user)
	query := r.db.Rebind(`INSERT INTO users (` + userColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query,
		row.ID, row.Name, row.Email, row.PasswordHash, row.Role, row.IsActive,
		row.AccountStatus, row.FailedLoginAttempts, row.LockoutUntil,
		row.LastLogin, row.LastPasswordChange, row.ResetPasswordToken,
		row.ResetPasswordExpire, row.CreatedAt, row.UpdatedAt)
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, `id = ?`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, `email = ?`, email)
}

func (r *UserRepository) GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*domain.User, error) {
	var row userRow
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users
WHERE reset_password_token = ? AND reset_password_expire > ?`)
	if err := r.db.GetContext(ctx, &row, query, tokenHash, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user := rowToUser(row)
	return &user, nil
}

func (r *UserRepository) getBy(ctx context.Context, clause string, arg any) (*domain.User, error) {
	var row userRow
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE ` + clause)
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	user := rowToUser(row)
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	row := userToRow(user)
	query := r.db.Rebind(`UPDATE users SET
name = ?, email = ?, password_hash = ?, role = ?, is_active = ?,
account_status = ?, failed_login_attempts = ?, lockout_until = ?,
last_login = ?, last_password_change = ?, reset_password_token = ?,
reset_password_expire = ?, updated_at = ?
WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query,
		row.Name, row.Email, row.PasswordHash, row.Role, row.IsActive,
		row.AccountStatus, row.FailedLoginAttempts, row.LockoutUntil,
		row.LastLogin, row.LastPasswordChange, row.ResetPasswordToken,
		row.ResetPasswordExpire, row.UpdatedAt, row.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter domain.UserFilter) ([]domain.User, int, error) {
	var clauses []string
	var args []any
	if filter.Role != nil {
		clauses = append(clauses, `role = ?`)
		args = append(args, string(*filter.Role))
	}
	if filter.AccountStatus != nil {
		clauses = append(clauses, `account_status = ?`)
		args = append(args, string(*filter.AccountStatus))
	}
	if filter.Search != "" {
		clauses = append(clauses, `(name LIKE ? OR email LIKE ?)`)
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	where := ""
	if len(clauses) > 0 {
		where = ` WHERE ` + strings.Join(clauses, ` AND `)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM users`+where), args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, 0, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, rowToUser(row))
	}
	return users, total, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, err
	}
	return n, nil
}

func userToRow(user *domain.User) userRow {
	row := userRow{
		ID:                  user.ID,
		Name:                user.Name,
		Email:               user.Email,
		PasswordHash:        user.PasswordHash,
		Role:                string(user.Role),
		IsActive:            user.IsActive,
		AccountStatus:       string(user.AccountStatus),
		FailedLoginAttempts: user.FailedLoginAttempts,
		CreatedAt:           user.CreatedAt,
		UpdatedAt:           user.UpdatedAt,
	}
	if user.LockoutUntil != nil {
		row.LockoutUntil = sql.NullTime{Time: *user.LockoutUntil, Valid: true}
	}
	if user.LastLogin != nil {
		row.LastLogin = sql.NullTime{Time: *user.LastLogin, Valid: true}
	}
	if user.LastPasswordChange != nil {
		row.LastPasswordChange = sql.NullTime{Time: *user.LastPasswordChange, Valid: true}
	}
	if user.ResetPasswordToken != nil {
		row.ResetPasswordToken = sql.NullString{String: *user.ResetPasswordToken, Valid: true}
	}
	if user.ResetPasswordExpire != nil {
		row.ResetPasswordExpire = sql.NullTime{Time: *user.ResetPasswordExpire, Valid: true}
	}
	return row
}

func rowToUser(row userRow) domain.User {
	user := domain.User{
		ID:                  row.ID,
		Name:                row.Name,
		Email:               row.Email,
		PasswordHash:        row.PasswordHash,
		Role:                domain.Role(row.Role),
		IsActive:            row.IsActive,
		AccountStatus:       domain.AccountStatus(row.AccountStatus),
		FailedLoginAttempts: row.FailedLoginAttempts,
		CreatedAt:           row.CreatedAt,
		UpdatedAt:           row.UpdatedAt,
	}
	if row.LockoutUntil.Valid {
		value := row.LockoutUntil.Time
		user.LockoutUntil = &value
	}
	if row.LastLogin.Valid {
		value := row.LastLogin.Time
		user.LastLogin = &value
	}
	if row.LastPasswordChange.Valid {
		value := row.LastPasswordChange.Time
		user.LastPasswordChange = &value
	}
	if row.ResetPasswordToken.Valid {
		value := row.ResetPasswordToken.String
		user.ResetPasswordToken = &value
	}
	if row.ResetPasswordExpire.Valid {
		value := row.ResetPasswordExpire.Time
		user.ResetPasswordExpire = &value
	}
	return user
}
