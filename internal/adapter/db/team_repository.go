package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
)

const teamColumns = `id, name, description, created_by, is_active, created_at, updated_at`

type TeamRepository struct {
	db *sqlx.DB
}

type teamRow struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CreatedBy   string         `db:"created_by"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ ports.TeamRepository = (*TeamRepository)(nil)

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, team *domain.Team) error {
	row := teamToRow(team)
	query := r.db.Rebind(`INSERT INTO teams (` + teamColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query,
		row.ID, row.Name, row.Description, row.CreatedBy, row.IsActive,
		row.CreatedAt, row.UpdatedAt); err != nil {
		return err
	}
	for _, memberID := range team.MemberIDs {
		if err := r.AddMember(ctx, team.ID, memberID); err != nil {
			return err
		}
	}
	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	return r.getBy(ctx, `id = ?`, id)
}

func (r *TeamRepository) GetByName(ctx context.Context, name string) (*domain.Team, error) {
	return r.getBy(ctx, `name = ?`, name)
}

func (r *TeamRepository) getBy(ctx context.Context, clause string, arg any) (*domain.Team, error) {
	var row teamRow
	query := r.db.Rebind(`SELECT ` + teamColumns + ` FROM teams WHERE ` + clause)
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	team := rowToTeam(row)
	members, err := r.members(ctx, team.ID)
	if err != nil {
		return nil, err
	}
	team.MemberIDs = members
	return &team, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]domain.Team, error) {
	var rows []teamRow
	query := `SELECT ` + teamColumns + ` FROM teams ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	teams := make([]domain.Team, 0, len(rows))
	for _, row := range rows {
		team := rowToTeam(row)
		members, err := r.members(ctx, team.ID)
		if err != nil {
			return nil, err
		}
		team.MemberIDs = members
		teams = append(teams, team)
	}
	return teams, nil
}

func (r *TeamRepository) Update(ctx context.Context, team *domain.Team) error {
	row := teamToRow(team)
	query := r.db.Rebind(`UPDATE teams SET name = ?, description = ?, is_active = ?, updated_at = ? WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, row.Name, row.Description, row.IsActive, row.UpdatedAt, row.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM team_members WHERE team_id = ?`), id); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM teams WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM teams`); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *TeamRepository) IDsByMember(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	query := r.db.Rebind(`SELECT tm.team_id FROM team_members tm
JOIN teams t ON t.id = tm.team_id
WHERE tm.user_id = ? AND t.is_active`)
	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID string) error {
	query := r.db.Rebind(`INSERT INTO team_members (team_id, user_id) VALUES (?, ?)`)
	_, err := r.db.ExecContext(ctx, query, teamID, userID)
	return err
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	query := r.db.Rebind(`DELETE FROM team_members WHERE team_id = ? AND user_id = ?`)
	_, err := r.db.ExecContext(ctx, query, teamID, userID)
	return err
}

func (r *TeamRepository) RemoveMemberFromAll(ctx context.Context, userID string) error {
	query := r.db.Rebind(`DELETE FROM team_members WHERE user_id = ?`)
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *TeamRepository) members(ctx context.Context, teamID string) ([]string, error) {
	var ids []string
	query := r.db.Rebind(`SELECT user_id FROM team_members WHERE team_id = ? ORDER BY user_id`)
	if err := r.db.SelectContext(ctx, &ids, query, teamID); err != nil {
		return nil, err
	}
	return ids, nil
}

func teamToRow(team *domain.Team) teamRow {
	row := teamRow{
		ID:        team.ID,
		Name:      team.Name,
		CreatedBy: team.CreatedBy,
		IsActive:  team.IsActive,
		CreatedAt: team.CreatedAt,
		UpdatedAt: team.UpdatedAt,
	}
	if team.Description != nil {
		row.Description = sql.NullString{String: *team.Description, Valid: true}
	}
	return row
}

func rowToTeam(row teamRow) domain.Team {
	team := domain.Team{
		ID:        row.ID,
		Name:      row.Name,
		CreatedBy: row.CreatedBy,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Description.Valid {
		value := row.Description.String
		team.Description = &value
	}
	return team
}
