package db

import "github.com/jmoiron/sqlx"

// Schema statements are kept portable across mysql, postgres and sqlite so
// the same repositories serve production and the in-memory test store.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(16) NOT NULL,
		is_active BOOLEAN NOT NULL,
		account_status VARCHAR(16) NOT NULL,
		failed_login_attempts INT NOT NULL DEFAULT 0,
		lockout_until TIMESTAMP NULL,
		last_login TIMESTAMP NULL,
		last_password_change TIMESTAMP NULL,
		reset_password_token VARCHAR(64) NULL,
		reset_password_expire TIMESTAMP NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS teams (
		id VARCHAR(36) PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT NULL,
		created_by VARCHAR(36) NOT NULL,
		is_active BOOLEAN NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS team_members (
		team_id VARCHAR(36) NOT NULL,
		user_id VARCHAR(36) NOT NULL,
		PRIMARY KEY (team_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id VARCHAR(36) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NULL,
		status VARCHAR(16) NOT NULL,
		priority VARCHAR(16) NOT NULL,
		start_date TIMESTAMP NULL,
		due_date TIMESTAMP NULL,
		assignment_type VARCHAR(16) NOT NULL,
		assigned_to VARCHAR(36) NULL,
		assigned_to_team VARCHAR(36) NULL,
		created_by VARCHAR(36) NOT NULL,
		completed_at TIMESTAMP NULL,
		tags TEXT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activity_logs (
		id VARCHAR(36) PRIMARY KEY,
		action VARCHAR(48) NOT NULL,
		performed_by VARCHAR(36) NOT NULL,
		entity_type VARCHAR(32) NULL,
		entity_id VARCHAR(36) NULL,
		changes TEXT NULL,
		ip_address VARCHAR(64) NOT NULL DEFAULT '',
		user_agent VARCHAR(255) NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL,
		error_message TEXT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

// Migrate creates the schema when it does not exist yet.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
