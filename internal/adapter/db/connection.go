package db

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/drashti-2005/task-manager-sub000/internal/config"
)

// ConnectDB opens the configured store. mysql is the production default;
// postgres and sqlite3 share the same repositories (queries are rebound to
// the driver's placeholder style).
func ConnectDB(conf *config.Config) (*sqlx.DB, error) {
	driver := conf.DbDriver
	if driver == "" {
		driver = "mysql"
	}

	dsn := conf.DbDSN
	if dsn == "" {
		switch driver {
		case "mysql":
			params := conf.DbParams
			if params == "" {
				params = "parseTime=true&multiStatements=true"
			}
			dsn = fmt.Sprintf(
				"%s:%s@tcp(%s:%s)/%s?%s",
				conf.DbUser,
				conf.DbPassword,
				conf.DbHost,
				conf.DbPort,
				conf.DbName,
				params,
			)
		case "postgres":
			dsn = fmt.Sprintf(
				"postgres://%s:%s@%s:%s/%s?sslmode=disable",
				conf.DbUser,
				conf.DbPassword,
				conf.DbHost,
				conf.DbPort,
				conf.DbName,
			)
		case "sqlite3":
			dsn = ":memory:"
		default:
			return nil, fmt.Errorf("unsupported db driver %q", driver)
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, err
	}

	return db, nil
}
