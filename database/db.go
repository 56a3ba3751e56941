package database

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	l "github.com/noisersup/files-manager-api/logger"
)

/*

	File database related errors

*/
var FileNotFound error = errors.New("File not found")
var UserNotFound error = errors.New("User not found")
var UserExists error = errors.New("User exists")

type Database struct {
	pool *pgxpool.Pool // database connection
	log  *l.Logger
}

// Connects to database with provided data
// and returns database object
func ConnectDB(uri, database string, log *l.Logger) (*Database, error) {
	config, err := pgxpool.ParseConfig(os.ExpandEnv(uri))
	if err != nil {
		return nil, err
	}

	config.ConnConfig.Database = database

	pool, err := pgxpool.ConnectConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	db := Database{pool: pool, log: log}

	if err = db.ensureSchema(); err != nil {
		pool.Close()
		return nil, err
	}

	return &db, nil
}

// Close database connection
// ( pool.Close alias )
func (db *Database) Close() {
	db.log.Log("Closing database...")
	db.pool.Close()
	db.log.Log("All database connections closed.")
}

func (db *Database) IsAlive() bool {
	return db.pool.Ping(context.Background()) == nil
}

// Creates the users and files tables if not present yet.
// parent_id uses the zero uuid as the root sentinel so that listing
// can always filter on plain equality. seq gives the stable key the
// paginated listing orders by.
func (db *Database) ensureSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS files (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			is_public BOOL NOT NULL DEFAULT false,
			parent_id UUID NOT NULL DEFAULT '00000000-0000-0000-0000-000000000000',
			local_path TEXT NOT NULL DEFAULT '',
			seq SERIAL
		);`,
	}

	for _, stmt := range schema {
		db.log.LogV("ensuring schema: %s", stmt)
		if _, err := db.pool.Exec(context.Background(), stmt); err != nil {
			return err
		}
	}
	return nil
}

// Number of documents in the users table (used by /stats)
func (db *Database) CountUsers() (int64, error) {
	var n int64
	err := db.pool.QueryRow(context.Background(), "SELECT count(*) FROM users;").Scan(&n)
	return n, err
}

// Number of documents in the files table (used by /stats)
func (db *Database) CountFiles() (int64, error) {
	var n int64
	err := db.pool.QueryRow(context.Background(), "SELECT count(*) FROM files;").Scan(&n)
	return n, err
}
