package database

import (
	"context"

	"github.com/cockroachdb/cockroach-go/v2/crdb/crdbpgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/noisersup/files-manager-api/models"
)

const fileColumns = "id, user_id, name, type, is_public, parent_id, local_path"

// Adds file entry to database
func (db *Database) NewFile(f *models.File) error {
	sqlFormula := "INSERT INTO files (id, user_id, name, type, is_public, parent_id, local_path) VALUES ($1, $2, $3, $4, $5, $6, $7);"

	return crdbpgx.ExecuteTx(context.Background(), db.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(), sqlFormula,
			f.Id, f.UserId, f.Name, f.Type, f.IsPublic, f.ParentId, f.LocalPath)
		return err
	})
}

/*
	Gets the file with the given id owned by the given user.

	Ownership is part of the WHERE clause, not a check after the
	fetch: a file owned by somebody else comes back as FileNotFound,
	indistinguishable from an id that does not exist at all.
*/
func (db *Database) GetFile(id, userId uuid.UUID) (*models.File, error) {
	sqlQuery := "SELECT " + fileColumns + " FROM files WHERE id = $1 AND user_id = $2;"
	return db.scanFile(db.pool.QueryRow(context.Background(), sqlQuery, id, userId))
}

// Gets a file by id regardless of owner (parent lookups only,
// never exposed through a handler directly)
func (db *Database) GetFileById(id uuid.UUID) (*models.File, error) {
	sqlQuery := "SELECT " + fileColumns + " FROM files WHERE id = $1;"
	return db.scanFile(db.pool.QueryRow(context.Background(), sqlQuery, id))
}

/*
	Lists children of parentId owned by userId, ordered by insertion
	sequence so successive pages never reshuffle. parentId equal to
	uuid.Nil selects the root level.
*/
func (db *Database) ListFiles(userId, parentId uuid.UUID, offset, limit int) ([]models.File, error) {
	sqlFormula := "SELECT " + fileColumns + " FROM files WHERE user_id = $1 AND parent_id = $2 ORDER BY seq LIMIT $3 OFFSET $4;"
	rows, err := db.pool.Query(context.Background(), sqlFormula, userId, parentId, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []models.File{}
	for rows.Next() {
		f := models.File{}
		if err := rows.Scan(&f.Id, &f.UserId, &f.Name, &f.Type, &f.IsPublic, &f.ParentId, &f.LocalPath); err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	return files, rows.Err()
}

/*
	Flips is_public on the file with the given id owned by the given
	user and returns the updated row.

	Single conditional UPDATE ... RETURNING, so the existence check
	and the write cannot race with a concurrent toggle.
*/
func (db *Database) SetFilePublic(id, userId uuid.UUID, isPublic bool) (*models.File, error) {
	sqlFormula := "UPDATE files SET is_public = $3 WHERE id = $1 AND user_id = $2 RETURNING " + fileColumns + ";"

	var f *models.File
	err := crdbpgx.ExecuteTx(context.Background(), db.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var txErr error
		f, txErr = db.scanFile(tx.QueryRow(context.Background(), sqlFormula, id, userId, isPublic))
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (db *Database) scanFile(row pgx.Row) (*models.File, error) {
	f := models.File{}
	err := row.Scan(&f.Id, &f.UserId, &f.Name, &f.Type, &f.IsPublic, &f.ParentId, &f.LocalPath)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, FileNotFound
		}
		return nil, err
	}
	return &f, nil
}
