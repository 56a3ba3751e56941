/*
	Database user operations
*/
package database

import (
	"context"
	"strings"

	"github.com/cockroachdb/cockroach-go/v2/crdb/crdbpgx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/noisersup/files-manager-api/models"
)

/*
	Registers new user
	!!! remember to provide bcrypt hash as password argument !!!
*/
func (db *Database) NewUser(email, hashedPassword string) (*models.User, error) {
	u := models.User{
		Id:       uuid.New(),
		Email:    email,
		Password: hashedPassword,
	}

	sqlFormula := "INSERT INTO users (id, email, password) VALUES ($1, $2, $3);"
	err := crdbpgx.ExecuteTx(context.Background(), db.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		if _, err := tx.Exec(context.Background(), sqlFormula, u.Id, u.Email, u.Password); err != nil {
			if strings.Contains(err.Error(), "duplicate key value") {
				return UserExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (db *Database) GetUser(id uuid.UUID) (*models.User, error) {
	return db.scanUser(db.pool.QueryRow(context.Background(),
		"SELECT id, email, password FROM users WHERE id = $1;", id))
}

func (db *Database) GetUserByEmail(email string) (*models.User, error) {
	return db.scanUser(db.pool.QueryRow(context.Background(),
		"SELECT id, email, password FROM users WHERE email = $1;", email))
}

func (db *Database) scanUser(row pgx.Row) (*models.User, error) {
	u := models.User{}
	err := row.Scan(&u.Id, &u.Email, &u.Password)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, UserNotFound
		}
		return nil, err
	}
	return &u, nil
}
