package accounts

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"context"

	"github.com/SidddhantJain/QuietQuill/internal/common"
	"github.com/SidddhantJain/QuietQuill/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, a *Account) error {
	query := `INSERT INTO users (username, password_hash, salt) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, a.Username, a.PasswordHash, a.Salt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", a.Username, common.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get insert id: %w", err)
	}
	a.ID = id
	return nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*Account, error) {
	query := `SELECT id, username, password_hash, salt FROM users WHERE username = ?`
	row := r.db.QueryRowContext(ctx, query, username)

	a := &Account{}
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Salt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrAccountNotFound
		}
		return nil, fmt.Errorf("query row scan failed: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) UpdateCredentials(ctx context.Context, username, passwordHash, salt string) error {
	query := `UPDATE users SET password_hash = ?, salt = ? WHERE username = ?`
	res, err := r.db.ExecContext(ctx, query, passwordHash, salt, username)
	if err != nil {
		return fmt.Errorf("failed to update credentials: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if ra == 0 {
		return common.ErrAccountNotFound
	}
	return nil
}

// isUniqueViolation matches the sqlite unique-constraint error without
// binding to a driver-specific error type.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
