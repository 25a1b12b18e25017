package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = time.RFC3339
)

type SQLiteStore struct {
	db              *sql.DB
	defaultUsername string
}

// NewSQLiteStore opens (or creates) the database at dbPath and brings the
// schema up to date. defaultUsername names the single-tenant user that
// GetCurrentUser provisions on first read.
func NewSQLiteStore(dbPath, defaultUsername string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{
		db:              db,
		defaultUsername: defaultUsername,
	}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

const transactionColumns = "id, description, amount_cents, type, category, date, created_at"

func (s *SQLiteStore) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions ORDER BY date DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// ListTransactionsByDateRange returns transactions dated in [start, end],
// inclusive on both ends. Dates are stored as YYYY-MM-DD text, so the
// comparison is a plain lexical range.
func (s *SQLiteStore) ListTransactionsByDateRange(ctx context.Context, start, end core.Date) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE date >= ? AND date <= ? ORDER BY date DESC, id DESC",
		start.Format(dateLayout), end.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list transactions by date range: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	createdAt := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO transactions (description, amount_cents, type, category, date, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		tx.Description, tx.Amount.Cents, string(tx.Type), tx.Category,
		tx.Date.Format(dateLayout), createdAt.Format(timestampLayout))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("last insert id: %w", err)
	}
	tx.ID = id
	tx.CreatedAt = createdAt

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents,
		"category", tx.Category,
		"date", tx.Date.Format(dateLayout))

	return tx, nil
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, id int64) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return tx, nil
}

// DeleteTransaction hard-deletes a record. Deleting an id that does not
// exist reports ErrNotFound rather than succeeding silently.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction %d: rows affected: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

const userColumns = "id, username, full_name, email, phone, avatar, occupation, monthly_income_cents, created_at, updated_at"

func (s *SQLiteStore) GetCurrentUser(ctx context.Context) (core.UserProfile, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT 1")
	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return s.provisionDefaultUser(ctx)
	}
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("get current user: %w", err)
	}
	return user, nil
}

func (s *SQLiteStore) provisionDefaultUser(ctx context.Context) (core.UserProfile, error) {
	now := time.Now().UTC().Format(timestampLayout)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO users (username, password, full_name, email, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		s.defaultUsername, "unset", "Demo User", "demo@example.com", now, now)
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("provision default user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("provision default user: last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Default user provisioned", "id", id, "username", s.defaultUsername)

	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("read provisioned user: %w", err)
	}
	return user, nil
}

// UpdateUser applies a partial profile update. Only fields explicitly
// provided are written; absent pointers leave the column untouched.
func (s *SQLiteStore) UpdateUser(ctx context.Context, id int64, update core.ProfileUpdate) (core.UserProfile, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now().UTC().Format(timestampLayout)}

	if update.FullName != nil {
		sets = append(sets, "full_name = ?")
		args = append(args, *update.FullName)
	}
	if update.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *update.Email)
	}
	if update.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *update.Phone)
	}
	if update.Avatar != nil {
		sets = append(sets, "avatar = ?")
		args = append(args, *update.Avatar)
	}
	if update.Occupation != nil {
		sets = append(sets, "occupation = ?")
		args = append(args, *update.Occupation)
	}
	if update.MonthlyIncome != nil {
		sets = append(sets, "monthly_income_cents = ?")
		args = append(args, update.MonthlyIncome.Cents)
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("update user %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("update user %d: rows affected: %w", id, err)
	}
	if affected == 0 {
		return core.UserProfile{}, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	user, err := scanUser(row)
	if err != nil {
		return core.UserProfile{}, fmt.Errorf("read updated user %d: %w", id, err)
	}

	slog.InfoContext(ctx, "User profile updated", "id", id)
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx        core.Transaction
		typ       string
		dateStr   string
		createdAt string
	)
	if err := row.Scan(&tx.ID, &tx.Description, &tx.Amount.Cents, &typ, &tx.Category, &dateStr, &createdAt); err != nil {
		return core.Transaction{}, err
	}
	tx.Type = core.TxType(typ)

	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", dateStr, err)
	}
	tx.Date = core.DateOf(d)

	ts, err := time.Parse(timestampLayout, createdAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	tx.CreatedAt = ts

	return tx, nil
}

func scanTransactions(rows *sql.Rows) ([]core.Transaction, error) {
	txs := make([]core.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txs, nil
}

func scanUser(row rowScanner) (core.UserProfile, error) {
	var (
		user          core.UserProfile
		monthlyIncome sql.NullInt64
		createdAt     string
		updatedAt     string
	)
	err := row.Scan(&user.ID, &user.Username, &user.FullName, &user.Email,
		&user.Phone, &user.Avatar, &user.Occupation, &monthlyIncome,
		&createdAt, &updatedAt)
	if err != nil {
		return core.UserProfile{}, err
	}
	if monthlyIncome.Valid {
		user.MonthlyIncome = &core.Money{Cents: monthlyIncome.Int64}
	}
	if user.CreatedAt, err = time.Parse(timestampLayout, createdAt); err != nil {
		return core.UserProfile{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if user.UpdatedAt, err = time.Parse(timestampLayout, updatedAt); err != nil {
		return core.UserProfile{}, fmt.Errorf("parse updated_at %q: %w", updatedAt, err)
	}
	return user, nil
}
