// Package db persists accounts and character profiles to PostgreSQL.
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/skillmine/core/internal/model"
)

// DB wraps a pgx connection pool for account operations.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool for the repositories.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// HashPassword hashes a password with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GetAccount retrieves an account by username.
// Returns nil, nil if the account does not exist.
func (d *DB) GetAccount(ctx context.Context, username string) (*model.Account, error) {
	username = strings.ToLower(username)
	var acc model.Account
	var lastLogin *time.Time // nullable
	err := d.pool.QueryRow(ctx,
		`SELECT username, password_hash, created_at, last_login
		 FROM accounts WHERE username = $1`, username,
	).Scan(&acc.Username, &acc.PasswordHash, &acc.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying account %q: %w", username, err)
	}
	if lastLogin != nil {
		acc.LastLogin = *lastLogin
	}
	return &acc, nil
}

// CreateAccount inserts a new account with a bcrypt-hashed password.
func (d *DB) CreateAccount(ctx context.Context, username, password string) error {
	username = strings.ToLower(username)
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	_, err = d.pool.Exec(ctx,
		`INSERT INTO accounts (username, password_hash) VALUES ($1, $2)`,
		username, hash,
	)
	if err != nil {
		return fmt.Errorf("creating account %q: %w", username, err)
	}
	return nil
}

// GetOrCreateAccount returns the existing account or registers a new
// one with the given password. An existing account keeps its password.
func (d *DB) GetOrCreateAccount(ctx context.Context, username, password string) (*model.Account, error) {
	username = strings.ToLower(username)
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	tag, err := d.pool.Exec(ctx,
		`INSERT INTO accounts (username, password_hash) VALUES ($1, $2)
		 ON CONFLICT (username) DO NOTHING`,
		username, hash,
	)
	if err != nil {
		return nil, fmt.Errorf("registering account %q: %w", username, err)
	}
	if tag.RowsAffected() > 0 {
		slog.Info("auto-created account", "username", username)
	}
	return d.GetAccount(ctx, username)
}

// Authenticate checks the password for username. Returns the account on
// success and nil when the account is missing or the password is wrong.
func (d *DB) Authenticate(ctx context.Context, username, password string) (*model.Account, error) {
	acc, err := d.GetAccount(ctx, username)
	if err != nil || acc == nil {
		return nil, err
	}
	if !CheckPassword(acc.PasswordHash, password) {
		return nil, nil
	}
	return acc, nil
}

// UpdateLastLogin stamps the account's most recent login time.
func (d *DB) UpdateLastLogin(ctx context.Context, username string) error {
	_, err := d.pool.Exec(ctx,
		`UPDATE accounts SET last_login = now() WHERE username = $1`,
		strings.ToLower(username),
	)
	if err != nil {
		return fmt.Errorf("updating last login for %q: %w", username, err)
	}
	return nil
}
