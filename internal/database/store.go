package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for user registry operations.
// Methods accept context.Context for cancellation and timeouts.
//
// Every mutation is a single atomic upsert keyed by user_id, so overlapping
// calls from concurrent handlers cannot corrupt the uniqueness invariant and
// no in-process locking is needed.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// UpsertUser creates a user record if absent, else updates the username.
	// The approved flag is preserved across re-registration.
	UpsertUser(ctx context.Context, userID int64, username string) error

	// ApproveUser sets approved for the given user, creating the record if
	// it does not exist yet so approval never silently no-ops.
	ApproveUser(ctx context.Context, userID int64) error

	// IsApproved reports whether the user exists and is approved.
	// A missing record is not an error; it reports false.
	IsApproved(ctx context.Context, userID int64) (bool, error)

	// GetUser retrieves a user record by ID. Returns nil, nil if not found.
	GetUser(ctx context.Context, userID int64) (*User, error)

	// ListApprovedUserIDs returns a snapshot of all approved user IDs.
	// Order is not guaranteed.
	ListApprovedUserIDs(ctx context.Context) ([]int64, error)

	// RunMaintenance performs database maintenance tasks like VACUUM.
	RunMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// UpsertUser creates or refreshes a user record in a single statement.
// ON CONFLICT leaves the approved column untouched, so an approved user
// re-running /start keeps their access.
func (s *sqlxStore) UpsertUser(ctx context.Context, userID int64, username string) error {
	if userID == 0 {
		return fmt.Errorf("user_id cannot be zero")
	}

	now := time.Now().UTC()
	query := `
        INSERT INTO users (user_id, username, approved, created_at, updated_at)
        VALUES (?, ?, 0, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET
            username   = excluded.username,
            updated_at = excluded.updated_at;
    `

	if _, err := s.db.ExecContext(ctx, query, userID, username, now, now); err != nil {
		s.logger.ErrorContext(ctx, "Error upserting user", "user_id", userID, "error", err)
		return fmt.Errorf("failed to upsert user %d: %w", userID, err)
	}

	s.logger.DebugContext(ctx, "User upserted successfully", "user_id", userID, "username", username)
	return nil
}

// ApproveUser marks a user as approved. Upsert semantics: approving an
// id the bot has never seen creates the record with an empty username,
// which a later /start fills in.
func (s *sqlxStore) ApproveUser(ctx context.Context, userID int64) error {
	if userID == 0 {
		return fmt.Errorf("user_id cannot be zero")
	}

	now := time.Now().UTC()
	query := `
        INSERT INTO users (user_id, username, approved, created_at, updated_at)
        VALUES (?, '', 1, ?, ?)
        ON CONFLICT(user_id) DO UPDATE SET
            approved   = 1,
            updated_at = excluded.updated_at;
    `

	if _, err := s.db.ExecContext(ctx, query, userID, now, now); err != nil {
		s.logger.ErrorContext(ctx, "Error approving user", "user_id", userID, "error", err)
		return fmt.Errorf("failed to approve user %d: %w", userID, err)
	}

	s.logger.InfoContext(ctx, "User approved", "user_id", userID)
	return nil
}

// IsApproved reports the approval state for a user ID. Missing records
// report false without an error.
func (s *sqlxStore) IsApproved(ctx context.Context, userID int64) (bool, error) {
	var approved bool
	query := `SELECT approved FROM users WHERE user_id = ?;`

	err := s.db.GetContext(ctx, &approved, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		s.logger.ErrorContext(ctx, "Error checking approval state", "user_id", userID, "error", err)
		return false, fmt.Errorf("failed to check approval for user %d: %w", userID, err)
	}

	return approved, nil
}

// GetUser retrieves a user record by ID. Returns nil, nil if not found.
func (s *sqlxStore) GetUser(ctx context.Context, userID int64) (*User, error) {
	var user User
	query := `
        SELECT user_id, username, approved, created_at, updated_at
        FROM users
        WHERE user_id = ?;
    `

	err := s.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		s.logger.ErrorContext(ctx, "Error getting user", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return &user, nil
}

// ListApprovedUserIDs returns the IDs of all approved users at call time.
func (s *sqlxStore) ListApprovedUserIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	query := `SELECT user_id FROM users WHERE approved = 1;`

	if err := s.db.SelectContext(ctx, &ids, query); err != nil {
		s.logger.ErrorContext(ctx, "Error listing approved users", "error", err)
		return nil, fmt.Errorf("failed to list approved users: %w", err)
	}

	s.logger.DebugContext(ctx, "Listed approved users", "count", len(ids))
	return ids, nil
}

// RunMaintenance performs periodic database housekeeping.
func (s *sqlxStore) RunMaintenance(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Running database maintenance (VACUUM, ANALYZE)...")
	startTime := time.Now()

	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		s.logger.ErrorContext(ctx, "VACUUM failed", "error", err)
		return fmt.Errorf("vacuum failed: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "ANALYZE;"); err != nil {
		s.logger.ErrorContext(ctx, "ANALYZE failed", "error", err)
		return fmt.Errorf("analyze failed: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance completed", "duration", time.Since(startTime))
	return nil
}
