package approval

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS approvals (
	id TEXT PRIMARY KEY,
	path TEXT NOT NULL,
	quality_score REAL NOT NULL,
	fixes TEXT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMP NOT NULL,
	decided_at TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_approvals_status ON approvals(status);
`

// Store persists approval requests in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the approval database at path.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists a request with status pending.
func (s *Store) Save(ctx context.Context, req *Request) error {
	fixes, err := json.Marshal(req.Fixes)
	if err != nil {
		return fmt.Errorf("marshaling fixes: %w", err)
	}

	if req.Status == "" {
		req.Status = StatusPending
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO approvals (id, path, quality_score, fixes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		req.ID, req.Path, req.QualityScore, string(fixes), req.Status, req.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving approval request: %w", err)
	}
	return nil
}

// ListPending returns all pending requests, oldest first.
func (s *Store) ListPending(ctx context.Context) ([]*Request, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, path, quality_score, fixes, status, created_at, decided_at
		FROM approvals WHERE status = ? ORDER BY created_at`, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("listing pending approvals: %w", err)
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating approvals: %w", err)
	}
	return requests, nil
}

// Get retrieves a request by ID.
func (s *Store) Get(ctx context.Context, id string) (*Request, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, path, quality_score, fixes, status, created_at, decided_at
		FROM approvals WHERE id = ?`, id)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("approval request %s not found", id)
	}
	return req, err
}

// Approve marks a pending request approved.
func (s *Store) Approve(ctx context.Context, id string) error {
	return s.decide(ctx, id, StatusApproved)
}

// Deny marks a pending request denied.
func (s *Store) Deny(ctx context.Context, id string) error {
	return s.decide(ctx, id, StatusDenied)
}

func (s *Store) decide(ctx context.Context, id, status string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE approvals SET status = ?, decided_at = ?
		WHERE id = ? AND status = ?`,
		status, time.Now(), id, StatusPending)
	if err != nil {
		return fmt.Errorf("updating approval %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no pending approval request %s", id)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*Request, error) {
	var req Request
	var fixes string
	var decidedAt sql.NullTime

	err := row.Scan(&req.ID, &req.Path, &req.QualityScore, &fixes,
		&req.Status, &req.CreatedAt, &decidedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fixes), &req.Fixes); err != nil {
		return nil, fmt.Errorf("unmarshaling fixes: %w", err)
	}
	if decidedAt.Valid {
		req.DecidedAt = &decidedAt.Time
	}
	return &req, nil
}
