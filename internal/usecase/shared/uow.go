package shared

import (
	"context"
	"time"

	"branch-requests/internal/domain/request"
	"branch-requests/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Requests() RequestRepository
	History() HistoryRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	RequestByID(ctx context.Context, id uuid.UUID) (*RequestSnapshot, error)
	BranchByID(ctx context.Context, id uuid.UUID) (*BranchSnapshot, error)
	// UserDisplayNameByID returns nil when the user has no resolvable name.
	UserDisplayNameByID(ctx context.Context, id uuid.UUID) (*string, error)
}

// Minimal snapshots for command read operations
type RequestSnapshot struct {
	ID          uuid.UUID
	BranchID    uuid.UUID
	RequesterID uuid.UUID
	Title       string
	Description *string
	Date        time.Time
	StartTime   request.TimeOfDay
	EndTime     request.TimeOfDay
	Status      request.Status
	Version     int
}

type BranchSnapshot struct {
	ID   uuid.UUID
	Name string
}

type RequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *request.Request) (uuid.UUID, error)
	// Update asserts expectedVersion and bumps it; a version mismatch on an
	// existing row surfaces as a conflict.
	Update(ctx context.Context, tx db.DBTX, req *request.Request, expectedVersion int) error
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status request.Status, expectedVersion int) error
}

type HistoryRepository interface {
	Append(ctx context.Context, tx db.DBTX, entry *request.HistoryEntry) error
}
