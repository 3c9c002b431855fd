package repository

import (
	"context"
	"errors"
	"log/slog"

	"branch-requests/internal/domain/request"
	"branch-requests/internal/infra"
	"branch-requests/internal/infra/db"
	"branch-requests/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type RequestRepository struct {
	logger *slog.Logger
}

func NewRequestRepository(logger *slog.Logger) *RequestRepository {
	return &RequestRepository{logger: logger}
}

const insertRequestSQL = `
INSERT INTO requests (id, branch_id, requester_id, title, description, request_date, start_time, end_time, status, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
`

func (r *RequestRepository) Create(ctx context.Context, tx db.DBTX, req *request.Request) (uuid.UUID, error) {
	_, err := tx.Exec(ctx, insertRequestSQL,
		pgconv.UUIDToPgtype(req.ID()),
		pgconv.UUIDToPgtype(req.BranchID()),
		pgconv.UUIDToPgtype(req.RequesterID()),
		req.Title(),
		pgconv.StringPtrToPgtype(req.Description()),
		pgconv.DateToPgtype(req.Date()),
		pgconv.MinutesToPgTime(req.StartTime().Minutes()),
		pgconv.MinutesToPgTime(req.EndTime().Minutes()),
		req.Status().String(),
		req.Version(),
	)
	if err != nil {
		return uuid.Nil, r.wrapWriteErr("failed to insert request", err)
	}
	return req.ID(), nil
}

const updateRequestSQL = `
UPDATE requests
SET branch_id = $2, title = $3, description = $4, request_date = $5, start_time = $6, end_time = $7,
    version = version + 1, updated_at = now()
WHERE id = $1 AND version = $8
`

func (r *RequestRepository) Update(ctx context.Context, tx db.DBTX, req *request.Request, expectedVersion int) error {
	tag, err := tx.Exec(ctx, updateRequestSQL,
		pgconv.UUIDToPgtype(req.ID()),
		pgconv.UUIDToPgtype(req.BranchID()),
		req.Title(),
		pgconv.StringPtrToPgtype(req.Description()),
		pgconv.DateToPgtype(req.Date()),
		pgconv.MinutesToPgTime(req.StartTime().Minutes()),
		pgconv.MinutesToPgTime(req.EndTime().Minutes()),
		expectedVersion,
	)
	if err != nil {
		return r.wrapWriteErr("failed to update request", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyZeroRowUpdate(ctx, tx, req.ID())
	}
	return nil
}

const updateRequestStatusSQL = `
UPDATE requests
SET status = $2, version = version + 1, updated_at = now()
WHERE id = $1 AND version = $3
`

func (r *RequestRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status request.Status, expectedVersion int) error {
	tag, err := tx.Exec(ctx, updateRequestStatusSQL,
		pgconv.UUIDToPgtype(id),
		status.String(),
		expectedVersion,
	)
	if err != nil {
		return r.wrapWriteErr("failed to update request status", err)
	}
	if tag.RowsAffected() == 0 {
		return r.classifyZeroRowUpdate(ctx, tx, id)
	}
	return nil
}

// classifyZeroRowUpdate distinguishes a vanished row from a version mismatch.
func (r *RequestRepository) classifyZeroRowUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	var exists bool
	err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`, pgconv.UUIDToPgtype(id)).Scan(&exists)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check request existence", err)
	}
	if !exists {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "request not found", nil)
	}
	return infra.WrapRepoErr(r.logger, infra.KindConflict, "request version mismatch", nil)
}

func (r *RequestRepository) wrapWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, msg, err)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, msg, err)
		}
	}
	return infra.WrapRepoErr(r.logger, infra.KindDBFailure, msg, err)
}
