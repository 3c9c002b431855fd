package repository

import (
	"context"
	"errors"
	"log/slog"

	"branch-requests/internal/domain/request"
	"branch-requests/internal/infra"
	"branch-requests/internal/infra/db"
	"branch-requests/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgconn"
)

type HistoryRepository struct {
	logger *slog.Logger
}

func NewHistoryRepository(logger *slog.Logger) *HistoryRepository {
	return &HistoryRepository{logger: logger}
}

const insertHistorySQL = `
INSERT INTO request_status_history (id, request_id, status, reason, changed_by, changed_by_name, changed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *HistoryRepository) Append(ctx context.Context, tx db.DBTX, entry *request.HistoryEntry) error {
	_, err := tx.Exec(ctx, insertHistorySQL,
		pgconv.UUIDToPgtype(entry.ID()),
		pgconv.UUIDToPgtype(entry.RequestID()),
		entry.Status().String(),
		pgconv.StringPtrToPgtype(entry.Reason()),
		pgconv.UUIDToPgtype(entry.ChangedBy()),
		pgconv.StringPtrToPgtype(entry.ChangedByName()),
		pgconv.TimeToPgtype(entry.ChangedAt()),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeForeignKeyViolation {
			return infra.WrapRepoErr(r.logger, infra.KindForeignKeyViolated, "failed to append history entry", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to append history entry", err)
	}
	return nil
}
