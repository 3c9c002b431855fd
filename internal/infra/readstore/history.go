package readstore

import (
	"context"
	"log/slog"

	"branch-requests/internal/infra"
	"branch-requests/internal/infra/db"
	"branch-requests/internal/pkg/pgconv"
	"branch-requests/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type HistoryReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewHistoryReadStore(dbtx db.DBTX, logger *slog.Logger) *HistoryReadStore {
	return &HistoryReadStore{db: dbtx, logger: logger}
}

// changed_by_name is the display name captured at write time; when it is NULL
// the raw identity is shown instead.
const listHistorySQL = `
SELECT id, status, reason, COALESCE(changed_by_name, changed_by::text), changed_at
FROM request_status_history
WHERE request_id = $1
ORDER BY changed_at DESC, id DESC
`

func (r *HistoryReadStore) ListByRequestID(ctx context.Context, requestID uuid.UUID) ([]*queries.HistoryEntryView, error) {
	rows, err := r.db.Query(ctx, listHistorySQL, pgconv.UUIDToPgtype(requestID))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list history entries", err)
	}
	defer rows.Close()

	var entries []*queries.HistoryEntryView
	for rows.Next() {
		var (
			id        pgtype.UUID
			status    string
			reason    pgtype.Text
			changedBy string
			changedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &status, &reason, &changedBy, &changedAt); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan history row", err)
		}
		entries = append(entries, &queries.HistoryEntryView{
			ID:        uuid.UUID(id.Bytes),
			Status:    status,
			Reason:    pgconv.StringPtrFromPgtype(reason),
			ChangedBy: changedBy,
			ChangedAt: pgconv.TimeFromPgtype(changedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate history rows", err)
	}
	return entries, nil
}
