package readstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"branch-requests/internal/infra"
	"branch-requests/internal/infra/db"
	"branch-requests/internal/pkg/pgconv"
	"branch-requests/internal/usecase/queries"
	"branch-requests/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RequestReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewRequestReadStore(dbtx db.DBTX, logger *slog.Logger) *RequestReadStore {
	return &RequestReadStore{db: dbtx, logger: logger}
}

// buildRequestFilterClause assembles the WHERE clause shared by Count and
// List. Placeholders continue from the returned arg slice.
func buildRequestFilterClause(requesterID *uuid.UUID, filters queries.RequestFilters) (string, []any) {
	conds := []string{"1 = 1"}
	var args []any

	if requesterID != nil {
		args = append(args, pgconv.UUIDToPgtype(*requesterID))
		conds = append(conds, fmt.Sprintf("r.requester_id = $%d", len(args)))
	}
	if filters.Status != nil {
		args = append(args, filters.Status.String())
		conds = append(conds, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filters.From != nil {
		args = append(args, pgconv.DateToPgtype(*filters.From))
		conds = append(conds, fmt.Sprintf("r.request_date >= $%d", len(args)))
	}
	if filters.To != nil {
		args = append(args, pgconv.DateToPgtype(*filters.To))
		conds = append(conds, fmt.Sprintf("r.request_date <= $%d", len(args)))
	}
	if filters.Search != nil && strings.TrimSpace(*filters.Search) != "" {
		args = append(args, "%"+strings.TrimSpace(*filters.Search)+"%")
		conds = append(conds, fmt.Sprintf("(r.title ILIKE $%d OR r.description ILIKE $%d)", len(args), len(args)))
	}

	return strings.Join(conds, " AND "), args
}

// statusRankSQL mirrors the workflow order used by Status.Rank.
const statusRankSQL = "CASE r.status WHEN 'draft' THEN 0 WHEN 'pending' THEN 1 WHEN 'approved' THEN 2 ELSE 3 END"

func buildOrderByClause(sort queries.Sort) string {
	dir := "ASC"
	if sort.Direction == queries.SortDesc {
		dir = "DESC"
	}
	if sort.Field == queries.SortByStatus {
		return fmt.Sprintf("%s %s, r.request_date %s, r.start_time %s", statusRankSQL, dir, dir, dir)
	}
	return fmt.Sprintf("r.request_date %s, r.start_time %s", dir, dir)
}

func (r *RequestReadStore) Count(ctx context.Context, requesterID *uuid.UUID, filters queries.RequestFilters) (int, error) {
	where, args := buildRequestFilterClause(requesterID, filters)
	sql := "SELECT COUNT(*) FROM requests r WHERE " + where

	var count int
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to count requests", err)
	}
	return count, nil
}

func (r *RequestReadStore) List(ctx context.Context, requesterID *uuid.UUID, filters queries.RequestFilters, sort queries.Sort, limit, offset int) ([]*queries.RequestListItemView, error) {
	where, args := buildRequestFilterClause(requesterID, filters)
	args = append(args, limit, offset)

	sql := fmt.Sprintf(`
SELECT r.id, r.title, b.name, u.email, r.request_date, r.start_time, r.end_time, r.status
FROM requests r
JOIN branches b ON b.id = r.branch_id
JOIN users u ON u.id = r.requester_id
WHERE %s
ORDER BY %s
LIMIT $%d OFFSET $%d`, where, buildOrderByClause(sort), len(args)-1, len(args))

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list requests", err)
	}
	defer rows.Close()

	items := make([]*queries.RequestListItemView, 0, limit)
	for rows.Next() {
		var (
			id          pgtype.UUID
			title       string
			branchName  string
			email       string
			requestDate pgtype.Date
			startTime   pgtype.Time
			endTime     pgtype.Time
			status      string
		)
		if err := rows.Scan(&id, &title, &branchName, &email, &requestDate, &startTime, &endTime, &status); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan request row", err)
		}
		items = append(items, &queries.RequestListItemView{
			ID:            uuid.UUID(id.Bytes),
			Title:         title,
			BranchName:    branchName,
			RequesterName: email,
			RequestDate:   pgconv.DateFromPgtype(requestDate),
			StartTime:     formatMinutes(pgconv.MinutesFromPgTime(startTime)),
			EndTime:       formatMinutes(pgconv.MinutesFromPgTime(endTime)),
			Status:        status,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate request rows", err)
	}
	return items, nil
}

const findRequestDetailSQL = `
SELECT r.id, r.branch_id, b.name, r.requester_id, u.email, r.title, r.description,
       r.request_date, r.start_time, r.end_time, r.status, r.created_at, r.updated_at
FROM requests r
JOIN branches b ON b.id = r.branch_id
JOIN users u ON u.id = r.requester_id
WHERE r.id = $1
`

func (r *RequestReadStore) FindDetailByID(ctx context.Context, id uuid.UUID) (*queries.RequestDetailView, error) {
	var (
		reqID       pgtype.UUID
		branchID    pgtype.UUID
		branchName  string
		requesterID pgtype.UUID
		email       string
		title       string
		description pgtype.Text
		requestDate pgtype.Date
		startTime   pgtype.Time
		endTime     pgtype.Time
		status      string
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findRequestDetailSQL, pgconv.UUIDToPgtype(id)).Scan(
		&reqID, &branchID, &branchName, &requesterID, &email, &title, &description,
		&requestDate, &startTime, &endTime, &status, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "request not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get request detail", err)
	}

	return &queries.RequestDetailView{
		ID:            uuid.UUID(reqID.Bytes),
		BranchID:      uuid.UUID(branchID.Bytes),
		BranchName:    branchName,
		RequesterID:   uuid.UUID(requesterID.Bytes),
		RequesterName: email,
		Title:         title,
		Description:   pgconv.StringPtrFromPgtype(description),
		RequestDate:   pgconv.DateFromPgtype(requestDate),
		StartTime:     formatMinutes(pgconv.MinutesFromPgTime(startTime)),
		EndTime:       formatMinutes(pgconv.MinutesFromPgTime(endTime)),
		Status:        status,
		CreatedAt:     pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:     pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

const findRequestSnapshotSQL = `
SELECT id, branch_id, requester_id, title, description, request_date, start_time, end_time, status, version
FROM requests
WHERE id = $1
`

func (r *RequestReadStore) FindSnapshotByID(ctx context.Context, id uuid.UUID) (*shared.RequestSnapshot, error) {
	var (
		reqID       pgtype.UUID
		branchID    pgtype.UUID
		requesterID pgtype.UUID
		title       string
		description pgtype.Text
		requestDate pgtype.Date
		startTime   pgtype.Time
		endTime     pgtype.Time
		status      string
		version     int
	)
	err := r.db.QueryRow(ctx, findRequestSnapshotSQL, pgconv.UUIDToPgtype(id)).Scan(
		&reqID, &branchID, &requesterID, &title, &description,
		&requestDate, &startTime, &endTime, &status, &version,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "request not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get request snapshot", err)
	}

	domStatus, err := domainStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "unknown status in storage", err)
	}
	start, err := domainTime(pgconv.MinutesFromPgTime(startTime))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid start time in storage", err)
	}
	end, err := domainTime(pgconv.MinutesFromPgTime(endTime))
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid end time in storage", err)
	}

	return &shared.RequestSnapshot{
		ID:          uuid.UUID(reqID.Bytes),
		BranchID:    uuid.UUID(branchID.Bytes),
		RequesterID: uuid.UUID(requesterID.Bytes),
		Title:       title,
		Description: pgconv.StringPtrFromPgtype(description),
		Date:        pgconv.DateFromPgtype(requestDate),
		StartTime:   start,
		EndTime:     end,
		Status:      domStatus,
		Version:     version,
	}, nil
}

func formatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
