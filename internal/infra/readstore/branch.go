package readstore

import (
	"context"
	"log/slog"

	"branch-requests/internal/domain/branch"
	"branch-requests/internal/infra"
	"branch-requests/internal/infra/db"
	"branch-requests/internal/pkg/pgconv"
	"branch-requests/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BranchReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBranchReadStore(dbtx db.DBTX, logger *slog.Logger) *BranchReadStore {
	return &BranchReadStore{db: dbtx, logger: logger}
}

const findBranchSQL = `
SELECT id, name, location, created_at
FROM branches
WHERE id = $1
`

// FindEntityByID loads the branch aggregate; list and detail views are
// projected from it.
func (r *BranchReadStore) FindEntityByID(ctx context.Context, id uuid.UUID) (*branch.Branch, error) {
	var (
		branchID  pgtype.UUID
		name      string
		location  string
		createdAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findBranchSQL, pgconv.UUIDToPgtype(id)).Scan(&branchID, &name, &location, &createdAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "branch not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get branch by id", err)
	}
	return branch.ReconstructBranch(uuid.UUID(branchID.Bytes), name, location, pgconv.TimeFromPgtype(createdAt)), nil
}

func (r *BranchReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BranchView, error) {
	entity, err := r.FindEntityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return branchView(entity), nil
}

const listBranchesSQL = `
SELECT id, name, location, created_at
FROM branches
ORDER BY name
`

func (r *BranchReadStore) ListAll(ctx context.Context) ([]*queries.BranchView, error) {
	rows, err := r.db.Query(ctx, listBranchesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list branches", err)
	}
	defer rows.Close()

	var branches []*queries.BranchView
	for rows.Next() {
		var (
			branchID  pgtype.UUID
			name      string
			location  string
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&branchID, &name, &location, &createdAt); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan branch row", err)
		}
		entity := branch.ReconstructBranch(uuid.UUID(branchID.Bytes), name, location, pgconv.TimeFromPgtype(createdAt))
		branches = append(branches, branchView(entity))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate branch rows", err)
	}
	return branches, nil
}

func branchView(b *branch.Branch) *queries.BranchView {
	return &queries.BranchView{
		ID:        b.ID(),
		Name:      b.Name(),
		Location:  b.Location(),
		CreatedAt: b.CreatedAt(),
	}
}
