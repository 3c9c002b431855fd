package queries

import (
	"context"
	"time"

	"branch-requests/internal/infra"
	"branch-requests/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrBranchNotFound = errs.New("branch not found")

type BranchView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

type BranchReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BranchView, error)
	ListAll(ctx context.Context) ([]*BranchView, error)
}

type BranchQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BranchView, error)
	ListAll(ctx context.Context) ([]*BranchView, error)
}

type branchQueriesImpl struct {
	repo BranchReadStore
}

func NewBranchQueries(repo BranchReadStore) BranchQueries {
	return &branchQueriesImpl{repo: repo}
}

func (q *branchQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BranchView, error) {
	bv, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return bv, nil
}

func (q *branchQueriesImpl) ListAll(ctx context.Context) ([]*BranchView, error) {
	bvs, err := q.repo.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return bvs, nil
}
