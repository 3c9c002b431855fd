package queries

import (
	"context"
	"time"

	"branch-requests/internal/domain/request"
	"branch-requests/internal/infra"
	"branch-requests/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound = errs.New("request not found")
	ErrQueryFailed     = errs.New("query failed")
)

type RequestListItemView struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	BranchName    string    `json:"branch_name"`
	RequesterName string    `json:"requester_name"`
	RequestDate   time.Time `json:"request_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
}

type HistoryEntryView struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Reason    *string   `json:"reason"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type RequestDetailView struct {
	ID            uuid.UUID           `json:"id"`
	BranchID      uuid.UUID           `json:"branch_id"`
	BranchName    string              `json:"branch_name"`
	RequesterID   uuid.UUID           `json:"requester_id"`
	RequesterName string              `json:"requester_name"`
	Title         string              `json:"title"`
	Description   *string             `json:"description"`
	RequestDate   time.Time           `json:"request_date"`
	StartTime     string              `json:"start_time"`
	EndTime       string              `json:"end_time"`
	Status        string              `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	History       []*HistoryEntryView `json:"history"`
}

type RequestPage struct {
	Items []*RequestListItemView `json:"items"`
	Total int                    `json:"total"`
	Page  int                    `json:"page"`
	Size  int                    `json:"size"`
}

type RequestFilters struct {
	Status *request.Status
	From   *time.Time
	To     *time.Time
	// Search matches title or description, case-insensitive substring.
	Search *string
}

type RequestReadStore interface {
	Count(ctx context.Context, requesterID *uuid.UUID, filters RequestFilters) (int, error)
	List(ctx context.Context, requesterID *uuid.UUID, filters RequestFilters, sort Sort, limit, offset int) ([]*RequestListItemView, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*RequestDetailView, error)
}

type HistoryReadStore interface {
	ListByRequestID(ctx context.Context, requestID uuid.UUID) ([]*HistoryEntryView, error)
}

type RequestQueries interface {
	ListMine(ctx context.Context, userID uuid.UUID, filters RequestFilters, page Page, sort Sort) (*RequestPage, error)
	// ListPending is the legacy admin view: status is forced to pending.
	ListPending(ctx context.Context, filters RequestFilters, page Page, sort Sort) (*RequestPage, error)
	ListAdmin(ctx context.Context, filters RequestFilters, page Page, sort Sort) (*RequestPage, error)
	GetDetailForUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*RequestDetailView, error)
	GetDetailForAdmin(ctx context.Context, id uuid.UUID) (*RequestDetailView, error)
}

type requestQueriesImpl struct {
	requests RequestReadStore
	history  HistoryReadStore
}

func NewRequestQueries(requests RequestReadStore, history HistoryReadStore) RequestQueries {
	return &requestQueriesImpl{requests: requests, history: history}
}

func (q *requestQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID, filters RequestFilters, page Page, sort Sort) (*RequestPage, error) {
	return q.list(ctx, &userID, filters, page, sort)
}

func (q *requestQueriesImpl) ListPending(ctx context.Context, filters RequestFilters, page Page, sort Sort) (*RequestPage, error) {
	pending := request.StatusPending
	filters.Status = &pending
	return q.list(ctx, nil, filters, page, sort)
}

func (q *requestQueriesImpl) ListAdmin(ctx context.Context, filters RequestFilters, page Page, sort Sort) (*RequestPage, error) {
	return q.list(ctx, nil, filters, page, sort)
}

// list counts first so an empty result set never hits the row query.
func (q *requestQueriesImpl) list(ctx context.Context, requesterID *uuid.UUID, filters RequestFilters, page Page, sort Sort) (*RequestPage, error) {
	page = page.Normalize()
	sort = sort.Normalize()

	total, err := q.requests.Count(ctx, requesterID, filters)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	if total == 0 {
		return &RequestPage{Items: []*RequestListItemView{}, Total: 0, Page: page.Number, Size: page.Size}, nil
	}

	items, err := q.requests.List(ctx, requesterID, filters, sort, page.Size, page.Offset())
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return &RequestPage{Items: items, Total: total, Page: page.Number, Size: page.Size}, nil
}

func (q *requestQueriesImpl) GetDetailForUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*RequestDetailView, error) {
	detail, err := q.getDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	// an unowned request is reported the same as an absent one
	if detail.RequesterID != userID {
		return nil, ErrRequestNotFound
	}
	return detail, nil
}

func (q *requestQueriesImpl) GetDetailForAdmin(ctx context.Context, id uuid.UUID) (*RequestDetailView, error) {
	return q.getDetail(ctx, id)
}

func (q *requestQueriesImpl) getDetail(ctx context.Context, id uuid.UUID) (*RequestDetailView, error) {
	detail, err := q.requests.FindDetailByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	history, err := q.history.ListByRequestID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	detail.History = history
	return detail, nil
}
