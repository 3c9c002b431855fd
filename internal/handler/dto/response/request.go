package response

import (
	"time"

	domrequest "branch-requests/internal/domain/request"
	"branch-requests/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

type CreateRequestResponse struct {
	ID uuid.UUID `json:"id"`
}

type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func FromViolations(violations domrequest.Violations) []FieldErrorResponse {
	out := make([]FieldErrorResponse, 0, len(violations))
	for _, v := range violations {
		out = append(out, FieldErrorResponse{Field: v.Field, Message: v.Message})
	}
	return out
}

type RequestListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	BranchName    string    `json:"branch_name"`
	RequesterName string    `json:"requester_name"`
	RequestDate   string    `json:"request_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
}

type RequestPageResponse struct {
	Items []RequestListItemResponse `json:"items"`
	Total int                       `json:"total"`
	Page  int                       `json:"page"`
	Size  int                       `json:"size"`
}

func FromRequestPage(page *queries.RequestPage) RequestPageResponse {
	items := make([]RequestListItemResponse, 0, len(page.Items))
	for _, item := range page.Items {
		items = append(items, RequestListItemResponse{
			ID:            item.ID,
			Title:         item.Title,
			BranchName:    item.BranchName,
			RequesterName: item.RequesterName,
			RequestDate:   item.RequestDate.Format(dateFormat),
			StartTime:     item.StartTime,
			EndTime:       item.EndTime,
			Status:        item.Status,
		})
	}
	return RequestPageResponse{
		Items: items,
		Total: page.Total,
		Page:  page.Page,
		Size:  page.Size,
	}
}

type HistoryEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Reason    *string   `json:"reason,omitempty"`
	ChangedBy string    `json:"changed_by"`
	ChangedAt time.Time `json:"changed_at"`
}

type RequestDetailResponse struct {
	ID            uuid.UUID              `json:"id"`
	BranchID      uuid.UUID              `json:"branch_id"`
	BranchName    string                 `json:"branch_name"`
	RequesterID   uuid.UUID              `json:"requester_id"`
	RequesterName string                 `json:"requester_name"`
	Title         string                 `json:"title"`
	Description   *string                `json:"description,omitempty"`
	RequestDate   string                 `json:"request_date"`
	StartTime     string                 `json:"start_time"`
	EndTime       string                 `json:"end_time"`
	Status        string                 `json:"status"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	History       []HistoryEntryResponse `json:"history"`
}

func FromRequestDetail(view *queries.RequestDetailView) RequestDetailResponse {
	history := make([]HistoryEntryResponse, 0, len(view.History))
	for _, entry := range view.History {
		history = append(history, HistoryEntryResponse{
			ID:        entry.ID,
			Status:    entry.Status,
			Reason:    entry.Reason,
			ChangedBy: entry.ChangedBy,
			ChangedAt: entry.ChangedAt,
		})
	}
	return RequestDetailResponse{
		ID:            view.ID,
		BranchID:      view.BranchID,
		BranchName:    view.BranchName,
		RequesterID:   view.RequesterID,
		RequesterName: view.RequesterName,
		Title:         view.Title,
		Description:   view.Description,
		RequestDate:   view.RequestDate.Format(dateFormat),
		StartTime:     view.StartTime,
		EndTime:       view.EndTime,
		Status:        view.Status,
		CreatedAt:     view.CreatedAt,
		UpdatedAt:     view.UpdatedAt,
		History:       history,
	}
}
