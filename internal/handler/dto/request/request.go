package request

import (
	"branch-requests/internal/usecase/commands"

	"github.com/google/uuid"
)

// Length and format rules live in the domain validator so failures come back
// as field-scoped violations; binding only rejects structurally broken JSON.
type CreateRequestRequest struct {
	BranchID    uuid.UUID `json:"branch_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	RequestDate string    `json:"request_date" binding:"required"`
	StartTime   string    `json:"start_time" binding:"required"`
	EndTime     string    `json:"end_time" binding:"required"`
}

func (r *CreateRequestRequest) ToInput() commands.DraftInput {
	return commands.DraftInput{
		BranchID:    r.BranchID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.RequestDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

type UpdateRequestRequest struct {
	BranchID    uuid.UUID `json:"branch_id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	RequestDate string    `json:"request_date" binding:"required"`
	StartTime   string    `json:"start_time" binding:"required"`
	EndTime     string    `json:"end_time" binding:"required"`
}

func (r *UpdateRequestRequest) ToInput() commands.DraftInput {
	return commands.DraftInput{
		BranchID:    r.BranchID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.RequestDate,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

type ApproveRequestRequest struct {
	Reason *string `json:"reason"`
}

type RejectRequestRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ListRequestsQuery struct {
	Status  string `form:"status"`
	From    string `form:"from"`
	To      string `form:"to"`
	Search  string `form:"search"`
	Page    int    `form:"page"`
	Size    int    `form:"size"`
	SortBy  string `form:"sort_by"`
	SortDir string `form:"sort_dir"`
}
