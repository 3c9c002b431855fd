//go:build unit

package builder

import (
	"time"

	domrequest "branch-requests/internal/domain/request"
	reqdto "branch-requests/internal/handler/dto/request"
	"branch-requests/internal/usecase/commands"
	"branch-requests/internal/usecase/queries"
	"branch-requests/internal/usecase/shared"

	"github.com/google/uuid"
)

const dateFormat = "2006-01-02"

type RequestBuilder struct {
	RequesterID   uuid.UUID
	RequesterName string
	BranchID      uuid.UUID
	BranchName    string
	Title         string
	Description   *string
	Date          time.Time
	StartTime     string
	EndTime       string
	Status        domrequest.Status
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewRequestBuilder() *RequestBuilder {
	now := time.Now()
	return &RequestBuilder{
		RequesterID:   uuid.New(),
		RequesterName: "requester@example.com",
		BranchID:      uuid.New(),
		BranchName:    "Central Branch",
		Title:         "Quarterly account review",
		Description:   nil,
		Date:          now.AddDate(0, 0, 7),
		StartTime:     "09:30",
		EndTime:       "10:30",
		Status:        domrequest.StatusDraft,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (r *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(r)
	return r
}

// Build methods
func (r *RequestBuilder) BuildDraftInput() domrequest.DraftInput {
	start, err := domrequest.ParseTimeOfDay(r.StartTime)
	if err != nil {
		panic("builder: invalid start time: " + r.StartTime)
	}
	end, err := domrequest.ParseTimeOfDay(r.EndTime)
	if err != nil {
		panic("builder: invalid end time: " + r.EndTime)
	}
	return domrequest.DraftInput{
		BranchID:    r.BranchID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		StartTime:   start,
		EndTime:     end,
	}
}

func (r *RequestBuilder) BuildDomain() (*domrequest.Request, domrequest.Violations) {
	return domrequest.NewDraft(r.BuildDraftInput(), r.RequesterID, time.Now())
}

func (r *RequestBuilder) BuildCommandInput() commands.DraftInput {
	return commands.DraftInput{
		BranchID:    r.BranchID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date.Format(dateFormat),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

func (r *RequestBuilder) BuildCreateRequestDTO() reqdto.CreateRequestRequest {
	return reqdto.CreateRequestRequest{
		BranchID:    r.BranchID,
		Title:       r.Title,
		Description: r.Description,
		RequestDate: r.Date.Format(dateFormat),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

func (r *RequestBuilder) BuildUpdateRequestDTO() reqdto.UpdateRequestRequest {
	return reqdto.UpdateRequestRequest{
		BranchID:    r.BranchID,
		Title:       r.Title,
		Description: r.Description,
		RequestDate: r.Date.Format(dateFormat),
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
	}
}

func (r *RequestBuilder) BuildSnapshot() *shared.RequestSnapshot {
	input := r.BuildDraftInput()
	return &shared.RequestSnapshot{
		ID:          uuid.New(),
		BranchID:    r.BranchID,
		RequesterID: r.RequesterID,
		Title:       r.Title,
		Description: r.Description,
		Date:        r.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		Status:      r.Status,
		Version:     r.Version,
	}
}

func (r *RequestBuilder) BuildListItem() *queries.RequestListItemView {
	return &queries.RequestListItemView{
		ID:            uuid.New(),
		Title:         r.Title,
		BranchName:    r.BranchName,
		RequesterName: r.RequesterName,
		RequestDate:   r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status.String(),
	}
}

func (r *RequestBuilder) BuildDetailView() *queries.RequestDetailView {
	return &queries.RequestDetailView{
		ID:            uuid.New(),
		BranchID:      r.BranchID,
		BranchName:    r.BranchName,
		RequesterID:   r.RequesterID,
		RequesterName: r.RequesterName,
		Title:         r.Title,
		Description:   r.Description,
		RequestDate:   r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status.String(),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
		History:       []*queries.HistoryEntryView{},
	}
}

// Fluent builder methods
func (r *RequestBuilder) WithRequesterID(id uuid.UUID) *RequestBuilder {
	r.RequesterID = id
	return r
}

func (r *RequestBuilder) WithBranchID(id uuid.UUID) *RequestBuilder {
	r.BranchID = id
	return r
}

func (r *RequestBuilder) WithTitle(title string) *RequestBuilder {
	r.Title = title
	return r
}

func (r *RequestBuilder) WithDescription(description string) *RequestBuilder {
	r.Description = &description
	return r
}

func (r *RequestBuilder) WithDate(date time.Time) *RequestBuilder {
	r.Date = date
	return r
}

func (r *RequestBuilder) WithTimes(start, end string) *RequestBuilder {
	r.StartTime = start
	r.EndTime = end
	return r
}

func (r *RequestBuilder) WithStatus(status domrequest.Status) *RequestBuilder {
	r.Status = status
	return r
}

func (r *RequestBuilder) WithVersion(version int) *RequestBuilder {
	r.Version = version
	return r
}

func (r *RequestBuilder) AsPending() *RequestBuilder {
	r.Status = domrequest.StatusPending
	return r
}

func (r *RequestBuilder) AsRejected() *RequestBuilder {
	r.Status = domrequest.StatusRejected
	return r
}
