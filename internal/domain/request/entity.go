package request

import (
	"time"

	"github.com/google/uuid"
)

type Request struct {
	id          uuid.UUID
	branchID    uuid.UUID
	requesterID uuid.UUID
	title       string
	description *string
	date        time.Time
	startTime   TimeOfDay
	endTime     TimeOfDay
	status      Status
	version     int
	createdAt   time.Time
	updatedAt   time.Time
}

// NewDraft validates the input and builds a fresh draft request. A non-empty
// violation list means the request was not created.
func NewDraft(input DraftInput, requesterID uuid.UUID, today time.Time) (*Request, Violations) {
	if violations := ValidateDraftInput(input, today); !violations.IsEmpty() {
		return nil, violations
	}

	return &Request{
		id:          uuid.New(),
		branchID:    input.BranchID,
		requesterID: requesterID,
		title:       input.Title,
		description: input.Description,
		date:        input.Date,
		startTime:   input.StartTime,
		endTime:     input.EndTime,
		status:      StatusDraft,
		version:     1,
	}, nil
}

func ReconstructRequest(
	id, branchID, requesterID uuid.UUID,
	title string,
	description *string,
	date time.Time,
	startTime, endTime TimeOfDay,
	status Status,
	version int,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:          id,
		branchID:    branchID,
		requesterID: requesterID,
		title:       title,
		description: description,
		date:        date,
		startTime:   startTime,
		endTime:     endTime,
		status:      status,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Request) IsOwnedBy(userID uuid.UUID) bool {
	return r.requesterID == userID
}

func (r *Request) IsDraft() bool {
	return r.status == StatusDraft
}

// ApplyDraftUpdate replaces the editable fields of a draft in place.
func (r *Request) ApplyDraftUpdate(input DraftInput, today time.Time) Violations {
	if violations := ValidateDraftInput(input, today); !violations.IsEmpty() {
		return violations
	}

	r.branchID = input.BranchID
	r.title = input.Title
	r.description = input.Description
	r.date = input.Date
	r.startTime = input.StartTime
	r.endTime = input.EndTime
	return nil
}

// Apply advances the status through the workflow table.
func (r *Request) Apply(action Action) error {
	next, err := Transition(r.status, action)
	if err != nil {
		return err
	}
	r.status = next
	return nil
}

func (r *Request) ID() uuid.UUID          { return r.id }
func (r *Request) BranchID() uuid.UUID    { return r.branchID }
func (r *Request) RequesterID() uuid.UUID { return r.requesterID }
func (r *Request) Title() string          { return r.title }
func (r *Request) Description() *string   { return r.description }
func (r *Request) Date() time.Time        { return r.date }
func (r *Request) StartTime() TimeOfDay   { return r.startTime }
func (r *Request) EndTime() TimeOfDay     { return r.endTime }
func (r *Request) Status() Status         { return r.status }
func (r *Request) Version() int           { return r.version }
func (r *Request) CreatedAt() time.Time   { return r.createdAt }
func (r *Request) UpdatedAt() time.Time   { return r.updatedAt }
