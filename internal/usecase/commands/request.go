package commands

import (
	"context"
	"log/slog"
	"time"

	domrequest "branch-requests/internal/domain/request"
	"branch-requests/internal/infra"
	"branch-requests/internal/pkg/clock"
	"branch-requests/internal/pkg/errs"
	"branch-requests/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound         = errs.New("request not found")
	ErrBranchNotFound          = errs.New("branch not found")
	ErrInvalidState            = errs.New("request is not in a state that allows this action")
	ErrValidationFailed        = errs.New("validation failed")
	ErrConcurrencyConflict     = errs.New("request was modified concurrently")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ValidationError carries the field-scoped rule failures of one input.
// It is always marked with ErrValidationFailed.
type ValidationError struct {
	Violations domrequest.Violations
}

func (e *ValidationError) Error() string {
	return e.Violations.Error()
}

func newValidationError(violations domrequest.Violations) error {
	return errs.Mark(&ValidationError{Violations: violations}, ErrValidationFailed)
}

const (
	reasonDraftCreated = "draft created"
	reasonSubmitted    = "submitted"
	reasonReopened     = "reopened"
)

type CreateDraftResult struct {
	RequestID uuid.UUID
}

type DraftInput struct {
	BranchID    uuid.UUID
	Title       string
	Description *string
	Date        string // "2006-01-02"
	StartTime   string // "15:04"
	EndTime     string // "15:04"
}

type RequestCommands interface {
	CreateDraft(ctx context.Context, input DraftInput, userID uuid.UUID) (*CreateDraftResult, error)
	UpdateDraft(ctx context.Context, requestID uuid.UUID, input DraftInput, userID uuid.UUID) error
	Submit(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) error
	Approve(ctx context.Context, requestID uuid.UUID, adminID uuid.UUID, reason *string) error
	Reject(ctx context.Context, requestID uuid.UUID, adminID uuid.UUID, reason string) error
	Reopen(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) error
}

type requestUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewRequestUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) RequestCommands {
	return &requestUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

func (uc *requestUseCaseImpl) CreateDraft(ctx context.Context, input DraftInput, userID uuid.UUID) (*CreateDraftResult, error) {
	domInput, err := uc.parseDraftInput(input)
	if err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := uc.requireBranch(ctx, tx, domInput.BranchID); derr != nil {
			return derr
		}

		req, violations := domrequest.NewDraft(*domInput, userID, uc.clock.Now())
		if !violations.IsEmpty() {
			return newValidationError(violations)
		}

		id, derr := tx.Requests().Create(ctx, tx.DB(), req)
		if derr != nil {
			return mapRepoErr(derr)
		}
		createdID = id

		return uc.appendHistory(ctx, tx, id, domrequest.StatusDraft, strPtr(reasonDraftCreated), userID)
	})
	if err != nil {
		return nil, err
	}
	return &CreateDraftResult{RequestID: createdID}, nil
}

func (uc *requestUseCaseImpl) UpdateDraft(ctx context.Context, requestID uuid.UUID, input DraftInput, userID uuid.UUID) error {
	domInput, err := uc.parseDraftInput(input)
	if err != nil {
		return err
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := uc.loadOwned(ctx, tx, requestID, userID)
		if derr != nil {
			return derr
		}
		if snap.Status != domrequest.StatusDraft {
			return errs.Mark(errs.New("only drafts can be edited"), ErrInvalidState)
		}
		if derr = uc.requireBranch(ctx, tx, domInput.BranchID); derr != nil {
			return derr
		}

		req := reconstructFromSnapshot(snap, uc.clock.Now())
		if violations := req.ApplyDraftUpdate(*domInput, uc.clock.Now()); !violations.IsEmpty() {
			return newValidationError(violations)
		}

		if derr = tx.Requests().Update(ctx, tx.DB(), req, snap.Version); derr != nil {
			return mapRepoErr(derr)
		}
		return nil
	})
}

func (uc *requestUseCaseImpl) Submit(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) error {
	return uc.transition(ctx, requestID, userID, true, domrequest.ActionSubmit, strPtr(reasonSubmitted))
}

func (uc *requestUseCaseImpl) Approve(ctx context.Context, requestID uuid.UUID, adminID uuid.UUID, reason *string) error {
	if reason != nil {
		if violations := domrequest.ValidateReason(*reason, false); !violations.IsEmpty() {
			return newValidationError(violations)
		}
	}
	return uc.transition(ctx, requestID, adminID, false, domrequest.ActionApprove, reason)
}

func (uc *requestUseCaseImpl) Reject(ctx context.Context, requestID uuid.UUID, adminID uuid.UUID, reason string) error {
	if violations := domrequest.ValidateReason(reason, true); !violations.IsEmpty() {
		return newValidationError(violations)
	}
	return uc.transition(ctx, requestID, adminID, false, domrequest.ActionReject, &reason)
}

func (uc *requestUseCaseImpl) Reopen(ctx context.Context, requestID uuid.UUID, userID uuid.UUID) error {
	return uc.transition(ctx, requestID, userID, true, domrequest.ActionReopen, strPtr(reasonReopened))
}

// transition applies one workflow action; ownerOnly scopes the lookup so an
// absent and an unowned request are indistinguishable to the caller.
func (uc *requestUseCaseImpl) transition(ctx context.Context, requestID, actorID uuid.UUID, ownerOnly bool, action domrequest.Action, reason *string) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var snap *shared.RequestSnapshot
		var derr error
		if ownerOnly {
			snap, derr = uc.loadOwned(ctx, tx, requestID, actorID)
		} else {
			snap, derr = uc.load(ctx, tx, requestID)
		}
		if derr != nil {
			return derr
		}

		next, derr := domrequest.Transition(snap.Status, action)
		if derr != nil {
			return errs.Mark(derr, ErrInvalidState)
		}

		if derr = tx.Requests().UpdateStatus(ctx, tx.DB(), requestID, next, snap.Version); derr != nil {
			return mapRepoErr(derr)
		}
		return uc.appendHistory(ctx, tx, requestID, next, reason, actorID)
	})
}

// appendHistory writes one audit row in the caller's transaction. The actor's
// display name is resolved best-effort at write time; failures store NULL.
func (uc *requestUseCaseImpl) appendHistory(ctx context.Context, tx shared.Tx, requestID uuid.UUID, status domrequest.Status, reason *string, actorID uuid.UUID) error {
	name, err := tx.Reads().UserDisplayNameByID(ctx, actorID)
	if err != nil {
		uc.logger.Warn("failed to resolve actor display name",
			slog.String("actor_id", actorID.String()))
		name = nil
	}

	entry := domrequest.NewHistoryEntry(requestID, status, reason, actorID, name, uc.clock.Now())
	if err := tx.History().Append(ctx, tx.DB(), entry); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

func (uc *requestUseCaseImpl) load(ctx context.Context, tx shared.Tx, requestID uuid.UUID) (*shared.RequestSnapshot, error) {
	snap, err := tx.Reads().RequestByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRequestNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return snap, nil
}

func (uc *requestUseCaseImpl) loadOwned(ctx context.Context, tx shared.Tx, requestID, userID uuid.UUID) (*shared.RequestSnapshot, error) {
	snap, err := uc.load(ctx, tx, requestID)
	if err != nil {
		return nil, err
	}
	if snap.RequesterID != userID {
		return nil, errs.Mark(errs.New("request not owned by user"), ErrRequestNotFound)
	}
	return snap, nil
}

func (uc *requestUseCaseImpl) requireBranch(ctx context.Context, tx shared.Tx, branchID uuid.UUID) error {
	_, err := tx.Reads().BranchByID(ctx, branchID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrBranchNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (uc *requestUseCaseImpl) parseDraftInput(input DraftInput) (*domrequest.DraftInput, error) {
	var violations domrequest.Violations

	date, err := parseDate(input.Date)
	if err != nil {
		violations = append(violations, domrequest.FieldViolation{Field: "request_date", Message: "request date must be formatted as 2006-01-02"})
	}
	start, err := domrequest.ParseTimeOfDay(input.StartTime)
	if err != nil {
		violations = append(violations, domrequest.FieldViolation{Field: "start_time", Message: "start time must be formatted as 15:04"})
	}
	end, err := domrequest.ParseTimeOfDay(input.EndTime)
	if err != nil {
		violations = append(violations, domrequest.FieldViolation{Field: "end_time", Message: "end time must be formatted as 15:04"})
	}
	if !violations.IsEmpty() {
		return nil, newValidationError(violations)
	}

	return &domrequest.DraftInput{
		BranchID:    input.BranchID,
		Title:       input.Title,
		Description: input.Description,
		Date:        date,
		StartTime:   start,
		EndTime:     end,
	}, nil
}

func mapRepoErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, ErrRequestNotFound)
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, ErrConcurrencyConflict)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, ErrBranchNotFound)
	default:
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
}

func reconstructFromSnapshot(snap *shared.RequestSnapshot, now time.Time) *domrequest.Request {
	return domrequest.ReconstructRequest(
		snap.ID, snap.BranchID, snap.RequesterID,
		snap.Title, snap.Description,
		snap.Date, snap.StartTime, snap.EndTime,
		snap.Status, snap.Version,
		now, now,
	)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func strPtr(s string) *string {
	return &s
}
