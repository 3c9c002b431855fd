//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domrequest "branch-requests/internal/domain/request"
	"branch-requests/internal/infra"
	"branch-requests/internal/infra/db"
	"branch-requests/internal/pkg/clock"
	"branch-requests/internal/usecase/commands"
	"branch-requests/internal/usecase/shared"
	"branch-requests/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ================================================================================
// Fakes
// ================================================================================

type fakeReads struct {
	requests map[uuid.UUID]*shared.RequestSnapshot
	branches map[uuid.UUID]*shared.BranchSnapshot
	names    map[uuid.UUID]string
	nameErr  error
}

func newFakeReads() *fakeReads {
	return &fakeReads{
		requests: map[uuid.UUID]*shared.RequestSnapshot{},
		branches: map[uuid.UUID]*shared.BranchSnapshot{},
		names:    map[uuid.UUID]string{},
	}
}

func (f *fakeReads) RequestByID(_ context.Context, id uuid.UUID) (*shared.RequestSnapshot, error) {
	if snap, ok := f.requests[id]; ok {
		return snap, nil
	}
	return nil, infra.RepositoryError{Kind: infra.KindNotFound}
}

func (f *fakeReads) BranchByID(_ context.Context, id uuid.UUID) (*shared.BranchSnapshot, error) {
	if b, ok := f.branches[id]; ok {
		return b, nil
	}
	return nil, infra.RepositoryError{Kind: infra.KindNotFound}
}

func (f *fakeReads) UserDisplayNameByID(_ context.Context, id uuid.UUID) (*string, error) {
	if f.nameErr != nil {
		return nil, f.nameErr
	}
	if name, ok := f.names[id]; ok {
		return &name, nil
	}
	return nil, nil
}

type statusCall struct {
	id              uuid.UUID
	status          domrequest.Status
	expectedVersion int
}

type updateCall struct {
	req             *domrequest.Request
	expectedVersion int
}

type fakeRequestRepo struct {
	created   []*domrequest.Request
	createID  uuid.UUID
	createErr error

	updates   []updateCall
	updateErr error

	statusCalls []statusCall
	statusErr   error
}

func (f *fakeRequestRepo) Create(_ context.Context, _ db.DBTX, req *domrequest.Request) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, req)
	return f.createID, nil
}

func (f *fakeRequestRepo) Update(_ context.Context, _ db.DBTX, req *domrequest.Request, expectedVersion int) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, updateCall{req: req, expectedVersion: expectedVersion})
	return nil
}

func (f *fakeRequestRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status domrequest.Status, expectedVersion int) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusCalls = append(f.statusCalls, statusCall{id: id, status: status, expectedVersion: expectedVersion})
	return nil
}

type fakeHistoryRepo struct {
	entries []*domrequest.HistoryEntry
	err     error
}

func (f *fakeHistoryRepo) Append(_ context.Context, _ db.DBTX, entry *domrequest.HistoryEntry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeTx struct {
	requests *fakeRequestRepo
	history  *fakeHistoryRepo
	reads    *fakeReads
}

func (f *fakeTx) Requests() shared.RequestRepository { return f.requests }
func (f *fakeTx) History() shared.HistoryRepository  { return f.history }
func (f *fakeTx) Reads() shared.CommandReads         { return f.reads }
func (f *fakeTx) DB() db.DBTX                        { return nil }

type fakeUow struct {
	tx *fakeTx
}

func (f *fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, f.tx)
}

func (f *fakeUow) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (f *fakeUow) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (f *fakeUow) CommandReads() shared.CommandReads { return f.tx.reads }

// ================================================================================
// Fixture
// ================================================================================

type fixture struct {
	uc    commands.RequestCommands
	tx    *fakeTx
	clock *clock.MockClock
	now   time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	tx := &fakeTx{
		requests: &fakeRequestRepo{createID: uuid.New()},
		history:  &fakeHistoryRepo{},
		reads:    newFakeReads(),
	}
	clk := clock.NewMockClock(now)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &fixture{
		uc:    commands.NewRequestUseCase(&fakeUow{tx: tx}, clk, logger),
		tx:    tx,
		clock: clk,
		now:   now,
	}
}

func (f *fixture) addBranch(id uuid.UUID) {
	f.tx.reads.branches[id] = &shared.BranchSnapshot{ID: id, Name: "Central Branch"}
}

func (f *fixture) addSnapshot(snap *shared.RequestSnapshot) {
	f.tx.reads.requests[snap.ID] = snap
}

func (f *fixture) draftBuilder() *builder.RequestBuilder {
	return builder.NewRequestBuilder().WithDate(f.now.AddDate(0, 0, 7))
}

// ================================================================================
// CreateDraft
// ================================================================================

func TestCreateDraft(t *testing.T) {
	t.Run("creates a draft and records the initial history entry", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder()
		f.addBranch(b.BranchID)
		f.tx.reads.names[b.RequesterID] = "requester@example.com"

		result, err := f.uc.CreateDraft(context.Background(), b.BuildCommandInput(), b.RequesterID)

		require.NoError(t, err)
		assert.Equal(t, f.tx.requests.createID, result.RequestID)

		require.Len(t, f.tx.requests.created, 1)
		created := f.tx.requests.created[0]
		assert.Equal(t, domrequest.StatusDraft, created.Status())
		assert.Equal(t, b.Title, created.Title())
		assert.Equal(t, 1, created.Version())

		require.Len(t, f.tx.history.entries, 1)
		entry := f.tx.history.entries[0]
		assert.Equal(t, f.tx.requests.createID, entry.RequestID())
		assert.Equal(t, domrequest.StatusDraft, entry.Status())
		require.NotNil(t, entry.Reason())
		assert.Equal(t, "draft created", *entry.Reason())
		assert.Equal(t, b.RequesterID, entry.ChangedBy())
		require.NotNil(t, entry.ChangedByName())
		assert.Equal(t, "requester@example.com", *entry.ChangedByName())
	})

	t.Run("rejects an unknown branch before validating the draft", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder()

		_, err := f.uc.CreateDraft(context.Background(), b.BuildCommandInput(), b.RequesterID)

		assert.ErrorIs(t, err, commands.ErrBranchNotFound)
		assert.Empty(t, f.tx.requests.created)
		assert.Empty(t, f.tx.history.entries)
	})

	t.Run("collects all rule violations instead of stopping at the first", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().WithTitle("").WithTimes("09:15", "10:00")
		f.addBranch(b.BranchID)

		_, err := f.uc.CreateDraft(context.Background(), b.BuildCommandInput(), b.RequesterID)

		require.ErrorIs(t, err, commands.ErrValidationFailed)
		var ve *commands.ValidationError
		require.ErrorAs(t, err, &ve)
		fields := make([]string, 0, len(ve.Violations))
		for _, v := range ve.Violations {
			fields = append(fields, v.Field)
		}
		assert.Contains(t, fields, "title")
		assert.Contains(t, fields, "start_time")
		assert.Empty(t, f.tx.requests.created)
	})

	t.Run("rejects a request date in the past", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().WithDate(f.now.AddDate(0, 0, -1))
		f.addBranch(b.BranchID)

		_, err := f.uc.CreateDraft(context.Background(), b.BuildCommandInput(), b.RequesterID)

		require.ErrorIs(t, err, commands.ErrValidationFailed)
	})

	t.Run("reports malformed date and time strings as field violations", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder()
		input := b.BuildCommandInput()
		input.Date = "01-09-2026"
		input.StartTime = "9am"

		_, err := f.uc.CreateDraft(context.Background(), input, b.RequesterID)

		require.ErrorIs(t, err, commands.ErrValidationFailed)
		var ve *commands.ValidationError
		require.ErrorAs(t, err, &ve)
		fields := make([]string, 0, len(ve.Violations))
		for _, v := range ve.Violations {
			fields = append(fields, v.Field)
		}
		assert.Contains(t, fields, "request_date")
		assert.Contains(t, fields, "start_time")
	})

	t.Run("stores a history entry without a name when resolution fails", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder()
		f.addBranch(b.BranchID)
		f.tx.reads.nameErr = errors.New("users table unavailable")

		_, err := f.uc.CreateDraft(context.Background(), b.BuildCommandInput(), b.RequesterID)

		require.NoError(t, err)
		require.Len(t, f.tx.history.entries, 1)
		assert.Nil(t, f.tx.history.entries[0].ChangedByName())
	})
}

// ================================================================================
// UpdateDraft
// ================================================================================

func TestUpdateDraft(t *testing.T) {
	t.Run("replaces draft fields under the snapshot version", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().WithVersion(3)
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)
		f.addBranch(b.BranchID)

		updated := f.draftBuilder().WithBranchID(b.BranchID).WithTitle("Loan consultation").WithTimes("14:00", "15:30")
		err := f.uc.UpdateDraft(context.Background(), snap.ID, updated.BuildCommandInput(), b.RequesterID)

		require.NoError(t, err)
		require.Len(t, f.tx.requests.updates, 1)
		call := f.tx.requests.updates[0]
		assert.Equal(t, 3, call.expectedVersion)
		assert.Equal(t, "Loan consultation", call.req.Title())
		assert.Equal(t, "14:00", call.req.StartTime().String())
	})

	t.Run("refuses to edit a request that is no longer a draft", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsPending()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)
		f.addBranch(b.BranchID)

		err := f.uc.UpdateDraft(context.Background(), snap.ID, b.BuildCommandInput(), b.RequesterID)

		assert.ErrorIs(t, err, commands.ErrInvalidState)
		assert.Empty(t, f.tx.requests.updates)
	})

	t.Run("hides a request owned by someone else", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)
		f.addBranch(b.BranchID)

		err := f.uc.UpdateDraft(context.Background(), snap.ID, b.BuildCommandInput(), uuid.New())

		assert.ErrorIs(t, err, commands.ErrRequestNotFound)
	})

	t.Run("surfaces a version conflict as a concurrency error", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)
		f.addBranch(b.BranchID)
		f.tx.requests.updateErr = infra.RepositoryError{Kind: infra.KindConflict}

		err := f.uc.UpdateDraft(context.Background(), snap.ID, b.BuildCommandInput(), b.RequesterID)

		assert.ErrorIs(t, err, commands.ErrConcurrencyConflict)
	})
}

// ================================================================================
// Transitions
// ================================================================================

func TestSubmit(t *testing.T) {
	t.Run("moves an owned draft to pending and logs it", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().WithVersion(2)
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Submit(context.Background(), snap.ID, b.RequesterID)

		require.NoError(t, err)
		require.Len(t, f.tx.requests.statusCalls, 1)
		call := f.tx.requests.statusCalls[0]
		assert.Equal(t, domrequest.StatusPending, call.status)
		assert.Equal(t, 2, call.expectedVersion)

		require.Len(t, f.tx.history.entries, 1)
		entry := f.tx.history.entries[0]
		assert.Equal(t, domrequest.StatusPending, entry.Status())
		require.NotNil(t, entry.Reason())
		assert.Equal(t, "submitted", *entry.Reason())
	})

	t.Run("rejects submitting a request that is already pending", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsPending()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Submit(context.Background(), snap.ID, b.RequesterID)

		assert.ErrorIs(t, err, commands.ErrInvalidState)
		assert.Empty(t, f.tx.requests.statusCalls)
	})

	t.Run("hides a request owned by someone else", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Submit(context.Background(), snap.ID, uuid.New())

		assert.ErrorIs(t, err, commands.ErrRequestNotFound)
	})
}

func TestApprove(t *testing.T) {
	t.Run("approves a pending request without a reason", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsPending()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)
		adminID := uuid.New()

		err := f.uc.Approve(context.Background(), snap.ID, adminID, nil)

		require.NoError(t, err)
		require.Len(t, f.tx.requests.statusCalls, 1)
		assert.Equal(t, domrequest.StatusApproved, f.tx.requests.statusCalls[0].status)

		require.Len(t, f.tx.history.entries, 1)
		entry := f.tx.history.entries[0]
		assert.Nil(t, entry.Reason())
		assert.Equal(t, adminID, entry.ChangedBy())
	})

	t.Run("admin does not need to own the request", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsPending()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Approve(context.Background(), snap.ID, uuid.New(), nil)

		require.NoError(t, err)
	})

	t.Run("rejects approving a draft", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Approve(context.Background(), snap.ID, uuid.New(), nil)

		assert.ErrorIs(t, err, commands.ErrInvalidState)
	})

	t.Run("surfaces a stale version as a concurrency conflict", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsPending()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)
		f.tx.requests.statusErr = infra.RepositoryError{Kind: infra.KindConflict}

		err := f.uc.Approve(context.Background(), snap.ID, uuid.New(), nil)

		assert.ErrorIs(t, err, commands.ErrConcurrencyConflict)
		assert.Empty(t, f.tx.history.entries)
	})
}

func TestReject(t *testing.T) {
	t.Run("rejects a pending request and records the reason", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsPending()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Reject(context.Background(), snap.ID, uuid.New(), "time slot unavailable")

		require.NoError(t, err)
		require.Len(t, f.tx.requests.statusCalls, 1)
		assert.Equal(t, domrequest.StatusRejected, f.tx.requests.statusCalls[0].status)

		require.Len(t, f.tx.history.entries, 1)
		require.NotNil(t, f.tx.history.entries[0].Reason())
		assert.Equal(t, "time slot unavailable", *f.tx.history.entries[0].Reason())
	})

	t.Run("requires a reason", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsPending()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Reject(context.Background(), snap.ID, uuid.New(), "   ")

		require.ErrorIs(t, err, commands.ErrValidationFailed)
		assert.Empty(t, f.tx.requests.statusCalls)
	})

	t.Run("cannot reject a request twice", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsRejected()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Reject(context.Background(), snap.ID, uuid.New(), "still unavailable")

		assert.ErrorIs(t, err, commands.ErrInvalidState)
	})
}

func TestReopen(t *testing.T) {
	t.Run("returns a rejected request to draft", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsRejected()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Reopen(context.Background(), snap.ID, b.RequesterID)

		require.NoError(t, err)
		require.Len(t, f.tx.requests.statusCalls, 1)
		assert.Equal(t, domrequest.StatusDraft, f.tx.requests.statusCalls[0].status)

		require.Len(t, f.tx.history.entries, 1)
		require.NotNil(t, f.tx.history.entries[0].Reason())
		assert.Equal(t, "reopened", *f.tx.history.entries[0].Reason())
	})

	t.Run("only the owner can reopen", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().AsRejected()
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Reopen(context.Background(), snap.ID, uuid.New())

		assert.ErrorIs(t, err, commands.ErrRequestNotFound)
	})

	t.Run("cannot reopen an approved request", func(t *testing.T) {
		f := newFixture(t)
		b := f.draftBuilder().WithStatus(domrequest.StatusApproved)
		snap := b.BuildSnapshot()
		f.addSnapshot(snap)

		err := f.uc.Reopen(context.Background(), snap.ID, b.RequesterID)

		assert.ErrorIs(t, err, commands.ErrInvalidState)
	})
}
