package request

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one append-only audit record of a status change.
type HistoryEntry struct {
	id            uuid.UUID
	requestID     uuid.UUID
	status        Status
	reason        *string
	changedBy     uuid.UUID
	changedByName *string
	changedAt     time.Time
}

func NewHistoryEntry(requestID uuid.UUID, status Status, reason *string, changedBy uuid.UUID, changedByName *string, changedAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:            uuid.New(),
		requestID:     requestID,
		status:        status,
		reason:        reason,
		changedBy:     changedBy,
		changedByName: changedByName,
		changedAt:     changedAt,
	}
}

func ReconstructHistoryEntry(id, requestID uuid.UUID, status Status, reason *string, changedBy uuid.UUID, changedByName *string, changedAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:            id,
		requestID:     requestID,
		status:        status,
		reason:        reason,
		changedBy:     changedBy,
		changedByName: changedByName,
		changedAt:     changedAt,
	}
}

func (h *HistoryEntry) ID() uuid.UUID          { return h.id }
func (h *HistoryEntry) RequestID() uuid.UUID   { return h.requestID }
func (h *HistoryEntry) Status() Status         { return h.status }
func (h *HistoryEntry) Reason() *string        { return h.reason }
func (h *HistoryEntry) ChangedBy() uuid.UUID   { return h.changedBy }
func (h *HistoryEntry) ChangedByName() *string { return h.changedByName }
func (h *HistoryEntry) ChangedAt() time.Time   { return h.changedAt }
