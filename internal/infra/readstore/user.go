package readstore

import (
	"context"
	"log/slog"

	"branch-requests/internal/infra"
	"branch-requests/internal/infra/db"
	"branch-requests/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserReadStore(dbtx db.DBTX, logger *slog.Logger) *UserReadStore {
	return &UserReadStore{db: dbtx, logger: logger}
}

const findUserEmailSQL = `
SELECT email
FROM users
WHERE id = $1
`

// FindDisplayNameByID returns nil without error when the user is unknown;
// history writes tolerate an unresolvable actor.
func (r *UserReadStore) FindDisplayNameByID(ctx context.Context, id uuid.UUID) (*string, error) {
	var email string
	err := r.db.QueryRow(ctx, findUserEmailSQL, pgconv.UUIDToPgtype(id)).Scan(&email)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get user display name", err)
	}
	return &email, nil
}
