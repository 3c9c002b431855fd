package response

import (
	"branch-requests/internal/usecase/queries"

	"github.com/google/uuid"
)

type BranchResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Location string    `json:"location"`
}

func FromBranch(v *queries.BranchView) BranchResponse {
	return BranchResponse{ID: v.ID, Name: v.Name, Location: v.Location}
}

func FromBranchList(views []*queries.BranchView) []BranchResponse {
	out := make([]BranchResponse, 0, len(views))
	for _, v := range views {
		out = append(out, BranchResponse{ID: v.ID, Name: v.Name, Location: v.Location})
	}
	return out
}
