package api

import (
	"errors"
	"net/http"

	resdto "branch-requests/internal/handler/dto/response"
	"branch-requests/internal/handler/httperr"
	"branch-requests/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BranchHandler struct {
	q queries.BranchQueries
}

func NewBranchHandler(q queries.BranchQueries) *BranchHandler {
	return &BranchHandler{q: q}
}

// @Summary List branches
// @Description List all branches ordered by name
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.BranchResponse
// @Failure 500 {object} map[string]string
// @Router /branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.q.ListAll(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list branches", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": resdto.FromBranchList(branches)})
}

// @Summary Get branch
// @Description Get one branch by id
// @Tags branches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Branch ID"
// @Success 200 {object} resdto.BranchResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /branches/{id} [get]
func (h *BranchHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	branch, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrBranchNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load branch", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBranch(branch))
}
