package api

import (
	"errors"
	"net/http"
	"time"

	domrequest "branch-requests/internal/domain/request"
	"branch-requests/internal/domain/user"
	reqdto "branch-requests/internal/handler/dto/request"
	resdto "branch-requests/internal/handler/dto/response"
	"branch-requests/internal/handler/httperr"
	"branch-requests/internal/handler/middleware"
	"branch-requests/internal/usecase/commands"
	"branch-requests/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	cmds commands.RequestCommands
	q    queries.RequestQueries
}

func NewRequestHandler(cmds commands.RequestCommands, q queries.RequestQueries) *RequestHandler {
	return &RequestHandler{cmds: cmds, q: q}
}

// @Summary Create draft request
// @Description Create a new appointment request in draft status
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRequestRequest true "Create request"
// @Success 201 {object} resdto.CreateRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	var req reqdto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateDraft(c.Request.Context(), req.ToInput(), userID)
	if err != nil {
		abortCommandError(c, err, "Create request failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.CreateRequestResponse{ID: result.RequestID})
}

// @Summary Update draft request
// @Description Replace the editable fields of an owned draft
// @Tags requests
// @Accept json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.UpdateRequestRequest true "Update request"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /requests/{id} [put]
func (h *RequestHandler) Update(c *gin.Context) {
	id, userID, ok := h.idAndUser(c)
	if !ok {
		return
	}
	var req reqdto.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.UpdateDraft(c.Request.Context(), id, req.ToInput(), userID); err != nil {
		abortCommandError(c, err, "Update request failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Submit request
// @Description Submit an owned draft for review
// @Tags requests
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/submit [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	id, userID, ok := h.idAndUser(c)
	if !ok {
		return
	}
	if err := h.cmds.Submit(c.Request.Context(), id, userID); err != nil {
		abortCommandError(c, err, "Submit request failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reopen request
// @Description Reopen an owned rejected request as a draft
// @Tags requests
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/reopen [post]
func (h *RequestHandler) Reopen(c *gin.Context) {
	id, userID, ok := h.idAndUser(c)
	if !ok {
		return
	}
	if err := h.cmds.Reopen(c.Request.Context(), id, userID); err != nil {
		abortCommandError(c, err, "Reopen request failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Approve request
// @Description Approve a pending request, with an optional reason
// @Tags requests
// @Accept json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.ApproveRequestRequest false "Approval reason"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /requests/{id}/approve [post]
func (h *RequestHandler) Approve(c *gin.Context) {
	id, adminID, ok := h.idAndUser(c)
	if !ok {
		return
	}
	var req reqdto.ApproveRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	if err := h.cmds.Approve(c.Request.Context(), id, adminID, req.Reason); err != nil {
		abortCommandError(c, err, "Approve request failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Reject request
// @Description Reject a pending request with a required reason
// @Tags requests
// @Accept json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.RejectRequestRequest true "Rejection reason"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /requests/{id}/reject [post]
func (h *RequestHandler) Reject(c *gin.Context) {
	id, adminID, ok := h.idAndUser(c)
	if !ok {
		return
	}
	var req reqdto.RejectRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	if err := h.cmds.Reject(c.Request.Context(), id, adminID, req.Reason); err != nil {
		abortCommandError(c, err, "Reject request failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List own requests
// @Description List the caller's requests with filtering, sorting and paging
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param from query string false "Earliest request date (2006-01-02)"
// @Param to query string false "Latest request date (2006-01-02)"
// @Param search query string false "Title/description substring"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 10)"
// @Param sort_by query string false "date or status"
// @Param sort_dir query string false "asc or desc"
// @Success 200 {object} resdto.RequestPageResponse
// @Failure 400 {object} map[string]string
// @Router /requests [get]
func (h *RequestHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}
	filters, page, sort, err := parseListQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	result, err := h.q.ListMine(c.Request.Context(), userID, filters, page, sort)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list requests", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestPage(result))
}

// @Summary List all requests
// @Description Admin listing across all requesters
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RequestPageResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/requests [get]
func (h *RequestHandler) ListAdmin(c *gin.Context) {
	filters, page, sort, err := parseListQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	result, err := h.q.ListAdmin(c.Request.Context(), filters, page, sort)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list requests", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestPage(result))
}

// @Summary List pending requests
// @Description Admin listing restricted to pending requests
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.RequestPageResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/requests/pending [get]
func (h *RequestHandler) ListPending(c *gin.Context) {
	filters, page, sort, err := parseListQuery(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}
	result, err := h.q.ListPending(c.Request.Context(), filters, page, sort)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list requests", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestPage(result))
}

// @Summary Get request detail
// @Description Get one request with its full status history; owners see their own, admins see any
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	id, userID, ok := h.idAndUser(c)
	if !ok {
		return
	}

	role, _ := middleware.GetUserRole(c)

	var view *queries.RequestDetailView
	var err error
	if role == user.RoleAdmin {
		view, err = h.q.GetDetailForAdmin(c.Request.Context(), id)
	} else {
		view, err = h.q.GetDetailForUser(c.Request.Context(), id, userID)
	}
	if err != nil {
		if errors.Is(err, queries.ErrRequestNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load request", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRequestDetail(view))
}

func (h *RequestHandler) idAndUser(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return uuid.Nil, uuid.Nil, false
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return uuid.Nil, uuid.Nil, false
	}
	return id, userID, true
}

func abortCommandError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, commands.ErrBranchNotFound):
		detail := []resdto.FieldErrorResponse{{Field: "branch_id", Message: "branch does not exist"}}
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", detail)
	case errors.Is(err, commands.ErrValidationFailed):
		var ve *commands.ValidationError
		var detail []resdto.FieldErrorResponse
		if errors.As(err, &ve) {
			detail = resdto.FromViolations(ve.Violations)
		}
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", detail)
	case errors.Is(err, commands.ErrInvalidState):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request state does not allow this action", nil)
	case errors.Is(err, commands.ErrConcurrencyConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request was modified concurrently", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}

func parseListQuery(c *gin.Context) (queries.RequestFilters, queries.Page, queries.Sort, error) {
	var q reqdto.ListRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return queries.RequestFilters{}, queries.Page{}, queries.Sort{}, err
	}

	var filters queries.RequestFilters
	if q.Status != "" {
		status, err := domrequest.NewStatus(q.Status)
		if err != nil {
			return filters, queries.Page{}, queries.Sort{}, err
		}
		filters.Status = &status
	}
	if q.From != "" {
		from, err := time.Parse("2006-01-02", q.From)
		if err != nil {
			return filters, queries.Page{}, queries.Sort{}, err
		}
		filters.From = &from
	}
	if q.To != "" {
		to, err := time.Parse("2006-01-02", q.To)
		if err != nil {
			return filters, queries.Page{}, queries.Sort{}, err
		}
		filters.To = &to
	}
	if q.Search != "" {
		search := q.Search
		filters.Search = &search
	}

	page := queries.Page{Number: q.Page, Size: q.Size}
	sort := queries.Sort{Field: queries.SortField(q.SortBy), Direction: queries.SortDirection(q.SortDir)}
	return filters, page, sort, nil
}
