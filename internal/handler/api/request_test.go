//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"

	domrequest "branch-requests/internal/domain/request"
	"branch-requests/internal/domain/user"
	"branch-requests/internal/handler/api"
	resdto "branch-requests/internal/handler/dto/response"
	"branch-requests/internal/pkg/errs"
	"branch-requests/internal/usecase/commands"
	"branch-requests/internal/usecase/queries"
	"branch-requests/tests/common/builder"
	"branch-requests/tests/common/httptest"
	"branch-requests/tests/common/testutil"
	commandsmock "branch-requests/tests/mock/commands"
	queriesmock "branch-requests/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type RequestHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockRequestCommands
	mockQueries  *queriesmock.MockRequestQueries
	handler      *api.RequestHandler
	userID       uuid.UUID
}

func (s *RequestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockRequestCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockRequestQueries(s.mockCtrl)
	s.handler = api.NewRequestHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing; role comes from a test header
	// so the same suite can exercise user and admin paths.
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		role := user.RoleUser
		if c.GetHeader("X-Test-Role") == "admin" {
			role = user.RoleAdmin
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", role)
		c.Next()
	}
	adminOnly := func(c *gin.Context) {
		if role, _ := c.Get("user_role"); role != user.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Forbidden"}})
			return
		}
		c.Next()
	}

	// Setup routes matching the production router layout
	requests := s.router.Group("/api/requests", authMiddleware)
	requests.POST("", s.handler.Create)
	requests.GET("", s.handler.ListMine)
	requests.GET("/:id", s.handler.Get)
	requests.PUT("/:id", s.handler.Update)
	requests.POST("/:id/submit", s.handler.Submit)
	requests.POST("/:id/reopen", s.handler.Reopen)
	requests.POST("/:id/approve", adminOnly, s.handler.Approve)
	requests.POST("/:id/reject", adminOnly, s.handler.Reject)

	admin := s.router.Group("/api/admin", authMiddleware, adminOnly)
	admin.GET("/requests", s.handler.ListAdmin)
	admin.GET("/requests/pending", s.handler.ListPending)
}

func (s *RequestHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestRequestHandlerSuite(t *testing.T) {
	suite.Run(t, new(RequestHandlerTestSuite))
}

var adminHeaders = map[string]string{"X-Test-Role": "admin"}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail []resdto.FieldErrorResponse `json:"detail"`
}

func validationErr(violations domrequest.Violations) error {
	return errs.Mark(&commands.ValidationError{Violations: violations}, commands.ErrValidationFailed)
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *RequestHandlerTestSuite) TestCreate() {
	url := "/api/requests"

	reqBody := builder.NewRequestBuilder().BuildCreateRequestDTO()
	createdID := uuid.New()

	s.Run("success: returns 201 Created with the new request id", func() {
		s.mockCommands.EXPECT().CreateDraft(gomock.Any(), gomock.Any(), s.userID).
			Return(&commands.CreateDraftResult{RequestID: createdID}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body map[string]string
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(createdID.String(), body["id"])
	})

	s.Run("error: 400 Bad Request on missing required fields", func() {
		missing := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: branch_id", mutate: testutil.Field("branch_id", nil)},
			{name: "missing field: title", mutate: testutil.Field("title", nil)},
			{name: "missing field: request_date", mutate: testutil.Field("request_date", nil)},
			{name: "missing field: start_time", mutate: testutil.Field("start_time", nil)},
			{name: "missing field: end_time", mutate: testutil.Field("end_time", nil)},
		}
		for _, tc := range missing {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: 422 with field violations when domain validation fails", func() {
		violations := domrequest.Violations{
			{Field: "start_time", Message: "start time must be on a half-hour boundary"},
			{Field: "end_time", Message: "end time must be within working hours"},
		}
		s.mockCommands.EXPECT().CreateDraft(gomock.Any(), gomock.Any(), s.userID).
			Return(nil, validationErr(violations)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body errorBody
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Len(body.Detail, 2)
		s.Equal("start_time", body.Detail[0].Field)
		s.Equal("end_time", body.Detail[1].Field)
	})

	s.Run("error: 422 with branch_id detail when the branch does not exist", func() {
		s.mockCommands.EXPECT().CreateDraft(gomock.Any(), gomock.Any(), s.userID).
			Return(nil, commands.ErrBranchNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body errorBody
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Require().Len(body.Detail, 1)
		s.Equal("branch_id", body.Detail[0].Field)
	})

	s.Run("error: 401 Unauthorized without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// ================================================================================
// TestUpdate
// ================================================================================

func (s *RequestHandlerTestSuite) TestUpdate() {
	requestID := uuid.New()
	url := "/api/requests/" + requestID.String()
	reqBody := builder.NewRequestBuilder().BuildUpdateRequestDTO()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().UpdateDraft(gomock.Any(), requestID, gomock.Any(), s.userID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 when the request is absent or not owned", func() {
		s.mockCommands.EXPECT().UpdateDraft(gomock.Any(), requestID, gomock.Any(), s.userID).
			Return(commands.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 409 when the request is no longer a draft", func() {
		s.mockCommands.EXPECT().UpdateDraft(gomock.Any(), requestID, gomock.Any(), s.userID).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 409 on concurrent modification", func() {
		s.mockCommands.EXPECT().UpdateDraft(gomock.Any(), requestID, gomock.Any(), s.userID).
			Return(commands.ErrConcurrencyConflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "modified concurrently")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/requests/not-a-uuid", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

// ================================================================================
// TestSubmit / TestReopen
// ================================================================================

func (s *RequestHandlerTestSuite) TestSubmit() {
	requestID := uuid.New()
	url := "/api/requests/" + requestID.String() + "/submit"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), requestID, s.userID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when the request is not a draft", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), requestID, s.userID).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})

	s.Run("error: 404 when not owned by the caller", func() {
		s.mockCommands.EXPECT().Submit(gomock.Any(), requestID, s.userID).
			Return(commands.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

func (s *RequestHandlerTestSuite) TestReopen() {
	requestID := uuid.New()
	url := "/api/requests/" + requestID.String() + "/reopen"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Reopen(gomock.Any(), requestID, s.userID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 409 when the request is not rejected", func() {
		s.mockCommands.EXPECT().Reopen(gomock.Any(), requestID, s.userID).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

// ================================================================================
// TestApprove / TestReject
// ================================================================================

func (s *RequestHandlerTestSuite) TestApprove() {
	requestID := uuid.New()
	url := "/api/requests/" + requestID.String() + "/approve"

	s.Run("success: 204 without a body", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), requestID, s.userID, gomock.Nil()).
			Return(nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, nil, adminHeaders, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: 204 with an optional reason", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), requestID, s.userID, gomock.Any()).
			Return(nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "schedule confirmed"}, adminHeaders, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 for a non-admin caller", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusForbidden, rec.Code)
	})

	s.Run("error: 409 when the request is not pending", func() {
		s.mockCommands.EXPECT().Approve(gomock.Any(), requestID, s.userID, gomock.Nil()).
			Return(commands.ErrInvalidState).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, nil, adminHeaders, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "")
	})
}

func (s *RequestHandlerTestSuite) TestReject() {
	requestID := uuid.New()
	url := "/api/requests/" + requestID.String() + "/reject"

	s.Run("success: 204 with a reason", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), requestID, s.userID, "time slot unavailable").
			Return(nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "time slot unavailable"}, adminHeaders, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 when the reason is missing", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, map[string]any{}, adminHeaders, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 422 when the reason violates domain rules", func() {
		violations := domrequest.Violations{{Field: "reason", Message: "reason must be at most 500 characters"}}
		s.mockCommands.EXPECT().Reject(gomock.Any(), requestID, s.userID, gomock.Any()).
			Return(validationErr(violations)).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "x"}, adminHeaders, "bearer-token")

		var body errorBody
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
		s.NoError(httptest.DecodeResponseBody(s.T(), rec.Body, &body))
		s.Require().Len(body.Detail, 1)
		s.Equal("reason", body.Detail[0].Field)
	})

	s.Run("error: 404 when the request does not exist", func() {
		s.mockCommands.EXPECT().Reject(gomock.Any(), requestID, s.userID, gomock.Any()).
			Return(commands.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, map[string]any{"reason": "time slot unavailable"}, adminHeaders, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestListMine / admin listings
// ================================================================================

func (s *RequestHandlerTestSuite) TestListMine() {
	url := "/api/requests"

	s.Run("success: returns a page of the caller's requests", func() {
		items := []*queries.RequestListItemView{
			builder.NewRequestBuilder().BuildListItem(),
			builder.NewRequestBuilder().AsPending().BuildListItem(),
		}
		page := &queries.RequestPage{Items: items, Total: 2, Page: 1, Size: 10}
		s.mockQueries.EXPECT().ListMine(gomock.Any(), s.userID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.RequestPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(2, body.Total)
		s.Len(body.Items, 2)
		s.Equal(items[0].Title, body.Items[0].Title)
		s.Equal("pending", body.Items[1].Status)
	})

	s.Run("success: filters and paging pass through to the query layer", func() {
		pending := domrequest.StatusPending
		s.mockQueries.EXPECT().
			ListMine(gomock.Any(), s.userID, gomock.Any(), queries.Page{Number: 2, Size: 5}, queries.Sort{Field: queries.SortByStatus, Direction: queries.SortDesc}).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, filters queries.RequestFilters, _ queries.Page, _ queries.Sort) (*queries.RequestPage, error) {
				s.Require().NotNil(filters.Status)
				s.Equal(pending, *filters.Status)
				s.Require().NotNil(filters.Search)
				s.Equal("review", *filters.Search)
				return &queries.RequestPage{Items: []*queries.RequestListItemView{}, Total: 0, Page: 2, Size: 5}, nil
			}).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			url+"?status=pending&search=review&page=2&size=5&sort_by=status&sort_dir=desc", nil, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 on an unknown status filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?status=bogus", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 on a malformed date filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?from=2026/01/01", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *RequestHandlerTestSuite) TestAdminListings() {
	s.Run("success: pending queue for an admin", func() {
		page := &queries.RequestPage{Items: []*queries.RequestListItemView{}, Total: 0, Page: 1, Size: 10}
		s.mockQueries.EXPECT().ListPending(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(page, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/admin/requests/pending", nil, adminHeaders, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("success: full listing for an admin", func() {
		page := &queries.RequestPage{Items: []*queries.RequestListItemView{}, Total: 0, Page: 1, Size: 10}
		s.mockQueries.EXPECT().ListAdmin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(page, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, "/api/admin/requests", nil, adminHeaders, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 403 for a regular user", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/requests", nil, "bearer-token")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *RequestHandlerTestSuite) TestGet() {
	requestID := uuid.New()
	url := "/api/requests/" + requestID.String()

	s.Run("success: owner sees their own request with history", func() {
		view := builder.NewRequestBuilder().WithRequesterID(s.userID).AsPending().BuildDetailView()
		reason := "submitted"
		view.History = []*queries.HistoryEntryView{
			{ID: uuid.New(), Status: "pending", Reason: &reason, ChangedBy: "requester@example.com"},
			{ID: uuid.New(), Status: "draft", ChangedBy: "requester@example.com"},
		}
		s.mockQueries.EXPECT().GetDetailForUser(gomock.Any(), requestID, s.userID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.RequestDetailResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("pending", body.Status)
		s.Require().Len(body.History, 2)
		s.Equal("pending", body.History[0].Status)
		s.Equal("draft", body.History[1].Status)
	})

	s.Run("success: admin sees any request", func() {
		view := builder.NewRequestBuilder().AsPending().BuildDetailView()
		s.mockQueries.EXPECT().GetDetailForAdmin(gomock.Any(), requestID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, url, nil, adminHeaders, "bearer-token")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 404 for an absent or unowned request", func() {
		s.mockQueries.EXPECT().GetDetailForUser(gomock.Any(), requestID, s.userID).
			Return(nil, queries.ErrRequestNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/requests/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
