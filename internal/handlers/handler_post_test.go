package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/apperrors"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	portssvc "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/services"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/dto"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/handlers"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PostService ---
type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) GetPostByID(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, postID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) ListPosts(ctx context.Context, params dto.ListPostsParams, actor domain.Actor) (*dto.ListPostsResponse, error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListPostsResponse), args.Error(1)
}
func (m *MockPostService) ListEditHistory(ctx context.Context, postID string, actor domain.Actor) ([]domain.EditHistoryEntry, error) {
	args := m.Called(ctx, postID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EditHistoryEntry), args.Error(1)
}
func (m *MockPostService) CreatePost(ctx context.Context, req dto.CreatePostRequest, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) SaveDraft(ctx context.Context, req dto.CreatePostRequest, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) UpdateDraft(ctx context.Context, postID string, req dto.EditPostRequest, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, postID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) DeleteDraft(ctx context.Context, postID string, actor domain.Actor) error {
	args := m.Called(ctx, postID, actor)
	return args.Error(0)
}
func (m *MockPostService) PublishDraft(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, postID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) SchedulePost(ctx context.Context, req dto.SchedulePostRequest, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) CancelScheduledPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, postID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) PublishScheduledPost(ctx context.Context, postID string) (*domain.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) EditPost(ctx context.Context, postID string, req dto.EditPostRequest, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, postID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) PinPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, postID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) UnpinPost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, postID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) ArchivePost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, postID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) UnarchivePost(ctx context.Context, postID string, actor domain.Actor) (*domain.Post, error) {
	args := m.Called(ctx, postID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Post), args.Error(1)
}
func (m *MockPostService) BulkUpdateStatus(ctx context.Context, postIDs []string, status domain.PostStatus, actor domain.Actor) (*domain.BulkResult, error) {
	args := m.Called(ctx, postIDs, status, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkResult), args.Error(1)
}
func (m *MockPostService) BulkArchive(ctx context.Context, postIDs []string, archived bool, actor domain.Actor) (*domain.BulkResult, error) {
	args := m.Called(ctx, postIDs, archived, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkResult), args.Error(1)
}
func (m *MockPostService) BulkAssignDepartment(ctx context.Context, postIDs []string, departmentID string, actor domain.Actor) (*domain.BulkResult, error) {
	args := m.Called(ctx, postIDs, departmentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkResult), args.Error(1)
}
func (m *MockPostService) BulkDeleteDrafts(ctx context.Context, postIDs []string, actor domain.Actor) (*domain.BulkResult, error) {
	args := m.Called(ctx, postIDs, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.PostSvcFacade = (*MockPostService)(nil)

// --- Test Suite ---
type PostHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockPostService *MockPostService
	jwtSecret       string
	companyID       string
}

// generateTestToken creates a dummy JWT carrying the full acting-user claims.
func (suite *PostHandlerTestSuite) generateTestToken(userID, role string) string {
	claims := middleware.ActorClaims{
		DisplayName: "Test User",
		Role:        role,
		CompanyID:   suite.companyID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "pulse-desk-test",
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *PostHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.companyID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockPostService = new(MockPostService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterPostRoutes(v1, suite.mockPostService)
}

func (suite *PostHandlerTestSuite) serve(method, url string, body []byte, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req, _ = http.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *PostHandlerTestSuite) TestGetPost_Success() {
	postID := uuid.NewString()
	userID := uuid.NewString()
	expected := &domain.Post{
		PostID:       postID,
		CompanyID:    suite.companyID,
		AuthorID:     userID,
		AuthorName:   "Test User",
		Title:        "Broken AC on floor 3",
		Content:      "The unit has been leaking since Monday.",
		Category:     "facilities",
		Lifecycle:    domain.LifecyclePublished,
		Status:       domain.StatusOpen,
		PrivacyLevel: domain.PrivacyCompanyPublic,
	}

	suite.mockPostService.On("GetPostByID",
		mock.Anything,
		postID,
		mock.MatchedBy(func(actor domain.Actor) bool {
			return actor.UserID == userID && actor.CompanyID == suite.companyID
		}),
	).Return(expected, nil).Once()

	token := suite.generateTestToken(userID, string(domain.RoleEmployee))
	w := suite.serve(http.MethodGet, "/api/v1/posts/"+postID, nil, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.PostResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(postID, resp.PostID)
	suite.Equal("Broken AC on floor 3", resp.Title)
	suite.mockPostService.AssertExpectations(suite.T())
}

func (suite *PostHandlerTestSuite) TestGetPost_NotFoundMapsTo404() {
	postID := uuid.NewString()
	suite.mockPostService.On("GetPostByID", mock.Anything, postID, mock.Anything).
		Return(nil, fmt.Errorf("%w: post %s", apperrors.ErrNotFound, postID)).Once()

	token := suite.generateTestToken(uuid.NewString(), string(domain.RoleEmployee))
	w := suite.serve(http.MethodGet, "/api/v1/posts/"+postID, nil, token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *PostHandlerTestSuite) TestGetPost_MissingTokenRejected() {
	w := suite.serve(http.MethodGet, "/api/v1/posts/"+uuid.NewString(), nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockPostService.AssertNotCalled(suite.T(), "GetPostByID")
}

func (suite *PostHandlerTestSuite) TestCreatePost_Success() {
	userID := uuid.NewString()
	reqBody := dto.CreatePostRequest{
		Title:        "New parking policy",
		Content:      "Effective next month the north lot is visitor only.",
		Category:     "announcements",
		PrivacyLevel: domain.PrivacyCompanyPublic,
	}
	body, _ := json.Marshal(reqBody)

	created := &domain.Post{
		PostID:       uuid.NewString(),
		CompanyID:    suite.companyID,
		AuthorID:     userID,
		Title:        reqBody.Title,
		Content:      reqBody.Content,
		Category:     reqBody.Category,
		Lifecycle:    domain.LifecyclePublished,
		Status:       domain.StatusOpen,
		PrivacyLevel: domain.PrivacyCompanyPublic,
	}
	suite.mockPostService.On("CreatePost", mock.Anything, reqBody, mock.Anything).
		Return(created, nil).Once()

	token := suite.generateTestToken(userID, string(domain.RoleEmployee))
	w := suite.serve(http.MethodPost, "/api/v1/posts", body, token)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockPostService.AssertExpectations(suite.T())
}

func (suite *PostHandlerTestSuite) TestCreatePost_MissingTitleRejected() {
	body := []byte(`{"content":"no title here","privacyLevel":"company_public"}`)
	token := suite.generateTestToken(uuid.NewString(), string(domain.RoleEmployee))
	w := suite.serve(http.MethodPost, "/api/v1/posts", body, token)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostService.AssertNotCalled(suite.T(), "CreatePost")
}

func (suite *PostHandlerTestSuite) TestPinPost_ForbiddenMapsTo403() {
	postID := uuid.NewString()
	suite.mockPostService.On("PinPost", mock.Anything, postID, mock.Anything).
		Return(nil, fmt.Errorf("%w: pinning requires an elevated role", apperrors.ErrForbidden)).Once()

	token := suite.generateTestToken(uuid.NewString(), string(domain.RoleEmployee))
	w := suite.serve(http.MethodPost, "/api/v1/posts/"+postID+"/pin", nil, token)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *PostHandlerTestSuite) TestBulkArchive_ReportsPerItemResults() {
	postIDs := []string{uuid.NewString(), uuid.NewString()}
	body, _ := json.Marshal(dto.BulkArchiveRequest{PostIDs: postIDs, Archived: true})

	result := &domain.BulkResult{
		Count: 1,
		Results: []domain.BulkItemResult{
			{ID: postIDs[0], Success: true},
			{ID: postIDs[1], Success: false, Error: "resource not found"},
		},
	}
	suite.mockPostService.On("BulkArchive", mock.Anything, postIDs, true, mock.Anything).
		Return(result, nil).Once()

	token := suite.generateTestToken(uuid.NewString(), string(domain.RoleHR))
	w := suite.serve(http.MethodPost, "/api/v1/posts/bulk/archive", body, token)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BulkResultResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(1, resp.Count)
	suite.Len(resp.Results, 2)
	suite.False(resp.Results[1].Success)
}

func (suite *PostHandlerTestSuite) TestSchedulePost_PastTimeMapsTo400() {
	reqBody := dto.SchedulePostRequest{
		CreatePostRequest: dto.CreatePostRequest{
			Title:        "Quarterly town hall",
			Content:      "Agenda to follow.",
			PrivacyLevel: domain.PrivacyCompanyPublic,
		},
		ScheduledPublishAt: time.Now().Add(-time.Hour),
	}
	body, _ := json.Marshal(reqBody)

	token := suite.generateTestToken(uuid.NewString(), string(domain.RoleEmployee))
	w := suite.serve(http.MethodPost, "/api/v1/posts/schedule", body, token)

	// The "future" binding validator rejects this before the service runs.
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPostService.AssertNotCalled(suite.T(), "SchedulePost")
}

func TestPostHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PostHandlerTestSuite))
}
