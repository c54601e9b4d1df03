package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/PulseDeskHQ/pulse_desk_app/internal/apperrors"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/domain"
	portssvc "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/services"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/core/services"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/dto"
)

// --- Test Suite ---

type PostServiceTestSuite struct {
	suite.Suite
	mockPostRepo     *MockPostRepository
	mockDeptRepo     *MockDepartmentRepository
	mockActivityRepo *MockActivityRepository
	service          portssvc.PostSvcFacade

	companyID string
	author    domain.Actor
	hr        domain.Actor
	employee  domain.Actor
}

func (suite *PostServiceTestSuite) SetupTest() {
	suite.mockPostRepo = new(MockPostRepository)
	suite.mockDeptRepo = new(MockDepartmentRepository)
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.service = services.NewPostService(suite.mockPostRepo, suite.mockDeptRepo, suite.mockActivityRepo)

	suite.companyID = uuid.NewString()
	suite.author = domain.Actor{UserID: uuid.NewString(), DisplayName: "Alice Author", Role: domain.RoleEmployee, CompanyID: suite.companyID}
	suite.hr = domain.Actor{UserID: uuid.NewString(), DisplayName: "Harriet HR", Role: domain.RoleHR, CompanyID: suite.companyID}
	suite.employee = domain.Actor{UserID: uuid.NewString(), DisplayName: "Eve Employee", Role: domain.RoleEmployee, CompanyID: suite.companyID}

	// Activity writes are fire-and-forget; allow them in every test.
	suite.mockActivityRepo.On("SaveActivity", mock.Anything, mock.AnythingOfType("domain.ActivityLog")).Return(nil).Maybe()
}

func (suite *PostServiceTestSuite) newPublishedPost() *domain.Post {
	now := time.Now().UTC().Add(-time.Hour)
	return &domain.Post{
		PostID:       uuid.NewString(),
		CompanyID:    suite.companyID,
		AuthorID:     suite.author.UserID,
		AuthorName:   suite.author.DisplayName,
		Title:        "Coffee machine broken",
		Content:      "The machine on floor 3 leaks.",
		Category:     "facilities",
		Tags:         []string{"kitchen"},
		Lifecycle:    domain.LifecyclePublished,
		Status:       domain.StatusOpen,
		PrivacyLevel: domain.PrivacyCompanyPublic,
		PublishedBy:  &suite.author.UserID,
		PublishedAt:  &now,
		AuditFields:  domain.AuditFields{CreatedAt: now, CreatedBy: suite.author.UserID, LastUpdatedAt: now, LastUpdatedBy: suite.author.UserID},
	}
}

func (suite *PostServiceTestSuite) newDraft() *domain.Post {
	post := suite.newPublishedPost()
	post.Lifecycle = domain.LifecycleDraft
	post.Status = domain.StatusDraft
	post.PublishedBy = nil
	post.PublishedAt = nil
	return post
}

// --- Creation and lifecycle ---

func (suite *PostServiceTestSuite) TestCreatePost_Success() {
	ctx := context.Background()
	req := dto.CreatePostRequest{
		Title:        "New parking policy",
		Content:      "Starting Monday...",
		Category:     "policy",
		PrivacyLevel: domain.PrivacyCompanyPublic,
	}

	suite.mockPostRepo.On("SavePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Lifecycle == domain.LifecyclePublished &&
			p.Status == domain.StatusOpen &&
			p.CompanyID == suite.companyID &&
			p.AuthorID == suite.author.UserID &&
			p.PublishedBy != nil && *p.PublishedBy == suite.author.UserID
	})).Return(nil).Once()

	post, err := suite.service.CreatePost(ctx, req, suite.author)

	suite.Require().NoError(err)
	suite.Require().NotNil(post)
	suite.Equal(domain.LifecyclePublished, post.Lifecycle)
	suite.Equal(req.Title, post.Title)
	suite.NotNil(post.PublishedAt)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestCreatePost_DepartmentOnlyWithoutDepartment() {
	ctx := context.Background()
	req := dto.CreatePostRequest{
		Title:        "Team only",
		Content:      "...",
		PrivacyLevel: domain.PrivacyDepartmentOnly,
	}

	post, err := suite.service.CreatePost(ctx, req, suite.author)

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPostRepo.AssertNotCalled(suite.T(), "SavePost", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestCreatePost_IncompleteActor() {
	ctx := context.Background()
	req := dto.CreatePostRequest{Title: "t", Content: "c", PrivacyLevel: domain.PrivacyCompanyPublic}

	post, err := suite.service.CreatePost(ctx, req, domain.Actor{})

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *PostServiceTestSuite) TestSaveDraft_Success() {
	ctx := context.Background()
	req := dto.CreatePostRequest{Title: "WIP", Content: "half-written", PrivacyLevel: domain.PrivacyCompanyPublic}

	suite.mockPostRepo.On("SavePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Lifecycle == domain.LifecycleDraft && p.Status == domain.StatusDraft && p.PublishedAt == nil
	})).Return(nil).Once()

	post, err := suite.service.SaveDraft(ctx, req, suite.author)

	suite.Require().NoError(err)
	suite.Equal(domain.LifecycleDraft, post.Lifecycle)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestUpdateDraft_ContentOnlyKeepsDraftStatus() {
	ctx := context.Background()
	draft := suite.newDraft()
	newTitle := "Coffee machine still broken"

	suite.mockPostRepo.On("FindPostByID", ctx, draft.PostID).Return(draft, nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Title == newTitle &&
			p.Lifecycle == domain.LifecycleDraft &&
			p.Status == domain.StatusDraft
	})).Return(nil).Once()

	post, err := suite.service.UpdateDraft(ctx, draft.PostID, dto.EditPostRequest{Title: &newTitle}, suite.author)

	suite.Require().NoError(err)
	suite.Equal(domain.LifecycleDraft, post.Lifecycle)
	suite.Equal(domain.StatusDraft, post.Status)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestUpdateDraft_StatusChangeRejected() {
	ctx := context.Background()
	draft := suite.newDraft()
	resolved := domain.StatusResolved

	suite.mockPostRepo.On("FindPostByID", ctx, draft.PostID).Return(draft, nil).Once()

	post, err := suite.service.UpdateDraft(ctx, draft.PostID, dto.EditPostRequest{Status: &resolved}, suite.author)

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPostRepo.AssertNotCalled(suite.T(), "UpdatePost", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestPublishDraft_Success() {
	ctx := context.Background()
	draft := suite.newDraft()

	suite.mockPostRepo.On("FindPostByID", ctx, draft.PostID).Return(draft, nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Lifecycle == domain.LifecyclePublished && p.Status == domain.StatusOpen && p.PublishedAt != nil
	})).Return(nil).Once()

	post, err := suite.service.PublishDraft(ctx, draft.PostID, suite.author)

	suite.Require().NoError(err)
	suite.True(post.IsPublished())
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestPublishDraft_NonAuthorForbidden() {
	ctx := context.Background()
	draft := suite.newDraft()

	suite.mockPostRepo.On("FindPostByID", ctx, draft.PostID).Return(draft, nil).Once()

	post, err := suite.service.PublishDraft(ctx, draft.PostID, suite.employee)

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPostRepo.AssertNotCalled(suite.T(), "UpdatePost", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestPublishDraft_NotADraft() {
	ctx := context.Background()
	published := suite.newPublishedPost()

	suite.mockPostRepo.On("FindPostByID", ctx, published.PostID).Return(published, nil).Once()

	post, err := suite.service.PublishDraft(ctx, published.PostID, suite.author)

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, services.ErrNotADraft)
}

func (suite *PostServiceTestSuite) TestDeleteDraft_Success() {
	ctx := context.Background()
	draft := suite.newDraft()

	suite.mockPostRepo.On("FindPostByID", ctx, draft.PostID).Return(draft, nil).Once()
	suite.mockPostRepo.On("DeletePost", ctx, draft.PostID).Return(nil).Once()

	err := suite.service.DeleteDraft(ctx, draft.PostID, suite.author)

	suite.Require().NoError(err)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestGetPostByID_CrossCompanyHidden() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	post.CompanyID = uuid.NewString() // different company

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()

	got, err := suite.service.GetPostByID(ctx, post.PostID, suite.author)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Scheduling ---

func (suite *PostServiceTestSuite) TestSchedulePost_Success() {
	ctx := context.Background()
	publishAt := time.Now().UTC().Add(2 * time.Hour)
	req := dto.SchedulePostRequest{
		CreatePostRequest:  dto.CreatePostRequest{Title: "Townhall", Content: "Agenda...", PrivacyLevel: domain.PrivacyCompanyPublic},
		ScheduledPublishAt: publishAt,
	}

	suite.mockPostRepo.On("SavePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Lifecycle == domain.LifecycleScheduled &&
			p.Status == domain.StatusScheduled &&
			p.ScheduledPublishAt != nil && p.ScheduledPublishAt.Equal(publishAt)
	})).Return(nil).Once()

	post, err := suite.service.SchedulePost(ctx, req, suite.author)

	suite.Require().NoError(err)
	suite.Equal(domain.LifecycleScheduled, post.Lifecycle)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestSchedulePost_PastTimeRejected() {
	ctx := context.Background()
	req := dto.SchedulePostRequest{
		CreatePostRequest:  dto.CreatePostRequest{Title: "Too late", Content: "...", PrivacyLevel: domain.PrivacyCompanyPublic},
		ScheduledPublishAt: time.Now().UTC().Add(-time.Minute),
	}

	post, err := suite.service.SchedulePost(ctx, req, suite.author)

	suite.Require().Error(err)
	suite.Nil(post)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPostRepo.AssertNotCalled(suite.T(), "SavePost", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestCancelScheduledPost_RevertsToDraft() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	post.Lifecycle = domain.LifecycleScheduled
	post.Status = domain.StatusScheduled
	publishAt := time.Now().UTC().Add(time.Hour)
	post.ScheduledPublishAt = &publishAt
	post.PublishedBy = nil
	post.PublishedAt = nil

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Lifecycle == domain.LifecycleDraft && p.Status == domain.StatusDraft && p.ScheduledPublishAt == nil
	})).Return(nil).Once()

	got, err := suite.service.CancelScheduledPost(ctx, post.PostID, suite.author)

	suite.Require().NoError(err)
	suite.Equal(domain.LifecycleDraft, got.Lifecycle)
	suite.Nil(got.ScheduledPublishAt)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestPublishScheduledPost_Success() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	post.Lifecycle = domain.LifecycleScheduled
	post.Status = domain.StatusScheduled
	publishAt := time.Now().UTC().Add(-time.Minute)
	post.ScheduledPublishAt = &publishAt
	post.PublishedBy = nil
	post.PublishedAt = nil

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Lifecycle == domain.LifecyclePublished &&
			p.Status == domain.StatusOpen &&
			p.PublishedBy != nil && *p.PublishedBy == post.AuthorID
	})).Return(nil).Once()

	got, err := suite.service.PublishScheduledPost(ctx, post.PostID)

	suite.Require().NoError(err)
	suite.True(got.IsPublished())
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestPublishScheduledPost_AlreadyPublishedIsNoOp() {
	ctx := context.Background()
	post := suite.newPublishedPost()

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()

	got, err := suite.service.PublishScheduledPost(ctx, post.PostID)

	suite.Require().NoError(err)
	suite.Equal(post.PostID, got.PostID)
	suite.mockPostRepo.AssertNotCalled(suite.T(), "UpdatePost", mock.Anything, mock.Anything)
	suite.mockActivityRepo.AssertNotCalled(suite.T(), "SaveActivity", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestPublishScheduledPost_DepartmentOnlyWithoutDepartment() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	post.Lifecycle = domain.LifecycleScheduled
	post.Status = domain.StatusScheduled
	post.PrivacyLevel = domain.PrivacyDepartmentOnly
	post.DepartmentID = nil
	post.PublishedBy = nil
	post.PublishedAt = nil

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()

	got, err := suite.service.PublishScheduledPost(ctx, post.PostID)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrConfiguration)
	suite.mockPostRepo.AssertNotCalled(suite.T(), "UpdatePost", mock.Anything, mock.Anything)
}

// --- Edit audit trail ---

func (suite *PostServiceTestSuite) TestEditPost_CategoryOnlyChangeProducesPreciseDiff() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	newCategory := "it"
	req := dto.EditPostRequest{
		Title:    &post.Title, // unchanged
		Category: &newCategory,
	}

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("SaveEditHistoryEntry", ctx, mock.MatchedBy(func(e domain.EditHistoryEntry) bool {
		if len(e.Changes) != 1 {
			return false
		}
		change, ok := e.Changes["category"]
		return ok && change.Old == "facilities" && change.New == "it" && e.EditorID == suite.author.UserID
	})).Return(nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Category == "it" && p.EditCount == 1 && p.LastEditedBy != nil && *p.LastEditedBy == suite.author.UserID
	})).Return(nil).Once()

	got, err := suite.service.EditPost(ctx, post.PostID, req, suite.author)

	suite.Require().NoError(err)
	suite.Equal("it", got.Category)
	suite.Equal(1, got.EditCount)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestEditPost_UntrackedOnlyChangeSkipsHistory() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	resolved := domain.StatusResolved
	req := dto.EditPostRequest{Status: &resolved}

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Status == domain.StatusResolved && p.EditCount == 1
	})).Return(nil).Once()

	got, err := suite.service.EditPost(ctx, post.PostID, req, suite.author)

	suite.Require().NoError(err)
	suite.Equal(1, got.EditCount)
	suite.mockPostRepo.AssertNotCalled(suite.T(), "SaveEditHistoryEntry", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestEditPost_UpdateFailureWritesNoHistory() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	newTitle := "Espresso machine broken"

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.AnythingOfType("domain.Post")).
		Return(errors.New("connection reset")).Once()

	updated, err := suite.service.EditPost(ctx, post.PostID, dto.EditPostRequest{Title: &newTitle}, suite.author)

	suite.Require().Error(err)
	suite.Nil(updated)
	// The history entry lands only after the post update; a failed update
	// must leave no audit record of a change that was never applied.
	suite.mockPostRepo.AssertNotCalled(suite.T(), "SaveEditHistoryEntry", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestEditPost_ElevatedNonAuthorAllowed() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	newTitle := "Retitled by HR"
	req := dto.EditPostRequest{Title: &newTitle}

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("SaveEditHistoryEntry", ctx, mock.MatchedBy(func(e domain.EditHistoryEntry) bool {
		return e.EditorID == suite.hr.UserID
	})).Return(nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.Anything).Return(nil).Once()

	got, err := suite.service.EditPost(ctx, post.PostID, req, suite.hr)

	suite.Require().NoError(err)
	suite.Equal(newTitle, got.Title)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestEditPost_PlainEmployeeForbidden() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	newTitle := "Hijacked"
	req := dto.EditPostRequest{Title: &newTitle}

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()

	got, err := suite.service.EditPost(ctx, post.PostID, req, suite.employee)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PostServiceTestSuite) TestListEditHistory_EmptyTrail() {
	ctx := context.Background()
	post := suite.newPublishedPost()

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("ListEditHistory", ctx, post.PostID).Return(nil, nil).Once()

	entries, err := suite.service.ListEditHistory(ctx, post.PostID, suite.author)

	suite.Require().NoError(err)
	suite.NotNil(entries)
	suite.Empty(entries)
}

// --- Moderation flags ---

func (suite *PostServiceTestSuite) TestPinPost_Success() {
	ctx := context.Background()
	post := suite.newPublishedPost()

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Flags.Pinned && p.PinnedBy != nil && *p.PinnedBy == suite.hr.UserID &&
			p.Lifecycle == domain.LifecyclePublished && p.Status == domain.StatusOpen
	})).Return(nil).Once()

	got, err := suite.service.PinPost(ctx, post.PostID, suite.hr)

	suite.Require().NoError(err)
	suite.True(got.Flags.Pinned)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestPinPost_PlainEmployeeForbidden() {
	ctx := context.Background()

	got, err := suite.service.PinPost(ctx, uuid.NewString(), suite.employee)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPostRepo.AssertNotCalled(suite.T(), "FindPostByID", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestPinPost_DraftRejected() {
	ctx := context.Background()
	draft := suite.newDraft()

	suite.mockPostRepo.On("FindPostByID", ctx, draft.PostID).Return(draft, nil).Once()

	got, err := suite.service.PinPost(ctx, draft.PostID, suite.hr)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostServiceTestSuite) TestArchivePost_AuthorAllowed() {
	ctx := context.Background()
	post := suite.newPublishedPost()

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Flags.Archived && p.ArchivedBy != nil && *p.ArchivedBy == suite.author.UserID
	})).Return(nil).Once()

	got, err := suite.service.ArchivePost(ctx, post.PostID, suite.author)

	suite.Require().NoError(err)
	suite.True(got.Flags.Archived)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestArchivePost_NonAuthorEmployeeForbidden() {
	ctx := context.Background()
	post := suite.newPublishedPost()

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()

	got, err := suite.service.ArchivePost(ctx, post.PostID, suite.employee)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *PostServiceTestSuite) TestUnarchivePost_ClearsStamps() {
	ctx := context.Background()
	post := suite.newPublishedPost()
	now := time.Now().UTC()
	post.Flags.Archived = true
	post.ArchivedBy = &suite.hr.UserID
	post.ArchivedAt = &now

	suite.mockPostRepo.On("FindPostByID", ctx, post.PostID).Return(post, nil).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return !p.Flags.Archived && p.ArchivedBy == nil && p.ArchivedAt == nil
	})).Return(nil).Once()

	got, err := suite.service.UnarchivePost(ctx, post.PostID, suite.hr)

	suite.Require().NoError(err)
	suite.False(got.Flags.Archived)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

// --- Bulk actions ---

func (suite *PostServiceTestSuite) TestBulkArchive_BestEffortPartialFailure() {
	ctx := context.Background()

	good1 := suite.newPublishedPost()
	good2 := suite.newPublishedPost()
	good3 := suite.newPublishedPost()
	draft := suite.newDraft()
	missingID := uuid.NewString()

	suite.mockPostRepo.On("FindPostByID", ctx, good1.PostID).Return(good1, nil).Once()
	suite.mockPostRepo.On("FindPostByID", ctx, good2.PostID).Return(good2, nil).Once()
	suite.mockPostRepo.On("FindPostByID", ctx, good3.PostID).Return(good3, nil).Once()
	suite.mockPostRepo.On("FindPostByID", ctx, draft.PostID).Return(draft, nil).Once()
	suite.mockPostRepo.On("FindPostByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPostRepo.On("UpdatePost", ctx, mock.MatchedBy(func(p domain.Post) bool {
		return p.Flags.Archived
	})).Return(nil).Times(3)

	ids := []string{good1.PostID, missingID, good2.PostID, draft.PostID, good3.PostID}
	result, err := suite.service.BulkArchive(ctx, ids, true, suite.hr)

	suite.Require().NoError(err)
	suite.Equal(3, result.Count)
	suite.Len(result.Results, 5)
	suite.True(result.Results[0].Success)
	suite.False(result.Results[1].Success)
	suite.True(result.Results[2].Success)
	suite.False(result.Results[3].Success)
	suite.True(result.Results[4].Success)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

func (suite *PostServiceTestSuite) TestBulkUpdateStatus_InvalidStatusRejected() {
	ctx := context.Background()

	result, err := suite.service.BulkUpdateStatus(ctx, []string{uuid.NewString()}, domain.StatusDraft, suite.hr)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PostServiceTestSuite) TestBulkAssignDepartment_InactiveTargetFailsWholeCall() {
	ctx := context.Background()
	dept := &domain.Department{DepartmentID: uuid.NewString(), CompanyID: suite.companyID, Name: "Old", IsActive: false}

	suite.mockDeptRepo.On("FindDepartmentByID", ctx, dept.DepartmentID).Return(dept, nil).Once()

	result, err := suite.service.BulkAssignDepartment(ctx, []string{uuid.NewString()}, dept.DepartmentID, suite.hr)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPostRepo.AssertNotCalled(suite.T(), "FindPostByID", mock.Anything, mock.Anything)
}

func (suite *PostServiceTestSuite) TestBulkDeleteDrafts_SkipsForeignAndPublished() {
	ctx := context.Background()
	ownDraft := suite.newDraft()
	published := suite.newPublishedPost()
	foreignDraft := suite.newDraft()
	foreignDraft.AuthorID = uuid.NewString()

	suite.mockPostRepo.On("FindPostByID", ctx, ownDraft.PostID).Return(ownDraft, nil).Once()
	suite.mockPostRepo.On("FindPostByID", ctx, published.PostID).Return(published, nil).Once()
	suite.mockPostRepo.On("FindPostByID", ctx, foreignDraft.PostID).Return(foreignDraft, nil).Once()
	suite.mockPostRepo.On("DeletePost", ctx, ownDraft.PostID).Return(nil).Once()

	result, err := suite.service.BulkDeleteDrafts(ctx, []string{ownDraft.PostID, published.PostID, foreignDraft.PostID}, suite.author)

	suite.Require().NoError(err)
	suite.Equal(1, result.Count)
	suite.True(result.Results[0].Success)
	suite.False(result.Results[1].Success)
	suite.False(result.Results[2].Success)
	suite.mockPostRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---

func TestPostServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostServiceTestSuite))
}
