package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/services"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/dto"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postHandler handles HTTP requests related to posts.
type postHandler struct {
	postService portssvc.PostSvcFacade
}

// newPostHandler creates a new postHandler.
func newPostHandler(ps portssvc.PostSvcFacade) *postHandler {
	return &postHandler{
		postService: ps,
	}
}

// RegisterPostRoutes registers routes related to posts.
func RegisterPostRoutes(rg *gin.RouterGroup, postService portssvc.PostSvcFacade) {
	h := newPostHandler(postService)

	posts := rg.Group("/posts")
	{
		posts.POST("", h.createPost)
		posts.GET("", h.listPosts)
		posts.GET("/:postID", h.getPost)
		posts.PATCH("/:postID", h.editPost)
		posts.GET("/:postID/history", h.listEditHistory)

		posts.POST("/drafts", h.saveDraft)
		posts.PATCH("/drafts/:postID", h.updateDraft)
		posts.DELETE("/drafts/:postID", h.deleteDraft)
		posts.POST("/drafts/:postID/publish", h.publishDraft)

		posts.POST("/schedule", h.schedulePost)
		posts.POST("/:postID/cancel-schedule", h.cancelScheduledPost)

		posts.POST("/:postID/pin", h.pinPost)
		posts.DELETE("/:postID/pin", h.unpinPost)
		posts.POST("/:postID/archive", h.archivePost)
		posts.DELETE("/:postID/archive", h.unarchivePost)

		posts.POST("/bulk/status", h.bulkUpdateStatus)
		posts.POST("/bulk/archive", h.bulkArchive)
		posts.POST("/bulk/department", h.bulkAssignDepartment)
		posts.POST("/bulk/delete-drafts", h.bulkDeleteDrafts)
	}
}

// registerSchedulerRoutes registers the entry point the external scheduler
// hits once a scheduled publish instant has elapsed.
func registerSchedulerRoutes(rg *gin.RouterGroup, postService portssvc.PostSvcFacade) {
	h := newPostHandler(postService)
	rg.POST("/scheduler/posts/:postID/publish", h.publishScheduledPost)
}

// createPost godoc
// @Summary Create and publish a post
// @Description Creates a post that is immediately published and open
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   post body dto.CreatePostRequest true "Post details"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /posts [post]
func (h *postHandler) createPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.CreatePost(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create post")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// listPosts godoc
// @Summary List posts
// @Description Retrieves a filtered, paginated listing of the company's posts
// @Tags posts
// @Produce  json
// @Param   lifecycle query string false "Lifecycle filter" Enums(draft, scheduled, published)
// @Param   category query string false "Category filter"
// @Param   departmentID query string false "Department filter"
// @Param   authorID query string false "Author filter"
// @Param   includeArchived query bool false "Include archived posts"
// @Param   limit query int false "Page size (1-100)"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListPostsResponse
// @Failure 400 {object} map[string]string "Invalid filters"
// @Security BearerAuth
// @Router /posts [get]
func (h *postHandler) listPosts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListPostsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListPosts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.postService.ListPosts(c.Request.Context(), params, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list posts")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getPost godoc
// @Summary Get a post by ID
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Security BearerAuth
// @Router /posts/{postID} [get]
func (h *postHandler) getPost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.GetPostByID(c.Request.Context(), c.Param("postID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// editPost godoc
// @Summary Edit a post
// @Description Applies a partial update, recording changed tracked fields in the edit history
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   postID path string true "Post ID"
// @Param   update body dto.EditPostRequest true "Fields to change"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} map[string]string "Not the author or an elevated role"
// @Failure 404 {object} map[string]string "Post not found"
// @Security BearerAuth
// @Router /posts/{postID} [patch]
func (h *postHandler) editPost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditPost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.EditPost(c.Request.Context(), c.Param("postID"), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to edit post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// listEditHistory godoc
// @Summary List a post's edit history
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {array} dto.EditHistoryEntryResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Security BearerAuth
// @Router /posts/{postID}/history [get]
func (h *postHandler) listEditHistory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	entries, err := h.postService.ListEditHistory(c.Request.Context(), c.Param("postID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve edit history")
		return
	}
	c.JSON(http.StatusOK, dto.ToEditHistoryResponses(entries))
}

// saveDraft godoc
// @Summary Save a draft
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   post body dto.CreatePostRequest true "Draft details"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /posts/drafts [post]
func (h *postHandler) saveDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.SaveDraft(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to save draft")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// updateDraft godoc
// @Summary Update a draft
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   postID path string true "Post ID"
// @Param   update body dto.EditPostRequest true "Fields to change"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} map[string]string "Not the author"
// @Security BearerAuth
// @Router /posts/drafts/{postID} [patch]
func (h *postHandler) updateDraft(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.EditPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.UpdateDraft(c.Request.Context(), c.Param("postID"), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// deleteDraft godoc
// @Summary Delete a draft
// @Tags posts
// @Param   postID path string true "Post ID"
// @Success 204 "Draft deleted"
// @Failure 403 {object} map[string]string "Not the author"
// @Security BearerAuth
// @Router /posts/drafts/{postID} [delete]
func (h *postHandler) deleteDraft(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.postService.DeleteDraft(c.Request.Context(), c.Param("postID"), actor); err != nil {
		respondServiceError(c, err, "Failed to delete draft")
		return
	}
	c.Status(http.StatusNoContent)
}

// publishDraft godoc
// @Summary Publish a draft
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} map[string]string "Not the author"
// @Security BearerAuth
// @Router /posts/drafts/{postID}/publish [post]
func (h *postHandler) publishDraft(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.PublishDraft(c.Request.Context(), c.Param("postID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to publish draft")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// schedulePost godoc
// @Summary Schedule a post
// @Description Creates a post that publishes automatically at a future instant
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   post body dto.SchedulePostRequest true "Post details and publish time"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} map[string]string "Publish time not in the future"
// @Security BearerAuth
// @Router /posts/schedule [post]
func (h *postHandler) schedulePost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SchedulePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SchedulePost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.SchedulePost(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to schedule post")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// cancelScheduledPost godoc
// @Summary Cancel a scheduled post
// @Description Reverts a scheduled post to a draft
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} map[string]string "Not the author"
// @Security BearerAuth
// @Router /posts/{postID}/cancel-schedule [post]
func (h *postHandler) cancelScheduledPost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.CancelScheduledPost(c.Request.Context(), c.Param("postID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to cancel scheduled post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// publishScheduledPost godoc
// @Summary Publish a scheduled post
// @Description Invoked by the scheduler once the publish instant has elapsed; idempotent
// @Tags scheduler
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} map[string]string "Post not found"
// @Failure 422 {object} map[string]string "Post misconfigured for publication"
// @Security BearerAuth
// @Router /scheduler/posts/{postID}/publish [post]
func (h *postHandler) publishScheduledPost(c *gin.Context) {
	post, err := h.postService.PublishScheduledPost(c.Request.Context(), c.Param("postID"))
	if err != nil {
		respondServiceError(c, err, "Failed to publish scheduled post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// pinPost godoc
// @Summary Pin a post
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /posts/{postID}/pin [post]
func (h *postHandler) pinPost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.PinPost(c.Request.Context(), c.Param("postID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to pin post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// unpinPost godoc
// @Summary Unpin a post
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /posts/{postID}/pin [delete]
func (h *postHandler) unpinPost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.UnpinPost(c.Request.Context(), c.Param("postID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to unpin post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// archivePost godoc
// @Summary Archive a post
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} map[string]string "Not the author or an elevated role"
// @Security BearerAuth
// @Router /posts/{postID}/archive [post]
func (h *postHandler) archivePost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.ArchivePost(c.Request.Context(), c.Param("postID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to archive post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// unarchivePost godoc
// @Summary Unarchive a post
// @Tags posts
// @Produce  json
// @Param   postID path string true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 403 {object} map[string]string "Not the author or an elevated role"
// @Security BearerAuth
// @Router /posts/{postID}/archive [delete]
func (h *postHandler) unarchivePost(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	post, err := h.postService.UnarchivePost(c.Request.Context(), c.Param("postID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to unarchive post")
		return
	}
	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// bulkUpdateStatus godoc
// @Summary Bulk update post status
// @Description Best-effort per post; the response reports one outcome per input ID
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkStatusRequest true "Post IDs and target status"
// @Success 200 {object} dto.BulkResultResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /posts/bulk/status [post]
func (h *postHandler) bulkUpdateStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkUpdateStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.postService.BulkUpdateStatus(c.Request.Context(), req.PostIDs, req.Status, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update post status in bulk")
		return
	}
	c.JSON(http.StatusOK, dto.ToBulkResultResponse(result))
}

// bulkArchive godoc
// @Summary Bulk archive or unarchive posts
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkArchiveRequest true "Post IDs and archived flag"
// @Success 200 {object} dto.BulkResultResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /posts/bulk/archive [post]
func (h *postHandler) bulkArchive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkArchive", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.postService.BulkArchive(c.Request.Context(), req.PostIDs, req.Archived, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to archive posts in bulk")
		return
	}
	c.JSON(http.StatusOK, dto.ToBulkResultResponse(result))
}

// bulkAssignDepartment godoc
// @Summary Bulk assign posts to a department
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkAssignDepartmentRequest true "Post IDs and target department"
// @Success 200 {object} dto.BulkResultResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /posts/bulk/department [post]
func (h *postHandler) bulkAssignDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkAssignDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkAssignDepartment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.postService.BulkAssignDepartment(c.Request.Context(), req.PostIDs, req.DepartmentID, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to assign posts in bulk")
		return
	}
	c.JSON(http.StatusOK, dto.ToBulkResultResponse(result))
}

// bulkDeleteDrafts godoc
// @Summary Bulk delete drafts
// @Description Deletes the caller's own drafts; other posts are skipped per item
// @Tags posts
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkDeleteDraftsRequest true "Post IDs"
// @Success 200 {object} dto.BulkResultResponse
// @Security BearerAuth
// @Router /posts/bulk/delete-drafts [post]
func (h *postHandler) bulkDeleteDrafts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkDeleteDraftsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkDeleteDrafts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.postService.BulkDeleteDrafts(c.Request.Context(), req.PostIDs, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to delete drafts in bulk")
		return
	}
	c.JSON(http.StatusOK, dto.ToBulkResultResponse(result))
}
