package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/services"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/dto"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// departmentHandler handles HTTP requests related to departments.
type departmentHandler struct {
	departmentService portssvc.DepartmentSvcFacade
}

// newDepartmentHandler creates a new departmentHandler.
func newDepartmentHandler(ds portssvc.DepartmentSvcFacade) *departmentHandler {
	return &departmentHandler{
		departmentService: ds,
	}
}

// registerDepartmentRoutes registers routes related to departments.
func registerDepartmentRoutes(rg *gin.RouterGroup, departmentService portssvc.DepartmentSvcFacade) {
	h := newDepartmentHandler(departmentService)

	departments := rg.Group("/departments")
	{
		departments.POST("", h.createDepartment)
		departments.GET("", h.listDepartments)
		departments.GET("/:departmentID", h.getDepartment)
		departments.PATCH("/:departmentID", h.updateDepartment)
		departments.DELETE("/:departmentID", h.deleteDepartment)
		departments.GET("/:departmentID/statistics", h.getDepartmentStatistics)
		departments.GET("/:departmentID/members", h.listDepartmentMembers)
		departments.PUT("/:departmentID/head", h.assignDepartmentHead)
		departments.POST("/bulk/assign-users", h.bulkAssignUsers)
	}

	users := rg.Group("/users")
	{
		users.PUT("/:userID/department", h.assignUserToDepartment)
		users.DELETE("/:userID/department", h.removeUserFromDepartment)
		users.GET("/:userID/assignment-logs", h.listAssignmentLogs)
	}
}

// createDepartment godoc
// @Summary Create a department
// @Description Creates a department; names are unique (case-insensitive) among the company's active departments
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   department body dto.CreateDepartmentRequest true "Department details"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Failure 409 {object} map[string]string "Name already in use"
// @Security BearerAuth
// @Router /departments [post]
func (h *departmentHandler) createDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDepartment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	dept, err := h.departmentService.CreateDepartment(c.Request.Context(), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to create department")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDepartmentResponse(dept))
}

// listDepartments godoc
// @Summary List departments
// @Description Lists the company's departments with live member counts
// @Tags departments
// @Produce  json
// @Param   includeInactive query bool false "Include soft-deleted departments"
// @Success 200 {object} dto.ListDepartmentsResponse
// @Security BearerAuth
// @Router /departments [get]
func (h *departmentHandler) listDepartments(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	includeInactive := c.Query("includeInactive") == "true"

	depts, err := h.departmentService.ListDepartments(c.Request.Context(), includeInactive, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list departments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDepartmentsResponse(depts))
}

// getDepartment godoc
// @Summary Get a department by ID
// @Tags departments
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{departmentID} [get]
func (h *departmentHandler) getDepartment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	dept, err := h.departmentService.GetDepartmentByID(c.Request.Context(), c.Param("departmentID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve department")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// updateDepartment godoc
// @Summary Update a department
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   update body dto.UpdateDepartmentRequest true "Fields to change"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Failure 409 {object} map[string]string "Name already in use"
// @Security BearerAuth
// @Router /departments/{departmentID} [patch]
func (h *departmentHandler) updateDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateDepartment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	dept, err := h.departmentService.UpdateDepartment(c.Request.Context(), c.Param("departmentID"), req, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to update department")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// deleteDepartment godoc
// @Summary Delete a department
// @Description Soft-deletes a department; with reassignToID set, members move to the target atomically with the deletion
// @Tags departments
// @Accept  json
// @Param   departmentID path string true "Department ID"
// @Param   request body dto.DeleteDepartmentRequest false "Optional reassignment target"
// @Success 204 "Department deleted"
// @Failure 403 {object} map[string]string "Elevated role required"
// @Failure 409 {object} map[string]string "Department already deleted"
// @Security BearerAuth
// @Router /departments/{departmentID} [delete]
func (h *departmentHandler) deleteDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DeleteDepartmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for DeleteDepartment", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.departmentService.DeleteDepartment(c.Request.Context(), c.Param("departmentID"), req.ReassignToID, actor); err != nil {
		respondServiceError(c, err, "Failed to delete department")
		return
	}
	c.Status(http.StatusNoContent)
}

// getDepartmentStatistics godoc
// @Summary Get department statistics
// @Description Aggregates live member and post counts for a department
// @Tags departments
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {object} dto.DepartmentStatisticsResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{departmentID}/statistics [get]
func (h *departmentHandler) getDepartmentStatistics(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	stats, err := h.departmentService.GetDepartmentStatistics(c.Request.Context(), c.Param("departmentID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve department statistics")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentStatisticsResponse(stats))
}

// listDepartmentMembers godoc
// @Summary List a department's members
// @Description Returns the active users currently assigned to a department
// @Tags departments
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Success 200 {array} dto.DepartmentMemberResponse
// @Failure 404 {object} map[string]string "Department not found"
// @Security BearerAuth
// @Router /departments/{departmentID}/members [get]
func (h *departmentHandler) listDepartmentMembers(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	members, err := h.departmentService.ListDepartmentMembers(c.Request.Context(), c.Param("departmentID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to list department members")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentMemberResponses(members))
}

// assignDepartmentHead godoc
// @Summary Assign a department head
// @Description Makes the user the department head, moving them into the department first if needed
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   departmentID path string true "Department ID"
// @Param   request body dto.AssignHeadRequest true "User to promote"
// @Success 200 {object} dto.DepartmentResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /departments/{departmentID}/head [put]
func (h *departmentHandler) assignDepartmentHead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AssignHeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AssignDepartmentHead", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	dept, err := h.departmentService.AssignDepartmentHead(c.Request.Context(), c.Param("departmentID"), req.UserID, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to assign department head")
		return
	}
	c.JSON(http.StatusOK, dto.ToDepartmentResponse(dept))
}

// bulkAssignUsers godoc
// @Summary Bulk assign users to a department
// @Description Best-effort per user; unlike single assignment no per-user audit log entries are written
// @Tags departments
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkAssignUsersRequest true "User IDs and target department"
// @Success 200 {object} dto.BulkResultResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /departments/bulk/assign-users [post]
func (h *departmentHandler) bulkAssignUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.BulkAssignUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for BulkAssignUsers", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	result, err := h.departmentService.BulkAssignUsers(c.Request.Context(), req.UserIDs, req.DepartmentID, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to assign users in bulk")
		return
	}
	c.JSON(http.StatusOK, dto.ToBulkResultResponse(result))
}

// assignUserToDepartment godoc
// @Summary Assign a user to a department
// @Description Moves the user and appends one assignment audit log entry
// @Tags departments
// @Accept  json
// @Param   userID path string true "User ID"
// @Param   request body dto.AssignUserRequest true "Target department"
// @Success 204 "User assigned"
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /users/{userID}/department [put]
func (h *departmentHandler) assignUserToDepartment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AssignUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AssignUserToDepartment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.departmentService.AssignUserToDepartment(c.Request.Context(), c.Param("userID"), req.DepartmentID, actor); err != nil {
		respondServiceError(c, err, "Failed to assign user to department")
		return
	}
	c.Status(http.StatusNoContent)
}

// removeUserFromDepartment godoc
// @Summary Remove a user from their department
// @Tags departments
// @Param   userID path string true "User ID"
// @Success 204 "User removed"
// @Failure 400 {object} map[string]string "User has no department"
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /users/{userID}/department [delete]
func (h *departmentHandler) removeUserFromDepartment(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.departmentService.RemoveUserFromDepartment(c.Request.Context(), c.Param("userID"), actor); err != nil {
		respondServiceError(c, err, "Failed to remove user from department")
		return
	}
	c.Status(http.StatusNoContent)
}

// listAssignmentLogs godoc
// @Summary List a user's department assignment history
// @Tags departments
// @Produce  json
// @Param   userID path string true "User ID"
// @Success 200 {array} dto.AssignmentLogResponse
// @Failure 403 {object} map[string]string "Elevated role required"
// @Security BearerAuth
// @Router /users/{userID}/assignment-logs [get]
func (h *departmentHandler) listAssignmentLogs(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	logs, err := h.departmentService.ListAssignmentLogs(c.Request.Context(), c.Param("userID"), actor)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve assignment logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToAssignmentLogResponses(logs))
}
