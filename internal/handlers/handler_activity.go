package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/PulseDeskHQ/pulse_desk_app/internal/core/ports/services"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/dto"
	"github.com/PulseDeskHQ/pulse_desk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// activityHandler handles HTTP requests for the activity feed.
type activityHandler struct {
	activityService portssvc.ActivitySvc
}

func newActivityHandler(as portssvc.ActivitySvc) *activityHandler {
	return &activityHandler{
		activityService: as,
	}
}

// registerActivityRoutes registers routes related to the activity feed.
func registerActivityRoutes(rg *gin.RouterGroup, activityService portssvc.ActivitySvc) {
	h := newActivityHandler(activityService)
	rg.GET("/activities/:entityID", h.listActivities)
}

// listActivities godoc
// @Summary List activity for an entity
// @Description Returns the newest activity entries recorded against a post or department
// @Tags activities
// @Produce  json
// @Param   entityID path string true "Post or department ID"
// @Param   limit query int false "Maximum entries (1-200, default 50)"
// @Success 200 {array} dto.ActivityLogResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /activities/{entityID} [get]
func (h *activityHandler) listActivities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListActivitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListActivities", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	logs, err := h.activityService.ListActivitiesByEntity(c.Request.Context(), c.Param("entityID"), params.Limit, actor)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve activity")
		return
	}
	c.JSON(http.StatusOK, dto.ToActivityLogResponses(logs))
}
