package handler

import (
	"net/http"
	"time"

	"timetrack/internal/model"
	"timetrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ActivityHandler struct {
	activities *service.ActivityService
}

func NewActivityHandler(activities *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

type ActivityResponse struct {
	ID        string `json:"id"`
	TaskID    string `json:"task_id"`
	Type      string `json:"type"`
	Message   string `json:"message"`
	ActorID   string `json:"actor_id"`
	CreatedAt string `json:"created_at"`
}

func toActivityResponse(activity *model.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        activity.ID.String(),
		TaskID:    activity.TaskID.String(),
		Type:      string(activity.Type),
		Message:   activity.Message,
		ActorID:   activity.ActorID.String(),
		CreatedAt: activity.CreatedAt.Format(time.RFC3339),
	}
}

// List returns a task's activity log, newest first
func (h *ActivityHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	activities, err := h.activities.List(c.Request.Context(), actor, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]ActivityResponse, len(activities))
	for i := range activities {
		response[i] = toActivityResponse(&activities[i])
	}
	c.JSON(http.StatusOK, response)
}
