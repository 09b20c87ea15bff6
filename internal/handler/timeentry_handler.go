package handler

import (
	"net/http"
	"time"

	"timetrack/internal/model"
	"timetrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TimeEntryHandler struct {
	entries *service.TimeEntryService
}

func NewTimeEntryHandler(entries *service.TimeEntryService) *TimeEntryHandler {
	return &TimeEntryHandler{entries: entries}
}

type StartTimeEntryRequest struct {
	TaskID string `json:"task_id" binding:"required,uuid"`
}

type TimeEntryResponse struct {
	ID              string  `json:"id"`
	TaskID          string  `json:"task_id"`
	UserID          string  `json:"user_id"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationSeconds *int64  `json:"duration_seconds,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type TodaySummaryResponse struct {
	TotalTodaySeconds        int64            `json:"total_today_seconds"`
	PerTaskTodaySeconds      map[string]int64 `json:"per_task_today_seconds"`
	CompletedTasksTodayCount int64            `json:"completed_tasks_today_count"`
}

func toTimeEntryResponse(entry *model.TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:        entry.ID.String(),
		TaskID:    entry.TaskID.String(),
		UserID:    entry.UserID.String(),
		StartTime: entry.StartTime.Format(time.RFC3339),
		CreatedAt: entry.CreatedAt.Format(time.RFC3339),
		UpdatedAt: entry.UpdatedAt.Format(time.RFC3339),
	}
	if entry.EndTime != nil {
		end := entry.EndTime.Format(time.RFC3339)
		resp.EndTime = &end
	}
	if entry.DurationSeconds != nil {
		duration := *entry.DurationSeconds
		resp.DurationSeconds = &duration
	}
	return resp
}

// Start begins a time entry against a task assigned to the caller
func (h *TimeEntryHandler) Start(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req StartTimeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	entry, err := h.entries.Start(c.Request.Context(), actor.ID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTimeEntryResponse(entry))
}

// Stop ends the caller's time entry and computes its duration
func (h *TimeEntryHandler) Stop(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid time entry ID format"})
		return
	}

	entry, err := h.entries.Stop(c.Request.Context(), actor.ID, entryID)
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Time entry not found"})
		return
	}

	c.JSON(http.StatusOK, toTimeEntryResponse(entry))
}

// Active returns the caller's running entry, if any
func (h *TimeEntryHandler) Active(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	entry, err := h.entries.Active(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if entry == nil {
		c.JSON(http.StatusOK, gin.H{"active": nil})
		return
	}

	c.JSON(http.StatusOK, toTimeEntryResponse(entry))
}

// Summary returns the caller's tracked time since local midnight
func (h *TimeEntryHandler) Summary(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	summary, err := h.entries.Summary(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := TodaySummaryResponse{
		TotalTodaySeconds:        summary.TotalTodaySeconds,
		PerTaskTodaySeconds:      make(map[string]int64, len(summary.PerTaskTodaySeconds)),
		CompletedTasksTodayCount: summary.CompletedTasksTodayCount,
	}
	for taskID, seconds := range summary.PerTaskTodaySeconds {
		response.PerTaskTodaySeconds[taskID.String()] = seconds
	}
	c.JSON(http.StatusOK, response)
}
