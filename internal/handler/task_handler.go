package handler

import (
	"net/http"
	"time"

	"timetrack/internal/model"
	"timetrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// TaskRequest представляет запрос на создание задачи
type TaskRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description" binding:"required,max=2000"`
	AssigneeID  *string    `json:"assignee_id" binding:"omitempty,uuid"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
}

// TaskUpdateRequest представляет частичное обновление задачи администратором
type TaskUpdateRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=2000"`
	Status      *string    `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID  *string    `json:"assignee_id" binding:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date"`
	Tags        *[]string  `json:"tags"`
}

// TaskStatusRequest представляет запрос на смену статуса задачи
type TaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=TODO IN_PROGRESS DONE"`
}

// TaskAssignRequest представляет запрос на назначение пользователя на задачу
type TaskAssignRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

// TaskDueDateRequest представляет запрос на установку или сброс срока задачи
type TaskDueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// TaskResponse представляет ответ с данными задачи
type TaskResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	AssigneeID  *string  `json:"assignee_id,omitempty"`
	CreatedBy   string   `json:"created_by"`
	DueDate     *string  `json:"due_date,omitempty"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// CompleteTaskResponse представляет результат завершения задачи
type CompleteTaskResponse struct {
	Task         TaskResponse       `json:"task"`
	StoppedEntry *TimeEntryResponse `json:"stopped_entry,omitempty"`
}

func toTaskResponse(task *model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID.String(),
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		CreatedBy:   task.CreatedBy.String(),
		Tags:        task.Tags,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.Format(time.RFC3339),
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if task.AssigneeID != nil {
		assignee := task.AssigneeID.String()
		resp.AssigneeID = &assignee
	}
	if task.DueDate != nil {
		due := task.DueDate.Format(time.RFC3339)
		resp.DueDate = &due
	}
	return resp
}

// Create создает новую задачу
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	// Парсим запрос
	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	in := service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		in.AssigneeID = &assigneeID
	}

	task, err := h.tasks.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// List возвращает задачи с учетом фильтров; участники видят только свои
func (h *TaskHandler) List(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	filter := model.TaskFilter{
		Tag:       c.Query("tag"),
		Search:    c.Query("search"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if s := c.Query("status"); s != "" {
		status := model.TaskStatus(s)
		filter.Status = &status
	}
	if p := c.Query("priority"); p != "" {
		priority := model.TaskPriority(p)
		filter.Priority = &priority
	}

	var (
		tasks []model.Task
		err   error
	)
	if actor.Admin() {
		tasks, err = h.tasks.List(c.Request.Context(), filter)
	} else {
		tasks, err = h.tasks.ListForMember(c.Request.Context(), actor.ID, filter)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	// Формируем ответ
	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = toTaskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID получает задачу по ID
func (h *TaskHandler) GetByID(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), actor, taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Update применяет частичное обновление задачи (только администратор)
func (h *TaskHandler) Update(c *gin.Context) {
	actor, ok := requireAdmin(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	// Парсим запрос
	var req TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := model.TaskStatus(*req.Status)
		patch.Status = &status
	}
	if req.Priority != nil {
		priority := model.TaskPriority(*req.Priority)
		patch.Priority = &priority
	}
	if req.AssigneeID != nil {
		assigneeID, err := uuid.Parse(*req.AssigneeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee ID format"})
			return
		}
		patch.AssigneeID = &assigneeID
		patch.AssigneeSet = true
	}
	if req.DueDate != nil {
		patch.DueDate = req.DueDate
		patch.DueDateSet = true
	}
	if req.Tags != nil {
		patch.Tags = *req.Tags
		patch.TagsSet = true
	}

	task, err := h.tasks.UpdateAsAdmin(c.Request.Context(), taskID, patch, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// AssignUser назначает пользователя на задачу (только администратор)
func (h *TaskHandler) AssignUser(c *gin.Context) {
	actor, ok := requireAdmin(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	assigneeID, err := uuid.Parse(req.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID format"})
		return
	}

	task, err := h.tasks.Assign(c.Request.Context(), taskID, &assigneeID, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// UnassignUser снимает назначение с задачи (только администратор)
func (h *TaskHandler) UnassignUser(c *gin.Context) {
	actor, ok := requireAdmin(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.tasks.Assign(c.Request.Context(), taskID, nil, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// SetDueDate устанавливает или сбрасывает срок задачи (только администратор)
func (h *TaskHandler) SetDueDate(c *gin.Context) {
	actor, ok := requireAdmin(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskDueDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.UpdateAsAdmin(c.Request.Context(), taskID, service.TaskPatch{
		DueDate:    req.DueDate,
		DueDateSet: true,
	}, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// UpdateStatus меняет статус задачи от имени назначенного участника
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	status := model.TaskStatus(req.Status)
	var task *model.Task
	if actor.Admin() {
		task, err = h.tasks.UpdateAsAdmin(c.Request.Context(), taskID, service.TaskPatch{Status: &status}, actor.ID)
	} else {
		task, err = h.tasks.UpdateStatusAsMember(c.Request.Context(), taskID, actor.ID, status)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Complete завершает задачу, останавливая связанный активный таймер
func (h *TaskHandler) Complete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, stopped, err := h.tasks.Complete(c.Request.Context(), taskID, actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	// Формируем ответ
	response := CompleteTaskResponse{Task: toTaskResponse(task)}
	if stopped != nil {
		entry := toTimeEntryResponse(stopped)
		response.StoppedEntry = &entry
	}
	c.JSON(http.StatusOK, response)
}
