package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/dto"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/mapper"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/middleware"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/validation"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
	"github.com/drashti-2005/task-manager-sub000/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	filter, ok := parseTaskFilter(c, lang)
	if !ok {
		return
	}

	tasks, err := h.taskService.List(c.Request.Context(), actor, filter)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.String("actor_id", actor.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(apierrors.MsgFailListTasks, lang))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": mapper.ToTaskItems(tasks)})
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	task, err := h.taskService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.respondTaskError(c, lang, err, apierrors.MsgFailListTasks, "failed to get task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": mapper.ToTaskItem(task)})
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	in, err := validation.BuildCreateTaskInput(req, actor.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), actor, in, middleware.GetMeta(c))
	if err != nil {
		h.respondTaskError(c, lang, err, apierrors.MsgFailCreateTask, "failed to create task")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "task": mapper.ToTaskItem(task)})
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}
	body, _ := c.Get(gin.BodyBytesKey)
	raw, _ := body.([]byte)

	in, err := validation.BuildUpdateTaskInput(req, raw, actor.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	task, err := h.taskService.Update(c.Request.Context(), actor, c.Param("id"), in, middleware.GetMeta(c))
	if err != nil {
		h.respondTaskError(c, lang, err, apierrors.MsgFailUpdateTask, "failed to update task")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": mapper.ToTaskItem(task)})
}

func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	task, err := h.taskService.UpdateStatus(c.Request.Context(), actor, c.Param("id"), domain.TaskStatus(req.Status), middleware.GetMeta(c))
	if err != nil {
		h.respondTaskError(c, lang, err, apierrors.MsgFailUpdateTask, "failed to update task status")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": mapper.ToTaskItem(task)})
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	if err := h.taskService.Delete(c.Request.Context(), actor, c.Param("id"), middleware.GetMeta(c)); err != nil {
		h.respondTaskError(c, lang, err, apierrors.MsgFailDeleteTask, "failed to delete task")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "task deleted"})
}

func (h *TaskHandler) respondTaskError(c *gin.Context, lang string, err error, failKey, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(apierrors.MsgTaskNotFound, lang))
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(apierrors.MsgUserNotFound, lang))
	case errors.Is(err, domain.ErrTeamNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(apierrors.MsgTeamNotFound, lang))
	case errors.Is(err, domain.ErrTaskForbidden):
		c.JSON(http.StatusForbidden, apierrors.CreateError(apierrors.MsgTaskForbidden, lang))
	case errors.Is(err, domain.ErrFieldForbidden):
		c.JSON(http.StatusForbidden, apierrors.CreateError(apierrors.MsgFieldForbidden, lang))
	case errors.Is(err, domain.ErrRoleForbidden):
		c.JSON(http.StatusForbidden, apierrors.CreateError(apierrors.MsgRoleForbidden, lang))
	case errors.Is(err, domain.ErrInvalidAssignment):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgInvalidAssignment, lang))
	case errors.Is(err, domain.ErrInvalidTask):
		c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgInvalidTask, lang))
	default:
		zap.L().Error(logMsg, zap.String("task_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(failKey, lang))
	}
}

// parseTaskFilter reads the task listing query parameters shared by the
// user-facing and admin listings. On an unknown status or priority it
// responds 400 and reports false.
func parseTaskFilter(c *gin.Context, lang string) (domain.TaskFilter, bool) {
	filter := domain.TaskFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if v := c.Query("status"); v != "" {
		status := domain.TaskStatus(v)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgInvalidPayload, lang))
			return domain.TaskFilter{}, false
		}
		filter.Status = &status
	}
	if v := c.Query("priority"); v != "" {
		priority := domain.TaskPriority(v)
		if !priority.Valid() {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgInvalidPayload, lang))
			return domain.TaskFilter{}, false
		}
		filter.Priority = &priority
	}
	if v := c.Query("assignedTo"); v != "" {
		filter.AssignedTo = &v
	}
	return filter, true
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
