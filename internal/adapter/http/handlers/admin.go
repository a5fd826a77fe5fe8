package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/dto"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/mapper"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/middleware"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/validation"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/ws"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
	"github.com/drashti-2005/task-manager-sub000/pkg/apierrors"
)

type AdminHandler struct {
	adminService ports.AdminService
	hub          *ws.Hub
}

func NewAdminHandler(adminService ports.AdminService, hub *ws.Hub) *AdminHandler {
	return &AdminHandler{adminService: adminService, hub: hub}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	filter := domain.UserFilter{
		Search: c.Query("search"),
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if v := c.Query("role"); v != "" {
		role := domain.Role(v)
		if !role.Valid() {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgInvalidPayload, lang))
			return
		}
		filter.Role = &role
	}
	if v := c.Query("accountStatus"); v != "" {
		status := domain.AccountStatus(v)
		filter.AccountStatus = &status
	}

	users, total, err := h.adminService.ListUsers(c.Request.Context(), actor, filter)
	if err != nil {
		h.respondAdminError(c, lang, err, apierrors.MsgFailListUsers, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, dto.UserListResponse{
		Success: true,
		Total:   total,
		Users:   mapper.ToUserItems(users),
	})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	user, err := h.adminService.GetUser(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.respondAdminError(c, lang, err, apierrors.MsgFailListUsers, "failed to get user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": mapper.ToUserItem(user)})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	in := domain.UpdateUserInput{Name: req.Name, IsActive: req.IsActive}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		in.Role = &role
	}
	if req.AccountStatus != nil {
		status := domain.AccountStatus(*req.AccountStatus)
		in.AccountStatus = &status
	}

	user, err := h.adminService.UpdateUser(c.Request.Context(), actor, c.Param("id"), in, middleware.GetMeta(c))
	if err != nil {
		h.respondAdminError(c, lang, err, apierrors.MsgFailSaveUser, "failed to update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": mapper.ToUserItem(user)})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	if err := h.adminService.DeleteUser(c.Request.Context(), actor, c.Param("id"), middleware.GetMeta(c)); err != nil {
		h.respondAdminError(c, lang, err, apierrors.MsgFailDeleteUser, "failed to delete user")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "user deleted"})
}

// ListTasks is the cross-tenant listing; visibility scoping is skipped on
// purpose, the role gate on the route group is what protects it.
func (h *AdminHandler) ListTasks(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	filter, ok := parseTaskFilter(c, lang)
	if !ok {
		return
	}

	tasks, err := h.adminService.ListTasks(c.Request.Context(), actor, filter)
	if err != nil {
		h.respondAdminError(c, lang, err, apierrors.MsgFailListTasks, "failed to list tasks for admin")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": mapper.ToTaskItems(tasks)})
}

func (h *AdminHandler) ListActivity(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	filter := domain.ActivityFilter{
		Limit:  parseIntQuery(c, "limit", 50),
		Offset: parseIntQuery(c, "offset", 0),
	}
	if v := c.Query("action"); v != "" {
		action := domain.Action(v)
		filter.Action = &action
	}
	if v := c.Query("performedBy"); v != "" {
		filter.PerformedBy = &v
	}
	if v := c.Query("status"); v != "" {
		status := domain.ActivityStatus(v)
		filter.Status = &status
	}
	if v := c.Query("startDate"); v != "" {
		start, err := validation.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
			return
		}
		filter.Start = &start
	}
	if v := c.Query("endDate"); v != "" {
		end, err := validation.ParseRangeEnd(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
			return
		}
		filter.End = &end
	}

	logs, total, err := h.adminService.ListActivity(c.Request.Context(), actor, filter)
	if err != nil {
		h.respondAdminError(c, lang, err, apierrors.MsgFailListActivity, "failed to list activity logs")
		return
	}

	c.JSON(http.StatusOK, dto.ActivityListResponse{
		Success: true,
		Total:   total,
		Logs:    mapper.ToActivityItems(logs),
	})
}

// ActivityStream upgrades the connection and feeds it new activity entries
// as they are recorded.
func (h *AdminHandler) ActivityStream(c *gin.Context) {
	lang := middleware.GetLang(c)

	if err := h.hub.Subscribe(c.Writer, c.Request); err != nil {
		zap.L().Error("failed to subscribe to activity stream", zap.Error(err))
		c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgInvalidPayload, lang))
	}
}

func (h *AdminHandler) DashboardStats(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	stats, err := h.adminService.Stats(c.Request.Context(), actor)
	if err != nil {
		h.respondAdminError(c, lang, err, apierrors.MsgFailListActivity, "failed to compute dashboard stats")
		return
	}

	byStatus := make(map[string]int, len(stats.TasksByStatus))
	for status, n := range stats.TasksByStatus {
		byStatus[string(status)] = n
	}

	c.JSON(http.StatusOK, dto.DashboardStatsResponse{
		Success:        true,
		TotalUsers:     stats.TotalUsers,
		TotalTeams:     stats.TotalTeams,
		TotalTasks:     stats.TotalTasks,
		TasksByStatus:  byStatus,
		RecentActivity: mapper.ToActivityItems(stats.RecentActivity),
	})
}

func (h *AdminHandler) respondAdminError(c *gin.Context, lang string, err error, failKey, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(apierrors.MsgUserNotFound, lang))
	case errors.Is(err, domain.ErrRoleForbidden):
		c.JSON(http.StatusForbidden, apierrors.CreateError(apierrors.MsgRoleForbidden, lang))
	default:
		zap.L().Error(logMsg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(failKey, lang))
	}
}
