package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/dto"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/mapper"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/middleware"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
	"github.com/drashti-2005/task-manager-sub000/pkg/apierrors"
)

type TeamHandler struct {
	teamService ports.TeamService
}

func NewTeamHandler(teamService ports.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) ListTeams(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	teams, err := h.teamService.List(c.Request.Context(), actor)
	if err != nil {
		zap.L().Error("failed to list teams", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(apierrors.MsgFailListTeams, lang))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "teams": mapper.ToTeamItems(teams)})
}

func (h *TeamHandler) GetTeam(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	team, err := h.teamService.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.respondTeamError(c, lang, err, apierrors.MsgFailListTeams, "failed to get team")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "team": mapper.ToTeamItem(team)})
}

func (h *TeamHandler) CreateTeam(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), actor, domain.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		MemberIDs:   req.Members,
	}, middleware.GetMeta(c))
	if err != nil {
		h.respondTeamError(c, lang, err, apierrors.MsgFailSaveTeam, "failed to create team")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "team": mapper.ToTeamItem(team)})
}

func (h *TeamHandler) UpdateTeam(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	team, err := h.teamService.Update(c.Request.Context(), actor, c.Param("id"), domain.UpdateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    req.IsActive,
	}, middleware.GetMeta(c))
	if err != nil {
		h.respondTeamError(c, lang, err, apierrors.MsgFailSaveTeam, "failed to update team")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "team": mapper.ToTeamItem(team)})
}

func (h *TeamHandler) DeleteTeam(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	if err := h.teamService.Delete(c.Request.Context(), actor, c.Param("id"), middleware.GetMeta(c)); err != nil {
		h.respondTeamError(c, lang, err, apierrors.MsgFailSaveTeam, "failed to delete team")
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "team deleted"})
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	var req dto.TeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	team, err := h.teamService.AddMember(c.Request.Context(), actor, c.Param("id"), req.UserID, middleware.GetMeta(c))
	if err != nil {
		h.respondTeamError(c, lang, err, apierrors.MsgFailSaveTeam, "failed to add team member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "team": mapper.ToTeamItem(team)})
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	team, err := h.teamService.RemoveMember(c.Request.Context(), actor, c.Param("id"), c.Param("userId"), middleware.GetMeta(c))
	if err != nil {
		h.respondTeamError(c, lang, err, apierrors.MsgFailSaveTeam, "failed to remove team member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "team": mapper.ToTeamItem(team)})
}

func (h *TeamHandler) respondTeamError(c *gin.Context, lang string, err error, failKey, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrTeamNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(apierrors.MsgTeamNotFound, lang))
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, apierrors.CreateError(apierrors.MsgUserNotFound, lang))
	case errors.Is(err, domain.ErrTeamNameTaken):
		c.JSON(http.StatusConflict, apierrors.CreateError(apierrors.MsgTeamNameTaken, lang))
	case errors.Is(err, domain.ErrRoleForbidden):
		c.JSON(http.StatusForbidden, apierrors.CreateError(apierrors.MsgRoleForbidden, lang))
	default:
		zap.L().Error(logMsg, zap.String("team_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(failKey, lang))
	}
}
