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

type AuthHandler struct {
	authService ports.AuthService
	users       ports.UserRepository
}

func NewAuthHandler(authService ports.AuthService, users ports.UserRepository) *AuthHandler {
	return &AuthHandler{authService: authService, users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}, middleware.GetMeta(c))
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgEmailTaken, lang))
			return
		}

		zap.L().Error("failed to register user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(apierrors.MsgServerError, lang))
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{
		Success: true,
		Token:   result.Token,
		User:    mapper.ToUserItem(result.User),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), domain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	}, middleware.GetMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountLocked):
			c.JSON(http.StatusForbidden, apierrors.CreateError(apierrors.MsgAccountLocked, lang))
		case errors.Is(err, domain.ErrAccountInactive):
			c.JSON(http.StatusUnauthorized, apierrors.CreateError(apierrors.MsgAccountInactive, lang))
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, apierrors.CreateError(apierrors.MsgInvalidCredentials, lang))
		default:
			zap.L().Error("failed to log user in", zap.Error(err))
			c.JSON(http.StatusInternalServerError, apierrors.CreateError(apierrors.MsgServerError, lang))
		}
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{
		Success: true,
		Token:   result.Token,
		User:    mapper.ToUserItem(result.User),
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	user, err := h.users.GetByID(c.Request.Context(), actor.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierrors.CreateError(apierrors.MsgNotAuthorized, lang))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": mapper.ToUserItem(user)})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	info, err := h.authService.ForgotPassword(c.Request.Context(), req.Email, middleware.GetMeta(c))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, apierrors.CreateError(apierrors.MsgUserNotFound, lang))
		case errors.Is(err, domain.ErrResetMailFailed):
			c.JSON(http.StatusInternalServerError, apierrors.CreateError(apierrors.MsgResetMailFailed, lang))
		default:
			zap.L().Error("failed to start password reset", zap.Error(err))
			c.JSON(http.StatusInternalServerError, apierrors.CreateError(apierrors.MsgServerError, lang))
		}
		return
	}

	resp := dto.ForgotPasswordResponse{
		Success: true,
		Message: apierrors.GetTransErrorMsg(apierrors.MsgResetMailSent, lang),
	}
	if !info.Mailed {
		resp.ResetURL = info.ResetURL
		resp.ResetToken = info.ResetToken
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	lang := middleware.GetLang(c)

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
		return
	}

	err := h.authService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword, middleware.GetMeta(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidResetToken) {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgInvalidResetToken, lang))
			return
		}

		zap.L().Error("failed to reset password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, apierrors.CreateError(apierrors.MsgServerError, lang))
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{
		Success: true,
		Message: apierrors.GetTransErrorMsg(apierrors.MsgPasswordResetDone, lang),
	})
}
