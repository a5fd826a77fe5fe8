package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/middleware"
	"github.com/drashti-2005/task-manager-sub000/internal/adapter/http/validation"
	"github.com/drashti-2005/task-manager-sub000/internal/app/analytics"
	"github.com/drashti-2005/task-manager-sub000/internal/core/domain"
	"github.com/drashti-2005/task-manager-sub000/internal/core/ports"
	"github.com/drashti-2005/task-manager-sub000/pkg/apierrors"
)

type AnalyticsHandler struct {
	analyticsService ports.AnalyticsService
}

func NewAnalyticsHandler(analyticsService ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	q, ok := h.parseQuery(c, lang)
	if !ok {
		return
	}

	overview, err := h.analyticsService.Overview(c.Request.Context(), actor, q)
	if err != nil {
		h.respondAnalyticsError(c, lang, err, "failed to compute overview")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "overview": overview})
}

func (h *AnalyticsHandler) CompletionTrends(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	q, ok := h.parseQuery(c, lang)
	if !ok {
		return
	}

	trends, err := h.analyticsService.CompletionTrends(c.Request.Context(), actor, q)
	if err != nil {
		h.respondAnalyticsError(c, lang, err, "failed to compute completion trends")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "trends": trends})
}

func (h *AnalyticsHandler) Productivity(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	q, ok := h.parseQuery(c, lang)
	if !ok {
		return
	}

	buckets, err := h.analyticsService.Productivity(c.Request.Context(), actor, q)
	if err != nil {
		h.respondAnalyticsError(c, lang, err, "failed to compute productivity")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "productivity": buckets})
}

func (h *AnalyticsHandler) TimeAnalysis(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	q, ok := h.parseQuery(c, lang)
	if !ok {
		return
	}

	analysis, err := h.analyticsService.TimeAnalysis(c.Request.Context(), actor, q)
	if err != nil {
		h.respondAnalyticsError(c, lang, err, "failed to compute time analysis")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "timeAnalysis": analysis})
}

func (h *AnalyticsHandler) BestDays(c *gin.Context) {
	lang := middleware.GetLang(c)
	actor := middleware.GetActor(c)

	q, ok := h.parseQuery(c, lang)
	if !ok {
		return
	}

	days, err := h.analyticsService.BestDays(c.Request.Context(), actor, q)
	if err != nil {
		h.respondAnalyticsError(c, lang, err, "failed to compute best days")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bestDays": days})
}

// parseQuery reads the shared analytics knobs. On a bad value it writes the
// 400 itself and reports ok=false.
func (h *AnalyticsHandler) parseQuery(c *gin.Context, lang string) (ports.AnalyticsQuery, bool) {
	q := ports.AnalyticsQuery{GroupBy: analytics.GroupByDay}

	if v := c.Query("startDate"); v != "" {
		start, err := validation.ParseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
			return q, false
		}
		q.Start = &start
	}
	if v := c.Query("endDate"); v != "" {
		end, err := validation.ParseRangeEnd(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierrors.CreateErrorWithDetail(apierrors.MsgInvalidPayload, lang, err))
			return q, false
		}
		q.End = &end
	}
	if v := c.Query("groupBy"); v != "" {
		if v != string(analytics.GroupByDay) && v != string(analytics.GroupByWeek) {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgInvalidPayload, lang))
			return q, false
		}
		q.GroupBy = analytics.GroupBy(v)
	}
	if v := c.Query("userId"); v != "" {
		q.UserID = &v
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, apierrors.CreateError(apierrors.MsgInvalidPayload, lang))
			return q, false
		}
		q.Limit = n
	}
	return q, true
}

func (h *AnalyticsHandler) respondAnalyticsError(c *gin.Context, lang string, err error, logMsg string) {
	if errors.Is(err, domain.ErrRoleForbidden) {
		c.JSON(http.StatusForbidden, apierrors.CreateError(apierrors.MsgRoleForbidden, lang))
		return
	}

	zap.L().Error(logMsg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, apierrors.CreateError(apierrors.MsgFailAnalytics, lang))
}
