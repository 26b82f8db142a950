package handler

import (
	"net/http"
	"time"

	"storefront/internal/domain/model"
	"storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/statistics と /admin/audit-logs
type AdminReportHandler struct {
	reports *usecase.ReportUsecase
	audits  *usecase.AuditLogUsecase
}

func NewAdminReportHandler(reports *usecase.ReportUsecase, audits *usecase.AuditLogUsecase) *AdminReportHandler {
	return &AdminReportHandler{reports: reports, audits: audits}
}

func (h *AdminReportHandler) RegisterRoutes(g *echo.Group, guards Guards) {
	g.GET("/admin/statistics", h.statistics, guards.Admin...)
	g.GET("/admin/audit-logs", h.auditLogs, guards.Admin...)
}

func (h *AdminReportHandler) statistics(c echo.Context) error {
	s, err := h.reports.Statistics(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", s)
}

func (h *AdminReportHandler) auditLogs(c echo.Context) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return writeError(c, err)
	}
	actorID, err := queryInt64Ptr(c, "actor_customer_id")
	if err != nil {
		return writeError(c, err)
	}
	resourceID, err := queryInt64Ptr(c, "resource_id")
	if err != nil {
		return writeError(c, err)
	}

	f := repository.AuditLogFilter{
		ActorCustomerID: actorID,
		ResourceID:      resourceID,
		Limit:           limit,
		Offset:          offset,
	}
	if v := c.QueryParam("action"); v != "" {
		a := model.AuditAction(v)
		f.Action = &a
	}
	if v := c.QueryParam("resource_type"); v != "" {
		rt := model.AuditResourceType(v)
		f.ResourceType = &rt
	}
	if v := c.QueryParam("from"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid from")
		}
		f.CreatedFrom = &tm
	}
	if v := c.QueryParam("to"); v != "" {
		tm, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid to")
		}
		f.CreatedTo = &tm
	}

	logs, err := h.audits.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "", logs)
}
