package handlers

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/wallclock"
)

// AuditLister is implemented by audit.Logger.
type AuditLister interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs AuditLister
}

func NewAuditLogsHandler(logs AuditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List is reserved to super admins.
func (h *AuditLogsHandler) List(c *gin.Context) {
	if access.RoleOf(middleware.PrincipalFrom(c)) != access.RoleSuperAdmin {
		httperr.Forbidden(c, "forbidden", "Super admin only")
		return
	}

	hospitalID, ok := optionalUUIDQuery(c, "hospital_id")
	if !ok {
		return
	}

	f := audit.Filter{
		HospitalID: hospitalID,
		Action:     c.Query("action"),
		Entity:     c.Query("entity"),
	}
	f.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))

	// --------------------------------------------------
	// Optional date range
	// --------------------------------------------------

	if s := c.Query("from"); s != "" {
		from, err := wallclock.ParseDate(s)
		if err != nil {
			httperr.Unprocessable(c, "invalid_from", "from must be YYYY-MM-DD")
			return
		}
		f.From = &from
	}
	if s := c.Query("to"); s != "" {
		to, err := wallclock.ParseDate(s)
		if err != nil {
			httperr.Unprocessable(c, "invalid_to", "to must be YYYY-MM-DD")
			return
		}
		f.To = &to
	}

	f.Normalize()

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Paged(c, f.Page, f.Limit, total, logs)
}
