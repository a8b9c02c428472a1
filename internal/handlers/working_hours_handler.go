package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

type WorkingHoursHandler struct {
	update *ucBooking.UpdateWorkingHours
}

func NewWorkingHoursHandler(update *ucBooking.UpdateWorkingHours) *WorkingHoursHandler {
	return &WorkingHoursHandler{update: update}
}

// Update replaces the whole weekly map; a day that is null or missing is
// closed.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctor_id")
	if !ok {
		return
	}

	var req models.WeeklyHours
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", err.Error())
		return
	}

	hours, err := h.update.Execute(c.Request.Context(), middleware.PrincipalFrom(c), doctorID, req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, hours)
}
