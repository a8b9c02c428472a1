package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	u := middleware.UserFrom(c)
	if u == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Authorization required")
		return
	}
	httpresp.OK(c, dto.UserFromModel(u))
}
