package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucChat "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/clinicchat"
)

// ======================================================
// HANDLER
// ======================================================

type ClinicChatHandler struct {
	listMine     *ucChat.ListMyThreads
	listHospital *ucChat.ListHospitalThreads
	get          *ucChat.GetThread
	send         *ucChat.SendAsPatient
	reply        *ucChat.ReplyAsHospital
}

func NewClinicChatHandler(
	listMine *ucChat.ListMyThreads,
	listHospital *ucChat.ListHospitalThreads,
	get *ucChat.GetThread,
	send *ucChat.SendAsPatient,
	reply *ucChat.ReplyAsHospital,
) *ClinicChatHandler {
	return &ClinicChatHandler{
		listMine:     listMine,
		listHospital: listHospital,
		get:          get,
		send:         send,
		reply:        reply,
	}
}

// ======================================================
// READ
// ======================================================

func (h *ClinicChatHandler) ListMine(c *gin.Context) {
	threads, err := h.listMine.Execute(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.ThreadSummariesFrom(threads))
}

func (h *ClinicChatHandler) ListHospital(c *gin.Context) {
	threads, err := h.listHospital.Execute(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.ThreadSummariesFrom(threads))
}

func (h *ClinicChatHandler) Get(c *gin.Context) {
	hospitalID, ok := uuidParam(c, "hospital_id")
	if !ok {
		return
	}
	userID, ok := uuidParam(c, "user_id")
	if !ok {
		return
	}

	t, err := h.get.Execute(c.Request.Context(), middleware.PrincipalFrom(c), hospitalID, userID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.ThreadFromModel(t))
}

// ======================================================
// WRITE
// ======================================================

func (h *ClinicChatHandler) SendAsPatient(c *gin.Context) {
	hospitalID, ok := uuidParam(c, "hospital_id")
	if !ok {
		return
	}
	threadID, ok := optionalUUIDQuery(c, "thread_id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", err.Error())
		return
	}

	t, err := h.send.Execute(c.Request.Context(), ucChat.SendAsPatientInput{
		HospitalID: hospitalID,
		Actor:      middleware.PrincipalFrom(c),
		Text:       req.Text,
		ThreadID:   threadID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.ThreadFromModel(t))
}

func (h *ClinicChatHandler) Reply(c *gin.Context) {
	threadID, ok := uuidParam(c, "thread_id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", err.Error())
		return
	}

	t, err := h.reply.Execute(c.Request.Context(), middleware.PrincipalFrom(c), threadID, req.Text)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.ThreadFromModel(t))
}
