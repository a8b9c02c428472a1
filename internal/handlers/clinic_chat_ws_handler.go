package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	domainChat "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/realtime"
	ucChat "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/clinicchat"
)

type ClinicChatWSHandler struct {
	auth      *middleware.Authenticator
	authorize *ucChat.AuthorizeThread
	rooms     *realtime.Rooms
}

func NewClinicChatWSHandler(
	auth *middleware.Authenticator,
	authorize *ucChat.AuthorizeThread,
	rooms *realtime.Rooms,
) *ClinicChatWSHandler {
	return &ClinicChatWSHandler{auth: auth, authorize: authorize, rooms: rooms}
}

// Serve upgrades first and only then checks the request, so a refusal is a
// 1008 close frame rather than an HTTP status the browser cannot read.
func (h *ClinicChatWSHandler) Serve(c *gin.Context) {
	ws, err := h.rooms.Accept(c.Writer, c.Request)
	if err != nil {
		// the upgrader already answered with an HTTP error
		return
	}

	log := zerolog.Ctx(c.Request.Context())

	threadID, err := uuid.Parse(c.Param("thread_id"))
	if err != nil {
		realtime.Reject(ws, "invalid thread id")
		return
	}

	user, err := h.auth.Authenticate(c.Request)
	if err != nil {
		log.Debug().Err(err).Msg("chat socket: unauthenticated")
		realtime.Reject(ws, "unauthorized")
		return
	}

	thread, err := h.authorize.Execute(c.Request.Context(), access.PrincipalOf(user), threadID)
	if err != nil {
		log.Debug().Err(err).Str("thread_id", threadID.String()).Msg("chat socket: refused")
		realtime.Reject(ws, "thread unavailable")
		return
	}

	m := h.rooms.Join(thread.ID, ws, domainChat.NewConnected(thread.ID))
	h.rooms.Serve(m)
}
