package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	domainChat "github.com/BruksfildServices01/clinic-scheduler/internal/domain/clinicchat"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	infraRepo "github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/realtime"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
	ucChat "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/clinicchat"
	ucDoctor "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/doctor"
)

// Deps are the process-wide singletons built by the entrypoint.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Audit  *audit.Dispatcher
	Rooms  *realtime.Rooms

	// Broadcaster fans chat events out; Rooms itself or a Redis relay.
	Broadcaster ucChat.Broadcaster

	// Photos is nil when no bucket is configured.
	Photos storage.ObjectStore
}

func RegisterRoutes(r *gin.Engine, d Deps) error {

	// ======================================================
	// INFRA
	// ======================================================
	doctorRepo := infraRepo.NewDoctorGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	chatRepo := infraRepo.NewClinicChatGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	authenticator := middleware.NewAuthenticator(d.Config, userRepo)
	chatStore := domainChat.NewStore(chatRepo)

	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	getWorkingHoursUC := ucBooking.NewGetWorkingHours(bookingRepo)
	getSlotsUC := ucBooking.NewGetAvailableSlots(bookingRepo)
	bookSlotUC := ucBooking.NewBookSlot(bookingRepo, d.Audit)
	updateBookingUC := ucBooking.NewUpdateBooking(bookingRepo, d.Audit)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, d.Audit)
	listBookingsUC := ucBooking.NewListBookings(bookingRepo)
	updateWorkingHoursUC := ucBooking.NewUpdateWorkingHours(bookingRepo, d.Audit)

	// ======================================================
	// USE CASES — CLINIC CHAT
	// ======================================================
	listMyThreadsUC := ucChat.NewListMyThreads(chatRepo)
	listHospitalThreadsUC := ucChat.NewListHospitalThreads(chatRepo)
	getThreadUC := ucChat.NewGetThread(chatRepo, chatStore)
	authorizeThreadUC := ucChat.NewAuthorizeThread(chatRepo, chatStore)
	sendAsPatientUC := ucChat.NewSendAsPatient(chatRepo, chatStore, d.Broadcaster)
	replyAsHospitalUC := ucChat.NewReplyAsHospital(chatRepo, chatStore, d.Broadcaster)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(sqlDB)
	authHandler := handlers.NewAuthHandler(userRepo, authenticator, d.Config.IsProduction())
	meHandler := handlers.NewMeHandler()

	bookingHandler := handlers.NewBookingHandler(
		getWorkingHoursUC,
		getSlotsUC,
		bookSlotUC,
		updateBookingUC,
		deleteBookingUC,
		listBookingsUC,
	)
	workingHoursHandler := handlers.NewWorkingHoursHandler(updateWorkingHoursUC)

	chatHandler := handlers.NewClinicChatHandler(
		listMyThreadsUC,
		listHospitalThreadsUC,
		getThreadUC,
		sendAsPatientUC,
		replyAsHospitalUC,
	)
	chatWSHandler := handlers.NewClinicChatWSHandler(authenticator, authorizeThreadUC, d.Rooms)

	auditLogsHandler := handlers.NewAuditLogsHandler(audit.New(d.DB))

	h := Handlers{
		Health:       healthHandler,
		Auth:         authHandler,
		Me:           meHandler,
		Booking:      bookingHandler,
		WorkingHours: workingHoursHandler,
		Chat:         chatHandler,
		ChatWS:       chatWSHandler,
		AuditLogs:    auditLogsHandler,
	}
	if d.Photos != nil {
		h.Photo = handlers.NewDoctorPhotoHandler(
			ucDoctor.NewUploadPhoto(doctorRepo, d.Photos, d.Audit),
			ucDoctor.NewGetPhotoURL(doctorRepo, d.Photos),
			ucDoctor.NewDeletePhoto(doctorRepo, d.Photos, d.Audit),
		)
	}

	Mount(r, h, middleware.AuthMiddleware(authenticator))
	return nil
}

// Handlers is everything the route table mounts.
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Me           *handlers.MeHandler
	Booking      *handlers.BookingHandler
	WorkingHours *handlers.WorkingHoursHandler
	Chat         *handlers.ClinicChatHandler
	ChatWS       *handlers.ClinicChatWSHandler
	AuditLogs    *handlers.AuditLogsHandler

	// Photo is nil when no bucket is configured.
	Photo *handlers.DoctorPhotoHandler
}

// Mount registers the route table. requireAuth guards every route except
// health, auth and the chat socket.
func Mount(r *gin.Engine, h Handlers, requireAuth gin.HandlerFunc) {
	r.GET("/health", h.Health.Check)

	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/token", h.Auth.Token)

		// the socket authenticates after the upgrade
		api.GET("/clinic-chats/ws/threads/:thread_id", h.ChatWS.Serve)

		secured := api.Group("/")
		secured.Use(requireAuth)
		{
			secured.GET("/me", h.Me.GetMe)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			bookings := secured.Group("/bookings")
			{
				bookings.GET("/all-bookings", h.Booking.ListAll)
				bookings.PATCH("/bookings/:booking_id", h.Booking.Update)
				bookings.DELETE("/bookings/:booking_id", h.Booking.Delete)

				bookings.GET("/:doctor_id/working-hours", h.Booking.WorkingHours)
				bookings.GET("/:doctor_id/available-slots", h.Booking.AvailableSlots)
				bookings.POST("/:doctor_id/book", h.Booking.Book)
				bookings.GET("/:doctor_id/bookings", h.Booking.ListForDoctor)
			}

			// ------------------------------
			// DOCTORS
			// ------------------------------
			doctors := secured.Group("/doctors/:doctor_id")
			{
				doctors.GET("/working-hours", h.Booking.WorkingHours)
				doctors.PUT("/working-hours", h.WorkingHours.Update)

				if h.Photo != nil {
					doctors.PUT("/photo", h.Photo.Upload)
					doctors.GET("/photo", h.Photo.Get)
					doctors.DELETE("/photo", h.Photo.Delete)
				}
			}

			// ------------------------------
			// CLINIC CHATS
			// ------------------------------
			chats := secured.Group("/clinic-chats")
			{
				chats.GET("/threads/me", h.Chat.ListMine)
				chats.GET("/threads/hospital", h.Chat.ListHospital)
				chats.GET("/threads/:hospital_id/:user_id", h.Chat.Get)
				chats.POST("/threads/:thread_id/reply", h.Chat.Reply)
				chats.POST("/:hospital_id/send", h.Chat.SendAsPatient)
			}

			secured.GET("/audit-logs", h.AuditLogs.List)
		}
	}
}
