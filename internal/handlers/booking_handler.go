package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucBooking "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	workingHours *ucBooking.GetWorkingHours
	slots        *ucBooking.GetAvailableSlots
	book         *ucBooking.BookSlot
	update       *ucBooking.UpdateBooking
	remove       *ucBooking.DeleteBooking
	list         *ucBooking.ListBookings
}

func NewBookingHandler(
	workingHours *ucBooking.GetWorkingHours,
	slots *ucBooking.GetAvailableSlots,
	book *ucBooking.BookSlot,
	update *ucBooking.UpdateBooking,
	remove *ucBooking.DeleteBooking,
	list *ucBooking.ListBookings,
) *BookingHandler {
	return &BookingHandler{
		workingHours: workingHours,
		slots:        slots,
		book:         book,
		update:       update,
		remove:       remove,
		list:         list,
	}
}

// ======================================================
// WORKING HOURS / SLOTS
// ======================================================

func (h *BookingHandler) WorkingHours(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctor_id")
	if !ok {
		return
	}

	hours, err := h.workingHours.Execute(c.Request.Context(), doctorID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, hours)
}

func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctor_id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		httperr.Unprocessable(c, "missing_date", "date query parameter is required")
		return
	}

	res, err := h.slots.Execute(c.Request.Context(), doctorID, date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.AvailableSlotsFrom(res.Date, res.Slots))
}

// ======================================================
// BOOK
// ======================================================

func (h *BookingHandler) Book(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctor_id")
	if !ok {
		return
	}

	var req dto.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", err.Error())
		return
	}

	b, err := h.book.Execute(c.Request.Context(), ucBooking.BookSlotInput{
		DoctorID:  doctorID,
		Actor:     middleware.PrincipalFrom(c),
		UserID:    req.UserID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.BookingFromModel(b))
}

// ======================================================
// UPDATE / DELETE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	bookingID, ok := uuidParam(c, "booking_id")
	if !ok {
		return
	}

	var req dto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", err.Error())
		return
	}

	b, err := h.update.Execute(c.Request.Context(), ucBooking.UpdateBookingInput{
		BookingID: bookingID,
		Actor:     middleware.PrincipalFrom(c),
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    req.Status,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.BookingFromModel(b))
}

func (h *BookingHandler) Delete(c *gin.Context) {
	bookingID, ok := uuidParam(c, "booking_id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.PrincipalFrom(c), bookingID); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Booking deleted"})
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListAll(c *gin.Context) {
	bookings, err := h.list.Execute(c.Request.Context(), nil)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.BookingsFromModels(bookings))
}

func (h *BookingHandler) ListForDoctor(c *gin.Context) {
	doctorID, ok := uuidParam(c, "doctor_id")
	if !ok {
		return
	}

	bookings, err := h.list.Execute(c.Request.Context(), &doctorID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.BookingsFromModels(bookings))
}
