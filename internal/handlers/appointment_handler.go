package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
	"github.com/BruksfildServices01/booking-calendar/internal/httpresp"
	"github.com/BruksfildServices01/booking-calendar/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/booking-calendar/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	get    *ucAppointment.GetAppointment
	create *ucAppointment.CreateAppointment
	update *ucAppointment.UpdateAppointment
	delete *ucAppointment.DeleteAppointment
}

func NewAppointmentHandler(
	get *ucAppointment.GetAppointment,
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	del *ucAppointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		get:    get,
		create: create,
		update: update,
		delete: del,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`

	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name" binding:"required"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Location    string `json:"location"`
	Status      string `json:"status"`

	Comment          string   `json:"comment"`
	ClientType       string   `json:"client_type"`
	DateOfBirth      string   `json:"date_of_birth"`
	PersonalDiscount *float64 `json:"personal_discount"`
	Notes            string   `json:"notes"`
}

func (r AppointmentRequest) toDomain() domain.Appointment {
	clientType := domain.ClientRegular
	if r.ClientType == string(domain.ClientVIP) {
		clientType = domain.ClientVIP
	}

	return domain.Appointment{
		Date:             r.Date,
		StartTime:        r.StartTime,
		EndTime:          r.EndTime,
		ClientID:         r.ClientID,
		ClientName:       r.ClientName,
		PhoneNumber:      r.PhoneNumber,
		Location:         r.Location,
		Status:           domain.Status(r.Status),
		Comment:          r.Comment,
		ClientType:       clientType,
		DateOfBirth:      r.DateOfBirth,
		PersonalDiscount: r.PersonalDiscount,
		Notes:            r.Notes,
	}
}

// ======================================================
// GET /appointments/:id
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), middleware.WorkspaceID(c), c.Param("id"))
	if err != nil {
		writeError(c, err, "failed_to_fetch_booking", "Ошибка при загрузке записи.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// POST /appointments
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Неверные данные записи.")
		return
	}

	res, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		WorkspaceID:    middleware.WorkspaceID(c),
		UserID:         middleware.UserID(c),
		IdempotencyKey: c.GetHeader(middleware.HeaderIdempotencyKey),
		Appointment:    req.toDomain(),
	})
	if err != nil {
		writeError(c, err, "failed_to_save_booking", "Ошибка при сохранении записи.")
		return
	}

	httpresp.Created(c, res)
}

// ======================================================
// PUT /appointments/:id
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Неверные данные записи.")
		return
	}

	res, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		WorkspaceID:   middleware.WorkspaceID(c),
		UserID:        middleware.UserID(c),
		AppointmentID: c.Param("id"),
		Appointment:   req.toDomain(),
	})
	if err != nil {
		writeError(c, err, "failed_to_save_booking", "Ошибка при сохранении записи.")
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// DELETE /appointments/:id?date=YYYY-MM-DD
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	res, err := h.delete.Execute(c.Request.Context(), ucAppointment.DeleteAppointmentInput{
		WorkspaceID:   middleware.WorkspaceID(c),
		UserID:        middleware.UserID(c),
		AppointmentID: c.Param("id"),
		Date:          c.Query("date"),
	})
	if err != nil {
		writeError(c, err, "failed_to_delete_booking", "Ошибка при удалении записи.")
		return
	}

	httpresp.OK(c, res)
}
