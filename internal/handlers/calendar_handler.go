package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
	"github.com/BruksfildServices01/booking-calendar/internal/httpresp"
	"github.com/BruksfildServices01/booking-calendar/internal/middleware"
	ucCalendar "github.com/BruksfildServices01/booking-calendar/internal/usecase/calendar"
)

// ======================================================
// HANDLER
// ======================================================

type CalendarHandler struct {
	getDay   *ucCalendar.GetDay
	getDraft *ucCalendar.GetDraft
}

func NewCalendarHandler(
	getDay *ucCalendar.GetDay,
	getDraft *ucCalendar.GetDraft,
) *CalendarHandler {
	return &CalendarHandler{
		getDay:   getDay,
		getDraft: getDraft,
	}
}

// ======================================================
// GET /calendar/day?date=YYYY-MM-DD&step=prev|next|today&view=day
// ======================================================

func (h *CalendarHandler) Day(c *gin.Context) {
	view, err := h.getDay.Execute(c.Request.Context(), ucCalendar.GetDayInput{
		WorkspaceID: middleware.WorkspaceID(c),
		Date:        c.Query("date"),
		Step:        c.Query("step"),
		View:        c.Query("view"),
	})
	if err != nil {
		writeError(c, err, "failed_to_fetch_bookings", "Ошибка при загрузке записей.")
		return
	}

	httpresp.OK(c, view)
}

// ======================================================
// GET /calendar/draft?date=YYYY-MM-DD&hour=H
// ======================================================

func (h *CalendarHandler) Draft(c *gin.Context) {
	hour, err := strconv.Atoi(c.Query("hour"))
	if err != nil {
		httperr.BadRequest(c, "invalid_hour", "Неверный час.")
		return
	}

	draft, err := h.getDraft.Execute(c.Request.Context(), ucCalendar.GetDraftInput{
		WorkspaceID: middleware.WorkspaceID(c),
		Date:        c.Query("date"),
		Hour:        hour,
	})
	if err != nil {
		writeError(c, err, "failed_to_prepare_draft", "Ошибка при создании черновика.")
		return
	}

	httpresp.OK(c, draft)
}
