package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
)

// business codes that are not plain 400s
var businessStatus = map[string]int{
	"appointment_not_found":  http.StatusNotFound,
	"workspace_not_found":    http.StatusNotFound,
	"client_not_found":       http.StatusNotFound,
	"submission_in_progress": http.StatusConflict,
}

var businessMessage = map[string]string{
	"appointment_not_found":   "Запись не найдена.",
	"workspace_not_found":     "Рабочее пространство не найдено.",
	"client_not_found":        "Клиент не найден.",
	"submission_in_progress":  "Запись уже сохраняется.",
	"view_mode_not_supported": "Доступен только просмотр по дням.",
	"invalid_view_mode":       "Неизвестный режим просмотра.",
	"invalid_step":            "Неизвестный шаг навигации.",
	"invalid_date":            "Неверная дата.",
	"invalid_hour":            "Неверный час.",
	"invalid_start_time":      "Неверное время начала.",
	"invalid_end_time":        "Неверное время окончания.",
	"invalid_status":          "Неизвестный статус.",
	"client_name_required":    "Укажите имя клиента.",
	"phone_required":          "Укажите номер телефона.",
	"invalid_appointment_id":  "Неверный идентификатор записи.",
}

// writeError answers business errors with their code and everything else
// with one generic 500 for the action.
func writeError(c *gin.Context, err error, code, message string) {
	_ = c.Error(err)

	if bc, ok := httperr.BusinessCode(err); ok {
		msg := businessMessage[bc]
		if msg == "" {
			msg = bc
		}
		switch businessStatus[bc] {
		case http.StatusNotFound:
			httperr.NotFound(c, bc, msg)
		case http.StatusConflict:
			httperr.Conflict(c, bc, msg)
		default:
			httperr.BadRequest(c, bc, msg)
		}
		return
	}

	httperr.Internal(c, code, message)
}
