package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-calendar/internal/httpresp"
	"github.com/BruksfildServices01/booking-calendar/internal/middleware"
	ucClient "github.com/BruksfildServices01/booking-calendar/internal/usecase/client"
)

type ClientHandler struct {
	search *ucClient.SearchClients
}

func NewClientHandler(search *ucClient.SearchClients) *ClientHandler {
	return &ClientHandler{search: search}
}

// ======================================================
// GET /clients?query=
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.search.Execute(c.Request.Context(), middleware.WorkspaceID(c), c.Query("query"))
	if err != nil {
		writeError(c, err, "failed_to_list_clients", "Ошибка при загрузке клиентов.")
		return
	}

	httpresp.List(c, clients)
}
