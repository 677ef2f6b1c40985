package relay

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	ws "github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
)

const maxWebhookBody = 1 << 20

type Handler struct {
	hub *Hub
	log *zap.Logger
}

func NewHandler(hub *Hub, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{hub: hub, log: log}
}

// GET /ws?chat_id=...&workspace_id=...
func (h *Handler) WebSocket(c *gin.Context) {
	var workspaceID uint
	if raw := c.Query("workspace_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_workspace_id", "workspace_id must be a positive integer")
			return
		}
		workspaceID = uint(id)
	}

	conn, err := ws.Accept(c.Writer, c.Request, &ws.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Warn("websocket accept", zap.Error(err))
		return
	}
	defer conn.CloseNow()

	h.log.Debug("relay client connected",
		zap.String("chat_id", c.Query("chat_id")),
		zap.Uint("workspace_id", workspaceID),
	)

	NewClient(h.hub, conn, c.Query("chat_id"), workspaceID).Run(c.Request.Context())
}

type webhookEnvelope struct {
	SenderData struct {
		ChatID string `json:"chatId"`
	} `json:"senderData"`
}

// POST /webhook
func (h *Handler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody+1))
	if err != nil {
		httperr.BadRequest(c, "invalid_body", "could not read body")
		return
	}
	if len(body) > maxWebhookBody {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "body_too_large", "webhook body exceeds 1MB")
		return
	}
	if !json.Valid(body) {
		httperr.BadRequest(c, "invalid_json", "body must be JSON")
		return
	}

	var env webhookEnvelope
	// payloads with a non-object senderData are relayed unfiltered
	_ = json.Unmarshal(body, &env)

	h.hub.Relay(env.SenderData.ChatID, body)

	c.String(http.StatusOK, "OK")
}
