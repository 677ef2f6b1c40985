package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-calendar/internal/config"
	domain "github.com/BruksfildServices01/booking-calendar/internal/domain/appointment"
	"github.com/BruksfildServices01/booking-calendar/internal/handlers"
	"github.com/BruksfildServices01/booking-calendar/internal/middleware"
	"github.com/BruksfildServices01/booking-calendar/internal/relay"
	"github.com/BruksfildServices01/booking-calendar/internal/submit"
	ucAppointment "github.com/BruksfildServices01/booking-calendar/internal/usecase/appointment"
	ucCalendar "github.com/BruksfildServices01/booking-calendar/internal/usecase/calendar"
	ucClient "github.com/BruksfildServices01/booking-calendar/internal/usecase/client"
)

// Infra holds the singletons the routes are wired against.
type Infra struct {
	Repo  domain.Repository
	Guard submit.Guard
	Hub   *relay.Hub
	Audit ucAppointment.AuditDispatcher
	Log   *zap.Logger

	// set only with the postgres backend
	DB *gorm.DB
}

func RegisterRoutes(r *gin.Engine, infra Infra, cfg *config.Config) {

	if infra.Log == nil {
		infra.Log = zap.NewNop()
	}

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(infra.Log),
		middleware.CORSMiddleware(),
		gin.Recovery(),
	)

	// ======================================================
	// USE CASES: CALENDAR
	// ======================================================
	getDayUC := ucCalendar.NewGetDay(infra.Repo, cfg.RowHeightPx, cfg.Timezone)
	getDraftUC := ucCalendar.NewGetDraft(infra.Repo, cfg.Timezone)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	getAppointmentUC := ucAppointment.NewGetAppointment(infra.Repo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		infra.Repo,
		infra.Guard,
		getDayUC,
		infra.Hub,
		infra.Audit,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		infra.Repo,
		infra.Guard,
		getDayUC,
		infra.Hub,
		infra.Audit,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		infra.Repo,
		infra.Guard,
		getDayUC,
		infra.Hub,
		infra.Audit,
	)

	searchClientsUC := ucClient.NewSearchClients(infra.Repo)

	// ======================================================
	// HANDLERS
	// ======================================================
	calendarHandler := handlers.NewCalendarHandler(getDayUC, getDraftUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		getAppointmentUC,
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
	)

	clientHandler := handlers.NewClientHandler(searchClientsUC)
	relayHandler := relay.NewHandler(infra.Hub, infra.Log)

	// ======================================================
	// HEALTH + RELAY
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.JWTSecret != "" {
		r.GET("/ws", middleware.WebSocketAuth(cfg.JWTSecret), relayHandler.WebSocket)
	} else {
		r.GET("/ws", relayHandler.WebSocket)
	}
	r.POST("/webhook", relayHandler.Webhook)

	// ======================================================
	// API
	// ======================================================
	workspace := r.Group("/api/workspaces/:workspaceID")
	workspace.Use(middleware.WorkspaceScope())
	if cfg.JWTSecret != "" {
		workspace.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	}
	{
		workspace.GET("/calendar/day", calendarHandler.Day)
		workspace.GET("/calendar/draft", calendarHandler.Draft)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		workspace.GET("/appointments/:id", appointmentHandler.Get)
		workspace.POST("/appointments", appointmentHandler.Create)
		workspace.PUT("/appointments/:id", appointmentHandler.Update)
		workspace.DELETE("/appointments/:id", appointmentHandler.Delete)

		workspace.GET("/clients", clientHandler.List)

		if infra.DB != nil {
			auditLogsHandler := handlers.NewAuditLogsHandler(infra.DB)
			workspace.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
