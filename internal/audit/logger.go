package audit

import (
	"encoding/json"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-calendar/internal/models"
)

// Logger stores audit events in the audit_logs table.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(ev Event) error {
	log := models.AuditLog{
		WorkspaceID: ev.WorkspaceID,
		UserID:      ev.UserID,
		Action:      ev.Action,
		Entity:      ev.Entity,
		EntityID:    ev.EntityID,
		Metadata:    metadataJSON(ev.Metadata),
	}

	return l.db.Create(&log).Error
}

func metadataJSON(metadata any) string {
	if metadata == nil {
		return ""
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}

// ZapSink writes audit events to the application log. Used when there is
// no database to keep them in.
type ZapSink struct {
	log *zap.Logger
}

func NewZapSink(log *zap.Logger) *ZapSink {
	return &ZapSink{log: log.Named("audit")}
}

func (s *ZapSink) Log(ev Event) error {
	fields := []zap.Field{
		zap.Uint("workspace_id", ev.WorkspaceID),
		zap.String("action", ev.Action),
		zap.String("entity", ev.Entity),
	}
	if ev.EntityID != nil {
		fields = append(fields, zap.Uint("entity_id", *ev.EntityID))
	}
	if ev.UserID != nil {
		fields = append(fields, zap.Uint("user_id", *ev.UserID))
	}
	if m := metadataJSON(ev.Metadata); m != "" {
		fields = append(fields, zap.String("metadata", m))
	}

	s.log.Info("audit", fields...)
	return nil
}
