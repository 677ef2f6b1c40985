package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/booking-calendar/internal/middleware"
)

// sqlRecorder keeps the statements gorm would have run.
type sqlRecorder struct {
	mu   sync.Mutex
	sqls []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{}) {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.sqls = append(r.sqls, sql)
	r.mu.Unlock()
}

func (r *sqlRecorder) statements() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sqls...)
}

// dryRunDB builds SQL against the postgres dialect without a server.
func dryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 user=calendar dbname=calendar sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	require.NoError(t, err)
	return db, rec
}

func auditRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAuditLogsHandler(db)
	r.GET("/api/workspaces/:workspaceID/audit-logs", middleware.WorkspaceScope(), h.List)
	return r
}

func TestAuditLogsFilters(t *testing.T) {
	db, rec := dryRunDB(t)

	w := httptest.NewRecorder()
	auditRouter(db).ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/workspaces/5/audit-logs?action=appointment_created&entity=booking&from=2026-10-01&to=2026-10-16&page=2&limit=10", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 2, body["page"])
	assert.EqualValues(t, 10, body["limit"])
	assert.EqualValues(t, 0, body["total"])

	sqls := rec.statements()
	require.Len(t, sqls, 2)

	count, list := sqls[0], sqls[1]
	assert.Contains(t, count, "count(*)")
	for _, sql := range sqls {
		assert.Contains(t, sql, "workspace_id = 5")
		assert.Contains(t, sql, "action = 'appointment_created'")
		assert.Contains(t, sql, "entity = 'booking'")
		assert.Contains(t, sql, "created_at >= '2026-10-01")
		// the whole "to" day is included
		assert.Contains(t, sql, "created_at < '2026-10-17")
	}
	assert.Contains(t, list, "ORDER BY created_at DESC")
	assert.Contains(t, list, "LIMIT 10")
	assert.Contains(t, list, "OFFSET 10")
}

func TestAuditLogsDefaultsAndBadFilters(t *testing.T) {
	db, rec := dryRunDB(t)

	w := httptest.NewRecorder()
	auditRouter(db).ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/workspaces/5/audit-logs?page=-3&limit=500&from=yesterday", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 50, body["limit"])

	sqls := rec.statements()
	require.Len(t, sqls, 2)
	assert.Contains(t, sqls[1], "LIMIT 50")
	assert.NotContains(t, sqls[1], "OFFSET")
	for _, sql := range sqls {
		assert.False(t, strings.Contains(sql, "created_at >="), "unparseable from is ignored")
		assert.NotContains(t, sql, "action =")
	}
}
