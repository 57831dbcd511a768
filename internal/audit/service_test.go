package audit

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("test veritabanı açılamadı: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB alınamadı: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db
}

func TestWriteLog(t *testing.T) {
	newTestDB(t)

	err := WriteLog(LogOptions{
		EntityType:  "product",
		EntityID:    7,
		Action:      models.AuditActionUpdate,
		Description: "Ürün güncellendi: Wheat (WHT)",
		Before:      map[string]string{"name": "Weat"},
		After:       map[string]string{"name": "Wheat"},
	})
	if err != nil {
		t.Fatalf("WriteLog: %v", err)
	}

	var l models.AuditLog
	if err := database.DB.First(&l).Error; err != nil {
		t.Fatalf("log okunamadı: %v", err)
	}
	if l.EntityType != "product" || l.EntityID != 7 || l.Action != models.AuditActionUpdate {
		t.Fatalf("beklenmeyen log: %+v", l)
	}
	if l.BeforeData != `{"name":"Weat"}` || l.AfterData != `{"name":"Wheat"}` {
		t.Fatalf("before/after JSON yanlış: %q / %q", l.BeforeData, l.AfterData)
	}
}

func TestWriteLog_NilSnapshots(t *testing.T) {
	newTestDB(t)

	if err := WriteLog(LogOptions{
		EntityType: "sale",
		EntityID:   1,
		Action:     models.AuditActionDelete,
	}); err != nil {
		t.Fatalf("WriteLog: %v", err)
	}

	var l models.AuditLog
	if err := database.DB.First(&l).Error; err != nil {
		t.Fatalf("log okunamadı: %v", err)
	}
	// Verilmeyen snapshot'lar JSON null olarak saklanır
	if l.BeforeData != "null" || l.AfterData != "null" {
		t.Fatalf("null bekleniyordu: %q / %q", l.BeforeData, l.AfterData)
	}
}

func TestListAuditLogs_Filters(t *testing.T) {
	newTestDB(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Beklenmeyen sunucu hatası"})
		},
	})
	app.Get("/api/audit-logs", ListAuditLogsHandler())

	for _, opts := range []LogOptions{
		{EntityType: "product", EntityID: 1, Action: models.AuditActionCreate},
		{EntityType: "product", EntityID: 1, Action: models.AuditActionUpdate},
		{EntityType: "sale", EntityID: 2, Action: models.AuditActionCreate},
	} {
		if err := WriteLog(opts); err != nil {
			t.Fatalf("WriteLog: %v", err)
		}
	}

	req := httptest.NewRequest("GET", "/api/audit-logs?entity_type=product&action=update", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("istek başarısız: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}

	var list ListAuditLogsResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("cevap parse edilemedi: %v", err)
	}
	if len(list.Logs) != 1 {
		t.Fatalf("1 log bekleniyordu, %d geldi", len(list.Logs))
	}
	if list.Logs[0].EntityType != "product" || list.Logs[0].Action != models.AuditActionUpdate {
		t.Fatalf("beklenmeyen log: %+v", list.Logs[0])
	}
}
