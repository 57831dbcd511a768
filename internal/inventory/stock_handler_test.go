package inventory

import (
	"encoding/json"
	"strconv"
	"testing"

	"stoktakip-backend/internal/database"

	"github.com/gofiber/fiber/v2"
)

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestUpsertStock_CreateThenOverwriteViaHTTP(t *testing.T) {
	app := newTestApp(t)
	seedProduct(t, database.DB, "Wheat", "WHT")

	resp, raw := doJSON(t, app, "POST", "/api/stock", fiber.Map{
		"productCode": "WHT",
		"date":        "2024-01-01",
		"totalStock":  50,
		"remainStock": 50,
	})
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("status = %d, beklenen 201: %s", resp.StatusCode, raw)
	}

	// Aynı güne ikinci çağrı: 200 ve üzerine yazma
	resp, raw = doJSON(t, app, "POST", "/api/stock", fiber.Map{
		"productCode": "WHT",
		"date":        "2024-01-01",
		"totalStock":  80,
		"remainStock": 75,
	})
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, beklenen 200: %s", resp.StatusCode, raw)
	}
	var entry StockEntryResponse
	if err := json.Unmarshal(raw, &entry); err != nil {
		t.Fatalf("cevap parse edilemedi: %v", err)
	}
	if entry.TotalStock != 80 || entry.RemainStock != 75 {
		t.Fatalf("üzerine yazılmadı: %+v", entry)
	}
	if entry.Date != "2024-01-01" {
		t.Fatalf("tarih = %q, beklenen 2024-01-01", entry.Date)
	}
}

func TestUpsertStock_UnknownProduct(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, "POST", "/api/stock", fiber.Map{
		"productCode": "YOK",
		"date":        "2024-01-01",
		"totalStock":  50,
		"remainStock": 50,
	})
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, beklenen 404: %s", resp.StatusCode, raw)
	}
}

func TestUpsertStock_NegativeStock(t *testing.T) {
	app := newTestApp(t)
	seedProduct(t, database.DB, "Wheat", "WHT")

	resp, raw := doJSON(t, app, "POST", "/api/stock", fiber.Map{
		"productCode": "WHT",
		"date":        "2024-01-01",
		"totalStock":  -5,
		"remainStock": 0,
	})
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, beklenen 400: %s", resp.StatusCode, raw)
	}
}

func TestListStock_Filters(t *testing.T) {
	app := newTestApp(t)
	seedProduct(t, database.DB, "Wheat", "WHT")
	seedProduct(t, database.DB, "Barley", "BRL")

	for _, s := range []struct {
		code string
		date string
	}{
		{"WHT", "2024-01-01"},
		{"WHT", "2024-01-05"},
		{"BRL", "2024-01-03"},
	} {
		if _, _, err := UpsertStockForDay(database.DB, s.code, day(s.date), 50, 50); err != nil {
			t.Fatalf("upsert %s %s: %v", s.code, s.date, err)
		}
	}

	// Tarih aralığı sınırlar dahil
	resp, raw := doJSON(t, app, "GET", "/api/stock?startDate=2024-01-01&endDate=2024-01-03", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}
	var list ListStockResponse
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("cevap parse edilemedi: %v", err)
	}
	if len(list.Stocks) != 2 {
		t.Fatalf("2 kayıt bekleniyordu, %d geldi: %+v", len(list.Stocks), list.Stocks)
	}

	// Bilinmeyen ürün kodu filtresi 404
	resp, raw = doJSON(t, app, "GET", "/api/stock?productCode=YOK", nil)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("status = %d, beklenen 404: %s", resp.StatusCode, raw)
	}

	// İsme uyan ürün yoksa hata değil boş sayfa
	resp, raw = doJSON(t, app, "GET", "/api/stock?productName=yok-boyle-urun", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("cevap parse edilemedi: %v", err)
	}
	if len(list.Stocks) != 0 || list.TotalPages != 1 || list.CurrentPage != 1 {
		t.Fatalf("boş sayfa bekleniyordu: %+v", list)
	}

	// İsim filtresi büyük/küçük harf duyarsız
	resp, raw = doJSON(t, app, "GET", "/api/stock?productName=wheat", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		t.Fatalf("cevap parse edilemedi: %v", err)
	}
	if len(list.Stocks) != 2 {
		t.Fatalf("Wheat için 2 kayıt bekleniyordu, %d geldi", len(list.Stocks))
	}
	for _, s := range list.Stocks {
		if s.ProductCode != "WHT" {
			t.Fatalf("yalnızca WHT beklenirdi, gelen: %s", s.ProductCode)
		}
	}
}
