package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/models"
	"stoktakip-backend/internal/sales"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

// İki ürün, ikisinin de stok kaydı, karışık ödeme durumlu dört satış
func seedReportData(t *testing.T, db *gorm.DB) {
	t.Helper()

	wheat := models.Product{Name: "Wheat", Code: "WHT"}
	barley := models.Product{Name: "Barley", Code: "BRL"}
	for _, p := range []*models.Product{&wheat, &barley} {
		if err := db.Create(p).Error; err != nil {
			t.Fatalf("ürün eklenemedi: %v", err)
		}
	}

	entries := []models.StockEntry{
		{ProductID: wheat.ID, Date: day("2024-01-01"), TotalStock: 100, RemainStock: 40},
		{ProductID: wheat.ID, Date: day("2024-01-05"), TotalStock: 200, RemainStock: 150},
		{ProductID: barley.ID, Date: day("2024-01-01"), TotalStock: 80, RemainStock: 20},
	}
	for i := range entries {
		if err := db.Create(&entries[i]).Error; err != nil {
			t.Fatalf("stok eklenemedi: %v", err)
		}
	}

	salesRows := []models.Sale{
		{ProductID: wheat.ID, ProductCode: "WHT", ProductName: "Wheat", QuantityKg: 30, PricePerKg: 20, TotalValue: 600, CustomerName: "Alice", PaymentMode: models.PaymentModeCash, PaymentStatus: models.PaymentStatusPaid, Date: day("2024-01-01")},
		{ProductID: wheat.ID, ProductCode: "WHT", ProductName: "Wheat", QuantityKg: 10, PricePerKg: 40, TotalValue: 400, CustomerName: "Bob", PaymentMode: models.PaymentModeOnline, PaymentStatus: models.PaymentStatusUnpaid, Date: day("2024-01-02")},
		{ProductID: barley.ID, ProductCode: "BRL", ProductName: "Barley", QuantityKg: 5, PricePerKg: 10, TotalValue: 50, CustomerName: "Alice", PaymentMode: models.PaymentModeCash, PaymentStatus: models.PaymentStatusPaid, Date: day("2024-01-03")},
		{ProductID: barley.ID, ProductCode: "BRL", ProductName: "Barley", QuantityKg: 15, PricePerKg: 10, TotalValue: 150, CustomerName: "Carol", PaymentMode: models.PaymentModeOnline, PaymentStatus: models.PaymentStatusUnpaid, Date: day("2024-02-01")},
	}
	for i := range salesRows {
		if err := db.Create(&salesRows[i]).Error; err != nil {
			t.Fatalf("satış eklenemedi: %v", err)
		}
	}
}

func TestBuild_SummaryAndBreakdowns(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)

	data, err := Build(db, sales.Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if data.Summary.TransactionCount != 4 {
		t.Fatalf("transactionCount = %d, beklenen 4", data.Summary.TransactionCount)
	}
	if data.Summary.TotalQuantityKg != 60 {
		t.Fatalf("totalQuantityKg = %.2f, beklenen 60", data.Summary.TotalQuantityKg)
	}
	if data.Summary.TotalValue != 1200 {
		t.Fatalf("totalValue = %.2f, beklenen 1200", data.Summary.TotalValue)
	}

	if len(data.Paid.Sales) != 2 || data.Paid.TotalValue != 650 {
		t.Fatalf("paid kırılımı yanlış: %d kayıt, %.2f", len(data.Paid.Sales), data.Paid.TotalValue)
	}
	if len(data.Unpaid.Sales) != 2 || data.Unpaid.TotalValue != 550 {
		t.Fatalf("unpaid kırılımı yanlış: %d kayıt, %.2f", len(data.Unpaid.Sales), data.Unpaid.TotalValue)
	}

	// En yeni satış önce gelir
	if data.Sales[0].Date != "2024-02-01" {
		t.Fatalf("sıra yanlış: ilk satış %s", data.Sales[0].Date)
	}
}

func TestBuild_ProductAggregates(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)

	data, err := Build(db, sales.Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(data.Products) != 2 {
		t.Fatalf("2 ürün özeti bekleniyordu, %d geldi", len(data.Products))
	}

	// product_code'a göre sıralı: BRL, WHT
	brl, wht := data.Products[0], data.Products[1]
	if brl.ProductCode != "BRL" || wht.ProductCode != "WHT" {
		t.Fatalf("sıra yanlış: %s, %s", brl.ProductCode, wht.ProductCode)
	}

	if wht.SoldKg != 40 || wht.TotalValue != 1000 {
		t.Fatalf("WHT özeti yanlış: %.2f kg, %.2f", wht.SoldKg, wht.TotalValue)
	}
	if wht.AvgPricePerKg != 30 {
		t.Fatalf("WHT ortalama fiyat = %.2f, beklenen 30", wht.AvgPricePerKg)
	}
	// Güncel stok en yeni kayıttan (2024-01-05) gelir
	if wht.CurrentStock != 150 {
		t.Fatalf("WHT currentStock = %.2f, beklenen 150", wht.CurrentStock)
	}
	if brl.SoldKg != 20 || brl.CurrentStock != 20 {
		t.Fatalf("BRL özeti yanlış: %.2f kg, stok %.2f", brl.SoldKg, brl.CurrentStock)
	}
}

func TestBuild_DateRangeFilter(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)

	start := day("2024-01-01")
	end := day("2024-01-31")
	data, err := Build(db, sales.Filters{StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Şubat satışı dışarıda kalır
	if data.Summary.TransactionCount != 3 {
		t.Fatalf("transactionCount = %d, beklenen 3", data.Summary.TransactionCount)
	}
	if len(data.Filters) == 0 {
		t.Fatal("filtre açıklaması boş olmamalı")
	}
}

func TestBuild_DeletedProductKeepsSnapshot(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)

	// Ürün silinse de satış snapshot'ları raporda kalır, currentStock 0 olur
	if err := db.Where("code = ?", "WHT").Delete(&models.Product{}).Error; err != nil {
		t.Fatalf("ürün silinemedi: %v", err)
	}

	data, err := Build(db, sales.Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(data.Products) != 2 {
		t.Fatalf("silinen ürünün özeti kaybolmamalı: %d", len(data.Products))
	}
	wht := data.Products[1]
	if wht.ProductName != "Wheat" {
		t.Fatalf("snapshot adı korunmalı: %q", wht.ProductName)
	}
	if wht.CurrentStock != 0 {
		t.Fatalf("silinen ürün için currentStock = %.2f, beklenen 0", wht.CurrentStock)
	}
}

func TestFPDFRenderer_ProducesPDF(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)

	data, err := Build(db, sales.Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	r := NewFPDFRenderer()
	out, err := r.RenderSales(data)
	if err != nil {
		t.Fatalf("RenderSales: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatalf("PDF imzası yok: %q", out[:min(8, len(out))])
	}

	out, err = r.RenderCombined(data)
	if err != nil {
		t.Fatalf("RenderCombined: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Fatal("birleşik raporda PDF imzası yok")
	}
}

func TestRenderHTML(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)

	data, err := Build(db, sales.Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	out, err := RenderHTML(data, true)
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	html := string(out)
	for _, want := range []string{"Wheat", "Alice", "WHT"} {
		if !strings.Contains(html, want) {
			t.Fatalf("HTML çıktıda %q yok", want)
		}
	}
}

func TestRenderExcel(t *testing.T) {
	db := newTestDB(t)
	seedReportData(t, db)

	data, err := Build(db, sales.Filters{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	out, err := RenderExcel(data)
	if err != nil {
		t.Fatalf("RenderExcel: %v", err)
	}
	// xlsx bir zip arşividir
	if !bytes.HasPrefix(out, []byte("PK")) {
		t.Fatal("xlsx zip imzası yok")
	}
}
