package sales

import (
	"strings"
	"time"

	"stoktakip-backend/internal/dateutil"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Filters satış listesinin, PDF/Excel raporlarının ve birleşik raporun ortak
// filtre kümesi. Raporlar listeyle aynı filtrelenmiş kümeyi görmek zorunda.
type Filters struct {
	StartDate     *time.Time
	EndDate       *time.Time
	CustomerName  string
	PaymentMode   string
	PaymentStatus string
	ProductCode   string
}

// ParseFilters query string'den filtreleri okur. startDate/endDate ikisi
// birlikte verilmelidir, tek başına yok sayılır (kaynak sistemle aynı davranış).
func ParseFilters(c *fiber.Ctx) (Filters, error) {
	var f Filters

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if startDate != "" && endDate != "" {
		start, err1 := dateutil.ParseFlexible(startDate)
		end, err2 := dateutil.ParseFlexible(endDate)
		if err1 != nil || err2 != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		f.StartDate = &start
		f.EndDate = &end
	}

	f.CustomerName = strings.TrimSpace(c.Query("customerName"))
	f.PaymentMode = strings.TrimSpace(c.Query("paymentMode"))
	f.PaymentStatus = strings.TrimSpace(c.Query("paymentStatus"))
	f.ProductCode = strings.TrimSpace(c.Query("productCode"))

	return f, nil
}

// Apply filtreleri models.Sale sorgusuna ekler.
func (f Filters) Apply(db *gorm.DB) *gorm.DB {
	if f.StartDate != nil && f.EndDate != nil {
		db = db.Where("date BETWEEN ? AND ?", *f.StartDate, *f.EndDate)
	}
	if f.CustomerName != "" {
		db = db.Where("LOWER(customer_name) LIKE ?", "%"+strings.ToLower(f.CustomerName)+"%")
	}
	if f.PaymentMode != "" {
		db = db.Where("payment_mode = ?", f.PaymentMode)
	}
	if f.PaymentStatus != "" {
		db = db.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.ProductCode != "" {
		db = db.Where("product_code = ?", f.ProductCode)
	}
	return db
}

// Describe insan okunur filtre özetini döndürür (rapor başlıkları için).
func (f Filters) Describe() []string {
	var lines []string
	if f.StartDate != nil && f.EndDate != nil {
		lines = append(lines, "Tarih: "+f.StartDate.Format("2006-01-02")+" - "+f.EndDate.Format("2006-01-02"))
	}
	if f.CustomerName != "" {
		lines = append(lines, "Müşteri: "+f.CustomerName)
	}
	if f.PaymentMode != "" {
		lines = append(lines, "Ödeme şekli: "+f.PaymentMode)
	}
	if f.PaymentStatus != "" {
		lines = append(lines, "Ödeme durumu: "+f.PaymentStatus)
	}
	if f.ProductCode != "" {
		lines = append(lines, "Ürün kodu: "+f.ProductCode)
	}
	return lines
}
