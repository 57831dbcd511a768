package report

import (
	"time"

	"stoktakip-backend/internal/models"
	"stoktakip-backend/internal/sales"

	"gorm.io/gorm"
)

// Data hem PDF/HTML hem Excel hem de JSON çıktısının ortak yükü. Renderer
// stratejileri (fpdf / rod) yalnızca biçimde ayrışır, veri sözleşmesi aynıdır.
type Data struct {
	GeneratedAt time.Time          `json:"generatedAt"`
	Filters     []string           `json:"filters"`
	Summary     Summary            `json:"summary"`
	Sales       []SaleRow          `json:"sales"`
	Products    []ProductAggregate `json:"products"`
	Paid        Breakdown          `json:"paid"`
	Unpaid      Breakdown          `json:"unpaid"`
}

type Summary struct {
	TransactionCount int64   `json:"transactionCount"`
	TotalQuantityKg  float64 `json:"totalQuantityKg"`
	TotalValue       float64 `json:"totalValue"`
}

type SaleRow struct {
	Date          string  `json:"date"`
	CustomerName  string  `json:"customerName"`
	ProductName   string  `json:"productName"`
	ProductCode   string  `json:"productCode"`
	QuantityKg    float64 `json:"quantityKg"`
	PricePerKg    float64 `json:"pricePerKg"`
	TotalValue    float64 `json:"totalValue"`
	PaymentMode   string  `json:"paymentMode"`
	PaymentStatus string  `json:"paymentStatus"`
}

// ProductAggregate ürün başına satış özetini ve güncel kalan stoğu taşır.
// CurrentStock ürünün en yeni stok kaydındaki remainStock değeridir; ürün
// silinmişse (sahipsiz snapshot) 0 kalır.
type ProductAggregate struct {
	ProductCode   string  `json:"productCode"`
	ProductName   string  `json:"productName"`
	SoldKg        float64 `json:"soldKg"`
	AvgPricePerKg float64 `json:"avgPricePerKg"`
	TotalValue    float64 `json:"totalValue"`
	CurrentStock  float64 `json:"currentStock"`
}

type Breakdown struct {
	Sales           []SaleRow `json:"sales"`
	TotalQuantityKg float64   `json:"totalQuantityKg"`
	TotalValue      float64   `json:"totalValue"`
}

func saleRow(s *models.Sale) SaleRow {
	return SaleRow{
		Date:          s.Date.Format("2006-01-02"),
		CustomerName:  s.CustomerName,
		ProductName:   s.ProductName,
		ProductCode:   s.ProductCode,
		QuantityKg:    s.QuantityKg,
		PricePerKg:    s.PricePerKg,
		TotalValue:    s.TotalValue,
		PaymentMode:   string(s.PaymentMode),
		PaymentStatus: string(s.PaymentStatus),
	}
}

// Build filtrelenmiş satış kümesinden rapor verisini üretir. Salt okunurdur.
func Build(db *gorm.DB, f sales.Filters) (*Data, error) {
	data := &Data{
		GeneratedAt: time.Now(),
		Filters:     f.Describe(),
	}

	var rows []models.Sale
	if err := f.Apply(db.Model(&models.Sale{})).
		Order("date desc, id desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	data.Sales = make([]SaleRow, 0, len(rows))
	for i := range rows {
		r := saleRow(&rows[i])
		data.Sales = append(data.Sales, r)

		data.Summary.TransactionCount++
		data.Summary.TotalQuantityKg += r.QuantityKg
		data.Summary.TotalValue += r.TotalValue

		switch rows[i].PaymentStatus {
		case models.PaymentStatusPaid:
			data.Paid.Sales = append(data.Paid.Sales, r)
			data.Paid.TotalQuantityKg += r.QuantityKg
			data.Paid.TotalValue += r.TotalValue
		case models.PaymentStatusUnpaid:
			data.Unpaid.Sales = append(data.Unpaid.Sales, r)
			data.Unpaid.TotalQuantityKg += r.QuantityKg
			data.Unpaid.TotalValue += r.TotalValue
		}
	}

	aggs, err := productAggregates(db, f)
	if err != nil {
		return nil, err
	}
	data.Products = aggs

	return data, nil
}

func productAggregates(db *gorm.DB, f sales.Filters) ([]ProductAggregate, error) {
	var aggs []ProductAggregate
	if err := f.Apply(db.Model(&models.Sale{})).
		Select("product_code, product_name, " +
			"SUM(quantity_kg) AS sold_kg, " +
			"AVG(price_per_kg) AS avg_price_per_kg, " +
			"SUM(total_value) AS total_value").
		Group("product_code, product_name").
		Order("product_code asc").
		Scan(&aggs).Error; err != nil {
		return nil, err
	}

	// Güncel stok: ürünün en yeni stok kaydındaki kalan miktar
	for i := range aggs {
		var product models.Product
		if err := db.First(&product, "code = ?", aggs[i].ProductCode).Error; err != nil {
			continue // ürün silinmiş olabilir, snapshot rapora yine girer
		}
		var entry models.StockEntry
		if err := db.Where("product_id = ?", product.ID).
			Order("date desc").
			First(&entry).Error; err != nil {
			continue
		}
		aggs[i].CurrentStock = entry.RemainStock
	}

	return aggs, nil
}
