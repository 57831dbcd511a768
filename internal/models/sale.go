package models

import "time"

// PaymentMode - Ödeme şekli
type PaymentMode string

const (
	PaymentModeOnline PaymentMode = "online"
	PaymentModeCash   PaymentMode = "cash"
)

// PaymentStatus - Ödeme durumu
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

// Sale - Satış kaydı. ProductCode ve ProductName satış anındaki kopyalardır
// (raporlarda join gerektirmemek için bilinçli denormalizasyon; ürün sonradan
// yeniden adlandırılırsa bu alanlar eski değerde kalır).
type Sale struct {
	ID          uint `gorm:"primaryKey"`
	ProductID   uint `gorm:"index;not null"`
	Product     Product
	ProductCode string        `gorm:"size:50;not null"`
	ProductName string        `gorm:"size:100;not null"`
	QuantityKg  float64       `gorm:"not null"`
	PricePerKg  float64       `gorm:"not null"`
	TotalValue  float64       `gorm:"not null"` // QuantityKg * PricePerKg, rapor için kalıcı
	CustomerName string       `gorm:"size:100;not null"`
	PaymentMode  PaymentMode  `gorm:"type:varchar(10);not null"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(10);not null;index"`
	// Satış zamanı tam hassasiyetle saklanır; stok anahtarı için ayrıca güne indirgenir
	Date      time.Time `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
