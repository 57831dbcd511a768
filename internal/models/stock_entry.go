package models

import "time"

// StockEntry: ürün + takvim günü başına stok kaydı. Date her zaman UTC gece
// yarısına indirgenmiş halde yazılır; (product_id, date) çifti benzersizdir.
type StockEntry struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_stock_product_date"`
	Product   Product
	Date      time.Time `gorm:"not null;uniqueIndex:idx_stock_product_date"`
	// Gün için bildirilen toplam stok
	TotalStock float64 `gorm:"not null"`
	// Satışlarla azalan kalan stok; hiçbir yazma yolu 0'ın altına indiremez
	RemainStock float64 `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
