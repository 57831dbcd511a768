package models

import "time"

// Product: ürün kimliği. Code global olarak benzersizdir (stok ve satış
// kayıtları ürünü bu kod üzerinden çözer).
type Product struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Code      string `gorm:"size:50;not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
