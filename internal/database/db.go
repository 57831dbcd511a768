package database

import (
	"log"

	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
}

// Migrate tüm tabloları kurar. Testler bunu in-memory SQLite üzerinde de çağırır.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.StockEntry{}, // (product_id, date) benzersiz indeksi model tag'lerinden gelir
		&models.Sale{},
		&models.AuditLog{},
	)
}
