package inventory

import (
	"errors"
	"time"

	"stoktakip-backend/internal/dateutil"
	"stoktakip-backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrProductNotFound: stok/satış işleminin referans verdiği ürün kodu yok
	ErrProductNotFound = errors.New("ürün bulunamadı")
	// ErrStockNotFound: id ile aranan stok kaydı yok
	ErrStockNotFound = errors.New("stok kaydı bulunamadı")
)

// FindProductByCode ürün kodunu (büyük/küçük harf duyarlı, birebir) çözer.
func FindProductByCode(db *gorm.DB, code string) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// UpsertStockForDay (ürün, gün) anahtarındaki kaydı verilen değerlerle yazar.
// Kayıt varsa totalStock/remainStock olduğu gibi ÜZERİNE yazılır (toplama
// yapılmaz; delta hesabı çağırana aittir), yoksa yeni kayıt açılır.
// created=true yeni kayıt anlamına gelir.
func UpsertStockForDay(db *gorm.DB, productCode string, date time.Time, totalStock, remainStock float64) (*models.StockEntry, bool, error) {
	product, err := FindProductByCode(db, productCode)
	if err != nil {
		return nil, false, err
	}

	day := dateutil.Day(date)

	var entry models.StockEntry
	err = db.First(&entry, "product_id = ? AND date = ?", product.ID, day).Error
	if err == nil {
		entry.TotalStock = totalStock
		entry.RemainStock = remainStock
		if err := db.Save(&entry).Error; err != nil {
			return nil, false, err
		}
		return &entry, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	entry = models.StockEntry{
		ProductID:   product.ID,
		Date:        day,
		TotalStock:  totalStock,
		RemainStock: remainStock,
	}
	if err := db.Create(&entry).Error; err != nil {
		// Eşzamanlı iki upsert aynı anahtara insert denerse benzersiz indeks
		// ikincisini düşürür; kaybeden güncellemeye döner.
		var existing models.StockEntry
		if ferr := db.First(&existing, "product_id = ? AND date = ?", product.ID, day).Error; ferr == nil {
			existing.TotalStock = totalStock
			existing.RemainStock = remainStock
			if serr := db.Save(&existing).Error; serr != nil {
				return nil, false, serr
			}
			return &existing, false, nil
		}
		return nil, false, err
	}
	return &entry, true, nil
}

// FindStockForProduct ürünün tüm stok kayıtlarını en yeni tarihten eskiye döndürür.
func FindStockForProduct(db *gorm.DB, productCode string) ([]models.StockEntry, error) {
	product, err := FindProductByCode(db, productCode)
	if err != nil {
		return nil, err
	}

	var entries []models.StockEntry
	if err := db.Where("product_id = ?", product.ID).Order("date desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindStockForDay (ürün, gün) anahtarındaki kaydı döndürür. Satış kaydedici
// tarafından kullanılır.
func FindStockForDay(db *gorm.DB, productID uint, date time.Time) (*models.StockEntry, error) {
	var entry models.StockEntry
	err := db.First(&entry, "product_id = ? AND date = ?", productID, dateutil.Day(date)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStockNotFound
		}
		return nil, err
	}
	return &entry, nil
}
