// Package sales satış kayıtlarını ve satışla birlikte yapılan stok düşümünü yönetir.
//
// Bilinen boşluk (ürün kararı netleşene kadar korunuyor): bir satışın
// güncellenmesi veya silinmesi stok defterini geri düzeltmez; miktar değişen
// ya da silinen satışlar stokta sapma bırakabilir.
package sales

import (
	"errors"
	"fmt"
	"time"

	"stoktakip-backend/internal/dateutil"
	"stoktakip-backend/internal/inventory"
	"stoktakip-backend/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNoStockForDate: satış gününe ait stok kaydı açılmamış
	ErrNoStockForDate = errors.New("bu tarih için stok kaydı yok")
	// ErrSaleNotFound: id ile aranan satış yok
	ErrSaleNotFound = errors.New("satış bulunamadı")
)

// InsufficientStockError kalan miktarı da taşır; kullanıcıya aynen gösterilir.
type InsufficientStockError struct {
	Remaining float64
	Requested float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Yetersiz stok. Kalan: %.2f kg, istenen: %.2f kg", e.Remaining, e.Requested)
}

type RecordSaleInput struct {
	CustomerName  string
	ProductCode   string
	QuantityKg    float64
	PricePerKg    float64
	PaymentMode   models.PaymentMode
	PaymentStatus models.PaymentStatus
	Date          *time.Time // nil ise şimdi
}

// RecordSale satışı kaydeder ve aynı günün stok kaydından düşer.
//
// Düşüm tek bir koşullu UPDATE'tir (remain_stock = remain_stock - ? WHERE
// remain_stock >= ?): aynı (ürün, gün) anahtarına eşzamanlı satışlar bayat
// remain_stock okuyup birlikte geçemez, stok hiçbir zaman 0'ın altına inmez.
// Düşüm ve satış insert'i aynı transaction'dadır; insert başarısız olursa
// düşüm de geri alınır.
func RecordSale(db *gorm.DB, in RecordSaleInput) (*models.Sale, error) {
	product, err := inventory.FindProductByCode(db, in.ProductCode)
	if err != nil {
		return nil, err
	}

	saleDate := time.Now()
	if in.Date != nil {
		saleDate = *in.Date
	}
	// Stok anahtarı güne indirgenir, satışın kendisi tam zamanı saklar
	day := dateutil.Day(saleDate)

	totalValue := in.QuantityKg * in.PricePerKg

	var sale models.Sale
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.StockEntry{}).
			Where("product_id = ? AND date = ? AND remain_stock >= ?", product.ID, day, in.QuantityKg).
			Update("remain_stock", gorm.Expr("remain_stock - ?", in.QuantityKg))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Kayıt mı yok, stok mu yetersiz ayrımı için tekrar bak
			entry, err := inventory.FindStockForDay(tx, product.ID, day)
			if errors.Is(err, inventory.ErrStockNotFound) {
				return ErrNoStockForDate
			}
			if err != nil {
				return err
			}
			return &InsufficientStockError{Remaining: entry.RemainStock, Requested: in.QuantityKg}
		}

		sale = models.Sale{
			ProductID:     product.ID,
			ProductCode:   product.Code,
			ProductName:   product.Name,
			QuantityKg:    in.QuantityKg,
			PricePerKg:    in.PricePerKg,
			TotalValue:    totalValue,
			CustomerName:  in.CustomerName,
			PaymentMode:   in.PaymentMode,
			PaymentStatus: in.PaymentStatus,
			Date:          saleDate,
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// UpdateSale satışı günceller; ürün kodunu yeniden çözer, snapshot alanlarını
// tazeler ve totalValue'yu yeniden hesaplar. Stok defterine DOKUNMAZ.
func UpdateSale(db *gorm.DB, id string, in RecordSaleInput) (*models.Sale, error) {
	var sale models.Sale
	if err := db.First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	product, err := inventory.FindProductByCode(db, in.ProductCode)
	if err != nil {
		return nil, err
	}

	sale.ProductID = product.ID
	sale.ProductCode = product.Code
	sale.ProductName = product.Name
	sale.QuantityKg = in.QuantityKg
	sale.PricePerKg = in.PricePerKg
	sale.TotalValue = in.QuantityKg * in.PricePerKg
	sale.CustomerName = in.CustomerName
	sale.PaymentMode = in.PaymentMode
	sale.PaymentStatus = in.PaymentStatus
	if in.Date != nil {
		sale.Date = *in.Date
	}

	if err := db.Save(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

// DeleteSale satışı siler. Stok defterine DOKUNMAZ.
func DeleteSale(db *gorm.DB, id string) (*models.Sale, error) {
	var sale models.Sale
	if err := db.First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}

	if err := db.Delete(&sale).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}
