package inventory

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/dateutil"
	"stoktakip-backend/internal/models"
	"stoktakip-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type UpsertStockRequest struct {
	ProductCode string  `json:"productCode" validate:"required,max=50"`
	Date        string  `json:"date"` // "2024-01-01", boşsa bugün (UTC)
	TotalStock  float64 `json:"totalStock" validate:"gte=0"`
	RemainStock float64 `json:"remainStock" validate:"gte=0"`
}

type UpdateStockRequest struct {
	TotalStock  float64 `json:"totalStock" validate:"gte=0"`
	RemainStock float64 `json:"remainStock" validate:"gte=0"`
	Date        *string `json:"date"` // opsiyonel; verilirse UTC gününe indirgenir
}

type StockEntryResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"productId"`
	Date        string  `json:"date"`
	TotalStock  float64 `json:"totalStock"`
	RemainStock float64 `json:"remainStock"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type StockListItem struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	ProductCode string  `json:"productCode"`
	ProductName string  `json:"productName"`
	TotalStock  float64 `json:"totalStock"`
	RemainStock float64 `json:"remainStock"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type ListStockResponse struct {
	Stocks      []StockListItem `json:"stocks"`
	TotalPages  int             `json:"totalPages"`
	CurrentPage int             `json:"currentPage"`
}

func stockEntryResponse(e *models.StockEntry) StockEntryResponse {
	return StockEntryResponse{
		ID:          e.ID,
		ProductID:   e.ProductID,
		Date:        e.Date.Format("2006-01-02"),
		TotalStock:  e.TotalStock,
		RemainStock: e.RemainStock,
		CreatedAt:   e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
	}
}

// POST /api/stock
// Aynı (ürün, gün) anahtarına ikinci çağrı mevcut kaydın üzerine yazar (201 yerine 200)
func UpsertStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body UpsertStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.ProductCode = strings.TrimSpace(body.ProductCode)
		if err := validation.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		date := time.Now()
		if body.Date != "" {
			var err error
			if date, err = dateutil.ParseFlexible(body.Date); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
		}

		entry, created, err := UpsertStockForDay(database.DB, body.ProductCode, date, body.TotalStock, body.RemainStock)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kaydedilemedi")
		}

		action := models.AuditActionUpdate
		status := fiber.StatusOK
		label := "güncellendi"
		if created {
			action = models.AuditActionCreate
			status = fiber.StatusCreated
			label = "eklendi"
		}
		writeStockAudit(action, entry.ID, nil, stockEntryResponse(entry),
			fmt.Sprintf("Stok %s: %s %s (%.2f / %.2f)", label, body.ProductCode, entry.Date.Format("2006-01-02"), entry.RemainStock, entry.TotalStock))

		return c.Status(status).JSON(stockEntryResponse(entry))
	}
}

// GET /api/stock/:productCode
func ListStockForProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := c.Params("productCode")

		entries, err := FindStockForProduct(database.DB, code)
		if err != nil {
			if errors.Is(err, ErrProductNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kayıtları listelenemedi")
		}

		res := make([]StockEntryResponse, 0, len(entries))
		for i := range entries {
			res = append(res, stockEntryResponse(&entries[i]))
		}
		return c.JSON(res)
	}
}

// GET /api/stock?startDate=&endDate=&productCode=&productName=&page=1&limit=10
func ListStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}

		dbq := database.DB.Model(&models.StockEntry{})

		startDate := c.Query("startDate")
		endDate := c.Query("endDate")
		if startDate != "" && endDate != "" {
			start, err1 := dateutil.ParseDay(startDate)
			end, err2 := dateutil.ParseDay(endDate)
			if err1 != nil || err2 != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			dbq = dbq.Where("date BETWEEN ? AND ?", start, end)
		}

		if code := strings.TrimSpace(c.Query("productCode")); code != "" {
			product, err := FindProductByCode(database.DB, code)
			if err != nil {
				if errors.Is(err, ErrProductNotFound) {
					return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
				}
				return fiber.NewError(fiber.StatusInternalServerError, "Ürün sorgulanamadı")
			}
			dbq = dbq.Where("product_id = ?", product.ID)
		}

		if name := strings.TrimSpace(c.Query("productName")); name != "" {
			var ids []uint
			if err := database.DB.Model(&models.Product{}).
				Where("LOWER(name) LIKE ?", "%"+strings.ToLower(name)+"%").
				Pluck("id", &ids).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Ürünler sorgulanamadı")
			}
			if len(ids) == 0 {
				// İsme uyan ürün yoksa hata değil boş sayfa döndürülür
				return c.JSON(ListStockResponse{Stocks: []StockListItem{}, TotalPages: 1, CurrentPage: 1})
			}
			dbq = dbq.Where("product_id IN ?", ids)
		}

		var count int64
		if err := dbq.Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kayıtları sayılamadı")
		}

		var entries []models.StockEntry
		if err := dbq.Preload("Product").
			Order("date desc").
			Offset((page - 1) * limit).Limit(limit).
			Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok kayıtları listelenemedi")
		}

		stocks := make([]StockListItem, 0, len(entries))
		for _, e := range entries {
			stocks = append(stocks, StockListItem{
				ID:          e.ID,
				Date:        e.Date.Format("2006-01-02"),
				ProductCode: e.Product.Code,
				ProductName: e.Product.Name,
				TotalStock:  e.TotalStock,
				RemainStock: e.RemainStock,
				CreatedAt:   e.CreatedAt.Format(time.RFC3339),
				UpdatedAt:   e.UpdatedAt.Format(time.RFC3339),
			})
		}

		return c.JSON(ListStockResponse{
			Stocks:      stocks,
			TotalPages:  int(math.Ceil(float64(count) / float64(limit))),
			CurrentPage: page,
		})
	}
}

// PUT /api/stock/:id
func UpdateStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.StockEntry
		if err := database.DB.First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Stok kaydı bulunamadı")
		}

		var body UpdateStockRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if err := validation.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		before := stockEntryResponse(&entry)

		entry.TotalStock = body.TotalStock
		entry.RemainStock = body.RemainStock
		if body.Date != nil && *body.Date != "" {
			d, err := dateutil.ParseFlexible(*body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
			}
			entry.Date = dateutil.Day(d)
		}

		if err := database.DB.Save(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok güncellenemedi")
		}

		writeStockAudit(models.AuditActionUpdate, entry.ID, before, stockEntryResponse(&entry),
			fmt.Sprintf("Stok kaydı güncellendi (ID: %d)", entry.ID))

		return c.JSON(stockEntryResponse(&entry))
	}
}

// DELETE /api/stock/:id
// Mevcut satışlara karşı bütünlük kontrolü yapılmaz (bilinçli admin işlemi)
func DeleteStockHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entry models.StockEntry
		if err := database.DB.First(&entry, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Stok kaydı bulunamadı")
		}

		if err := database.DB.Delete(&entry).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stok silinemedi")
		}

		writeStockAudit(models.AuditActionDelete, entry.ID, stockEntryResponse(&entry), nil,
			fmt.Sprintf("Stok kaydı silindi (ID: %d)", entry.ID))

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func writeStockAudit(action models.AuditAction, entityID uint, before, after any, description string) {
	if err := audit.WriteLog(audit.LogOptions{
		EntityType:  "stock_entry",
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	}); err != nil {
		log.Printf("Audit log yazılamadı: %v", err)
	}
}
