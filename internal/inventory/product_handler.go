package inventory

import (
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

type ProductResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

type ListProductsResponse struct {
	Products    []ProductResponse `json:"products"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

type CreateProductRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Code string `json:"code" validate:"required,max=50"`
}

type UpdateProductRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Code string `json:"code" validate:"required,max=50"`
}

type ProductInStockResponse struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	TotalStock  float64 `json:"totalStock"`
	RemainStock float64 `json:"remainStock"`
}

func productResponse(p *models.Product) ProductResponse {
	return ProductResponse{ID: p.ID, Name: p.Name, Code: p.Code}
}

// GET /api/products?search=&page=1&limit=10
// search hem name hem code üzerinde büyük/küçük harf duyarsız alt dizge araması yapar
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}

		dbq := database.DB.Model(&models.Product{})

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			pattern := "%" + strings.ToLower(search) + "%"
			dbq = dbq.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", pattern, pattern)
		}

		var count int64
		if err := dbq.Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler sayılamadı")
		}

		var products []models.Product
		if err := dbq.Order("name asc").
			Offset((page - 1) * limit).Limit(limit).
			Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürünler listelenemedi")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, productResponse(&products[i]))
		}

		return c.JSON(ListProductsResponse{
			Products:    res,
			TotalPages:  int(math.Ceil(float64(count) / float64(limit))),
			CurrentPage: page,
		})
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Code = strings.TrimSpace(body.Code)

		if err := validation.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Kod benzersizliği ön kontrolü
		var existing models.Product
		if err := database.DB.First(&existing, "code = ?", body.Code).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün kodu zaten mevcut")
		}

		p := models.Product{
			Name: body.Name,
			Code: body.Code,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün oluşturulamadı")
		}

		writeProductAudit(models.AuditActionCreate, p.ID, nil, productResponse(&p), fmt.Sprintf("Ürün eklendi: %s (%s)", p.Name, p.Code))

		return c.Status(fiber.StatusCreated).JSON(productResponse(&p))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Code = strings.TrimSpace(body.Code)

		if err := validation.Struct(body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		// Kod başka bir ürüne ait olmamalı
		var other models.Product
		if err := database.DB.Where("code = ? AND id <> ?", body.Code, p.ID).First(&other).Error; err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün kodu başka bir üründe zaten mevcut")
		}

		before := productResponse(&p)
		p.Name = body.Name
		p.Code = body.Code

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün güncellenemedi")
		}

		writeProductAudit(models.AuditActionUpdate, p.ID, before, productResponse(&p), fmt.Sprintf("Ürün güncellendi: %s (%s)", p.Name, p.Code))

		return c.JSON(productResponse(&p))
	}
}

// DELETE /api/products/:id
// Stok ve satış kayıtlarına dokunulmaz: eski kayıtlar ürün adı/kodu kopyasını
// taşıdığı için raporlarda okunur kalır (kabul edilen sahipsiz referans riski).
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ürün silinemedi")
		}

		writeProductAudit(models.AuditActionDelete, p.ID, productResponse(&p), nil, fmt.Sprintf("Ürün silindi: %s (%s)", p.Name, p.Code))

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/products/in-stock-today
// Bugünün (UTC günü) stok kaydı olan ve kalan stoğu 0'dan büyük ürünler
func ListProductsInStockTodayHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		today := dateutil.Day(time.Now())

		var entries []models.StockEntry
		if err := database.DB.Preload("Product").
			Where("date = ? AND remain_stock > 0", today).
			Order("id asc").
			Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Stoktaki ürünler listelenemedi")
		}

		res := make([]ProductInStockResponse, 0, len(entries))
		for _, e := range entries {
			res = append(res, ProductInStockResponse{
				ID:          e.ProductID,
				Name:        e.Product.Name,
				Code:        e.Product.Code,
				TotalStock:  e.TotalStock,
				RemainStock: e.RemainStock,
			})
		}
		return c.JSON(res)
	}
}

func writeProductAudit(action models.AuditAction, entityID uint, before, after any, description string) {
	if err := audit.WriteLog(audit.LogOptions{
		EntityType:  "product",
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	}); err != nil {
		log.Printf("Audit log yazılamadı: %v", err)
	}
}
