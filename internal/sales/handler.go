package sales

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
	"stoktakip-backend/internal/inventory"
	"stoktakip-backend/internal/models"
	"stoktakip-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type SaleRequest struct {
	CustomerName  string  `json:"customerName" validate:"required,max=100"`
	ProductCode   string  `json:"productCode" validate:"required,max=50"`
	QuantityKg    float64 `json:"quantityKg" validate:"required,gt=0"`
	PricePerKg    float64 `json:"pricePerKg" validate:"gte=0"`
	PaymentMode   string  `json:"paymentMode" validate:"required,oneof=online cash"`
	PaymentStatus string  `json:"paymentStatus" validate:"required,oneof=paid unpaid"`
	Date          string  `json:"date"` // opsiyonel; "2024-01-01" veya RFC3339
}

type SaleResponse struct {
	ID            uint    `json:"id"`
	ProductID     uint    `json:"productId"`
	ProductCode   string  `json:"productCode"`
	ProductName   string  `json:"productName"`
	QuantityKg    float64 `json:"quantityKg"`
	PricePerKg    float64 `json:"pricePerKg"`
	TotalValue    float64 `json:"totalValue"`
	CustomerName  string  `json:"customerName"`
	PaymentMode   string  `json:"paymentMode"`
	PaymentStatus string  `json:"paymentStatus"`
	Date          string  `json:"date"`
}

type ListSalesResponse struct {
	Sales           []SaleResponse `json:"sales"`
	TotalPages      int            `json:"totalPages"`
	CurrentPage     int            `json:"currentPage"`
	TotalQuantityKg float64        `json:"totalQuantityKg"`
	TotalValue      float64        `json:"totalValue"`
}

func saleResponse(s *models.Sale) SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		ProductCode:   s.ProductCode,
		ProductName:   s.ProductName,
		QuantityKg:    s.QuantityKg,
		PricePerKg:    s.PricePerKg,
		TotalValue:    s.TotalValue,
		CustomerName:  s.CustomerName,
		PaymentMode:   string(s.PaymentMode),
		PaymentStatus: string(s.PaymentStatus),
		Date:          s.Date.Format(time.RFC3339),
	}
}

func parseSaleRequest(c *fiber.Ctx) (*RecordSaleInput, error) {
	var body SaleRequest
	if err := c.BodyParser(&body); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
	}

	body.CustomerName = strings.TrimSpace(body.CustomerName)
	body.ProductCode = strings.TrimSpace(body.ProductCode)

	if err := validation.Struct(body); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	in := RecordSaleInput{
		CustomerName:  body.CustomerName,
		ProductCode:   body.ProductCode,
		QuantityKg:    body.QuantityKg,
		PricePerKg:    body.PricePerKg,
		PaymentMode:   models.PaymentMode(body.PaymentMode),
		PaymentStatus: models.PaymentStatus(body.PaymentStatus),
	}

	if body.Date != "" {
		d, err := dateutil.ParseFlexible(body.Date)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Tarih formatı 'YYYY-MM-DD' olmalı")
		}
		in.Date = &d
	}

	return &in, nil
}

// Kayıt/güncelleme hatalarını HTTP durumuna çevirir
func mapSaleError(err error) error {
	var insufficient *InsufficientStockError
	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Ürün bulunamadı")
	case errors.Is(err, ErrSaleNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Satış bulunamadı")
	case errors.Is(err, ErrNoStockForDate):
		return fiber.NewError(fiber.StatusBadRequest, "Bu tarih için stok kaydı yok")
	case errors.As(err, &insufficient):
		return fiber.NewError(fiber.StatusBadRequest, insufficient.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Satış işlemi tamamlanamadı")
}

// POST /api/sales
func CreateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		in, err := parseSaleRequest(c)
		if err != nil {
			return err
		}

		sale, err := RecordSale(database.DB, *in)
		if err != nil {
			return mapSaleError(err)
		}

		writeSaleAudit(models.AuditActionCreate, sale.ID, nil, saleResponse(sale),
			fmt.Sprintf("Satış eklendi: %s, %s %.2f kg", sale.CustomerName, sale.ProductCode, sale.QuantityKg))

		return c.Status(fiber.StatusCreated).JSON(saleResponse(sale))
	}
}

// PUT /api/sales/:id
func UpdateSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		in, err := parseSaleRequest(c)
		if err != nil {
			return err
		}

		var before *SaleResponse
		var existing models.Sale
		if err := database.DB.First(&existing, "id = ?", id).Error; err == nil {
			b := saleResponse(&existing)
			before = &b
		}

		sale, err := UpdateSale(database.DB, id, *in)
		if err != nil {
			return mapSaleError(err)
		}

		writeSaleAudit(models.AuditActionUpdate, sale.ID, before, saleResponse(sale),
			fmt.Sprintf("Satış güncellendi (ID: %d)", sale.ID))

		return c.JSON(saleResponse(sale))
	}
}

// DELETE /api/sales/:id
func DeleteSaleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		sale, err := DeleteSale(database.DB, id)
		if err != nil {
			return mapSaleError(err)
		}

		writeSaleAudit(models.AuditActionDelete, sale.ID, saleResponse(sale), nil,
			fmt.Sprintf("Satış silindi (ID: %d)", sale.ID))

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/sales?startDate=&endDate=&customerName=&paymentMode=&paymentStatus=&productCode=&page=1&limit=10
// Toplamlar (totalQuantityKg, totalValue) sayfanın değil filtrelenen kümenin tamamının toplamıdır
func ListSalesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters, err := ParseFilters(c)
		if err != nil {
			return err
		}

		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 10
		}

		var count int64
		if err := filters.Apply(database.DB.Model(&models.Sale{})).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar sayılamadı")
		}

		var totals struct {
			TotalQuantityKg float64
			TotalValue      float64
		}
		if err := filters.Apply(database.DB.Model(&models.Sale{})).
			Select("COALESCE(SUM(quantity_kg), 0) AS total_quantity_kg, COALESCE(SUM(total_value), 0) AS total_value").
			Scan(&totals).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satış toplamları hesaplanamadı")
		}

		var salesRows []models.Sale
		if err := filters.Apply(database.DB.Model(&models.Sale{})).
			Order("date desc, id desc").
			Offset((page - 1) * limit).Limit(limit).
			Find(&salesRows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Satışlar listelenemedi")
		}

		resp := make([]SaleResponse, 0, len(salesRows))
		for i := range salesRows {
			resp = append(resp, saleResponse(&salesRows[i]))
		}

		return c.JSON(ListSalesResponse{
			Sales:           resp,
			TotalPages:      int(math.Ceil(float64(count) / float64(limit))),
			CurrentPage:     page,
			TotalQuantityKg: totals.TotalQuantityKg,
			TotalValue:      totals.TotalValue,
		})
	}
}

func writeSaleAudit(action models.AuditAction, entityID uint, before, after any, description string) {
	if err := audit.WriteLog(audit.LogOptions{
		EntityType:  "sale",
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	}); err != nil {
		log.Printf("Audit log yazılamadı: %v", err)
	}
}
