package report

import (
	"log"

	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
)

// GET /api/sales/download-pdf?startDate=&endDate=&customerName=&paymentMode=&paymentStatus=&productCode=
func DownloadSalesPDFHandler(cfg *config.Config) fiber.Handler {
	renderer := NewRenderer(cfg.ReportRenderer)

	return func(c *fiber.Ctx) error {
		filters, err := sales.ParseFilters(c)
		if err != nil {
			return err
		}

		data, err := Build(database.DB, filters)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor verisi hazırlanamadı")
		}

		pdf, err := renderer.RenderSales(data)
		if err != nil {
			log.Printf("PDF render hatası: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "PDF oluşturulamadı")
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=sales_report.pdf`)
		return c.Send(pdf)
	}
}

// GET /api/sales/download-report?format=pdf|json|html
// Birleşik rapor: özet + ürün bazında toplamlar + ödenen/ödenmemiş kırılımı.
// format=json yapısal veriyi döndürür (istemci tarafı render için).
func DownloadCombinedReportHandler(cfg *config.Config) fiber.Handler {
	renderer := NewRenderer(cfg.ReportRenderer)

	return func(c *fiber.Ctx) error {
		filters, err := sales.ParseFilters(c)
		if err != nil {
			return err
		}

		data, err := Build(database.DB, filters)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor verisi hazırlanamadı")
		}

		switch c.Query("format", "pdf") {
		case "json":
			return c.JSON(data)
		case "html":
			html, err := RenderHTML(data, true)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Rapor oluşturulamadı")
			}
			c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
			return c.Send(html)
		case "pdf":
			pdf, err := renderer.RenderCombined(data)
			if err != nil {
				log.Printf("PDF render hatası: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "PDF oluşturulamadı")
			}
			c.Set(fiber.HeaderContentType, "application/pdf")
			c.Set(fiber.HeaderContentDisposition, `attachment; filename=sales_combined_report.pdf`)
			return c.Send(pdf)
		default:
			return fiber.NewError(fiber.StatusBadRequest, "format 'pdf', 'html' veya 'json' olmalı")
		}
	}
}

// GET /api/sales/download-excel
func DownloadSalesExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		filters, err := sales.ParseFilters(c)
		if err != nil {
			return err
		}

		data, err := Build(database.DB, filters)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor verisi hazırlanamadı")
		}

		xlsx, err := RenderExcel(data)
		if err != nil {
			log.Printf("Excel render hatası: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Excel oluşturulamadı")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=sales_report.xlsx`)
		return c.Send(xlsx)
	}
}
