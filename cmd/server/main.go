package main

import (
	"log"
	"strings"

	"stoktakip-backend/internal/audit"
	"stoktakip-backend/internal/config"
	"stoktakip-backend/internal/database"
	"stoktakip-backend/internal/inventory"
	"stoktakip-backend/internal/report"
	"stoktakip-backend/internal/sales"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Beklenmeyen sunucu hatası",
			})
		},
	})

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Ürün kayıtları
	api.Get("/products/in-stock-today", inventory.ListProductsInStockTodayHandler())
	api.Get("/products", inventory.ListProductsHandler())
	api.Post("/products", inventory.CreateProductHandler())
	api.Put("/products/:id", inventory.UpdateProductHandler())
	api.Delete("/products/:id", inventory.DeleteProductHandler())

	// Satışlar ve raporlar (sabit path'ler :id'den önce kaydedilmeli)
	api.Get("/sales/download-pdf", report.DownloadSalesPDFHandler(cfg))
	api.Get("/sales/download-report", report.DownloadCombinedReportHandler(cfg))
	api.Get("/sales/download-excel", report.DownloadSalesExcelHandler())
	api.Get("/sales", sales.ListSalesHandler())
	api.Post("/sales", sales.CreateSaleHandler())
	api.Put("/sales/:id", sales.UpdateSaleHandler())
	api.Delete("/sales/:id", sales.DeleteSaleHandler())

	// Stok defteri
	api.Get("/stock", inventory.ListStockHandler())
	api.Post("/stock", inventory.UpsertStockHandler())
	api.Get("/stock/:productCode", inventory.ListStockForProductHandler())
	api.Put("/stock/:id", inventory.UpdateStockHandler())
	api.Delete("/stock/:id", inventory.DeleteStockHandler())

	// Audit logs
	api.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
