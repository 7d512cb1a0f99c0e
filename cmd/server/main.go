package main

import (
	"log"
	"strings"

	"butce-backend/internal/auth"
	"butce-backend/internal/bank"
	"butce-backend/internal/config"
	"butce-backend/internal/dashboard"
	"butce-backend/internal/database"
	"butce-backend/internal/expense"
	"butce-backend/internal/inbound"
	"butce-backend/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/shopspring/decimal"
)

func main() {
	// Tutarlar JSON'a string değil sayı olarak yazılsın
	decimal.MarshalJSONWithoutQuotes = true

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
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Bankalar
	protected.Post("/banks", bank.CreateBankHandler())
	protected.Get("/banks", bank.ListBanksHandler())
	protected.Put("/banks/balances", bank.AuditBalancesHandler()) // günlük sayım
	protected.Get("/banks/:id", bank.GetBankHandler())
	protected.Put("/banks/:id/balance", bank.UpdateBalanceHandler())
	protected.Delete("/banks/:id", bank.DeleteBankHandler())

	// Beklenen para girişleri
	protected.Get("/banks/:id/inbounds", inbound.ListInboundsHandler())
	protected.Post("/banks/:id/inbounds", inbound.CreateInboundHandler())
	protected.Delete("/inbounds/:id", inbound.DeleteInboundHandler())

	// Gider kategorileri
	protected.Get("/expense-categories", expense.ListExpenseCategoriesHandler())
	protected.Post("/expense-categories", expense.CreateExpenseCategoryHandler())
	protected.Delete("/expense-categories/:id", expense.DeleteExpenseCategoryHandler())

	// Giderler
	protected.Get("/expenses", expense.ListExpensesHandler())
	protected.Get("/expenses/recurring", expense.ListRecurringExpensesHandler())
	protected.Post("/expenses", expense.CreateExpenseHandler())
	protected.Put("/expenses/:id", expense.UpdateExpenseHandler())
	protected.Delete("/expenses/:id", expense.DeleteExpenseHandler())

	// Dashboard
	protected.Get("/dashboard/stats", dashboard.StatsHandler())

	// Excel raporu
	protected.Get("/report", report.DownloadHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
