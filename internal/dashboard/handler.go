package dashboard

import (
	"log"
	"time"

	"butce-backend/internal/auth"
	"butce-backend/internal/finance"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard/stats
// Sorgu hatasında dashboard'u düşürmeyiz: logla, sıfırlanmış sonucu dön.
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		now := time.Now()
		snap, err := finance.LoadSnapshot(userID, now)
		if err != nil {
			log.Println("Dashboard verisi yüklenemedi:", err)
			return c.JSON(finance.ZeroStats())
		}

		return c.JSON(finance.BuildStats(snap, now))
	}
}
