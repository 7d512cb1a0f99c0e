package inbound

import (
	"time"

	"butce-backend/internal/auth"
	"butce-backend/internal/database"
	"butce-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateInboundRequest struct {
	Amount string `json:"amount"`
	Date   string `json:"date"` // "2025-12-09"
	Note   string `json:"note"`
}

type InboundResponse struct {
	ID     uint            `json:"id"`
	BankID uint            `json:"bank_id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Note   string          `json:"note"`
}

// Banka gerçekten bu kullanıcının mı? Tüm inbound işlemleri buradan geçer.
func resolveOwnedBank(c *fiber.Ctx, bankID interface{}) (models.Bank, error) {
	userID, err := auth.UserIDFromContext(c)
	if err != nil {
		return models.Bank{}, err
	}

	var bank models.Bank
	if err := database.DB.First(&bank, "id = ? AND user_id = ?", bankID, userID).Error; err != nil {
		return models.Bank{}, fiber.NewError(fiber.StatusNotFound, "Banka bulunamadı")
	}
	return bank, nil
}

// GET /api/banks/:id/inbounds
func ListInboundsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bank, err := resolveOwnedBank(c, c.Params("id"))
		if err != nil {
			return err
		}

		var inbounds []models.Inbound
		if err := database.DB.
			Where("bank_id = ?", bank.ID).
			Order("date ASC").
			Find(&inbounds).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Beklenen girişler listelenemedi")
		}

		resp := make([]InboundResponse, 0, len(inbounds))
		for _, in := range inbounds {
			resp = append(resp, InboundResponse{
				ID:     in.ID,
				BankID: in.BankID,
				Amount: in.Amount,
				Date:   in.Date.Format("2006-01-02"),
				Note:   in.Note,
			})
		}

		return c.JSON(resp)
	}
}

// POST /api/banks/:id/inbounds
func CreateInboundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bank, err := resolveOwnedBank(c, c.Params("id"))
		if err != nil {
			return err
		}

		var body CreateInboundRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		amount, err := decimal.NewFromString(body.Amount)
		if err != nil || !amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "amount pozitif bir sayı olmalı")
		}

		date, err := time.ParseInLocation("2006-01-02", body.Date, time.Local)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date formatı 'YYYY-MM-DD' olmalı")
		}

		if len([]rune(body.Note)) > 20 {
			return fiber.NewError(fiber.StatusBadRequest, "note en fazla 20 karakter olabilir")
		}

		in := models.Inbound{
			BankID: bank.ID,
			Amount: amount,
			Date:   date,
			Note:   body.Note,
		}

		if err := database.DB.Create(&in).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Beklenen giriş oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(InboundResponse{
			ID:     in.ID,
			BankID: in.BankID,
			Amount: in.Amount,
			Date:   in.Date.Format("2006-01-02"),
			Note:   in.Note,
		})
	}
}

// DELETE /api/inbounds/:id
// Gerçekleşen giriş silinir, "alındı" diye işaretlenmez.
func DeleteInboundHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var in models.Inbound
		if err := database.DB.
			Joins("JOIN banks ON banks.id = inbounds.bank_id").
			Where("inbounds.id = ? AND banks.user_id = ?", id, userID).
			First(&in).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Beklenen giriş bulunamadı")
		}

		if err := database.DB.Delete(&in).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Beklenen giriş silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
