package bank

import (
	"strconv"

	"butce-backend/internal/auth"
	"butce-backend/internal/database"
	"butce-backend/internal/finance"
	"butce-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateBankRequest struct {
	Name    string `json:"name"`
	Balance string `json:"balance"` // ondalık string, bozuksa 0'a düşülür
}

type UpdateBalanceRequest struct {
	Balance string `json:"balance"`
}

// AuditRequest: günlük sayım. Anahtar banka id'si (string), değer yeni bakiye.
// Form alan adlarını gezen eski yaklaşım yerine açık eşleme: bilinmeyen id reddedilir.
type AuditRequest struct {
	Balances map[string]string `json:"balances"`
}

type BankResponse struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	PendingTotal   decimal.Decimal `json:"pending_total"`
	SafeBalance    decimal.Decimal `json:"safe_balance"`
	CreatedAt      string          `json:"created_at"`
}

func toBankResponse(b models.Bank, pending decimal.Decimal) BankResponse {
	return BankResponse{
		ID:             b.ID,
		Name:           b.Name,
		CurrentBalance: b.CurrentBalance,
		PendingTotal:   pending,
		SafeBalance:    b.CurrentBalance.Sub(pending),
		CreatedAt:      b.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/banks
func CreateBankHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var body CreateBankRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		balance, err := decimal.NewFromString(body.Balance)
		if err != nil {
			balance = decimal.Zero // bozuk girdi sıfır sayılır
		}

		bank := models.Bank{
			UserID:         userID,
			Name:           body.Name,
			CurrentBalance: balance,
		}

		if err := database.DB.Create(&bank).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Banka oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(toBankResponse(bank, decimal.Zero))
	}
}

// GET /api/banks
func ListBanksHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var banks []models.Bank
		if err := database.DB.
			Where("user_id = ?", userID).
			Order("name ASC").
			Find(&banks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bankalar listelenemedi")
		}

		pendings, err := finance.LoadPendingTotals(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bekleyen toplamlar hesaplanamadı")
		}

		resp := make([]BankResponse, 0, len(banks))
		for _, b := range banks {
			resp = append(resp, toBankResponse(b, pendings[b.ID]))
		}

		return c.JSON(resp)
	}
}

// GET /api/banks/:id
func GetBankHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var bank models.Bank
		if err := database.DB.First(&bank, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Banka bulunamadı")
		}

		pendings, err := finance.LoadPendingTotals(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bekleyen toplam hesaplanamadı")
		}

		return c.JSON(toBankResponse(bank, pendings[bank.ID]))
	}
}

// PUT /api/banks/:id/balance
func UpdateBalanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var bank models.Bank
		if err := database.DB.First(&bank, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Banka bulunamadı")
		}

		var body UpdateBalanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		balance, err := decimal.NewFromString(body.Balance)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "balance geçersiz")
		}

		bank.CurrentBalance = balance
		if err := database.DB.Save(&bank).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bakiye güncellenemedi")
		}

		pendings, err := finance.LoadPendingTotals(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bekleyen toplam hesaplanamadı")
		}

		return c.JSON(toBankResponse(bank, pendings[bank.ID]))
	}
}

// PUT /api/banks/balances
// Günlük sayım: tüm bakiyeler tek istekte, tek transaction içinde güncellenir.
func AuditBalancesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var body AuditRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if len(body.Balances) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "balances boş olamaz")
		}

		var banks []models.Bank
		if err := database.DB.
			Select("id").
			Where("user_id = ?", userID).
			Find(&banks).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bankalar okunamadı")
		}
		owned := make(map[uint]struct{}, len(banks))
		for _, b := range banks {
			owned[b.ID] = struct{}{}
		}

		entries, err := ParseAuditEntries(body.Balances, owned)
		if err != nil {
			return err
		}

		err = database.DB.Transaction(func(tx *gorm.DB) error {
			for bankID, balance := range entries {
				// user_id filtresi yazım anında da korunur
				if err := tx.Model(&models.Bank{}).
					Where("id = ? AND user_id = ?", bankID, userID).
					Update("current_balance", balance).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bakiyeler güncellenemedi")
		}

		return c.JSON(fiber.Map{"updated": len(entries)})
	}
}

// ParseAuditEntries: istekten gelen eşlemeyi doğrular.
// Bilinmeyen veya bozuk banka id'si isteği reddettirir,
// çözülemeyen bakiye değeri ise sadece o satırı atlatır.
func ParseAuditEntries(raw map[string]string, owned map[uint]struct{}) (map[uint]decimal.Decimal, error) {
	entries := make(map[uint]decimal.Decimal, len(raw))
	for idStr, balStr := range raw {
		id64, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || id64 == 0 {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Geçersiz banka id: "+idStr)
		}
		bankID := uint(id64)
		if _, ok := owned[bankID]; !ok {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Banka size ait değil: "+idStr)
		}
		balance, err := decimal.NewFromString(balStr)
		if err != nil {
			continue // bozuk bakiye girilen satır güncellenmez
		}
		entries[bankID] = balance
	}
	return entries, nil
}

// DELETE /api/banks/:id
func DeleteBankHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var bank models.Bank
		if err := database.DB.First(&bank, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Banka bulunamadı")
		}

		// Gider kayıtları var mı kontrol et
		var count int64
		database.DB.Model(&models.Expense{}).Where("bank_id = ?", bank.ID).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Bu bankaya bağlı giderler var, önce giderleri silin")
		}

		// Beklenen girişler bankayla birlikte gider
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("bank_id = ?", bank.ID).Delete(&models.Inbound{}).Error; err != nil {
				return err
			}
			return tx.Delete(&bank).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Banka silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
