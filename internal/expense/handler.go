package expense

import (
	"time"

	"butce-backend/internal/auth"
	"butce-backend/internal/database"
	"butce-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseCategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CreateExpenseCategoryRequest struct {
	Name string `json:"name"`
}

type CreateExpenseRequest struct {
	BankID      uint   `json:"bank_id"`
	CategoryID  uint   `json:"category_id"`
	Amount      string `json:"amount"`
	Name        string `json:"name"`
	IsRecurring bool   `json:"is_recurring"`
	DueDate     string `json:"due_date"` // tek seferlik için, "2025-12-09"
	DueDay      *int   `json:"due_day"`  // tekrarlayan için, 1-31
	Status      string `json:"status"`
}

type UpdateExpenseRequest struct {
	BankID     *uint   `json:"bank_id"`
	CategoryID *uint   `json:"category_id"`
	Amount     *string `json:"amount"`
	Name       *string `json:"name"`
	DueDate    *string `json:"due_date"`
	DueDay     *int    `json:"due_day"`
	Status     *string `json:"status"`
}

type ExpenseResponse struct {
	ID           uint            `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Date         string          `json:"date"`
	Description  string          `json:"description"`
	Status       string          `json:"status"`
	BankName     string          `json:"bank_name"`
	CategoryName string          `json:"category_name"`
}

type RecurringExpenseResponse struct {
	ID           uint            `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	DueDay       int             `json:"due_day"`
	Description  string          `json:"description"`
	BankName     string          `json:"bank_name"`
	CategoryName string          `json:"category_name"`
}

// -------------------------
// Kategoriler
// -------------------------

// GET /api/expense-categories
func ListExpenseCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var cats []models.ExpenseCategory
		if err := database.DB.
			Where("user_id = ?", userID).
			Order("name ASC").
			Find(&cats).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategoriler listelenemedi")
		}

		resp := make([]ExpenseCategoryResponse, 0, len(cats))
		for _, cat := range cats {
			resp = append(resp, ExpenseCategoryResponse{ID: cat.ID, Name: cat.Name})
		}

		return c.JSON(resp)
	}
}

// POST /api/expense-categories
func CreateExpenseCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var body CreateExpenseCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		cat := models.ExpenseCategory{
			UserID: userID,
			Name:   body.Name,
		}

		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(ExpenseCategoryResponse{ID: cat.ID, Name: cat.Name})
	}
}

// DELETE /api/expense-categories/:id
// Kategoriyi referans eden giderler silinmez, yetim referans tolere edilir.
func DeleteExpenseCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var cat models.ExpenseCategory
		if err := database.DB.First(&cat, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Kategori bulunamadı")
		}

		if err := database.DB.Delete(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Kategori silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------
// Giderler
// -------------------------

// listRow: joinli liste sorgularının ortak satır yapısı
type listRow struct {
	ID           uint            `gorm:"column:id"`
	Amount       decimal.Decimal `gorm:"column:amount"`
	Name         string          `gorm:"column:name"`
	Status       string          `gorm:"column:status"`
	DueDate      *time.Time      `gorm:"column:due_date"`
	DueDay       *int            `gorm:"column:due_day"`
	BankName     string          `gorm:"column:bank_name"`
	CategoryName string          `gorm:"column:category_name"`
}

func listQuery(userID uint) *gorm.DB {
	return database.DB.Model(&models.Expense{}).
		Select("expenses.id, expenses.amount, expenses.name, expenses.status, expenses.due_date, expenses.due_day, COALESCE(banks.name, '') AS bank_name, COALESCE(expense_categories.name, '') AS category_name").
		Joins("LEFT JOIN banks ON banks.id = expenses.bank_id").
		Joins("LEFT JOIN expense_categories ON expense_categories.id = expenses.category_id").
		Where("expenses.user_id = ?", userID)
}

// GET /api/expenses
// Tek seferlik giderler, vade tarihi yeniden eskiye, son 50 kayıt
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var rows []listRow
		if err := listQuery(userID).
			Where("expenses.is_recurring = ?", false).
			Order("expenses.due_date DESC").
			Limit(50).
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Giderler listelenemedi")
		}

		resp := make([]ExpenseResponse, 0, len(rows))
		for _, r := range rows {
			date := ""
			if r.DueDate != nil {
				date = r.DueDate.Format("2006-01-02")
			}
			resp = append(resp, ExpenseResponse{
				ID:           r.ID,
				Amount:       r.Amount,
				Date:         date,
				Description:  r.Name,
				Status:       r.Status,
				BankName:     r.BankName,
				CategoryName: r.CategoryName,
			})
		}

		return c.JSON(resp)
	}
}

// GET /api/expenses/recurring
// Tekrarlayan şablonlar, ay günü küçükten büyüğe
func ListRecurringExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var rows []listRow
		if err := listQuery(userID).
			Where("expenses.is_recurring = ?", true).
			Order("expenses.due_day ASC").
			Scan(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Tekrarlayan giderler listelenemedi")
		}

		resp := make([]RecurringExpenseResponse, 0, len(rows))
		for _, r := range rows {
			day := 0
			if r.DueDay != nil {
				day = *r.DueDay
			}
			resp = append(resp, RecurringExpenseResponse{
				ID:           r.ID,
				Amount:       r.Amount,
				DueDay:       day,
				Description:  r.Name,
				BankName:     r.BankName,
				CategoryName: r.CategoryName,
			})
		}

		return c.JSON(resp)
	}
}

// POST /api/expenses
// Tekrarlayan ise due_day yeterli, status her zaman 'template' yazılır.
// Tek seferlik ise due_date + status gelir.
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name zorunlu")
		}

		amount, err := decimal.NewFromString(body.Amount)
		if err != nil || !amount.IsPositive() {
			return fiber.NewError(fiber.StatusBadRequest, "amount pozitif bir sayı olmalı")
		}

		// Banka bu kullanıcının mı?
		var bankCount int64
		database.DB.Model(&models.Bank{}).
			Where("id = ? AND user_id = ?", body.BankID, userID).
			Count(&bankCount)
		if bankCount == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "bank_id geçersiz")
		}

		exp := models.Expense{
			UserID:     userID,
			BankID:     body.BankID,
			CategoryID: body.CategoryID,
			Name:       body.Name,
			Amount:     amount,
		}

		if body.IsRecurring {
			day := 1
			if body.DueDay != nil {
				day = *body.DueDay
			}
			if day < 1 || day > 31 {
				return fiber.NewError(fiber.StatusBadRequest, "due_day 1 ile 31 arasında olmalı")
			}
			exp.IsRecurring = true
			exp.DueDay = &day
			exp.Status = models.StatusTemplate
		} else {
			date, err := time.ParseInLocation("2006-01-02", body.DueDate, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "due_date formatı 'YYYY-MM-DD' olmalı")
			}
			status := models.ExpenseStatus(body.Status)
			if !status.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz")
			}
			exp.DueDate = &date
			exp.Status = status
		}

		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider oluşturulamadı")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": exp.ID})
	}
}

// PUT /api/expenses/:id
// Alanlar doğrudan güncellenir; durum geçiş kuralı yok, geçerli küme yeterli.
func UpdateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}

		var body UpdateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.BankID != nil {
			var bankCount int64
			database.DB.Model(&models.Bank{}).
				Where("id = ? AND user_id = ?", *body.BankID, userID).
				Count(&bankCount)
			if bankCount == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "bank_id geçersiz")
			}
			exp.BankID = *body.BankID
		}
		if body.CategoryID != nil {
			exp.CategoryID = *body.CategoryID
		}
		if body.Amount != nil {
			amount, err := decimal.NewFromString(*body.Amount)
			if err != nil || !amount.IsPositive() {
				return fiber.NewError(fiber.StatusBadRequest, "amount pozitif bir sayı olmalı")
			}
			exp.Amount = amount
		}
		if body.Name != nil {
			exp.Name = *body.Name
		}
		if body.DueDate != nil {
			date, err := time.ParseInLocation("2006-01-02", *body.DueDate, time.Local)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "due_date formatı 'YYYY-MM-DD' olmalı")
			}
			exp.DueDate = &date
		}
		if body.DueDay != nil {
			if *body.DueDay < 1 || *body.DueDay > 31 {
				return fiber.NewError(fiber.StatusBadRequest, "due_day 1 ile 31 arasında olmalı")
			}
			exp.DueDay = body.DueDay
		}
		if body.Status != nil {
			status := models.ExpenseStatus(*body.Status)
			if !status.Valid() {
				return fiber.NewError(fiber.StatusBadRequest, "status geçersiz")
			}
			exp.Status = status
		}

		if err := database.DB.Save(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider güncellenemedi")
		}

		return c.JSON(fiber.Map{"id": exp.ID, "status": exp.Status})
	}
}

// DELETE /api/expenses/:id
func DeleteExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserIDFromContext(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		var exp models.Expense
		if err := database.DB.First(&exp, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Gider bulunamadı")
		}

		if err := database.DB.Delete(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
