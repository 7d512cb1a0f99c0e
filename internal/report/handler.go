package report

import (
	"fmt"
	"strings"
	"time"

	"butce-backend/internal/auth"
	"butce-backend/internal/database"
	"butce-backend/internal/finance"
	"butce-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	bankSheet    = "Bank Totals"
	expenseSheet = "All Expenses"
)

// detailRow: gider detay sayfasının satırı
type detailRow struct {
	DueDate      *time.Time      `gorm:"column:due_date"`
	Name         string          `gorm:"column:name"`
	CategoryName string          `gorm:"column:category_name"`
	BankName     string          `gorm:"column:bank_name"`
	Status       string          `gorm:"column:status"`
	Amount       decimal.Decimal `gorm:"column:amount"`
}

// Filename: {userId}_spent_report_{YYYY-MM-DD}_{epoch-ms}.xlsx
func Filename(userID uint, now time.Time) string {
	return fmt.Sprintf("%d_spent_report_%s_%d.xlsx", userID, now.Format("2006-01-02"), now.UnixMilli())
}

// GET /api/report
// İki sayfalı xlsx: banka toplamları + tüm tek seferlik gider detayı
func DownloadHandler() fiber.Handler {
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
			return fiber.NewError(fiber.StatusInternalServerError, "Banka verisi okunamadı")
		}

		pendings, err := finance.LoadPendingTotals(userID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bekleyen toplamlar hesaplanamadı")
		}

		var details []detailRow
		if err := database.DB.Model(&models.Expense{}).
			Select("expenses.due_date, expenses.name, COALESCE(expense_categories.name, '') AS category_name, COALESCE(banks.name, '') AS bank_name, expenses.status, expenses.amount").
			Joins("LEFT JOIN banks ON banks.id = expenses.bank_id").
			Joins("LEFT JOIN expense_categories ON expense_categories.id = expenses.category_id").
			Where("expenses.user_id = ? AND expenses.is_recurring = ?", userID, false).
			Order("expenses.due_date DESC").
			Scan(&details).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Gider verisi okunamadı")
		}

		f := excelize.NewFile()
		defer f.Close()

		// Sayfa 1: Banka toplamları
		f.SetSheetName("Sheet1", bankSheet)
		headers1 := []string{"Bank Name", "Total Assets", "Pending Deductions", "Safe To Spend"}
		for i, h := range headers1 {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(bankSheet, cell, h)
		}
		f.SetColWidth(bankSheet, "A", "A", 20)
		f.SetColWidth(bankSheet, "B", "D", 15)

		for i, b := range banks {
			pending := pendings[b.ID]
			safe := b.CurrentBalance.Sub(pending)
			row := i + 2
			f.SetCellValue(bankSheet, fmt.Sprintf("A%d", row), b.Name)
			f.SetCellValue(bankSheet, fmt.Sprintf("B%d", row), b.CurrentBalance.InexactFloat64())
			f.SetCellValue(bankSheet, fmt.Sprintf("C%d", row), pending.InexactFloat64())
			f.SetCellValue(bankSheet, fmt.Sprintf("D%d", row), safe.InexactFloat64())
		}

		// Sayfa 2: Gider detayı
		if _, err := f.NewSheet(expenseSheet); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor oluşturulamadı")
		}
		headers2 := []string{"Due Date", "Description", "Category", "Source Bank", "Status", "Amount"}
		for i, h := range headers2 {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(expenseSheet, cell, h)
		}
		f.SetColWidth(expenseSheet, "A", "A", 12)
		f.SetColWidth(expenseSheet, "B", "B", 25)
		f.SetColWidth(expenseSheet, "C", "C", 15)
		f.SetColWidth(expenseSheet, "D", "D", 20)
		f.SetColWidth(expenseSheet, "E", "F", 12)

		for i, d := range details {
			row := i + 2
			date := ""
			if d.DueDate != nil {
				date = d.DueDate.Format("2006-01-02")
			}
			status := strings.ToUpper(d.Status)
			if status == "" {
				status = "PENDING"
			}
			f.SetCellValue(expenseSheet, fmt.Sprintf("A%d", row), date)
			f.SetCellValue(expenseSheet, fmt.Sprintf("B%d", row), d.Name)
			f.SetCellValue(expenseSheet, fmt.Sprintf("C%d", row), d.CategoryName)
			f.SetCellValue(expenseSheet, fmt.Sprintf("D%d", row), d.BankName)
			f.SetCellValue(expenseSheet, fmt.Sprintf("E%d", row), status)
			f.SetCellValue(expenseSheet, fmt.Sprintf("F%d", row), d.Amount.InexactFloat64())
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Rapor yazılamadı")
		}

		filename := Filename(userID, time.Now())
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		return c.Send(buf.Bytes())
	}
}
