package finance

import (
	"fmt"
	"time"

	"butce-backend/internal/database"
	"butce-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var unsettledStatuses = []models.ExpenseStatus{models.StatusNotPaid, models.StatusPending}

// LoadSnapshot: bir kullanıcının hesaplama için gereken tüm defter satırlarını okur.
// Okumalar tek transaction içinde yapılır ki sonuç tutarlı bir an'a karşılık gelsin.
func LoadSnapshot(userID uint, now time.Time) (Snapshot, error) {
	firstDay, lastDay := MonthBounds(now)

	var snap Snapshot
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Bank{}).
			Select("id, name, current_balance").
			Where("user_id = ?", userID).
			Scan(&snap.Banks).Error; err != nil {
			return fmt.Errorf("banka satırları okunamadı: %w", err)
		}

		var err error
		snap.Unsettled, err = loadExpenseRows(tx, userID,
			"expenses.status IN ? AND expenses.due_date IS NOT NULL", unsettledStatuses)
		if err != nil {
			return fmt.Errorf("bekleyen giderler okunamadı: %w", err)
		}

		snap.MonthExpenses, err = loadExpenseRows(tx, userID,
			"expenses.due_date >= ?", firstDay)
		if err != nil {
			return fmt.Errorf("ay içi giderler okunamadı: %w", err)
		}

		if err := tx.Model(&models.Inbound{}).
			Select("inbounds.bank_id, inbounds.amount, inbounds.date").
			Joins("JOIN banks ON banks.id = inbounds.bank_id").
			Where("banks.user_id = ? AND inbounds.date >= ? AND inbounds.date <= ?", userID, firstDay, lastDay).
			Scan(&snap.Inbounds).Error; err != nil {
			return fmt.Errorf("beklenen girişler okunamadı: %w", err)
		}

		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	return snap, nil
}

// LoadPendingTotals: banka başına bekleyen gider toplamı.
// Satırı olmayan banka map'te bulunmaz, okuyan taraf sıfır varsayar.
func LoadPendingTotals(userID uint) (map[uint]decimal.Decimal, error) {
	type pendRow struct {
		BankID uint            `gorm:"column:bank_id"`
		Total  decimal.Decimal `gorm:"column:total"`
	}
	var rows []pendRow

	err := database.DB.Model(&models.Expense{}).
		Select("bank_id, SUM(amount) AS total").
		Where("user_id = ? AND is_recurring = ? AND status IN ?", userID, false, unsettledStatuses).
		Group("bank_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("bekleyen toplamlar okunamadı: %w", err)
	}

	totals := make(map[uint]decimal.Decimal, len(rows))
	for _, r := range rows {
		totals[r.BankID] = r.Total
	}
	return totals, nil
}

// loadExpenseRows: tek seferlik giderleri kategori adıyla birlikte okur.
// Kategori silinmiş olabilir, LEFT JOIN + COALESCE ile boş ada düşülür.
func loadExpenseRows(tx *gorm.DB, userID uint, cond string, args ...interface{}) ([]ExpenseRow, error) {
	var rows []ExpenseRow
	err := tx.Model(&models.Expense{}).
		Select("expenses.id, expenses.bank_id, COALESCE(expense_categories.name, '') AS category_name, expenses.name, expenses.amount, expenses.status, expenses.due_date").
		Joins("LEFT JOIN expense_categories ON expense_categories.id = expenses.category_id").
		Where("expenses.user_id = ? AND expenses.is_recurring = ?", userID, false).
		Where(cond, args...).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
