package finance

import (
	"time"

	"butce-backend/internal/models"

	"github.com/shopspring/decimal"
)

// BankRow: bir bankanın hesaplama için gereken alanları
type BankRow struct {
	ID             uint
	Name           string
	CurrentBalance decimal.Decimal
}

// ExpenseRow: tek seferlik bir giderin hesaplama için gereken alanları.
// CategoryName yetim referanslarda boş string olur (LEFT JOIN).
type ExpenseRow struct {
	ID           uint
	BankID       uint
	CategoryName string
	Name         string
	Amount       decimal.Decimal
	Status       models.ExpenseStatus
	DueDate      time.Time
}

// InboundRow: beklenen para girişi
type InboundRow struct {
	BankID uint
	Amount decimal.Decimal
	Date   time.Time
}

// Snapshot: bir kullanıcının defter satırlarının tek seferde okunmuş hali.
// Hesaplama fonksiyonları sadece bu yapı üzerinden çalışır, veritabanı görmez.
type Snapshot struct {
	Banks         []BankRow
	Unsettled     []ExpenseRow // tek seferlik, status not-paid/pending
	MonthExpenses []ExpenseRow // tek seferlik, due_date >= ay başı (tüm durumlar)
	Inbounds      []InboundRow // bu takvim ayına düşen girişler
}

// MonthBounds: now'un bulunduğu takvim ayının ilk ve son günü (yerel saat, gün başı)
func MonthBounds(now time.Time) (time.Time, time.Time) {
	loc := now.Location()
	firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	lastDay := firstDay.AddDate(0, 1, -1)
	return firstDay, lastDay
}

// SumAmounts: satır tutarlarını toplar. Boş küme her zaman sıfır döner,
// SQL SUM'ın NULL'u burada tek noktada sıfıra indirgenmiş olur.
func SumAmounts(rows []ExpenseRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total
}
