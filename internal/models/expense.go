package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseStatus string

const (
	StatusNotPaid   ExpenseStatus = "not-paid"  // fatura elde, para ayrılmadı
	StatusPending   ExpenseStatus = "pending"   // para ayrıldı, henüz ödenmedi
	StatusCompleted ExpenseStatus = "completed" // ödendi
	StatusTemplate  ExpenseStatus = "template"  // aylık tekrarlayan şablon
)

// Valid: durum kapalı kümede mi?
func (s ExpenseStatus) Valid() bool {
	switch s {
	case StatusNotPaid, StatusPending, StatusCompleted, StatusTemplate:
		return true
	}
	return false
}

// Unsettled: henüz kapanmamış (not-paid / pending) durumlar.
// İkisi her sorguda birlikte geçer; ayrımları sadece görsel.
func (s ExpenseStatus) Unsettled() bool {
	return s == StatusNotPaid || s == StatusPending
}

type ExpenseCategory struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index;not null"`
	User      User
	Name      string `gorm:"size:100;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expense: tek seferlik gider (due_date + status) veya
// tekrarlayan şablon (is_recurring=true, due_day, status=template).
// Kategori silinirse referans yetim kalabilir, LEFT JOIN ile tolere edilir.
type Expense struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"index;not null"`
	User        User
	BankID      uint `gorm:"index;not null"`
	Bank        Bank
	CategoryID  uint            `gorm:"index"`
	Name        string          `gorm:"size:255;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Status      ExpenseStatus   `gorm:"size:20;not null"`
	IsRecurring bool            `gorm:"index;not null;default:false"`
	DueDate     *time.Time      `gorm:"index"` // tek seferlik için
	DueDay      *int            // tekrarlayan için (1-31)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Inbound: Hesaba gelmesi beklenen para. Bakiyeye yansımaz,
// gerçekleşince kullanıcı tarafından silinir.
type Inbound struct {
	ID        uint `gorm:"primaryKey"`
	BankID    uint `gorm:"index;not null"`
	Bank      Bank
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Date      time.Time       `gorm:"index;not null"`
	Note      string          `gorm:"size:20"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
