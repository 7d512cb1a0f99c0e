package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bank: Kullanıcının banka hesabı
type Bank struct {
	ID             uint `gorm:"primaryKey"`
	UserID         uint `gorm:"index;not null"`
	User           User
	Name           string          `gorm:"size:100;not null"`
	CurrentBalance decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"` // son manuel sayımdaki gerçek bakiye, giderler düşüldükçe otomatik azalmaz
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
