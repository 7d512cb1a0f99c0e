package finance

import (
	"testing"
	"time"

	"butce-backend/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.Local)
}

func TestPendingTotals_BankWithoutExpensesIsZero(t *testing.T) {
	unsettled := []ExpenseRow{
		{BankID: 1, Amount: d("150.50"), Status: models.StatusNotPaid},
		{BankID: 1, Amount: d("10.00"), Status: models.StatusPending},
	}

	totals := PendingTotals(unsettled)

	assert.True(t, totals[1].Equal(d("160.50")))
	// kaydı olmayan banka map'te yok, zero value sıfır döner
	assert.True(t, totals[2].Equal(decimal.Zero))
}

func TestBankSummaries_SafeBalance(t *testing.T) {
	banks := []BankRow{
		{ID: 1, Name: "Ziraat", CurrentBalance: d("2000.00")},
		{ID: 2, Name: "Garanti", CurrentBalance: d("100.00")},
	}
	pendings := map[uint]decimal.Decimal{
		1: d("150.50"),
		2: d("250.00"), // bekleyen bakiyeden büyük
	}

	out := BankSummaries(banks, pendings)

	require.Len(t, out, 2)
	// bakiye yüksekten düşüğe sıralı
	assert.Equal(t, uint(1), out[0].ID)
	assert.True(t, out[0].SafeBalance.Equal(d("1849.50")))
	// negatif sonuç kırpılmaz
	assert.True(t, out[1].SafeBalance.Equal(d("-150.00")))
}

func TestCompletionOf(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		completed   int
		wantPercent int
	}{
		{"boş küme sıfır döner", 0, 0, 0},
		{"hepsi tamam", 4, 4, 100},
		{"üçte bir yuvarlanır", 3, 1, 33},
		{"üçte iki yuvarlanır", 3, 2, 67},
		{"yarıya yukarı yuvarlama", 8, 1, 13}, // 12.5 -> 13
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]ExpenseRow, 0, tt.total)
			for i := 0; i < tt.total; i++ {
				status := models.StatusNotPaid
				if i < tt.completed {
					status = models.StatusCompleted
				}
				rows = append(rows, ExpenseRow{Amount: d("1"), Status: status})
			}

			got := CompletionOf(rows)

			assert.Equal(t, tt.total, got.Total)
			assert.Equal(t, tt.completed, got.Completed)
			assert.Equal(t, tt.wantPercent, got.Percent)
		})
	}
}

func TestDaysUntil(t *testing.T) {
	// gün ortasında bakılıyor, vade tarihleri gün başı
	now := time.Date(2025, 12, 9, 14, 30, 0, 0, time.Local)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"vade bugün", date(2025, 12, 9), 0},
		{"vade dün geçmiş", date(2025, 12, 8), -1},
		{"on gün sonra", date(2025, 12, 19), 10},
		{"yarın", date(2025, 12, 10), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntil(tt.due, now))
		})
	}
}

func TestCategoryBreakdown(t *testing.T) {
	rows := []ExpenseRow{
		{CategoryName: "Food", Amount: d("20")},
		{CategoryName: "Food", Amount: d("5")},
		{CategoryName: "Rent", Amount: d("100")},
	}

	got := CategoryBreakdown(rows)

	require.Len(t, got, 2)
	assert.Equal(t, "Rent", got[0].Name)
	assert.True(t, got[0].Value.Equal(d("100")))
	assert.Equal(t, "Food", got[1].Name)
	assert.True(t, got[1].Value.Equal(d("25")))
}

func TestCategoryBreakdown_Empty(t *testing.T) {
	got := CategoryBreakdown(nil)
	assert.Empty(t, got)
}

func TestCoverageOf(t *testing.T) {
	got := CoverageOf(d("1000"), d("500"), d("1200"))

	assert.True(t, got.TotalResources.Equal(d("1500")))
	assert.True(t, got.IsCovered)
	assert.True(t, got.Surplus.Equal(d("300")))
}

func TestCoverageOf_Deficit(t *testing.T) {
	got := CoverageOf(d("100"), d("0"), d("250"))

	assert.False(t, got.IsCovered)
	assert.True(t, got.Surplus.Equal(d("-150")))
}

func TestUpcoming_OrderAndLimit(t *testing.T) {
	now := time.Date(2025, 12, 9, 10, 0, 0, 0, time.Local)

	rows := make([]ExpenseRow, 0, 12)
	for i := 12; i >= 1; i-- {
		rows = append(rows, ExpenseRow{
			ID:      uint(i),
			Name:    "Fatura",
			Amount:  d("10"),
			Status:  models.StatusNotPaid,
			DueDate: date(2025, 12, i),
		})
	}

	got := Upcoming(rows, now, UpcomingLimit)

	require.Len(t, got, 10)
	// vade artan sıralı
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(10), got[9].ID)
	// geçmiş vade negatif gün döner
	assert.Equal(t, -8, got[0].DaysUntil)
}

// Spec senaryosu: 2000.00 bakiyeli bankaya karşı 150.50 not-paid ve 49.50 completed
func TestBuildStats_Scenario(t *testing.T) {
	now := time.Date(2025, 12, 9, 12, 0, 0, 0, time.Local)
	due := date(2025, 12, 15)

	snap := Snapshot{
		Banks: []BankRow{
			{ID: 1, Name: "Ziraat", CurrentBalance: d("2000.00")},
		},
		// completed satır bekleyenlere dahil edilmez, snapshot'a hiç girmez
		Unsettled: []ExpenseRow{
			{ID: 1, BankID: 1, CategoryName: "Fatura", Name: "Elektrik", Amount: d("150.50"), Status: models.StatusNotPaid, DueDate: due},
		},
		MonthExpenses: []ExpenseRow{
			{ID: 1, BankID: 1, CategoryName: "Fatura", Name: "Elektrik", Amount: d("150.50"), Status: models.StatusNotPaid, DueDate: due},
			{ID: 2, BankID: 1, CategoryName: "Market", Name: "Alışveriş", Amount: d("49.50"), Status: models.StatusCompleted, DueDate: due},
		},
		Inbounds: []InboundRow{
			{BankID: 1, Amount: d("500.00"), Date: date(2025, 12, 20)},
		},
	}

	got := BuildStats(snap, now)

	assert.True(t, got.TotalAssets.Equal(d("2000.00")))
	assert.True(t, got.PendingOut.Equal(d("150.50")))
	assert.True(t, got.SafeBalance.Equal(d("1849.50")))
	assert.Equal(t, 1, got.BankCount)

	require.Len(t, got.Banks, 1)
	assert.True(t, got.Banks[0].PendingTotal.Equal(d("150.50")))
	assert.True(t, got.Banks[0].SafeBalance.Equal(d("1849.50")))

	assert.Equal(t, 2, got.Completion.Total)
	assert.Equal(t, 1, got.Completion.Completed)
	assert.Equal(t, 50, got.Completion.Percent)

	require.Len(t, got.UpcomingBills, 1)
	assert.Equal(t, 6, got.UpcomingBills[0].DaysUntil)

	assert.True(t, got.Coverage.TotalResources.Equal(d("2500.00")))
	assert.True(t, got.Coverage.IsCovered)
	assert.True(t, got.Coverage.Surplus.Equal(d("2349.50")))
}

// Küsuratlı tutarlar float'a uğramadan toplanır
func TestSumAmounts_DecimalPrecision(t *testing.T) {
	rows := make([]ExpenseRow, 0, 10)
	for i := 0; i < 10; i++ {
		rows = append(rows, ExpenseRow{Amount: d("0.10")})
	}

	assert.True(t, SumAmounts(rows).Equal(d("1.00")))
	assert.True(t, SumAmounts(nil).Equal(decimal.Zero))
}

func TestZeroStats(t *testing.T) {
	got := ZeroStats()

	assert.NotNil(t, got.Banks)
	assert.NotNil(t, got.ChartData)
	assert.NotNil(t, got.UpcomingBills)
	assert.True(t, got.SafeBalance.Equal(decimal.Zero))
	assert.Equal(t, 0, got.Completion.Percent)
}

func TestMonthBounds(t *testing.T) {
	first, last := MonthBounds(time.Date(2025, 12, 9, 18, 45, 0, 0, time.Local))

	assert.Equal(t, date(2025, 12, 1), first)
	assert.Equal(t, date(2025, 12, 31), last)

	// Şubat
	first, last = MonthBounds(time.Date(2024, 2, 10, 0, 0, 0, 0, time.Local))
	assert.Equal(t, date(2024, 2, 1), first)
	assert.Equal(t, date(2024, 2, 29), last)
}
