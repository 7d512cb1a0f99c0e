package finance

import (
	"math"
	"sort"
	"time"

	"butce-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Bekleyen listesinde gösterilecek en fazla kayıt sayısı
const UpcomingLimit = 10

type BankSummary struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	PendingTotal   decimal.Decimal `json:"pending_total"`
	SafeBalance    decimal.Decimal `json:"safe_balance"`
}

type CategorySlice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type Completion struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Percent   int `json:"percent"`
}

type UpcomingBill struct {
	ID        uint                 `json:"id"`
	Name      string               `json:"name"`
	Amount    decimal.Decimal      `json:"amount"`
	DueDate   string               `json:"due_date"`
	DaysUntil int                  `json:"daysUntil"`
	Status    models.ExpenseStatus `json:"status"`
}

type Coverage struct {
	Assets         decimal.Decimal `json:"assets"`
	Inbound        decimal.Decimal `json:"inbound"`
	Expenses       decimal.Decimal `json:"expenses"`
	TotalResources decimal.Decimal `json:"totalResources"`
	IsCovered      bool            `json:"isCovered"`
	Surplus        decimal.Decimal `json:"surplus"`
}

// Stats: dashboard'un olduğu gibi tükettiği sonuç nesnesi
type Stats struct {
	TotalAssets   decimal.Decimal `json:"totalAssets"`
	PendingOut    decimal.Decimal `json:"pendingOut"`
	SafeBalance   decimal.Decimal `json:"safeBalance"`
	BankCount     int             `json:"bankCount"`
	Banks         []BankSummary   `json:"banks"`
	ChartData     []CategorySlice `json:"chartData"`
	Completion    Completion      `json:"completion"`
	UpcomingBills []UpcomingBill  `json:"upcomingBills"`
	Coverage      Coverage        `json:"coverage"`
}

// ZeroStats: oturum yokken veya sorgu hatasında dönen boş sonuç.
// Slice alanları nil değil boş, dashboard hiçbir durumda patlamaz.
func ZeroStats() Stats {
	return Stats{
		TotalAssets:   decimal.Zero,
		PendingOut:    decimal.Zero,
		SafeBalance:   decimal.Zero,
		Banks:         []BankSummary{},
		ChartData:     []CategorySlice{},
		UpcomingBills: []UpcomingBill{},
		Coverage: Coverage{
			Assets:         decimal.Zero,
			Inbound:        decimal.Zero,
			Expenses:       decimal.Zero,
			TotalResources: decimal.Zero,
			IsCovered:      true,
			Surplus:        decimal.Zero,
		},
	}
}

// PendingTotals: banka başına bekleyen (not-paid/pending) gider toplamı.
// Satırı olmayan banka map'te yer almaz; okuyan taraf sıfır varsayar.
func PendingTotals(unsettled []ExpenseRow) map[uint]decimal.Decimal {
	totals := make(map[uint]decimal.Decimal, len(unsettled))
	for _, e := range unsettled {
		totals[e.BankID] = totals[e.BankID].Add(e.Amount)
	}
	return totals
}

// BankSummaries: banka listesi + bekleyen toplam + güvenli bakiye,
// bakiyesi yüksekten düşüğe sıralı. Güvenli bakiye negatif olabilir.
func BankSummaries(banks []BankRow, pendings map[uint]decimal.Decimal) []BankSummary {
	out := make([]BankSummary, 0, len(banks))
	for _, b := range banks {
		pending := pendings[b.ID] // yoksa zero value = sıfır
		out = append(out, BankSummary{
			ID:             b.ID,
			Name:           b.Name,
			CurrentBalance: b.CurrentBalance,
			PendingTotal:   pending,
			SafeBalance:    b.CurrentBalance.Sub(pending),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrentBalance.GreaterThan(out[j].CurrentBalance)
	})
	return out
}

// MonthlyInbound: ay içi beklenen girişlerin toplamı
func MonthlyInbound(inbounds []InboundRow) decimal.Decimal {
	total := decimal.Zero
	for _, in := range inbounds {
		total = total.Add(in.Amount)
	}
	return total
}

// CategoryBreakdown: kategori adına göre gruplanmış tutar toplamları,
// toplamı büyükten küçüğe sıralı. Eşitlikte ad alfabetik (deterministik çıktı).
func CategoryBreakdown(monthExpenses []ExpenseRow) []CategorySlice {
	byName := make(map[string]decimal.Decimal)
	for _, e := range monthExpenses {
		byName[e.CategoryName] = byName[e.CategoryName].Add(e.Amount)
	}

	out := make([]CategorySlice, 0, len(byName))
	for name, total := range byName {
		out = append(out, CategorySlice{Name: name, Value: total})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Value.Equal(out[j].Value) {
			return out[i].Value.GreaterThan(out[j].Value)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// CompletionOf: ay penceresindeki giderlerin tamamlanma oranı.
// total=0 iken percent=0 (sıfıra bölme yok).
func CompletionOf(monthExpenses []ExpenseRow) Completion {
	total := len(monthExpenses)
	completed := 0
	for _, e := range monthExpenses {
		if e.Status == models.StatusCompleted {
			completed++
		}
	}

	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return Completion{Total: total, Completed: completed, Percent: percent}
}

// DaysUntil: vadeye kalan tam gün, yukarı yuvarlanır.
// Vade bugünse 0, dün idiyse -1, on gün sonraysa 10.
func DaysUntil(due time.Time, now time.Time) int {
	diff := due.Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// Upcoming: bekleyen giderler vade tarihine göre artan sıralı, en fazla limit kayıt,
// her biri kalan gün sayısı ile. Geçmiş vade negatif döner, tüketen taraf "late" sayar.
func Upcoming(unsettled []ExpenseRow, now time.Time, limit int) []UpcomingBill {
	sorted := make([]ExpenseRow, len(unsettled))
	copy(sorted, unsettled)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DueDate.Before(sorted[j].DueDate)
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	out := make([]UpcomingBill, 0, len(sorted))
	for _, e := range sorted {
		out = append(out, UpcomingBill{
			ID:        e.ID,
			Name:      e.Name,
			Amount:    e.Amount,
			DueDate:   e.DueDate.Format("2006-01-02"),
			DaysUntil: DaysUntil(e.DueDate, now),
			Status:    e.Status,
		})
	}
	return out
}

// CoverageOf: toplam kaynak (varlık + ay içi giriş) bekleyen çıkışı karşılıyor mu.
// Surplus negatifse açık var demektir, kırpılmaz.
func CoverageOf(assets, inbound, pendingOut decimal.Decimal) Coverage {
	totalResources := assets.Add(inbound)
	return Coverage{
		Assets:         assets,
		Inbound:        inbound,
		Expenses:       pendingOut,
		TotalResources: totalResources,
		IsCovered:      totalResources.GreaterThanOrEqual(pendingOut),
		Surplus:        totalResources.Sub(pendingOut),
	}
}

// BuildStats: snapshot'tan dashboard sonucunu üretir
func BuildStats(snap Snapshot, now time.Time) Stats {
	pendings := PendingTotals(snap.Unsettled)
	banks := BankSummaries(snap.Banks, pendings)

	totalAssets := decimal.Zero
	for _, b := range snap.Banks {
		totalAssets = totalAssets.Add(b.CurrentBalance)
	}
	pendingOut := SumAmounts(snap.Unsettled)
	monthlyInbound := MonthlyInbound(snap.Inbounds)

	return Stats{
		TotalAssets:   totalAssets,
		PendingOut:    pendingOut,
		SafeBalance:   totalAssets.Sub(pendingOut),
		BankCount:     len(banks),
		Banks:         banks,
		ChartData:     CategoryBreakdown(snap.MonthExpenses),
		Completion:    CompletionOf(snap.MonthExpenses),
		UpcomingBills: Upcoming(snap.Unsettled, now, UpcomingLimit),
		Coverage:      CoverageOf(totalAssets, monthlyInbound, pendingOut),
	}
}
