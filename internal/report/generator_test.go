package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/salespoint/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{},
		&models.Transaction{},
		&models.TransactionItem{},
		&models.Report{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// seedSale inserts one completed (or otherwise) transaction of a single
// product line and returns it.
func seedSale(t *testing.T, db *gorm.DB, product *models.Product, qty int, at time.Time, status models.TransactionStatus) {
	t.Helper()
	total := product.UnitPrice * float64(qty)
	txn := models.Transaction{
		ReceiptNumber:   at.Format("20060102150405.000000000"),
		UserID:          1,
		TransactionDate: at,
		PaymentMethod:   models.PaymentCash,
		TotalAmount:     total,
		AmountPaid:      total,
		Status:          status,
	}
	if err := db.Create(&txn).Error; err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	item := models.TransactionItem{
		TransactionID: txn.ID,
		ProductID:     product.ID,
		Quantity:      qty,
		UnitPrice:     product.UnitPrice,
		TotalPrice:    total,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed transaction item: %v", err)
	}
}

func seedProduct(t *testing.T, db *gorm.DB, name string, cost, price float64) *models.Product {
	t.Helper()
	product := models.Product{
		Name:      name,
		Barcode:   name,
		CostPrice: cost,
		UnitPrice: price,
		Quantity:  1000,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return &product
}

func TestDailyStats(t *testing.T) {
	db := testDB(t)
	g := NewGenerator(db)
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// revenue 1000, cost 750, profit 250 -> margin 25.00
	product := seedProduct(t, db, "coffee-beans", 75, 100)
	seedSale(t, db, product, 4, day.Add(9*time.Hour), models.TransactionCompleted)
	seedSale(t, db, product, 6, day.Add(15*time.Hour), models.TransactionCompleted)

	// excluded: wrong day, wrong status
	seedSale(t, db, product, 3, day.AddDate(0, 0, 1).Add(time.Hour), models.TransactionCompleted)
	seedSale(t, db, product, 5, day.Add(12*time.Hour), models.TransactionRefunded)

	stats, err := g.DailyStats(context.Background(), day)
	if err != nil {
		t.Fatalf("DailyStats: %v", err)
	}

	if stats.ReportType != models.ReportTypeDaily {
		t.Errorf("report_type = %s, want Daily", stats.ReportType)
	}
	if stats.PeriodStart != "2024-03-01" || stats.PeriodEnd != "2024-03-01" {
		t.Errorf("period = %s..%s, want 2024-03-01..2024-03-01", stats.PeriodStart, stats.PeriodEnd)
	}
	if stats.TotalTransactions != 2 {
		t.Errorf("total_transactions = %d, want 2", stats.TotalTransactions)
	}
	if stats.TotalSales != 1000 {
		t.Errorf("total_sales = %v, want 1000", stats.TotalSales)
	}
	if stats.Data.Metrics.ItemsSold != 10 {
		t.Errorf("items_sold = %d, want 10", stats.Data.Metrics.ItemsSold)
	}
	if stats.Data.Metrics.Profit != 250 {
		t.Errorf("profit = %v, want 250", stats.Data.Metrics.Profit)
	}
	if stats.Data.Metrics.MarginPercent != 25.00 {
		t.Errorf("margin_percent = %v, want 25.00", stats.Data.Metrics.MarginPercent)
	}
}

func TestDailyStatsEmptyPeriod(t *testing.T) {
	db := testDB(t)
	g := NewGenerator(db)

	stats, err := g.DailyStats(context.Background(), time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DailyStats on empty period: %v", err)
	}

	if stats.TotalSales != 0 || stats.TotalTransactions != 0 {
		t.Errorf("empty period totals = %v/%d, want 0/0", stats.TotalSales, stats.TotalTransactions)
	}
	if stats.Data.Metrics.MarginPercent != 0 {
		t.Errorf("empty period margin = %v, want 0", stats.Data.Metrics.MarginPercent)
	}
}

func TestWeeklyStatsWindow(t *testing.T) {
	db := testDB(t)
	g := NewGenerator(db)
	end := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	product := seedProduct(t, db, "tea", 10, 20)

	// first day of the window (end-6d) and the end day both count
	seedSale(t, db, product, 1, end.AddDate(0, 0, -6).Add(10*time.Hour), models.TransactionCompleted)
	seedSale(t, db, product, 2, end.Add(10*time.Hour), models.TransactionCompleted)
	// the day before the window does not
	seedSale(t, db, product, 4, end.AddDate(0, 0, -7).Add(10*time.Hour), models.TransactionCompleted)

	stats, err := g.WeeklyStats(context.Background(), end)
	if err != nil {
		t.Fatalf("WeeklyStats: %v", err)
	}

	if stats.PeriodStart != "2024-03-04" || stats.PeriodEnd != "2024-03-10" {
		t.Errorf("period = %s..%s, want 2024-03-04..2024-03-10", stats.PeriodStart, stats.PeriodEnd)
	}
	if stats.TotalTransactions != 2 {
		t.Errorf("total_transactions = %d, want 2", stats.TotalTransactions)
	}
	if stats.Data.Metrics.ItemsSold != 3 {
		t.Errorf("items_sold = %d, want 3", stats.Data.Metrics.ItemsSold)
	}
}

func TestMonthlyStatsBreakdownSumsToTotals(t *testing.T) {
	db := testDB(t)
	g := NewGenerator(db)
	product := seedProduct(t, db, "sugar", 5, 8)

	days := []int{1, 1, 5, 12, 28}
	for i, d := range days {
		at := time.Date(2024, 2, d, 10+i, 0, 0, 0, time.UTC)
		seedSale(t, db, product, 2, at, models.TransactionCompleted)
	}
	// outside the month
	seedSale(t, db, product, 9, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), models.TransactionCompleted)

	stats, err := g.MonthlyStats(context.Background(), time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("MonthlyStats: %v", err)
	}

	if stats.PeriodStart != "2024-02-01" || stats.PeriodEnd != "2024-02-29" {
		t.Errorf("period = %s..%s, want 2024-02-01..2024-02-29", stats.PeriodStart, stats.PeriodEnd)
	}
	if len(stats.Data.DailyBreakdown) != 4 {
		t.Fatalf("daily_breakdown has %d rows, want 4", len(stats.Data.DailyBreakdown))
	}

	var sumRevenue float64
	var sumTransactions int
	for _, row := range stats.Data.DailyBreakdown {
		sumRevenue += row.Revenue
		sumTransactions += row.Transactions
	}
	if sumRevenue != stats.TotalSales {
		t.Errorf("breakdown revenue sum %v != total_sales %v", sumRevenue, stats.TotalSales)
	}
	if sumTransactions != stats.TotalTransactions {
		t.Errorf("breakdown transaction sum %d != total_transactions %d", sumTransactions, stats.TotalTransactions)
	}
	if stats.TotalTransactions != len(days) {
		t.Errorf("total_transactions = %d, want %d", stats.TotalTransactions, len(days))
	}
}

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		revenue float64
		profit  float64
		want    float64
	}{
		{1000, 250, 25.00},
		{0, 100, 0},
		{-5, 100, 0},
		{3, 1, 33.33},
	}
	for _, tt := range tests {
		if got := ProfitMargin(tt.revenue, tt.profit); got != tt.want {
			t.Errorf("ProfitMargin(%v, %v) = %v, want %v", tt.revenue, tt.profit, got, tt.want)
		}
	}
}
