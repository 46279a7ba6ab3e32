package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/salespoint/internal/models"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Generator computes sales aggregates from transactional data. Only
// transactions with a Completed status are counted; cancelled and refunded
// transactions are excluded from every figure.
type Generator struct {
	db *gorm.DB
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{db: db}
}

// Stats is the structured result of one report run, shaped for the upsert
// path in Store.Save.
type Stats struct {
	ReportType        models.ReportType `json:"report_type"`
	PeriodStart       string            `json:"period_start"`
	PeriodEnd         string            `json:"period_end"`
	TotalSales        float64           `json:"total_sales"`
	TotalTransactions int               `json:"total_transactions"`
	Data              Data              `json:"data"`
}

type Data struct {
	Metrics        Metrics        `json:"metrics"`
	DailyBreakdown []DayBreakdown `json:"daily_breakdown,omitempty"`
}

type Metrics struct {
	ItemsSold     int     `json:"items_sold"`
	Profit        float64 `json:"profit"`
	MarginPercent float64 `json:"margin_percent"`
}

type DayBreakdown struct {
	Day          string  `json:"day"`
	Transactions int     `json:"transactions"`
	Revenue      float64 `json:"revenue"`
	Profit       float64 `json:"profit"`
}

// ProfitMargin returns profit as a percentage of revenue, rounded to two
// decimals. Zero when there is no revenue.
func ProfitMargin(revenue, profit float64) float64 {
	if revenue <= 0 {
		return 0
	}
	return math.Round(profit/revenue*100*100) / 100
}

type salesRow struct {
	TotalTransactions int
	TotalRevenue      float64
}

type itemsRow struct {
	ItemsSold   int
	TotalProfit float64
}

// DailyStats aggregates completed sales for a single calendar date.
func (g *Generator) DailyStats(ctx context.Context, date time.Time) (*Stats, error) {
	day := date.Format(dateLayout)

	sales, items, err := g.rangeStats(ctx, day, day)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate daily stats for %s: %v", day, err)
	}

	return &Stats{
		ReportType:        models.ReportTypeDaily,
		PeriodStart:       day,
		PeriodEnd:         day,
		TotalSales:        sales.TotalRevenue,
		TotalTransactions: sales.TotalTransactions,
		Data: Data{
			Metrics: Metrics{
				ItemsSold:     items.ItemsSold,
				Profit:        items.TotalProfit,
				MarginPercent: ProfitMargin(sales.TotalRevenue, items.TotalProfit),
			},
		},
	}, nil
}

// WeeklyStats aggregates the trailing 7-day window ending at the given date.
func (g *Generator) WeeklyStats(ctx context.Context, end time.Time) (*Stats, error) {
	endDay := end.Format(dateLayout)
	startDay := end.AddDate(0, 0, -6).Format(dateLayout)

	sales, items, err := g.rangeStats(ctx, startDay, endDay)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate weekly stats for %s..%s: %v", startDay, endDay, err)
	}

	return &Stats{
		ReportType:        models.ReportTypeWeekly,
		PeriodStart:       startDay,
		PeriodEnd:         endDay,
		TotalSales:        sales.TotalRevenue,
		TotalTransactions: sales.TotalTransactions,
		Data: Data{
			Metrics: Metrics{
				ItemsSold:     items.ItemsSold,
				Profit:        items.TotalProfit,
				MarginPercent: ProfitMargin(sales.TotalRevenue, items.TotalProfit),
			},
		},
	}, nil
}

// MonthlyStats aggregates a full calendar month and includes a per-day
// breakdown. The month is taken from the given reference time.
func (g *Generator) MonthlyStats(ctx context.Context, month time.Time) (*Stats, error) {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	last := first.AddDate(0, 1, -1)
	monthKey := first.Format("2006-01")

	type dayRow struct {
		Day          string
		Transactions int
		Revenue      float64
	}
	var salesByDay []dayRow
	err := g.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("DATE(transaction_date) AS day, COUNT(*) AS transactions, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("status = ?", models.TransactionCompleted).
		Where("strftime('%Y-%m', transaction_date) = ?", monthKey).
		Group("DATE(transaction_date)").
		Order("day").
		Scan(&salesByDay).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly sales for %s: %v", monthKey, err)
	}

	type profitRow struct {
		Day    string
		Profit float64
	}
	var profitByDay []profitRow
	err = g.db.WithContext(ctx).Table("transaction_items ti").
		Joins("JOIN transactions t ON t.id = ti.transaction_id").
		Joins("LEFT JOIN products p ON p.id = ti.product_id").
		Select("DATE(t.transaction_date) AS day, COALESCE(SUM(ti.quantity * (ti.unit_price - COALESCE(p.cost_price, 0))), 0) AS profit").
		Where("t.status = ?", models.TransactionCompleted).
		Where("strftime('%Y-%m', t.transaction_date) = ?", monthKey).
		Where("ti.deleted_at IS NULL").
		Group("DATE(t.transaction_date)").
		Scan(&profitByDay).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly profit for %s: %v", monthKey, err)
	}

	profits := make(map[string]float64, len(profitByDay))
	for _, row := range profitByDay {
		profits[row.Day] = row.Profit
	}

	var (
		breakdown         []DayBreakdown
		totalRevenue      float64
		totalProfit       float64
		totalTransactions int
	)
	for _, row := range salesByDay {
		profit := profits[row.Day]
		breakdown = append(breakdown, DayBreakdown{
			Day:          row.Day,
			Transactions: row.Transactions,
			Revenue:      row.Revenue,
			Profit:       profit,
		})
		totalRevenue += row.Revenue
		totalProfit += profit
		totalTransactions += row.Transactions
	}

	return &Stats{
		ReportType:        models.ReportTypeMonthly,
		PeriodStart:       first.Format(dateLayout),
		PeriodEnd:         last.Format(dateLayout),
		TotalSales:        totalRevenue,
		TotalTransactions: totalTransactions,
		Data: Data{
			Metrics: Metrics{
				Profit:        totalProfit,
				MarginPercent: ProfitMargin(totalRevenue, totalProfit),
			},
			DailyBreakdown: breakdown,
		},
	}, nil
}

// rangeStats runs the two aggregate queries shared by the daily and weekly
// paths: transaction-level totals, then item-level volume and profit.
func (g *Generator) rangeStats(ctx context.Context, startDay, endDay string) (salesRow, itemsRow, error) {
	var sales salesRow
	err := g.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("COUNT(*) AS total_transactions, COALESCE(SUM(total_amount), 0) AS total_revenue").
		Where("status = ?", models.TransactionCompleted).
		Where("DATE(transaction_date) BETWEEN ? AND ?", startDay, endDay).
		Scan(&sales).Error
	if err != nil {
		return salesRow{}, itemsRow{}, err
	}

	var items itemsRow
	err = g.db.WithContext(ctx).Table("transaction_items ti").
		Joins("JOIN transactions t ON t.id = ti.transaction_id").
		Joins("LEFT JOIN products p ON p.id = ti.product_id").
		Select("COALESCE(SUM(ti.quantity), 0) AS items_sold, COALESCE(SUM(ti.quantity * (ti.unit_price - COALESCE(p.cost_price, 0))), 0) AS total_profit").
		Where("t.status = ?", models.TransactionCompleted).
		Where("DATE(t.transaction_date) BETWEEN ? AND ?", startDay, endDay).
		Where("ti.deleted_at IS NULL").
		Scan(&items).Error
	if err != nil {
		return salesRow{}, itemsRow{}, err
	}

	return sales, items, nil
}
