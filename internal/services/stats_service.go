package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/quickcart/internal/apperrors"
	"github.com/example/quickcart/internal/models"
)

// Period selects the bucket size of a report series.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// DriverCommission is the share of an order's value paid to the driver.
var DriverCommission = decimal.NewFromFloat(0.2)

// ParsePeriod maps a query value onto a Period, defaulting to monthly.
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodDaily, PeriodWeekly, PeriodYearly:
		return Period(s)
	}
	return PeriodMonthly
}

// Bucket is one point of a report series.
type Bucket struct {
	Label   string          `json:"label"`
	Start   time.Time       `json:"start"`
	Revenue decimal.Decimal `json:"revenue"`
	Orders  int64           `json:"orders"`
}

type RevenueSummary struct {
	Total     decimal.Decimal `json:"total"`
	LastWeek  []Bucket        `json:"last_week"`
	Delivered int64           `json:"delivered"`
}

type DriverStats struct {
	Completed      int64           `json:"completed"`
	CompletedToday int64           `json:"completed_today"`
	TotalEarnings  decimal.Decimal `json:"total_earnings"`
	TodayEarnings  decimal.Decimal `json:"today_earnings"`
	Active         int64           `json:"active"`
}

type Dashboard struct {
	TotalOrders    int64                        `json:"total_orders"`
	OrdersByStatus map[models.OrderStatus]int64 `json:"orders_by_status"`
	Customers      int64                        `json:"customers"`
	Products       int64                        `json:"products"`
	Warehouses     int64                        `json:"warehouses"`
	Revenue        decimal.Decimal              `json:"revenue"`
	LowStock       int64                        `json:"low_stock"`
}

// StatsService builds admin and driver reports. Bucketing is done in Go so
// the queries stay portable across SQL dialects.
type StatsService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db, now: time.Now}
}

type orderPoint struct {
	CreatedAt  time.Time
	TotalPrice decimal.Decimal
}

// Revenue returns delivered revenue overall and for the last seven days.
func (s *StatsService) Revenue(ctx context.Context) (*RevenueSummary, error) {
	var totals []decimal.Decimal
	if err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("status = ?", models.StatusDelivered).
		Pluck("total_price", &totals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load revenue")
	}

	summary := &RevenueSummary{Total: decimal.Zero, Delivered: int64(len(totals))}
	for _, t := range totals {
		summary.Total = summary.Total.Add(t)
	}

	week, err := s.RevenueSeries(ctx, PeriodDaily)
	if err != nil {
		return nil, err
	}
	summary.LastWeek = week
	return summary, nil
}

// RevenueSeries sums delivered order value per bucket.
func (s *StatsService) RevenueSeries(ctx context.Context, period Period) ([]Bucket, error) {
	return s.series(ctx, period, true)
}

// CountSeries counts orders of any status per bucket.
func (s *StatsService) CountSeries(ctx context.Context, period Period) ([]Bucket, error) {
	return s.series(ctx, period, false)
}

func (s *StatsService) series(ctx context.Context, period Period, deliveredOnly bool) ([]Bucket, error) {
	buckets := bucketsFor(period, s.now())

	q := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("created_at", "total_price").
		Where("created_at >= ?", buckets[0].Start)
	if deliveredOnly {
		q = q.Where("status = ?", models.StatusDelivered)
	}

	var points []orderPoint
	if err := q.Find(&points).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load order series")
	}

	for _, p := range points {
		i := bucketIndex(buckets, p.CreatedAt)
		if i < 0 {
			continue
		}
		buckets[i].Orders++
		buckets[i].Revenue = buckets[i].Revenue.Add(p.TotalPrice)
	}
	return buckets, nil
}

// bucketsFor returns the empty series for period ending at now, oldest first.
func bucketsFor(period Period, now time.Time) []Bucket {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	var (
		n      int
		start  time.Time
		step   func(time.Time) time.Time
		layout string
	)
	switch period {
	case PeriodDaily:
		n, layout = 7, "2006-01-02"
		start = today.AddDate(0, 0, -6)
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	case PeriodWeekly:
		n, layout = 12, "2006-01-02"
		monday := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
		start = monday.AddDate(0, 0, -7*11)
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	case PeriodYearly:
		n, layout = 5, "2006"
		start = time.Date(now.Year()-4, time.January, 1, 0, 0, 0, 0, loc)
		step = func(t time.Time) time.Time { return t.AddDate(1, 0, 0) }
	default:
		n, layout = 12, "2006-01"
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -11, 0)
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	}

	buckets := make([]Bucket, n)
	for i := range buckets {
		buckets[i] = Bucket{Label: start.Format(layout), Start: start, Revenue: decimal.Zero}
		start = step(start)
	}
	return buckets
}

func bucketIndex(buckets []Bucket, t time.Time) int {
	if len(buckets) == 0 || t.Before(buckets[0].Start) {
		return -1
	}
	t = t.In(buckets[0].Start.Location())
	for i := len(buckets) - 1; i >= 0; i-- {
		if !t.Before(buckets[i].Start) {
			return i
		}
	}
	return -1
}

// DriverStats summarises a driver's completed deliveries and earnings.
func (s *StatsService) DriverStats(ctx context.Context, driverID uuid.UUID) (*DriverStats, error) {
	type row struct {
		TotalPrice  decimal.Decimal
		DeliveredAt *time.Time
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Table("deliveries").
		Select("orders.total_price", "deliveries.delivered_at").
		Joins("JOIN orders ON orders.id = deliveries.order_id").
		Where("deliveries.driver_id = ? AND orders.status = ?", driverID, models.StatusDelivered).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load driver deliveries")
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := &DriverStats{TotalEarnings: decimal.Zero, TodayEarnings: decimal.Zero}
	for _, r := range rows {
		earning := r.TotalPrice.Mul(DriverCommission).Round(2)
		stats.Completed++
		stats.TotalEarnings = stats.TotalEarnings.Add(earning)
		if r.DeliveredAt != nil && !r.DeliveredAt.Before(today) {
			stats.CompletedToday++
			stats.TodayEarnings = stats.TodayEarnings.Add(earning)
		}
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Delivery{}).
		Where("driver_id = ? AND status = ?", driverID, models.DeliveryOutForDelivery).
		Count(&stats.Active).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "count active deliveries")
	}
	return stats, nil
}

// Dashboard returns headline numbers for the admin home page.
func (s *StatsService) Dashboard(ctx context.Context, lowStockThreshold int) (*Dashboard, error) {
	db := s.db.WithContext(ctx)
	d := &Dashboard{OrdersByStatus: make(map[models.OrderStatus]int64)}

	type statusCount struct {
		Status models.OrderStatus
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "count orders")
	}
	for _, c := range counts {
		d.OrdersByStatus[c.Status] = c.Count
		d.TotalOrders += c.Count
	}

	if err := db.Model(&models.User{}).Where("role = ?", models.RoleCustomer).Count(&d.Customers).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "count customers")
	}
	if err := db.Model(&models.Product{}).Count(&d.Products).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "count products")
	}
	if err := db.Model(&models.Warehouse{}).Count(&d.Warehouses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "count warehouses")
	}
	if err := db.Model(&models.StockItem{}).Where("quantity <= ?", lowStockThreshold).Count(&d.LowStock).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "count low stock")
	}

	revenue, err := s.Revenue(ctx)
	if err != nil {
		return nil, err
	}
	d.Revenue = revenue.Total
	return d, nil
}
