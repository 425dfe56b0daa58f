package application

import (
	"context"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pinecove/cabin-console/internal/domain"
	bookingDomain "github.com/pinecove/cabin-console/internal/domain/booking"
	cabinDomain "github.com/pinecove/cabin-console/internal/domain/cabin"
)

// periodPattern matches a dashboard period like "7d", "24h", "4w", "3m", "1y".
var periodPattern = regexp.MustCompile(`^(\d+)([hdwmy])$`)

// ParsePeriod converts a period string into a duration. Months count as 30
// days and years as 365.
func ParsePeriod(period string) (time.Duration, error) {
	match := periodPattern.FindStringSubmatch(period)
	if match == nil {
		return 0, domain.NewValidationError("period must look like 7d, 24h, 4w, 3m or 1y")
	}

	n, err := strconv.Atoi(match[1])
	if err != nil || n <= 0 {
		return 0, domain.NewValidationError("period must be a positive amount of time")
	}

	var unit time.Duration
	switch match[2] {
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	case "w":
		unit = 7 * 24 * time.Hour
	case "m":
		unit = 30 * 24 * time.Hour
	case "y":
		unit = 365 * 24 * time.Hour
	}

	return time.Duration(n) * unit, nil
}

// DailySalesDTO is one day's sales in the dashboard chart.
type DailySalesDTO struct {
	Date             time.Time `json:"date"`
	TotalSalesCents  int64     `json:"total_sales_cents"`
	ExtrasSalesCents int64     `json:"extras_sales_cents"`
}

// DashboardStatsDTO is the aggregated dashboard for one period, with trends
// against the immediately preceding period of the same length.
type DashboardStatsDTO struct {
	Period           string           `json:"period"`
	NewBookings      int              `json:"new_bookings"`
	TotalSalesCents  int64            `json:"total_sales_cents"`
	CheckIns         int              `json:"check_ins"`
	OccupancyRate    float64          `json:"occupancy_rate"`
	NewBookingsTrend float64          `json:"new_bookings_trend"`
	SalesTrend       float64          `json:"sales_trend"`
	CheckInsTrend    float64          `json:"check_ins_trend"`
	OccupancyTrend   float64          `json:"occupancy_trend"`
	SalesChart       []DailySalesDTO  `json:"sales_chart"`
	StatusCounts     map[string]int64 `json:"status_counts"`
}

// StatsService computes the dashboard aggregates.
type StatsService struct {
	bookings bookingDomain.BookingRepository
	cabins   cabinDomain.Repository
	logger   *zap.Logger
	now      func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(bookings bookingDomain.BookingRepository, cabins cabinDomain.Repository, logger *zap.Logger) *StatsService {
	return &StatsService{
		bookings: bookings,
		cabins:   cabins,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// periodStats are the raw aggregates of one window.
type periodStats struct {
	newBookings   int
	salesCents    int64
	checkIns      int
	occupancyRate float64
}

// GetDashboardStats aggregates bookings created in the period ending now and
// compares them against the preceding period of the same length.
func (s *StatsService) GetDashboardStats(ctx context.Context, period string) (*DashboardStatsDTO, error) {
	duration, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	now := s.now()
	currentFrom := now.Add(-duration)
	previousFrom := now.Add(-2 * duration)

	cabinCount, err := s.cabins.Count(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.bookings.ListCreatedBetween(ctx, currentFrom, now)
	if err != nil {
		return nil, err
	}
	previous, err := s.bookings.ListCreatedBetween(ctx, previousFrom, currentFrom)
	if err != nil {
		return nil, err
	}

	days := int(duration.Hours() / 24)
	if days < 1 {
		days = 1
	}

	currentStats := summarize(current, days, cabinCount)
	previousStats := summarize(previous, days, cabinCount)

	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStatsDTO{
		Period:           period,
		NewBookings:      currentStats.newBookings,
		TotalSalesCents:  currentStats.salesCents,
		CheckIns:         currentStats.checkIns,
		OccupancyRate:    currentStats.occupancyRate,
		NewBookingsTrend: trend(float64(currentStats.newBookings), float64(previousStats.newBookings)),
		SalesTrend:       trend(float64(currentStats.salesCents), float64(previousStats.salesCents)),
		CheckInsTrend:    trend(float64(currentStats.checkIns), float64(previousStats.checkIns)),
		OccupancyTrend:   trend(currentStats.occupancyRate, previousStats.occupancyRate),
		SalesChart:       salesChart(current, currentFrom, now),
		StatusCounts:     counts,
	}, nil
}

func summarize(bookings []*bookingDomain.Booking, days int, cabinCount int64) periodStats {
	stats := periodStats{newBookings: len(bookings)}

	var occupiedNights int
	for _, bk := range bookings {
		stats.salesCents += bk.TotalPaid()
		if bk.Status() == bookingDomain.StatusCheckedIn || bk.Status() == bookingDomain.StatusCheckedOut {
			stats.checkIns++
			occupiedNights += bookingDomain.CalendarDays(bk.StartDate(), bk.EndDate())
		}
	}

	if capacity := days * int(cabinCount); capacity > 0 {
		stats.occupancyRate = float64(occupiedNights) / float64(capacity)
	}
	return stats
}

// trend is the percent change between two period values. An empty previous
// period reports 100% growth for any activity at all, and 0% for none.
func trend(current, previous float64) float64 {
	if previous == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return (current - previous) / previous * 100
}

func salesChart(bookings []*bookingDomain.Booking, from, to time.Time) []DailySalesDTO {
	start := bookingDomain.Day(from)
	end := bookingDomain.Day(to)

	var chart []DailySalesDTO
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		entry := DailySalesDTO{Date: day}
		for _, bk := range bookings {
			if bookingDomain.Day(bk.CreatedAt()).Equal(day) {
				entry.TotalSalesCents += bk.TotalPaid()
				entry.ExtrasSalesCents += bk.BreakfastPaid()
			}
		}
		chart = append(chart, entry)
	}
	return chart
}
