package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fieldhr/attendance-backend-go/internal/domain/attendance"
	"github.com/fieldhr/attendance-backend-go/internal/domain/dashboard"
	"github.com/fieldhr/attendance-backend-go/internal/domain/leave"
	"github.com/fieldhr/attendance-backend-go/internal/domain/movement"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	sessionRepo attendance.SessionRepository
	requestRepo leave.RequestRepository
	eventRepo   movement.EventRepository
}

func NewDashboardService(
	sessionRepo attendance.SessionRepository,
	requestRepo leave.RequestRepository,
	eventRepo movement.EventRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		sessionRepo: sessionRepo,
		requestRepo: requestRepo,
		eventRepo:   eventRepo,
	}
}

// parseDate parses YYYY-MM-DD format, defaults to fallback
func parseDate(date string, fallback time.Time) time.Time {
	if date == "" {
		return fallback
	}
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fallback
	}
	return parsed
}

// GetDashboard returns combined dashboard data using parallel goroutines.
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, filter dashboard.DashboardFilter) (*dashboard.DashboardResponse, error) {
	now := time.Now().UTC()
	to := parseDate(filter.DateTo, now.Truncate(24*time.Hour).Add(24*time.Hour))
	from := parseDate(filter.DateFrom, to.AddDate(0, 0, -30))

	resp := &dashboard.DashboardResponse{}

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Attendance stats, trends and location counts from one record fold
	g.Go(func() error {
		sessions, err := s.sessionRepo.ListForRange(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("failed to list sessions for range: %w", err)
		}
		resp.AttendanceStats = foldAttendanceStats(sessions)
		resp.HourlyTrend = foldHourlyTrend(sessions)
		resp.DailyTrend = foldDailyTrend(sessions)
		resp.LocationCounts = foldLocationCounts(sessions)
		return nil
	})

	// 2. Pending leave requests
	g.Go(func() error {
		pending := string(leave.StatusPending)
		requests, err := s.requestRepo.List(gCtx, leave.RequestFilter{Status: &pending})
		if err != nil {
			return fmt.Errorf("failed to list pending leave requests: %w", err)
		}
		resp.PendingLeave = dashboard.PendingLeaveResponse{
			PendingRequests: int64(len(requests)),
		}
		return nil
	})

	// 3. Movement event summary
	g.Go(func() error {
		events, err := s.eventRepo.ListForRange(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("failed to list movement events: %w", err)
		}
		resp.MovementSummary = foldMovementSummary(events)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resp, nil
}

// foldAttendanceStats derives the headline numbers from attendance records.
// The attendance rate counts present (checked in or out) days against all
// recorded days.
func foldAttendanceStats(sessions []attendance.Session) dashboard.AttendanceStatsResponse {
	stats := dashboard.AttendanceStatsResponse{}

	var totalHours float64
	var completed int64

	for _, s := range sessions {
		stats.TotalSessions++
		switch s.Status {
		case attendance.StatusCheckedIn, attendance.StatusCheckedOut:
			stats.Present++
		case attendance.StatusOnLeave:
			stats.OnLeave++
		case attendance.StatusAbsent:
			stats.Absent++
		}
		if s.TotalDurationSeconds != nil {
			totalHours += *s.TotalDurationSeconds / 3600.0
			completed++
		}
	}

	if stats.TotalSessions > 0 {
		stats.AttendanceRate = float64(stats.Present) / float64(stats.TotalSessions) * 100
	}
	if completed > 0 {
		stats.AverageHours = totalHours / float64(completed)
	}
	stats.TotalHours = totalHours

	return stats
}

func foldHourlyTrend(sessions []attendance.Session) []dashboard.HourlyBucketResponse {
	counts := make(map[int]int64)
	for _, s := range sessions {
		if s.Status == attendance.StatusCheckedIn || s.Status == attendance.StatusCheckedOut {
			counts[s.CheckInTime.Hour()]++
		}
	}

	buckets := make([]dashboard.HourlyBucketResponse, 0, 24)
	for hour := 0; hour < 24; hour++ {
		buckets = append(buckets, dashboard.HourlyBucketResponse{
			Hour:     hour,
			CheckIns: counts[hour],
		})
	}
	return buckets
}

func foldDailyTrend(sessions []attendance.Session) []dashboard.DailyBucketResponse {
	type dayAgg struct {
		present, onLeave, absent int64
		hours                    float64
		completed                int64
	}

	days := make(map[string]*dayAgg)
	for _, s := range sessions {
		key := s.CheckInTime.Format("2006-01-02")
		agg, ok := days[key]
		if !ok {
			agg = &dayAgg{}
			days[key] = agg
		}
		switch s.Status {
		case attendance.StatusCheckedIn, attendance.StatusCheckedOut:
			agg.present++
		case attendance.StatusOnLeave:
			agg.onLeave++
		case attendance.StatusAbsent:
			agg.absent++
		}
		if s.TotalDurationSeconds != nil {
			agg.hours += *s.TotalDurationSeconds / 3600.0
			agg.completed++
		}
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	buckets := make([]dashboard.DailyBucketResponse, 0, len(dates))
	for _, date := range dates {
		agg := days[date]
		bucket := dashboard.DailyBucketResponse{
			Date:    date,
			Present: agg.present,
			OnLeave: agg.onLeave,
			Absent:  agg.absent,
		}
		if agg.completed > 0 {
			bucket.AvgHours = agg.hours / float64(agg.completed)
		}
		buckets = append(buckets, bucket)
	}
	return buckets
}

func foldLocationCounts(sessions []attendance.Session) []dashboard.LocationCountResponse {
	counts := make(map[string]int64)
	for _, s := range sessions {
		if s.CheckInPlaceName == nil || *s.CheckInPlaceName == "" {
			continue
		}
		counts[*s.CheckInPlaceName]++
	}

	places := make([]string, 0, len(counts))
	for place := range counts {
		places = append(places, place)
	}
	sort.Slice(places, func(i, j int) bool {
		if counts[places[i]] != counts[places[j]] {
			return counts[places[i]] > counts[places[j]]
		}
		return places[i] < places[j]
	})

	results := make([]dashboard.LocationCountResponse, 0, len(places))
	for _, place := range places {
		results = append(results, dashboard.LocationCountResponse{
			PlaceName: place,
			CheckIns:  counts[place],
		})
	}
	return results
}

func foldMovementSummary(events []movement.Event) dashboard.MovementSummaryResponse {
	summary := dashboard.MovementSummaryResponse{}
	for _, e := range events {
		switch e.Type {
		case movement.EventSignificantMove:
			summary.SignificantMoves++
		case movement.EventStationaryStay:
			summary.StationaryStays++
		case movement.EventLeftCheckInArea:
			summary.AreaExits++
		}
	}
	return summary
}
