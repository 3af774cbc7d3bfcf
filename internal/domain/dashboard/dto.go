package dashboard

// ========== COMBINED DASHBOARD ==========

// DashboardResponse is the combined response for the main dashboard endpoint
type DashboardResponse struct {
	AttendanceStats AttendanceStatsResponse `json:"attendance_stats"`
	HourlyTrend     []HourlyBucketResponse  `json:"hourly_trend"`
	DailyTrend      []DailyBucketResponse   `json:"daily_trend"`
	LocationCounts  []LocationCountResponse `json:"location_counts"`
	PendingLeave    PendingLeaveResponse    `json:"pending_leave"`
	MovementSummary MovementSummaryResponse `json:"movement_summary"`
}

// ========== ATTENDANCE STATS ==========

// AttendanceStatsResponse summarizes attendance over the requested range.
type AttendanceStatsResponse struct {
	TotalSessions  int64   `json:"total_sessions"`
	Present        int64   `json:"present"`
	OnLeave        int64   `json:"on_leave"`
	Absent         int64   `json:"absent"`
	AttendanceRate float64 `json:"attendance_rate"`
	AverageHours   float64 `json:"average_hours"`
	TotalHours     float64 `json:"total_hours"`
}

// ========== TREND BUCKETS ==========

// HourlyBucketResponse counts check-ins per hour of day (0-23).
type HourlyBucketResponse struct {
	Hour     int   `json:"hour"`
	CheckIns int64 `json:"check_ins"`
}

// DailyBucketResponse counts sessions per calendar day.
type DailyBucketResponse struct {
	Date     string  `json:"date"` // Format: "YYYY-MM-DD"
	Present  int64   `json:"present"`
	OnLeave  int64   `json:"on_leave"`
	Absent   int64   `json:"absent"`
	AvgHours float64 `json:"avg_hours"`
}

// ========== LOCATION COUNTS ==========

// LocationCountResponse counts check-ins per place name.
type LocationCountResponse struct {
	PlaceName string `json:"place_name"`
	CheckIns  int64  `json:"check_ins"`
}

// ========== LEAVE / MOVEMENT SUMMARIES ==========

type PendingLeaveResponse struct {
	PendingRequests int64 `json:"pending_requests"`
}

type MovementSummaryResponse struct {
	SignificantMoves int64 `json:"significant_moves"`
	StationaryStays  int64 `json:"stationary_stays"`
	AreaExits        int64 `json:"area_exits"`
}

// DashboardFilter bounds the aggregation range.
type DashboardFilter struct {
	DateFrom string
	DateTo   string
}
