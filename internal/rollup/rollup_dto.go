package rollup

type RollupResponse struct {
	CompanyID     string  `json:"company_id"`
	WeekStart     string  `json:"week_start"`
	ArchiveCount  int64   `json:"archive_count"`
	WeekdayHours  float64 `json:"weekday_hours"`
	SaturdayHours float64 `json:"saturday_hours"`
	SundayHours   float64 `json:"sunday_hours"`
	TotalHours    float64 `json:"total_hours"`
	UpdatedAt     string  `json:"updated_at"`
}
