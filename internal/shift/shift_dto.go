package shift

type UpsertShiftRequest struct {
	WeekStart string `json:"week_start" binding:"required"`
	DayKey    string `json:"day_key" binding:"required"`
	LNStart   string `json:"ln_start"`
	LNEnd     string `json:"ln_end"`
	DNStart   string `json:"dn_start"`
	DNEnd     string `json:"dn_end"`
}

type DayResponse struct {
	DayKey   string  `json:"day_key"`
	LNStart  string  `json:"ln_start,omitempty"`
	LNEnd    string  `json:"ln_end,omitempty"`
	LNHours  float64 `json:"ln_hours"`
	DNStart  string  `json:"dn_start,omitempty"`
	DNEnd    string  `json:"dn_end,omitempty"`
	DNHours  float64 `json:"dn_hours"`
	DayTotal float64 `json:"day_total"`
}

type TotalsResponse struct {
	WeekdayHours  float64 `json:"weekday_hours"`
	SaturdayHours float64 `json:"saturday_hours"`
	SundayHours   float64 `json:"sunday_hours"`
	TotalHours    float64 `json:"total_hours"`
}

type WeekResponse struct {
	WeekStart string         `json:"week_start"`
	Days      []DayResponse  `json:"days"`
	Totals    TotalsResponse `json:"totals"`
}

type MemberWeekResponse struct {
	UserID       string         `json:"user_id"`
	UserName     string         `json:"user_name"`
	MemberNumber *int64         `json:"member_number,omitempty"`
	WeekStart    string         `json:"week_start"`
	Days         []DayResponse  `json:"days"`
	Totals       TotalsResponse `json:"totals"`
}
