package events

import "time"

const WeekArchivedTopic = "shiftboard.shift.week.archived.v1"

type WeekArchivedEvent struct {
	EventType     string    `json:"event_type"`
	ArchiveID     string    `json:"archive_id"`
	UserID        string    `json:"user_id"`
	CompanyID     string    `json:"company_id,omitempty"`
	WeekStart     string    `json:"week_start"`
	WeekdayHours  float64   `json:"weekday_hours"`
	SaturdayHours float64   `json:"saturday_hours"`
	SundayHours   float64   `json:"sunday_hours"`
	TotalHours    float64   `json:"total_hours"`
	OccurredAt    time.Time `json:"occurred_at"`
}
