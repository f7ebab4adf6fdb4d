package shift

import (
	"time"

	"github.com/google/uuid"
)

// ShiftRecord is one day of one user's week. A user has at most one
// record per (week_start, day_key); saves overwrite in place.
type ShiftRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID *uuid.UUID `gorm:"type:uuid;index"` // nil for individual accounts
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_shift_user_week_day,priority:1"`
	WeekStart time.Time  `gorm:"type:date;not null;uniqueIndex:ux_shift_user_week_day,priority:2"`
	DayKey    string     `gorm:"type:varchar(3);not null;uniqueIndex:ux_shift_user_week_day,priority:3"`

	LNStart string  `gorm:"type:varchar(5)"`
	LNEnd   string  `gorm:"type:varchar(5)"`
	LNHours float64 `gorm:"not null;default:0"`
	DNStart string  `gorm:"type:varchar(5)"`
	DNEnd   string  `gorm:"type:varchar(5)"`
	DNHours float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ShiftRecord) TableName() string {
	return "shift_records"
}
