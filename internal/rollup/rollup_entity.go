package rollup

import (
	"time"

	"github.com/google/uuid"
)

// CompanyWeekRollup accumulates the archived hours of one company
// week. It is only ever written by the week-archived consumer, so the
// API side treats it as read-only.
type CompanyWeekRollup struct {
	CompanyID uuid.UUID `gorm:"type:uuid;primaryKey"`
	WeekStart time.Time `gorm:"type:date;primaryKey"`

	ArchiveCount  int64   `gorm:"not null;default:0"`
	WeekdayHours  float64 `gorm:"not null;default:0"`
	SaturdayHours float64 `gorm:"not null;default:0"`
	SundayHours   float64 `gorm:"not null;default:0"`
	TotalHours    float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CompanyWeekRollup) TableName() string {
	return "company_week_rollups"
}

// AppliedArchive remembers which archive events already landed in the
// rollup. Kafka redelivers, the primary key does not.
type AppliedArchive struct {
	ArchiveID uuid.UUID `gorm:"type:uuid;primaryKey"`
	AppliedAt time.Time `gorm:"not null"`
}

func (AppliedArchive) TableName() string {
	return "rollup_applied_archives"
}
