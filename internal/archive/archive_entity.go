package archive

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ArchiveRecord is a frozen snapshot of one user's week. The day rows
// are kept as a jsonb blob because an archive never changes after it
// is written, so there is nothing to query inside it.
type ArchiveRecord struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyID *uuid.UUID `gorm:"type:uuid;index"` // nil for individual accounts
	WeekStart time.Time  `gorm:"type:date;not null"`
	Label     string     `gorm:"type:varchar(120)"`

	Days []byte `gorm:"type:jsonb;not null"`

	WeekdayHours  float64 `gorm:"not null;default:0"`
	SaturdayHours float64 `gorm:"not null;default:0"`
	SundayHours   float64 `gorm:"not null;default:0"`
	TotalHours    float64 `gorm:"not null;default:0"`

	ArchivedAt time.Time `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (ArchiveRecord) TableName() string {
	return "archive_records"
}
