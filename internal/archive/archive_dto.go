package archive

import "github.com/kiwidressing/Maruschedule/internal/shift"

type CreateArchiveRequest struct {
	WeekStart string `json:"week_start" binding:"required"`
	Label     string `json:"label" binding:"max=120"`
}

type ArchiveResponse struct {
	ID         string               `json:"id"`
	WeekStart  string               `json:"week_start"`
	Label      string               `json:"label,omitempty"`
	Days       []shift.DayResponse  `json:"days"`
	Totals     shift.TotalsResponse `json:"totals"`
	ArchivedAt string               `json:"archived_at"`
}

type ArchiveListItem struct {
	ID         string               `json:"id"`
	WeekStart  string               `json:"week_start"`
	Label      string               `json:"label,omitempty"`
	Totals     shift.TotalsResponse `json:"totals"`
	ArchivedAt string               `json:"archived_at"`
}
