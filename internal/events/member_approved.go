package events

import "time"

const MemberApprovedTopic = "shiftboard.company.member.approved.v1"

type MemberApprovedEvent struct {
	EventType    string    `json:"event_type"`
	CompanyID    string    `json:"company_id"`
	UserID       string    `json:"user_id"`
	Role         string    `json:"role"`
	MemberNumber int64     `json:"member_number"`
	ApprovedBy   string    `json:"approved_by"`
	OccurredAt   time.Time `json:"occurred_at"`
}
