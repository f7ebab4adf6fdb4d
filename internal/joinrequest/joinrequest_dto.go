package joinrequest

type PendingResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	UserEmail     string `json:"user_email"`
	RequestedRole string `json:"requested_role"`
	CreatedAt     string `json:"created_at"`
}

type ResolvedResponse struct {
	ID           string `json:"id"`
	UserID       string `json:"user_id"`
	Status       string `json:"status"`
	Role         string `json:"role,omitempty"`
	MemberNumber *int64 `json:"member_number,omitempty"`
	ResolvedBy   string `json:"resolved_by"`
	ResolvedAt   string `json:"resolved_at"`
}
