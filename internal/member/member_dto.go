package member

type MemberResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	MemberNumber *int64 `json:"member_number,omitempty"`
	JoinedAt     string `json:"joined_at"`
}

type RoleCounts struct {
	Owners    int `json:"owners"`
	Admins    int `json:"admins"`
	Employees int `json:"employees"`
}

type MemberListResponse struct {
	Members []MemberResponse `json:"members"`
	Counts  RoleCounts       `json:"counts"`
}
