package auth

type RegisterIndividualRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=255"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterCompanyRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	CompanyName string `json:"company_name" binding:"required,min=2,max=255"`
	// Optional custom invite code; generated when empty.
	InviteCode string `json:"invite_code"`
}

type RegisterJoinRequest struct {
	Name          string `json:"name" binding:"required,min=2,max=255"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	InviteCode    string `json:"invite_code" binding:"required"`
	RequestedRole string `json:"requested_role" binding:"required,oneof=ADMIN EMPLOYEE"`
}

type UpdateMeRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID           string `json:"id"`
	CompanyID    string `json:"company_id,omitempty"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	MemberNumber *int64 `json:"member_number,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`
}
