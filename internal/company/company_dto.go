package company

type UpdateCompanyRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

type CompanyResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	InviteCode string `json:"invite_code"`
	Status     string `json:"status"`
	CreatedBy  string `json:"created_by"`
	CreatedAt  string `json:"created_at"`
}

// CompanyPublicResponse is the invite-code lookup view. It leaks
// nothing beyond what a prospective member needs to confirm they
// typed the right code.
type CompanyPublicResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
