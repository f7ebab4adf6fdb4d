package company

import (
	"context"
	"crypto/rand"
	"math/big"
	"regexp"

	companyerrors "github.com/kiwidressing/Maruschedule/internal/company/errors"
)

const (
	inviteCodeLength   = 6
	inviteCodeCharset  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	inviteCodeAttempts = 10
)

var inviteCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func ValidateInviteCode(code string) error {
	if !inviteCodePattern.MatchString(code) {
		return companyerrors.ErrInvalidInviteCode
	}
	return nil
}

// GenerateInviteCode draws six characters from crypto/rand. The code
// is what members type to join, so it stays short and unambiguous in
// format rather than cryptographically long.
func GenerateInviteCode() (string, error) {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeCharset))))
		if err != nil {
			return "", err
		}
		code[i] = inviteCodeCharset[idx.Int64()]
	}
	return string(code), nil
}

// NewUniqueInviteCode retries generation until the code is free among
// active companies. Exhausting the attempts means the code space is
// badly crowded and the caller should fail loudly rather than loop.
func NewUniqueInviteCode(ctx context.Context, repo Repository) (string, error) {
	for attempt := 0; attempt < inviteCodeAttempts; attempt++ {
		code, err := GenerateInviteCode()
		if err != nil {
			return "", err
		}

		taken, err := repo.InviteCodeTaken(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}
	return "", companyerrors.ErrInviteCodeExhausted
}
