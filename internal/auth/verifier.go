package auth

import "github.com/avelic/bookstand/pkg"

var _ Verifier = (*AdminVerifier)(nil)

// Verifier checks login credentials. Kept as an interface so the
// configured-admin check can be swapped for a real identity provider
// without touching the login handler or the access gate.
type Verifier interface {
	Verify(email, password string) bool
}

type Admin struct {
	Email        string
	PasswordHash string
}

// AdminVerifier verifies credentials against the single admin account
// configured out-of-band (env vars), password via bcrypt hash.
type AdminVerifier struct {
	admin Admin
}

func NewAdminVerifier(admin Admin) *AdminVerifier {
	return &AdminVerifier{
		admin: admin,
	}
}

func (v *AdminVerifier) Verify(email, password string) bool {
	if email != v.admin.Email {
		return false
	}
	return pkg.CheckPasswordHash(password, v.admin.PasswordHash)
}
