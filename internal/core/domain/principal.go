package domain

// Role is the caller's role as asserted by the identity provider.
type Role string

const (
	RoleClaimant Role = "CLAIMANT"
	RoleAdjuster Role = "ADJUSTER"
	RoleAdmin    Role = "ADMIN"
)

// Principal is the authenticated caller handed to the core by the identity provider.
type Principal struct {
	UserID        string `json:"user_id"`
	Role          Role   `json:"role"`
	WalletAddress string `json:"wallet_address"`
}

// IsStaff reports whether the principal may act on claims it does not own.
func (p Principal) IsStaff() bool {
	return p.Role == RoleAdjuster || p.Role == RoleAdmin
}

// CanView reports whether the principal may read the claim.
func (p Principal) CanView(c *Claim) bool {
	return p.IsStaff() || c.ClaimantID == p.UserID
}
