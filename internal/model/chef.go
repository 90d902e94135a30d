package model

import "time"

// Chef represents a course instructor as stored in the `chefs` table.
// Chefs own courses and recipes; all chef-scoped queries filter by the
// chef's ID extracted from the access token.
//
// Fields:
//
//	ID             – primary key identifier.
//	Name           – first name.
//	Surname        – last name.
//	Email          – unique email address used for login.
//	PasswordHash   – bcrypt hashed password.
//	Specialization – free-form culinary specialization (e.g. "Pasticceria").
//	CreatedAt      – timestamp of creation.
//	UpdatedAt      – timestamp of last update.
type Chef struct {
	ID             uint64    // chefs.id
	Name           string    // chefs.name
	Surname        string    // chefs.surname
	Email          string    // chefs.email
	PasswordHash   string    // chefs.password_hash
	Specialization string    // chefs.specialization
	CreatedAt      time.Time // chefs.created_at
	UpdatedAt      time.Time // chefs.updated_at
}

// FullName returns the chef's display name as "Name Surname".
func (c Chef) FullName() string {
	return c.Name + " " + c.Surname
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a chef and contains metadata for expiry
// and revocation.  The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//
//	ID        – primary key identifier.
//	ChefID    – owner of the token.
//	TokenHash – SHA-256 hex digest of the token value.
//	ExpiresAt – expiration timestamp of the token.
//	RevokedAt – when the token was revoked (null if still active).
//	CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	ChefID    uint64     // refresh_tokens.chef_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
