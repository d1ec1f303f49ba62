package model

import "time"

// UserProfile represents a user record as returned by the user
// directory. The json tags mirror the directory's wire format so the
// same struct can be decoded from the REST backend and encoded back
// to dashboard clients. The Token field is attached client-side after
// a successful sign-in; it is never part of the stored directory
// record, hence omitempty.
//
// Fields:
//  ID          – stable identifier, equal to the credential provider's subject.
//  Email       – unique email address (immutable after registration).
//  DisplayName – human-readable name shown on the dashboard.
//  PhotoURL    – avatar URL; empty when the user has none.
//  Role        – role name (e.g. "user" or "admin").
//  IsActive    – whether the account is active.
//  Token       – identity token for the current session (client-side only).
//  CreatedAt   – timestamp of creation.
//  UpdatedAt   – timestamp of last update.
type UserProfile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	PhotoURL    string    `json:"photoURL"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"isActive"`
	Token       string    `json:"token,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// UpdateUserInput carries the editable subset of a user record. Only
// displayName, photoURL, role and isActive may change through the
// dashboard; id and email stay immutable. PhotoURL and IsActive are
// pointers so that "absent" can be told apart from the zero value and
// defaulted by the update flow.
type UpdateUserInput struct {
	DisplayName string  `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
	Role        string  `json:"role"`
	IsActive    *bool   `json:"isActive"`
}

// RefreshToken models an entry in the `refresh_tokens` table used by
// the built-in credential backend. The plain token is not stored;
// only its SHA-256 hash.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    string     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
