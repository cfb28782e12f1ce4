// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

// Package auth implements account registration, login, and session handling
// for the Staffdir API.
//
// # Architecture
//
// The entities here have no dependencies on outer layers (databases, APIs).
// Persistence goes through the repository interfaces in store.go: accounts
// live in PostgreSQL, refresh sessions and reset tokens in Redis.
package auth

import (
	"time"

	"github.com/nwieland/staffdir/internal/platform/sec"
)

// User represents a registered account of the Staffdir platform.
//
// # Rules
//   - Username is unique and URL-safe.
//   - Email is unique and validated.
//   - PasswordHash is generated via Bcrypt exclusively via the auth Service.
//   - Role scoping: admins see every company, managers and members only the
//     companies they are linked to.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Session represents an active refresh-token session.
//
// # Security Concept
//
// Access tokens (JWT) are stateless and cannot be revoked before expiry. We
// pair short-lived JWTs with long-lived sessions held in Redis under the
// refresh token's hash. When the JWT expires the client trades the refresh
// token for a new pair; revoking the session logs the device out for good.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
