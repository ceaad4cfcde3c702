// Package session models the authenticated caller. A Session is resolved
// from the bearer token per request and passed explicitly into the
// components that gate on it; nothing reads ambient global state.
package session

import (
	"context"
	"strings"
	"time"
)

type Role string

const (
	RoleAnonymous  Role = "anonymous"
	RoleUser       Role = "user"
	RoleSeller     Role = "seller"
	RoleAccountant Role = "accountant"
	RoleAdmin      Role = "admin"
)

var rolePriority = map[Role]int{
	RoleAnonymous:  0,
	RoleUser:       1,
	RoleSeller:     2,
	RoleAccountant: 3,
	RoleAdmin:      4,
}

func (r Role) HasPermission(required Role) bool {
	return rolePriority[r] >= rolePriority[required]
}

// ParseRole maps input to a known role, case-insensitively.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := rolePriority[r]; ok {
		return r, true
	}
	return "", false
}

type Session struct {
	Token  string `json:"-"`
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// Authenticated reports whether the session carries a token. A zero Session
// is the anonymous caller.
func (s Session) Authenticated() bool { return s.Token != "" }

// Store keeps token -> session mappings with a TTL.
type Store interface {
	Save(ctx context.Context, s Session, ttl time.Duration) error
	// Find returns the session for token. The second return is false when
	// the token is unknown or expired.
	Find(ctx context.Context, token string) (Session, bool, error)
	Delete(ctx context.Context, token string) error
}
