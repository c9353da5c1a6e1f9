package postgrest

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Key roles reported by KeyRole.
const (
	RoleServiceRole = "service_role"
	RoleAnon        = "anon"
	RoleUnknown     = "unknown"
)

// KeyRole reads the role claim from a JWT-formatted project key without
// verifying its signature. The store verifies keys; the gateway only reports
// which one it is using. Opaque keys report RoleUnknown.
func KeyRole(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return RoleUnknown
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return RoleUnknown
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return RoleUnknown
	}
	return role
}
