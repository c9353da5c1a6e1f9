package postgrest

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func signedKey(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("project-secret"))
	if err != nil {
		t.Fatalf("sign key: %v", err)
	}
	return token
}

func TestKeyRole(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "service role", key: signedKey(t, jwt.MapClaims{"role": "service_role", "iss": "supabase"}), want: RoleServiceRole},
		{name: "anon", key: signedKey(t, jwt.MapClaims{"role": "anon"}), want: RoleAnon},
		{name: "no role claim", key: signedKey(t, jwt.MapClaims{"iss": "supabase"}), want: RoleUnknown},
		{name: "opaque key", key: "sb_secret_abc123", want: RoleUnknown},
		{name: "empty", key: "", want: RoleUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := KeyRole(tc.key); got != tc.want {
				t.Fatalf("KeyRole() = %q, want %q", got, tc.want)
			}
		})
	}
}
