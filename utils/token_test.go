package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"organicroots/config"
)

func init() {
	config.AppConfig = &config.Config{AppEnv: "test", AuthSecret: "test-secret"}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("user-42", "jane@example.com", "admin", "Jane Doe")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if claims.Subject != "user-42" || claims.Email != "jane@example.com" ||
		claims.Role != "admin" || claims.FullName != "Jane Doe" {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestTokenTamperRejected(t *testing.T) {
	token, err := IssueToken("user-42", "jane@example.com", "user", "")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	if _, err := VerifyToken(tampered); err == nil {
		t.Fatal("tampered token verified")
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	token, err := IssueToken("user-42", "jane@example.com", "user", "")
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	config.AppConfig.AuthSecret = "rotated-secret"
	defer func() { config.AppConfig.AuthSecret = "test-secret" }()

	if _, err := VerifyToken(token); err == nil {
		t.Fatal("token signed with old secret verified")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	claims := &SessionClaims{
		Email: "jane@example.com",
		Role:  "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(config.AppConfig.AuthSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := VerifyToken(token); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestTokenGarbageRejected(t *testing.T) {
	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := VerifyToken(bad); err == nil {
			t.Errorf("VerifyToken(%q) succeeded", bad)
		}
	}
}
