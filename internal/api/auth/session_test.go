package auth

import (
	"testing"
	"time"

	"club-site/internal/domain/admins"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func TestSessionRoundTrip(t *testing.T) {
	email := "ada@example.com"
	a := &admins.AllowedAdmin{GithubID: "42", GithubUsername: "ada", Email: &email}

	tok, err := IssueSession(testSecret, a, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ParseSession(testSecret, tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.GithubID != "42" || claims.Username != "ada" || claims.Email != email {
		t.Fatalf("claims=%+v", claims)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != SessionTTL {
		t.Fatalf("lifetime=%s want %s", got, SessionTTL)
	}
}

func TestSessionRejectsExpired(t *testing.T) {
	a := &admins.AllowedAdmin{GithubID: "42", GithubUsername: "ada"}
	tok, err := IssueSession(testSecret, a, time.Now().Add(-8*24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSession(testSecret, tok); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	a := &admins.AllowedAdmin{GithubID: "42", GithubUsername: "ada"}
	tok, err := IssueSession([]byte("other"), a, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSession(testSecret, tok); err == nil {
		t.Fatalf("expected signature mismatch")
	}
}

func TestSessionRejectsUnsignedToken(t *testing.T) {
	claims := Claims{GithubID: "42", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseSession(testSecret, tok); err == nil {
		t.Fatalf("expected alg=none to be rejected")
	}
}
