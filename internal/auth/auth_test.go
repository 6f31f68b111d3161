package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordCheck(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	if err := CheckPassword(string(hash), "s3cret"); err != nil {
		t.Fatalf("expected match: %v", err)
	}
	if err := CheckPassword(string(hash), "wrong"); err == nil {
		t.Fatalf("expected mismatch")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("secret", "admin")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	user, err := VerifyToken("secret", token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user != "admin" {
		t.Fatalf("subject: want admin, got %q", user)
	}

	if _, err := VerifyToken("other-secret", token); err == nil {
		t.Fatalf("expected verification failure with wrong secret")
	}
	if _, err := VerifyToken("secret", "not-a-token"); err == nil {
		t.Fatalf("expected verification failure for garbage token")
	}
}
