package token

import (
	"strings"
	"testing"
	"time"

	"github.com/carelink/hospital-portal/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user_1",
		Email: "a@x.com",
		Role:  domain.RolePatient,
	}
}

func TestCodec_RoundTrip(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	signed, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user_1" {
		t.Fatalf("unexpected user id: %s", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != domain.RolePatient {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestCodec_WrongSecret(t *testing.T) {
	signed, err := NewCodec("secret", time.Hour).Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewCodec("other", time.Hour).Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Truncated(t *testing.T) {
	codec := NewCodec("secret", time.Hour)
	signed, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	truncated := signed[:len(signed)-10]
	if _, err := codec.Verify(truncated); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	// Garbage that is not even three dot-separated segments.
	if _, err := codec.Verify("not-a-token"); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCodec_Expired(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	issuedAt := time.Now().Add(-2 * time.Hour)
	codec.now = func() time.Time { return issuedAt }
	signed, err := codec.Issue(testUser())
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	codec.now = time.Now
	if _, err := codec.Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestCodec_AlgorithmConfusion(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	// alg=none token: header {"alg":"none","typ":"JWT"} with an empty signature.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJpZCI6InVzZXJfMSIsInJvbGUiOiJhZG1pbiJ9."
	if _, err := codec.Verify(unsigned); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestCodec_EmptyEmailClaim(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	// Well-signed and unexpired, but the email claim is blank. The codec
	// refuses partial identities.
	signed, err := codec.Issue(&domain.User{ID: "user_3", Email: "", Role: domain.RolePatient})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := codec.Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for empty email claim, got %v", err)
	}
}

func TestCodec_MissingRoleClaim(t *testing.T) {
	codec := NewCodec("secret", time.Hour)

	signed, err := codec.Issue(&domain.User{ID: "user_2", Email: "b@x.com", Role: "ghost"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := codec.Verify(signed); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}
	if !strings.Contains(signed, ".") {
		t.Fatalf("expected a JWT-shaped string")
	}
}
