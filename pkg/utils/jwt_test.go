package utils

import (
	"strings"
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "booking-api")

	token, err := m.GenerateAccessToken("17", "admin@example.com", []string{"ROLE_ADMIN", "admin"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.Subject != "17" || claims.Email != "admin@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	if roles := claims.AllRoles(); strings.Join(roles, ",") != "ADMIN" {
		t.Errorf("AllRoles() = %v, want [ADMIN]", roles)
	}
}

func TestJWTRejects(t *testing.T) {
	m := NewJWTManager("secret", "booking-api")

	expired, _ := m.GenerateAccessToken("17", "", nil, -time.Minute)
	otherKey, _ := NewJWTManager("other", "booking-api").GenerateAccessToken("17", "", nil, time.Hour)
	otherIssuer, _ := NewJWTManager("secret", "someone-else").GenerateAccessToken("17", "", nil, time.Hour)
	noSubject, _ := m.GenerateAccessToken("", "", nil, time.Hour)

	for name, tok := range map[string]string{
		"expired":      expired,
		"wrong key":    otherKey,
		"wrong issuer": otherIssuer,
		"no subject":   noSubject,
		"garbage":      "not-a-token",
	} {
		if _, err := m.ValidateAccessToken(tok); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}
