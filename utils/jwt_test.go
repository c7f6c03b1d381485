package utils

import (
	"testing"

	"roomledger-backend/config"

	"github.com/google/uuid"
)

func setupConfig() {
	config.AppConfig = &config.Config{
		JWTSecret: "test-secret",
		AppName:   "RoomLedger",
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setupConfig()

	userID := uuid.New()
	token, err := GenerateToken(userID, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	parsed, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken() error = %v", err)
	}
	if parsed != userID {
		t.Errorf("ParseToken() = %v, want %v", parsed, userID)
	}
}

func TestParseTokenRejectsTampering(t *testing.T) {
	setupConfig()

	token, err := GenerateToken(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	if _, err := ParseToken(token + "x"); err == nil {
		t.Error("ParseToken() accepted a tampered token")
	}

	config.AppConfig.JWTSecret = "rotated"
	if _, err := ParseToken(token); err == nil {
		t.Error("ParseToken() accepted a token signed with an old secret")
	}
}
