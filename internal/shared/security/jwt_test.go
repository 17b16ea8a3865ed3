package security

import (
	"errors"
	"testing"
)

func TestAwardParse_RoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := Award(10001)
	if err != nil {
		t.Fatalf("Award: %v", err)
	}
	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.PlayerID != 10001 {
		t.Fatalf("期望 player_id=10001，got=%d", claims.PlayerID)
	}
}

func TestAward_缺少密钥时报错(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Award(1); !errors.Is(err, ErrJWTSecretMissing) {
		t.Fatalf("期望 ErrJWTSecretMissing，got=%v", err)
	}
}
