package paseto

import (
	"fmt"
	"time"

	"github.com/o1egl/paseto"

	"hrms-portal/models"
)

// Validator decrypts PASETO v2 local tokens issued by the host application.
type Validator struct {
	v2  *paseto.V2
	key []byte
}

func NewValidator(symmetricKey []byte) (*Validator, error) {
	if len(symmetricKey) != 32 {
		return nil, fmt.Errorf("PASETO v2 local requires a 32-byte key, got %d bytes", len(symmetricKey))
	}
	return &Validator{v2: paseto.NewV2(), key: symmetricKey}, nil
}

func (v *Validator) ValidateToken(tokenString string) (*models.Claims, error) {
	var token paseto.JSONToken
	var footer string

	if err := v.v2.Decrypt(tokenString, v.key, &token, &footer); err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	if err := token.Validate(); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	claims := &models.Claims{
		UserID: token.Get("user_id"),
		Email:  token.Get("email"),
		Role:   token.Get("role"),
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user_id claim")
	}
	return claims, nil
}

// IssueToken encrypts claims into a token valid for ttl. Production tokens
// come from the host application; this serves the demo seeder and tests.
func (v *Validator) IssueToken(claims models.Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	token := paseto.JSONToken{
		Subject:    claims.UserID,
		IssuedAt:   now,
		NotBefore:  now,
		Expiration: now.Add(ttl),
	}
	token.Set("user_id", claims.UserID)
	token.Set("email", claims.Email)
	token.Set("role", claims.Role)

	encrypted, err := v.v2.Encrypt(v.key, token, "")
	if err != nil {
		return "", fmt.Errorf("failed to encrypt paseto token: %w", err)
	}
	return encrypted, nil
}
