package usecase

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// AuthUsecase verifies bearer tokens and resolves the owner identity.
// Issuing, refreshing and revoking tokens belongs to the auth collaborator;
// this service only needs to know who a request is for.
type AuthUsecase interface {
	// Validate the token and return the owner id it carries
	ValidateToken(token string) (string, error)
}

type authUsecase struct {
	jwtSecret []byte
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(jwtSecret string) AuthUsecase {
	return &authUsecase{
		jwtSecret: []byte(jwtSecret),
	}
}

// ValidateToken parses the JWT and returns its subject as the owner id
func (a *authUsecase) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("token has no subject")
	}
	return sub, nil
}
