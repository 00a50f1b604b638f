package jwt

import (
	"context"
	"errors"
	"strings"

	"animint/internal/ports/auth"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenEmpty   = errors.New("token is empty")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Verifier implementa auth.AuthVerifier validando JWTs firmados con HMAC.
// La identidad del caller viaja en el claim "sub"; "name" es opcional.
type Verifier struct {
	signingKey []byte
}

func NewVerifier(signingKey []byte) *Verifier {
	return &Verifier{signingKey: signingKey}
}

type tokenClaims struct {
	Name string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	parsed, err := jwtlib.ParseWithClaims(token, &tokenClaims{}, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, jwtlib.ErrTokenUnverifiable
		}
		return v.signingKey, nil
	})
	if err != nil {
		return auth.Claims{}, ErrTokenInvalid
	}
	if !parsed.Valid {
		return auth.Claims{}, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return auth.Claims{}, ErrTokenInvalid
	}

	identity := strings.TrimSpace(claims.Subject)
	if identity == "" {
		return auth.Claims{}, errors.New("token claims missing subject")
	}

	return auth.Claims{Identity: identity, Name: claims.Name}, nil
}
