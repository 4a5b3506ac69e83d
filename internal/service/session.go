package service

import (
	"errors"
	"strings"

	"github.com/hongminglow/hospcare-be/internal/auth"
)

// SessionValidator checks presented tokens. It keeps no state.
type SessionValidator struct {
	tokens TokenVerifier
}

// NewSessionValidator wraps a token verifier.
func NewSessionValidator(tokens TokenVerifier) *SessionValidator {
	return &SessionValidator{tokens: tokens}
}

// Validate returns the claims embedded in token.
func (v *SessionValidator) Validate(token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, newError(KindMissingToken, MsgLoggedOut, nil)
	}
	claims, err := v.tokens.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return auth.Claims{}, newError(KindExpiredToken, MsgNotLoggedIn, err)
		}
		return auth.Claims{}, newError(KindInvalidToken, MsgNotLoggedIn, err)
	}
	return claims, nil
}
