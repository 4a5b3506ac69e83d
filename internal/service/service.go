package service

import (
	"context"
	"log/slog"

	"github.com/hongminglow/hospcare-be/internal/auth"
	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/upload"
)

// PasswordHasher hashes and checks passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs tokens for an identity.
type TokenIssuer interface {
	Generate(identity models.Identity) (string, error)
}

// TokenVerifier checks a presented token.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

// Uploader accepts an optional profile picture and can discard it again.
type Uploader interface {
	Accept(ctx context.Context, f *upload.File) (*string, error)
	Discard(ctx context.Context, ref *string) error
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
