package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/storage"
)

// LoginResult is the authenticated user and a fresh token.
type LoginResult struct {
	User  models.User
	Token string
}

// Authenticator runs the login workflow.
type Authenticator struct {
	store  storage.UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	logger *slog.Logger
}

// NewAuthenticator wires the login workflow.
func NewAuthenticator(store storage.UserStore, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) *Authenticator {
	return &Authenticator{store: store, hasher: hasher, tokens: tokens, logger: orDiscard(logger)}
}

// Login looks the user up by email inside the category partition and checks
// the password against the stored digest.
func (a *Authenticator) Login(ctx context.Context, email, password, rawCategory string) (LoginResult, error) {
	category, err := models.ParseCategory(rawCategory)
	if err != nil {
		return LoginResult{}, newError(KindValidation, MsgInvalidCategory, err)
	}
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, newError(KindValidation, "email and password are required", nil)
	}

	user, err := a.store.FindByEmail(ctx, category, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return LoginResult{}, newError(KindUserNotFound, MsgUserNotFound, nil)
		}
		a.logger.ErrorContext(ctx, "login lookup", slog.String("category", category.String()), slog.Any("error", err))
		return LoginResult{}, newError(KindInternal, MsgLoginError, err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return LoginResult{}, newError(KindInvalidCredentials, MsgInvalidCredentials, nil)
	}

	token, err := a.tokens.Generate(user.Identity())
	if err != nil {
		return LoginResult{}, newError(KindInternal, MsgLoginError, err)
	}
	return LoginResult{User: user, Token: token}, nil
}
