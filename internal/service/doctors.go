package service

import (
	"context"
	"log/slog"

	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/storage"
)

// Directory lists publicly visible doctor records.
type Directory struct {
	store  storage.UserStore
	logger *slog.Logger
}

// NewDirectory lists doctors from store.
func NewDirectory(store storage.UserStore, logger *slog.Logger) *Directory {
	return &Directory{store: store, logger: orDiscard(logger)}
}

// Doctors returns every doctor. The result is never nil.
func (d *Directory) Doctors(ctx context.Context) ([]models.User, error) {
	users, err := d.store.ListByCategory(ctx, models.Doctor)
	if err != nil {
		d.logger.ErrorContext(ctx, "list doctors", slog.Any("error", err))
		return nil, newError(KindInternal, MsgServerError, err)
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		u.PasswordHash = ""
		out = append(out, u)
	}
	return out, nil
}
