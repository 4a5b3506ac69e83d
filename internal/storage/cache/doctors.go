// Package cache decorates a UserStore with a redis-backed doctor listing.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/storage"
)

const (
	// DoctorsKey is the redis key holding the doctor listing snapshot.
	DoctorsKey = "hospcare:doctors"
	// DoctorsGenerationKey counts doctor registrations. A snapshot is only
	// written if the generation it was loaded under is still current.
	DoctorsGenerationKey = "hospcare:doctors:gen"

	fillTimeout = 10 * time.Second
)

var errStaleSnapshot = errors.New("cache: doctor snapshot is stale")

var _ storage.UserStore = (*DoctorCache)(nil)

// DoctorCache serves doctor listings from redis and falls back to the wrapped
// store. Cached entries hold only the public JSON fields of each user, so a
// cache hit returns users without PasswordHash.
type DoctorCache struct {
	storage.UserStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewDoctorCache wraps inner. A nil logger discards cache warnings.
func NewDoctorCache(inner storage.UserStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *DoctorCache {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DoctorCache{UserStore: inner, client: client, ttl: ttl, logger: logger}
}

// Connect creates a redis client and checks it is reachable.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping: %w", err)
	}
	return client, nil
}

// CreateUser writes through. After a new doctor it bumps the generation and
// drops the snapshot, so no fill that started earlier can store its result.
func (c *DoctorCache) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	created, err := c.UserStore.CreateUser(ctx, user)
	if err != nil {
		return created, err
	}
	if user.Category == models.Doctor {
		_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Incr(ctx, DoctorsGenerationKey)
			pipe.Del(ctx, DoctorsKey)
			return nil
		})
		if err != nil {
			c.logger.WarnContext(ctx, "invalidate doctor cache", slog.Any("error", err))
		}
		c.group.Forget(DoctorsKey)
	}
	return created, nil
}

// ListByCategory serves doctors from the cache; other categories pass through.
// Concurrent misses share one load, which runs detached from any single
// caller's cancellation.
func (c *DoctorCache) ListByCategory(ctx context.Context, category models.Category) ([]models.User, error) {
	if category != models.Doctor {
		return c.UserStore.ListByCategory(ctx, category)
	}

	raw, err := c.client.Get(ctx, DoctorsKey).Bytes()
	switch {
	case err == nil:
		var users []models.User
		if err := json.Unmarshal(raw, &users); err == nil {
			return users, nil
		}
		c.logger.WarnContext(ctx, "discarding corrupt doctor cache entry")
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "read doctor cache", slog.Any("error", err))
	}

	ch := c.group.DoChan(DoctorsKey, func() (any, error) {
		fillCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
		defer cancel()
		return c.fill(fillCtx)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.User), nil
	}
}

// fill loads doctors from the store and stores the snapshot unless a doctor
// registered since the load began.
func (c *DoctorCache) fill(ctx context.Context) ([]models.User, error) {
	gen, genErr := c.client.Get(ctx, DoctorsGenerationKey).Int64()
	if genErr != nil && !errors.Is(genErr, redis.Nil) {
		c.logger.WarnContext(ctx, "read doctor cache generation", slog.Any("error", genErr))
	}

	users, err := c.UserStore.ListByCategory(ctx, models.Doctor)
	if err != nil {
		return nil, err
	}
	if genErr != nil && !errors.Is(genErr, redis.Nil) {
		return users, nil
	}

	payload, err := json.Marshal(users)
	if err != nil {
		c.logger.WarnContext(ctx, "encode doctor cache", slog.Any("error", err))
		return users, nil
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, DoctorsGenerationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleSnapshot
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, DoctorsKey, payload, c.ttl)
			return nil
		})
		return err
	}, DoctorsGenerationKey)
	switch {
	case err == nil:
	case errors.Is(err, errStaleSnapshot), errors.Is(err, redis.TxFailedErr):
		c.logger.DebugContext(ctx, "skip stale doctor snapshot")
	default:
		c.logger.WarnContext(ctx, "write doctor cache", slog.Any("error", err))
	}
	return users, nil
}
