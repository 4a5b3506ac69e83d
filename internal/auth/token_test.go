package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/hospcare-be/internal/models"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func TestTokenRoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)}
	tm := NewTokenManager("secret", "hospcare", 0, WithClock(clock.Now))

	token, err := tm.Generate(models.Identity{ID: "64b000000000000000000001", Email: "ann@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64b000000000000000000001", claims.UserID)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, clock.t.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, clock.t.Add(DefaultTokenTTL).Unix(), claims.ExpiresAt.Unix())
}

func TestTokenExpiresAfterTTL(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tm := NewTokenManager("secret", "", 3*time.Hour, WithClock(clock.Now))

	token, err := tm.Generate(models.Identity{ID: "1", Email: "a@b.c"})
	require.NoError(t, err)

	clock.t = clock.t.Add(3*time.Hour - time.Minute)
	_, err = tm.Verify(token)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrExpiredToken)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", "", time.Hour)
	verifier := NewTokenManager("secret-b", "", time.Hour)

	token, err := issuer.Generate(models.Identity{ID: "1", Email: "a@b.c"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsGarbageAndTampering(t *testing.T) {
	tm := NewTokenManager("secret", "", time.Hour)

	_, err := tm.Verify("not-a-jwt")
	require.ErrorIs(t, err, ErrInvalidToken)

	token, err := tm.Generate(models.Identity{ID: "1", Email: "a@b.c"})
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]
	_, err = tm.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	tm := NewTokenManager("secret", "", time.Hour)

	claims := Claims{
		UserID: "1",
		Email:  "a@b.c",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.Verify(none)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenChecksIssuerWhenConfigured(t *testing.T) {
	other := NewTokenManager("secret", "someone-else", time.Hour)
	tm := NewTokenManager("secret", "hospcare", time.Hour)

	token, err := other.Generate(models.Identity{ID: "1", Email: "a@b.c"})
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
