package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/storage"
)

func TestTableFor(t *testing.T) {
	table, err := tableFor(models.Doctor)
	require.NoError(t, err)
	assert.Equal(t, "doctor_users", table)

	_, err = tableFor(models.Category("users; DROP TABLE x"))
	require.Error(t, err)
}

// TestStoreIntegration exercises the store against a live Postgres database.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run this integration test")
	}
	dsn := os.Getenv("POSTGRES_URL")
	if dsn == "" {
		t.Skip("POSTGRES_URL is required")
	}

	ctx := context.Background()
	store, err := NewUserStore(ctx, dsn)
	require.NoError(t, err)
	defer store.Close()

	now := time.Now().UTC().Truncate(time.Second)
	email := fmt.Sprintf("medic_%d@example.com", time.Now().UnixNano())
	user := models.User{
		FirstName:      "Mia",
		LastName:       "Lee",
		Email:          email,
		Mobile:         "555-0100",
		DOB:            time.Date(1990, 4, 1, 0, 0, 0, 0, time.UTC),
		Address:        "1 Main St",
		Category:       models.Medical,
		PasswordHash:   "hash",
		MedicalProfile: &models.MedicalProfile{Organizations: []string{"General", "Clinic"}},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	created, err := store.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, []string{"General", "Clinic"}, created.MedicalProfile.Organizations)

	_, err = store.CreateUser(ctx, user)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	found, err := store.FindByEmail(ctx, models.Medical, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = store.FindByEmail(ctx, models.Patient, email)
	require.ErrorIs(t, err, storage.ErrNotFound)
}
