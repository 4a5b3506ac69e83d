package mongo

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/storage"
)

func TestPasswordTagMatchesField(t *testing.T) {
	field, ok := reflect.TypeOf(userDocument{}).FieldByName("Password")
	require.True(t, ok)
	assert.Equal(t, models.PasswordField, strings.Split(field.Tag.Get("bson"), ",")[0])
}

func TestDocumentMappingKeepsProfilesPerCategory(t *testing.T) {
	doctor := models.User{
		Email:         "doc@example.com",
		Category:      models.Doctor,
		PasswordHash:  "hash",
		DoctorProfile: &models.DoctorProfile{Specialization: "ENT", Organization: "City"},
	}
	got := toDocument(doctor).toModel()
	require.NotNil(t, got.DoctorProfile)
	assert.Equal(t, "ENT", got.DoctorProfile.Specialization)
	assert.Nil(t, got.MedicalProfile)
	assert.Equal(t, "hash", got.PasswordHash)

	patient := toDocument(models.User{Category: models.Patient}).toModel()
	assert.Nil(t, patient.DoctorProfile)
	assert.Nil(t, patient.MedicalProfile)

	medical := toDocument(models.User{
		Category:       models.Medical,
		MedicalProfile: &models.MedicalProfile{Organizations: []string{"A", "B"}},
	})
	assert.Empty(t, medical.Specialization)
	assert.Equal(t, []string{"A", "B"}, medical.toModel().MedicalProfile.Organizations)
}

// TestStoreIntegration runs against a live MongoDB.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run this integration test")
	}
	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		t.Skip("MONGO_URL is required")
	}

	ctx := context.Background()
	dbName := fmt.Sprintf("hospcare_test_%d", time.Now().UnixNano())
	store, err := NewUserStore(ctx, uri, dbName)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.db.Drop(context.Background())
		store.Close()
	})

	user := models.User{Email: "pat@example.com", Category: models.Patient, PasswordHash: "h"}
	created, err := store.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = store.CreateUser(ctx, user)
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	user.Category = models.Doctor
	user.DoctorProfile = &models.DoctorProfile{Specialization: "x", Organization: "y"}
	_, err = store.CreateUser(ctx, user)
	require.NoError(t, err, "same email in another category must be allowed")

	found, err := store.FindByEmail(ctx, models.Patient, "pat@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = store.FindByEmail(ctx, models.Medical, "pat@example.com")
	require.ErrorIs(t, err, storage.ErrNotFound)

	doctors, err := store.ListByCategory(ctx, models.Doctor)
	require.NoError(t, err)
	assert.Len(t, doctors, 1)
}
