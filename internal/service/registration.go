package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/storage"
	"github.com/hongminglow/hospcare-be/internal/upload"
)

// dobLayouts are the accepted date-of-birth formats.
var dobLayouts = []string{"2006-01-02", time.RFC3339}

// SignupInput is the raw registration request.
type SignupInput struct {
	Category       string
	FirstName      string `json:"firstName" validate:"required"`
	LastName       string `json:"lastName" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Mobile         string `json:"mobile" validate:"required"`
	DOB            string `json:"dob" validate:"required"`
	Address        string `json:"address" validate:"required"`
	Password       string `json:"password" validate:"required"`
	Specialization string
	Organization   string
	Organizations  []string
	Picture        *upload.File
}

// SignupResult is the created user and its first token.
type SignupResult struct {
	User  models.User
	Token string
}

// Registrar runs the signup workflow.
type Registrar struct {
	store    storage.UserStore
	hasher   PasswordHasher
	tokens   TokenIssuer
	uploads  Uploader
	validate *validator.Validate
	logger   *slog.Logger
	now      func() time.Time
}

// NewRegistrar wires the registration workflow.
func NewRegistrar(store storage.UserStore, hasher PasswordHasher, tokens TokenIssuer, uploads Uploader, logger *slog.Logger) *Registrar {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Registrar{
		store:    store,
		hasher:   hasher,
		tokens:   tokens,
		uploads:  uploads,
		validate: v,
		logger:   orDiscard(logger),
		now:      time.Now,
	}
}

// Register validates in, stores the optional picture, inserts the user into its
// category partition and issues a token for it.
func (r *Registrar) Register(ctx context.Context, in SignupInput) (SignupResult, error) {
	category, err := models.ParseCategory(in.Category)
	if err != nil {
		return SignupResult{}, newError(KindValidation, MsgInvalidCategory, err)
	}
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Mobile = strings.TrimSpace(in.Mobile)
	in.Address = strings.TrimSpace(in.Address)
	organizations := compact(in.Organizations)
	if err := checkCategoryFields(category, in.Specialization, in.Organization, organizations); err != nil {
		return SignupResult{}, err
	}
	dob, err := r.checkBaseFields(in)
	if err != nil {
		return SignupResult{}, err
	}

	picture, err := r.uploads.Accept(ctx, in.Picture)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidFileType) {
			return SignupResult{}, newError(KindInvalidFileType, err.Error(), nil)
		}
		return SignupResult{}, newError(KindInternal, MsgSignupError, err)
	}

	_, err = r.store.FindByEmail(ctx, category, in.Email)
	switch {
	case err == nil:
		r.discard(ctx, picture)
		return SignupResult{}, newError(KindDuplicateEmail, MsgDuplicateEmail, nil)
	case !errors.Is(err, storage.ErrNotFound):
		r.discard(ctx, picture)
		return SignupResult{}, newError(KindInternal, MsgSignupError, err)
	}

	digest, err := r.hasher.Hash(in.Password)
	if err != nil {
		r.discard(ctx, picture)
		return SignupResult{}, newError(KindInternal, MsgSignupError, err)
	}

	now := r.now().UTC()
	user := models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Mobile:       in.Mobile,
		ProfilePic:   picture,
		DOB:          dob,
		Address:      in.Address,
		Category:     category,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch category {
	case models.Doctor:
		user.DoctorProfile = &models.DoctorProfile{
			Specialization: strings.TrimSpace(in.Specialization),
			Organization:   strings.TrimSpace(in.Organization),
		}
	case models.Medical:
		user.MedicalProfile = &models.MedicalProfile{Organizations: organizations}
	}

	created, err := r.store.CreateUser(ctx, user)
	if err != nil {
		r.discard(ctx, picture)
		if errors.Is(err, storage.ErrAlreadyExists) {
			return SignupResult{}, newError(KindDuplicateEmail, MsgDuplicateEmail, nil)
		}
		r.logger.ErrorContext(ctx, "insert user", slog.String("category", category.String()), slog.Any("error", err))
		return SignupResult{}, newError(KindPersistence, MsgSignupFailed, err)
	}

	token, err := r.tokens.Generate(created.Identity())
	if err != nil {
		return SignupResult{}, newError(KindInternal, MsgSignupError, err)
	}

	r.logger.InfoContext(ctx, "user registered", slog.String("category", category.String()), slog.String("id", created.ID))
	return SignupResult{User: created, Token: token}, nil
}

func checkCategoryFields(category models.Category, specialization, organization string, organizations []string) error {
	switch category {
	case models.Doctor:
		if strings.TrimSpace(specialization) == "" {
			return newError(KindValidation, MsgDoctorSpecialization, nil)
		}
		if strings.TrimSpace(organization) == "" {
			return newError(KindValidation, MsgDoctorOrganization, nil)
		}
	case models.Medical:
		if len(organizations) == 0 {
			return newError(KindValidation, MsgMedicalOrganizations, nil)
		}
	}
	return nil
}

func (r *Registrar) checkBaseFields(in SignupInput) (time.Time, error) {
	if err := r.validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return time.Time{}, newError(KindValidation, describe(fieldErrs[0]), nil)
		}
		return time.Time{}, newError(KindValidation, "Invalid signup data", err)
	}
	if strings.TrimSpace(in.Password) == "" {
		return time.Time{}, newError(KindValidation, "password is required", nil)
	}
	dob, err := parseDOB(in.DOB)
	if err != nil {
		return time.Time{}, newError(KindValidation, "dob must be a valid date (YYYY-MM-DD)", err)
	}
	return dob, nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func parseDOB(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range dobLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// compact trims entries and drops the blank ones.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r *Registrar) discard(ctx context.Context, picture *string) {
	if err := r.uploads.Discard(ctx, picture); err != nil {
		r.logger.WarnContext(ctx, "discard upload", slog.String("file", *picture), slog.Any("error", err))
	}
}
