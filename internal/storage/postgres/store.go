package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hongminglow/hospcare-be/internal/models"
	"github.com/hongminglow/hospcare-be/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store provides Postgres-backed persistence for users, one table per category.
type Store struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a new Store and runs migrations.
func NewUserStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// tableFor maps a category to its table. Only known categories reach SQL.
func tableFor(category models.Category) (string, error) {
	switch category {
	case models.Patient, models.Doctor, models.Medical:
		return category.Partition() + "_users", nil
	default:
		return "", fmt.Errorf("unknown category %q", category)
	}
}

func (s *Store) migrate(ctx context.Context) error {
	for _, category := range models.Categories {
		table, err := tableFor(category)
		if err != nil {
			return err
		}
		stmts := []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id UUID PRIMARY KEY,
				first_name TEXT NOT NULL,
				last_name TEXT NOT NULL,
				email TEXT NOT NULL,
				mobile TEXT NOT NULL,
				profile_pic TEXT,
				dob DATE NOT NULL,
				address TEXT NOT NULL,
				%s TEXT NOT NULL,
				specialization TEXT,
				organization TEXT,
				organizations TEXT[],
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);`, table, models.PasswordField),
			fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s_email_unique_idx ON %s (email);`, table, table),
		}
		for _, stmt := range stmts {
			if _, err := s.pool.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("apply migrations: %w", err)
			}
		}
	}
	return nil
}

const userColumns = `id, first_name, last_name, email, mobile, profile_pic, dob, address, ` +
	models.PasswordField + `, specialization, organization, organizations, created_at, updated_at`

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	table, err := tableFor(user.Category)
	if err != nil {
		return models.User{}, err
	}
	var specialization, organization *string
	var organizations []string
	if user.DoctorProfile != nil {
		specialization = &user.DoctorProfile.Specialization
		organization = &user.DoctorProfile.Organization
	}
	if user.MedicalProfile != nil {
		organizations = user.MedicalProfile.Organizations
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING %s;`, table, userColumns, userColumns)
	row := s.pool.QueryRow(ctx, query,
		uuid.New(), user.FirstName, user.LastName, user.Email, user.Mobile, user.ProfilePic,
		user.DOB, user.Address, user.PasswordHash, specialization, organization, organizations,
		user.CreatedAt, user.UpdatedAt,
	)
	created, err := scanUser(row, user.Category)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByEmail fetches a user by email address within the category table.
func (s *Store) FindByEmail(ctx context.Context, category models.Category, email string) (models.User, error) {
	table, err := tableFor(category)
	if err != nil {
		return models.User{}, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE email = $1;`, userColumns, table)
	return scanUser(s.pool.QueryRow(ctx, query, email), category)
}

// ListByCategory returns every user in the category table ordered by creation.
func (s *Store) ListByCategory(ctx context.Context, category models.Category) ([]models.User, error) {
	table, err := tableFor(category)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY created_at;`, userColumns, table)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows, category)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row, category models.Category) (models.User, error) {
	var (
		user           models.User
		id             uuid.UUID
		specialization *string
		organization   *string
		organizations  []string
	)
	if err := row.Scan(&id, &user.FirstName, &user.LastName, &user.Email, &user.Mobile, &user.ProfilePic,
		&user.DOB, &user.Address, &user.PasswordHash, &specialization, &organization, &organizations,
		&user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	user.ID = id.String()
	user.Category = category
	switch category {
	case models.Doctor:
		user.DoctorProfile = &models.DoctorProfile{Specialization: deref(specialization), Organization: deref(organization)}
	case models.Medical:
		user.MedicalProfile = &models.MedicalProfile{Organizations: organizations}
	}
	return user, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
