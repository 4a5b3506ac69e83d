package models

import (
	"fmt"
	"strings"
	"time"
)

// PasswordField is the document field that stores the bcrypt digest.
// Every store mapping and lookup uses this name.
const PasswordField = "password"

// Category partitions users into separately stored groups.
type Category string

const (
	Patient Category = "patient"
	Doctor  Category = "doctor"
	Medical Category = "medical"
)

// Categories lists every known category in a stable order.
var Categories = []Category{Patient, Doctor, Medical}

// ParseCategory converts raw input into a known Category.
func ParseCategory(raw string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(raw))); c {
	case Patient, Doctor, Medical:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", raw)
	}
}

// Partition returns the name of the storage partition (collection) for the category.
func (c Category) Partition() string {
	return string(c)
}

func (c Category) String() string {
	return string(c)
}

// DoctorProfile holds the fields only doctors carry.
type DoctorProfile struct {
	Specialization string `json:"specialization"`
	Organization   string `json:"organization"`
}

// MedicalProfile holds the fields only medical-facility staff carry.
type MedicalProfile struct {
	Organizations []string `json:"organizations"`
}

// User is a registered account. At most one of the embedded profiles is set,
// matching Category; patients carry neither. The profiles are embedded so the
// JSON rendering keeps their fields at the top level.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Mobile       string    `json:"mobile"`
	ProfilePic   *string   `json:"profilePic"`
	DOB          time.Time `json:"dob"`
	Address      string    `json:"address"`
	Category     Category  `json:"category"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	*DoctorProfile
	*MedicalProfile
}

// Identity returns the token identity for the user.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email}
}

// Identity is the subject a token is bound to.
type Identity struct {
	ID    string
	Email string
}
