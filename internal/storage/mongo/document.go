package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hongminglow/hospcare-be/internal/models"
)

// userDocument is the stored shape of a user. The password tag must match
// models.PasswordField.
type userDocument struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	FirstName      string             `bson:"firstName"`
	LastName       string             `bson:"lastName"`
	Email          string             `bson:"email"`
	Mobile         string             `bson:"mobile"`
	ProfilePic     *string            `bson:"profilePic"`
	DOB            time.Time          `bson:"dob"`
	Address        string             `bson:"address"`
	Category       string             `bson:"category"`
	Password       string             `bson:"password"`
	Specialization string             `bson:"specialization,omitempty"`
	Organization   string             `bson:"organization,omitempty"`
	Organizations  []string           `bson:"organizations,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func toDocument(u models.User) userDocument {
	doc := userDocument{
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Mobile:     u.Mobile,
		ProfilePic: u.ProfilePic,
		DOB:        u.DOB,
		Address:    u.Address,
		Category:   u.Category.String(),
		Password:   u.PasswordHash,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	if u.DoctorProfile != nil {
		doc.Specialization = u.DoctorProfile.Specialization
		doc.Organization = u.DoctorProfile.Organization
	}
	if u.MedicalProfile != nil {
		doc.Organizations = u.MedicalProfile.Organizations
	}
	return doc
}

func (d userDocument) toModel() models.User {
	u := models.User{
		ID:           d.ID.Hex(),
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		Mobile:       d.Mobile,
		ProfilePic:   d.ProfilePic,
		DOB:          d.DOB,
		Address:      d.Address,
		Category:     models.Category(d.Category),
		PasswordHash: d.Password,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	switch u.Category {
	case models.Doctor:
		u.DoctorProfile = &models.DoctorProfile{Specialization: d.Specialization, Organization: d.Organization}
	case models.Medical:
		u.MedicalProfile = &models.MedicalProfile{Organizations: d.Organizations}
	}
	return u
}
