package dto

import "github.com/hongminglow/hospcare-be/internal/models"

// SignupRequest is the JSON form of a signup; multipart signups are read field by field.
type SignupRequest struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Email          string   `json:"email"`
	Mobile         string   `json:"mobile"`
	DOB            string   `json:"dob"`
	Address        string   `json:"address"`
	Category       string   `json:"category"`
	Password       string   `json:"password"`
	Specialization string   `json:"specialization"`
	Organization   string   `json:"organization"`
	Organizations  []string `json:"organizations"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Category string `json:"category"`
}

type ValidateRequest struct {
	Token string `json:"token"`
}

// AuthResponse is returned by signup and login.
type AuthResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    models.User `json:"user"`
}

type ValidateResponse struct {
	Message string `json:"message"`
	User    any    `json:"user"`
}
